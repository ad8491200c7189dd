package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"cave-ca/internal/terrain"

	"github.com/spf13/cobra"
)

type generationStats struct {
	Generation  int                  `json:"generation"`
	Composition terrain.Composition  `json:"composition"`
	Fractions   terrain.Distribution `json:"fractions"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the interior composition of every generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			sim, err := terrain.New(cfg.Distribution(), cfg.Generator.Size, cfg.Generator.Seed)
			if err != nil {
				return fmt.Errorf("creating simulator: %w", err)
			}
			sim.Randomize()
			rows := []generationStats{collectStats(sim)}
			for i := 0; i < cfg.Generator.Steps; i++ {
				sim.Step()
				rows = append(rows, collectStats(sim))
			}
			logger.Debug("stats collected", "generations", len(rows))

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(rows)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "GEN\tWATER\tSWAMP\tROCK")
			for _, row := range rows {
				fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\n",
					row.Generation, row.Fractions.Water, row.Fractions.Swamp, row.Fractions.Rock)
			}
			return tw.Flush()
		},
	}
}

func collectStats(sim *terrain.Simulator) generationStats {
	comp := sim.Snapshot().InteriorComposition()
	return generationStats{
		Generation:  sim.Generation(),
		Composition: comp,
		Fractions:   comp.Fractions(),
	}
}
