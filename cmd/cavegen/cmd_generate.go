package main

import (
	"fmt"

	"cave-ca/internal/terrain"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a map and print it as text",
		Long: `Randomize a map, smooth it for --steps generations and print the grid
one row per line as bracketed category codes (0 water, 1 swamp, 2 rock).

With --every the randomized grid and every generation are printed,
separated by blank lines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			every, _ := cmd.Flags().GetBool("every")

			sim, err := terrain.New(cfg.Distribution(), cfg.Generator.Size, cfg.Generator.Seed)
			if err != nil {
				return fmt.Errorf("creating simulator: %w", err)
			}
			logger.Info("generating map",
				"size", cfg.Generator.Size,
				"seed", cfg.Generator.Seed,
				"steps", cfg.Generator.Steps)

			out := cmd.OutOrStdout()
			sim.Randomize()
			if every {
				if err := sim.Snapshot().WriteText(out); err != nil {
					return err
				}
			}
			for i := 0; i < cfg.Generator.Steps; i++ {
				sim.Step()
				logger.Debug("generation", "n", sim.Generation())
				if every {
					fmt.Fprintln(out)
					if err := sim.Snapshot().WriteText(out); err != nil {
						return err
					}
				}
			}
			if !every {
				return sim.Snapshot().WriteText(out)
			}
			return nil
		},
	}
	cmd.Flags().Bool("every", false, "Print every generation, not just the last")
	return cmd
}
