package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"cave-ca/internal/sweep"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Simulate many seeds in parallel and summarize the composition",
		Long: `Run one simulator per seed, starting at --seed and counting up, on a
pool of workers. Reports the mean interior composition before and
after --steps generations and how many cells changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			count, _ := cmd.Flags().GetInt("seeds")
			workers, _ := cmd.Flags().GetInt("workers")
			if count <= 0 {
				return fmt.Errorf("--seeds must be positive, got %d", count)
			}

			results, err := sweep.Run(cmd.Context(), sweep.Options{
				Distribution: cfg.Distribution(),
				Size:         cfg.Generator.Size,
				Steps:        cfg.Generator.Steps,
				Seeds:        sweep.Seeds(cfg.Generator.Seed, count),
				Workers:      workers,
			}, logger)
			if err != nil {
				return fmt.Errorf("running sweep: %w", err)
			}
			summary := sweep.Summarize(results)

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{
					"summary": summary,
					"results": results,
				})
			}
			fmt.Fprintf(out, "Sweep of %d seeds (size %d, %d steps)\n", summary.Runs, cfg.Generator.Size, cfg.Generator.Steps)
			fmt.Fprintf(out, "  initial: water %.3f  swamp %.3f  rock %.3f\n", summary.Initial.Water, summary.Initial.Swamp, summary.Initial.Rock)
			fmt.Fprintf(out, "  final:   water %.3f  swamp %.3f  rock %.3f\n", summary.Final.Water, summary.Final.Swamp, summary.Final.Rock)
			fmt.Fprintf(out, "  mean cells changed: %.1f\n", summary.MeanChanged)
			return nil
		},
	}
	cmd.Flags().Int("seeds", 32, "Number of consecutive seeds to simulate")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of worker goroutines")
	return cmd
}
