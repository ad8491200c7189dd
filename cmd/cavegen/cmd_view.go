//go:build ebiten

package main

import (
	"errors"
	"fmt"

	"cave-ca/internal/app"
	"cave-ca/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open a window and watch the map smooth generation by generation",
		Long: `Open an ebiten window showing the randomized map, then advance one
generation every --pause until --steps generations have run (0 runs
forever).

Keys: Space pause, Enter resume, N single step, R reset with the same
seed, S reset with a new seed, Q or Esc quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			sim, err := terrain.New(cfg.Distribution(), cfg.Generator.Size, cfg.Generator.Seed)
			if err != nil {
				return fmt.Errorf("creating simulator: %w", err)
			}
			sim.Reset(cfg.Generator.Seed)

			game := app.New(sim, app.Options{
				Scale: cfg.Viewer.Scale,
				Pause: cfg.Viewer.Pause,
				Steps: cfg.Generator.Steps,
				Seed:  cfg.Generator.Seed,
			}, logger)
			width, height := game.Layout(0, 0)

			ebiten.SetWindowTitle("cavegen — " + sim.Name())
			ebiten.SetTPS(cfg.Viewer.TPS)
			ebiten.SetWindowSize(width, height)

			logger.Info("opening viewer", "size", cfg.Generator.Size, "seed", cfg.Generator.Seed, "pause", cfg.Viewer.Pause)
			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}
}
