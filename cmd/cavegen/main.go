package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"cave-ca/internal/config"
	"cave-ca/internal/logging"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cavegen",
		Short: "Water/swamp/rock cave map generator",
		Long: `cavegen seeds a square grid with water, swamp and rock tiles and
smooths it with a majority-vote cellular automaton until coherent
regions form. The border of the map is always rock.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newStatsCmd(),
		newSweepCmd(),
		newViewCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "cavegen version %s\n", version)
			}
		},
	}
}

// setup resolves the layered configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	return cfg, logger, nil
}
