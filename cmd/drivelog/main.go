package main

import (
	"fmt"
	"log/slog"
	"os"

	corecfg "github.com/aevon-lab/drivelog/internal/core/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	cfg        *corecfg.Config
)

var rootCmd = &cobra.Command{
	Use:   "drivelog",
	Short: "Vehicle telemetry trip segmentation and analytics service",
	Long: `drivelog stores vehicle telemetry samples, groups them into trips and
serves trip summaries and driving analytics over HTTP.

Example usage:
  drivelog serve                      # Run the HTTP API and backfill scheduler
  drivelog backfill                   # Assign trips to unassigned samples once
  drivelog migrate up                 # Apply pending database migrations
  drivelog migrate down --steps 1     # Roll back the last migration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (defaults and DRIVELOG_ env vars apply without one)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	var err error
	cfg, err = corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Debug("Loaded config", "config", cfg)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
