package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/drivelog/internal/backfill"
	"github.com/aevon-lab/drivelog/internal/ingestion"
	"github.com/aevon-lab/drivelog/internal/projection"
	"github.com/aevon-lab/drivelog/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the ingestion and query API. When backfill.enabled is set the
backfill scheduler runs alongside it and assigns trips to stored samples
that do not have one yet.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	assigner := ingestion.NewAssigner(st.trips)

	ingestionSvc := ingestion.NewService(st.samples, assigner, ingestion.Policy{
		GapThreshold:   cfg.Trips.Gap(),
		AssignOnIngest: cfg.Trips.AssignOnIngest,
	}, cfg.Server.MaxBodySizeMB)

	projectionSvc := projection.NewService(st.samples, st.trips, projection.Policy{
		TripGap:  cfg.Trips.Gap(),
		DriveGap: cfg.Trips.DriveGap(),
	}, cfg.Buckets)

	opts := server.Options{Mode: cfg.Server.Mode}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), st.health, opts)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	done := make(chan struct{})
	if cfg.Backfill.Enabled {
		scheduler := backfill.NewScheduler(cfg.Backfill.EffectiveInterval(), st.samples, assigner, backfill.JobParameter{
			BatchSize: cfg.Backfill.BatchSize,
			Gap:       cfg.Trips.Gap(),
		})
		go func() {
			defer close(done)
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Backfill scheduler stopped with error", "error", err)
			}
		}()
	} else {
		close(done)
		slog.Info("Backfill scheduler disabled by config")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
		case <-ctx.Done():
		}
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		cancel()
		<-done
		return fmt.Errorf("server stopped: %w", err)
	}

	<-done
	slog.Info("Shutdown complete")
	return nil
}
