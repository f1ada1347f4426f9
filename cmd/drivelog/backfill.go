package main

import (
	"log/slog"

	"github.com/aevon-lab/drivelog/internal/backfill"
	"github.com/aevon-lab/drivelog/internal/ingestion"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Assign trips to stored samples that have none",
	Long: `Drain the unassigned sample backlog once and exit. Samples are processed
per device in start order with the configured trips.gap_threshold.`,
	RunE: runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)

	backfillCmd.Flags().Int("batch-size", 0, "samples per batch (default backfill.batch_size)")
	backfillCmd.Flags().Int("workers", 0, "devices assigned concurrently")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	batchSize, _ := cmd.Flags().GetInt("batch-size")
	if batchSize <= 0 {
		batchSize = cfg.Backfill.BatchSize
	}
	workers, _ := cmd.Flags().GetInt("workers")

	scheduler := backfill.NewScheduler(cfg.Backfill.EffectiveInterval(), st.samples, ingestion.NewAssigner(st.trips), backfill.JobParameter{
		BatchSize:   batchSize,
		WorkerCount: workers,
		Gap:         cfg.Trips.Gap(),
	})
	total := scheduler.Drain(cmd.Context())

	slog.Info("Backfill finished",
		"fetched", total.Fetched,
		"assigned", total.Assigned,
		"conflicts", total.Conflicts,
		"failed", total.Failed,
	)
	return nil
}
