package backfill

import (
	"context"
	"log/slog"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
)

const maxConsecutiveBatches = 100

// Scheduler assigns unassigned samples to trips on a periodic interval.
// Each tick drains whatever the store reports as unassigned.
type Scheduler struct {
	interval time.Duration
	samples  storage.SampleStore
	assigner Assigner
	params   JobParameter
}

// NewScheduler creates a backfill scheduler.
func NewScheduler(interval time.Duration, samples storage.SampleStore, assigner Assigner, params JobParameter) *Scheduler {
	return &Scheduler{
		interval: interval,
		samples:  samples,
		assigner: assigner,
		params:   params.normalized(),
	}
}

// Start begins periodic backfill. Runs until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Backfill] Starting scheduler",
		"interval", s.interval,
		"batch_size", s.params.BatchSize,
		"workers", s.params.WorkerCount,
		"gap", s.params.Gap,
	)

	s.Drain(ctx)

	for {
		select {
		case <-ticker.C:
			s.Drain(ctx)
		case <-ctx.Done():
			slog.Info("[Backfill] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			s.Drain(shutdownCtx)
			slog.Info("[Backfill] Final drain complete")
			return nil
		}
	}
}

// Drain runs batches until the backlog is empty, a batch makes no progress,
// or the consecutive batch limit is reached.
func (s *Scheduler) Drain(ctx context.Context) Result {
	var total Result
	batchCount := 0

	for batchCount < maxConsecutiveBatches {
		if ctx.Err() != nil {
			slog.Info("[Backfill] Drain interrupted by context cancellation", "batches_processed", batchCount)
			return total
		}

		r, err := RunOnce(ctx, s.samples, s.assigner, s.params)
		if err != nil {
			slog.Error("[Backfill] Batch failed", "error", err, "batch_number", batchCount+1)
			return total
		}
		batchCount++
		total.add(r)

		if r.Fetched < s.params.BatchSize {
			if batchCount > 1 {
				slog.Info("[Backfill] Backlog drained", "total_batches", batchCount, "assigned", total.Assigned)
			}
			return total
		}
		if r.Assigned == 0 {
			slog.Warn("[Backfill] Batch made no progress, pausing drain", "batches_so_far", batchCount)
			return total
		}

		slog.Info("[Backfill] Backlog detected, continuing to drain", "batches_so_far", batchCount)
	}

	slog.Warn("[Backfill] Max consecutive batches reached, pausing drain",
		"max_batches", maxConsecutiveBatches,
		"note", "Will resume on next tick",
	)
	return total
}
