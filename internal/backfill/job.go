package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/aevon-lab/drivelog/internal/metrics"
)

const (
	defaultBatchSize   = 1000
	defaultWorkerCount = 8
)

// Assigner attaches an already stored sample to a trip.
type Assigner interface {
	AssignExisting(ctx context.Context, sample *telemetry.Sample, gap time.Duration) (*trip.Trip, error)
}

// JobParameter controls throughput and grouping for a backfill run.
type JobParameter struct {
	BatchSize   int
	WorkerCount int
	Gap         time.Duration
}

func (o JobParameter) normalized() JobParameter {
	n := o
	if n.BatchSize <= 0 {
		n.BatchSize = defaultBatchSize
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	return n
}

// Result counts what one batch did.
type Result struct {
	Fetched   int
	Assigned  int
	Conflicts int
	Failed    int
}

func (r *Result) add(o Result) {
	r.Fetched += o.Fetched
	r.Assigned += o.Assigned
	r.Conflicts += o.Conflicts
	r.Failed += o.Failed
}

// RunOnce fetches one batch of unassigned samples and assigns them to trips.
// Devices are processed concurrently; samples of one device are assigned in
// start order, and the first failure for a device leaves its remaining
// samples for the next batch.
func RunOnce(ctx context.Context, samples storage.SampleStore, assigner Assigner, params JobParameter) (Result, error) {
	params = params.normalized()

	pending, err := samples.FetchUnassigned(ctx, params.BatchSize)
	if err != nil {
		return Result{}, fmt.Errorf("fetch unassigned samples: %w", err)
	}
	metrics.BackfillBacklog.Set(float64(len(pending)))

	if len(pending) == 0 {
		slog.Debug("[Backfill] No unassigned samples")
		return Result{}, nil
	}

	groups := groupByDevice(pending)
	result := assignConcurrently(ctx, groups, assigner, params)
	result.Fetched = len(pending)

	slog.Info("[Backfill] Batch complete",
		"fetched", result.Fetched,
		"assigned", result.Assigned,
		"conflicts", result.Conflicts,
		"failed", result.Failed,
		"devices", len(groups),
	)
	return result, nil
}

// groupByDevice keeps the store's per-device start order.
func groupByDevice(samples []telemetry.Sample) [][]telemetry.Sample {
	index := make(map[string]int)
	var groups [][]telemetry.Sample
	for _, s := range samples {
		i, ok := index[s.DeviceID]
		if !ok {
			i = len(groups)
			index[s.DeviceID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], s)
	}
	return groups
}

func assignConcurrently(ctx context.Context, groups [][]telemetry.Sample, assigner Assigner, params JobParameter) Result {
	workerCount := min(params.WorkerCount, len(groups))
	if workerCount <= 0 {
		return Result{}
	}

	jobs := make(chan []telemetry.Sample, len(groups))
	results := make(chan Result, workerCount)

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			var local Result
			for device := range jobs {
				local.add(assignDevice(ctx, device, assigner, params.Gap))
			}
			results <- local
		}()
	}

	for _, g := range groups {
		jobs <- g
	}
	close(jobs)

	wg.Wait()
	close(results)

	var merged Result
	for local := range results {
		merged.add(local)
	}
	return merged
}

func assignDevice(ctx context.Context, samples []telemetry.Sample, assigner Assigner, gap time.Duration) Result {
	var r Result
	for i := range samples {
		if ctx.Err() != nil {
			return r
		}
		s := samples[i]
		_, err := assigner.AssignExisting(ctx, &s, gap)
		switch {
		case err == nil:
			r.Assigned++
			continue
		case errors.Is(err, storage.ErrConflict):
			r.Conflicts++
			slog.Warn("[Backfill] Assignment conflict, retrying next batch",
				"device_id", s.DeviceID, "seq", s.Seq)
		default:
			r.Failed++
			slog.Error("[Backfill] Assignment failed",
				"device_id", s.DeviceID, "seq", s.Seq, "error", err)
		}
		return r
	}
	return r
}
