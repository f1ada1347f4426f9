package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Policy is the caller-side trip grouping policy applied on ingest.
type Policy struct {
	GapThreshold   time.Duration
	AssignOnIngest bool
}

type Service struct {
	samples          storage.SampleStore
	assigner         *Assigner
	policy           Policy
	maxBodySizeBytes int
	nowFn            func() time.Time
}

func NewService(samples storage.SampleStore, assigner *Assigner, policy Policy, maxBodySizeMB int) *Service {
	if samples == nil {
		panic("ingestion: sample store must not be nil")
	}
	if assigner == nil {
		panic("ingestion: assigner must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		samples:          samples,
		assigner:         assigner,
		policy:           policy,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/telemetry", s.IngestHandler)
	r.POST("/v1/telemetry/batch", s.IngestBatchHandler)
	r.GET("/v1/devices/:device_id/telemetry/latest", s.LatestHandler)
}

// Ingest stores one sample, assigning it to a trip when the policy asks for it
// and the sample carries a start time.
func (s *Service) Ingest(ctx context.Context, sample *telemetry.Sample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	if s.policy.AssignOnIngest && sample.HasStart() {
		if _, err := s.assigner.AssignTripOnIngest(ctx, sample, s.policy.GapThreshold); err != nil {
			return err
		}
		metrics.RecordIngest(1, true)
		return nil
	}

	if err := s.samples.SaveSamples(ctx, []*telemetry.Sample{sample}); err != nil {
		return fmt.Errorf("failed to save sample: %w", err)
	}
	metrics.RecordIngest(1, false)
	return nil
}

// BatchError reports how far a batch got before failing.
// Samples are committed one by one, so Stored samples remain persisted.
type BatchError struct {
	Stored int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch failed after %d stored samples: %v", e.Stored, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// IngestBatch stores samples. Untimed samples, and all samples when assignment
// is off, are saved together; the rest are assigned per device in start-time order.
func (s *Service) IngestBatch(ctx context.Context, samples []*telemetry.Sample) error {
	for i, sample := range samples {
		if err := sample.Validate(); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}

	var plain, timed []*telemetry.Sample
	for _, sample := range samples {
		if s.policy.AssignOnIngest && sample.HasStart() {
			timed = append(timed, sample)
		} else {
			plain = append(plain, sample)
		}
	}

	stored := 0
	if len(plain) > 0 {
		if err := s.samples.SaveSamples(ctx, plain); err != nil {
			return &BatchError{Stored: stored, Err: fmt.Errorf("failed to save samples: %w", err)}
		}
		stored += len(plain)
		metrics.RecordIngest(len(plain), false)
	}

	sort.SliceStable(timed, func(i, j int) bool {
		if timed[i].DeviceID != timed[j].DeviceID {
			return timed[i].DeviceID < timed[j].DeviceID
		}
		return timed[i].StartTime.Before(timed[j].StartTime)
	})
	for _, sample := range timed {
		if _, err := s.assigner.AssignTripOnIngest(ctx, sample, s.policy.GapThreshold); err != nil {
			return &BatchError{Stored: stored, Err: err}
		}
		stored++
		metrics.RecordIngest(1, true)
	}

	slog.Info("[Ingestion] Batch stored", "samples", stored, "assigned", len(timed))
	return nil
}

// Latest returns the device's most recent timed sample.
func (s *Service) Latest(ctx context.Context, deviceID string) (*telemetry.Sample, error) {
	sample, err := s.samples.FetchLatest(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch latest sample: %w", err)
	}
	return sample, nil
}
