package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/partition"
	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/aevon-lab/drivelog/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Assignment sources used as metric labels.
const (
	SourceIngest   = "ingest"
	SourceBackfill = "backfill"
)

var metersPerKm = decimal.NewFromInt(1000)

// Assigner attaches samples to persisted trips, creating a new trip when the
// gap since the device's last sample exceeds the threshold.
// Calls for the same device are serialized; different devices run in parallel.
type Assigner struct {
	store storage.TripStore
	locks partition.Locks
	newID func() string
}

func NewAssigner(store storage.TripStore) *Assigner {
	if store == nil {
		panic("ingestion: trip store must not be nil")
	}
	return &Assigner{
		store: store,
		newID: func() string { return uuid.New().String() },
	}
}

// AssignTripOnIngest stores a new sample and attaches it to the device's open
// trip or to a freshly created one. Storage and trip update commit together.
func (a *Assigner) AssignTripOnIngest(ctx context.Context, sample *telemetry.Sample, gap time.Duration) (*trip.Trip, error) {
	return a.assign(ctx, sample, gap, SourceIngest, func(tx storage.TripTx, tripID string) error {
		return tx.InsertSample(ctx, sample, tripID)
	})
}

// AssignExisting attaches an already stored sample (Seq set) to a trip.
func (a *Assigner) AssignExisting(ctx context.Context, sample *telemetry.Sample, gap time.Duration) (*trip.Trip, error) {
	if sample.Seq <= 0 {
		return nil, fmt.Errorf("%w: sample has no sequence number", telemetry.ErrInvalidSample)
	}
	return a.assign(ctx, sample, gap, SourceBackfill, func(tx storage.TripTx, tripID string) error {
		if err := tx.AttachSample(ctx, sample.Seq, tripID); err != nil {
			return err
		}
		sample.TripID = tripID
		return nil
	})
}

func (a *Assigner) assign(
	ctx context.Context,
	sample *telemetry.Sample,
	gap time.Duration,
	source string,
	attach func(tx storage.TripTx, tripID string) error,
) (*trip.Trip, error) {
	if gap < 0 {
		return nil, fmt.Errorf("%w: %s", trip.ErrInvalidThreshold, gap)
	}
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	if !sample.HasStart() {
		return nil, fmt.Errorf("%w: start_time is required for trip assignment", telemetry.ErrInvalidSample)
	}

	unlock := a.locks.Lock(sample.DeviceID)
	defer unlock()

	started := time.Now()
	var (
		result  trip.Trip
		outcome string
	)
	err := a.store.WithDevice(ctx, sample.DeviceID, func(tx storage.TripTx) error {
		open, err := tx.FindOpenTrip(ctx)
		if err != nil {
			return fmt.Errorf("failed to find open trip: %w", err)
		}

		if startsNewTrip(open, *sample, gap) {
			t := a.newTrip(open, *sample)
			if err := tx.CreateTrip(ctx, &t); err != nil {
				return err
			}
			result, outcome = t, metrics.OutcomeCreated
		} else {
			t := extendTrip(*open, *sample)
			if err := tx.ExtendTrip(ctx, &t); err != nil {
				return err
			}
			result, outcome = t, metrics.OutcomeExtended
		}
		return attach(tx, result.ID)
	})
	elapsed := time.Since(started).Seconds()

	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			metrics.RecordAssignment(source, metrics.OutcomeConflict, elapsed)
			slog.Warn("[Assigner] Trip assignment conflict, caller must retry",
				"device_id", sample.DeviceID,
				"source", source,
				"error", err)
			return nil, err
		}
		metrics.RecordAssignment(source, metrics.OutcomeError, elapsed)
		return nil, fmt.Errorf("failed to assign trip for device %s: %w", sample.DeviceID, err)
	}

	metrics.RecordAssignment(source, outcome, elapsed)
	slog.Debug("[Assigner] Sample assigned",
		"device_id", sample.DeviceID,
		"trip_id", result.ID,
		"outcome", outcome,
		"gap_seconds", int64(gap/time.Second))
	return &result, nil
}

// startsNewTrip reports whether s opens a new trip after open.
// Gaps are measured between sample start times.
func startsNewTrip(open *trip.Trip, s telemetry.Sample, gap time.Duration) bool {
	if open == nil {
		return true
	}
	return s.StartTime.Sub(open.LastSampleAt) > gap
}

func (a *Assigner) newTrip(previous *trip.Trip, s telemetry.Sample) trip.Trip {
	ordinal := int64(1)
	if previous != nil {
		ordinal = previous.Ordinal + 1
	}
	return trip.Trip{
		ID:           a.newID(),
		DeviceID:     s.DeviceID,
		Ordinal:      ordinal,
		StartTime:    s.StartTime,
		EndTime:      s.Boundary(),
		LastSampleAt: s.StartTime,
		DistanceKm:   addDistance(0, s),
	}
}

// extendTrip widens t to cover s and adds its distance.
func extendTrip(t trip.Trip, s telemetry.Sample) trip.Trip {
	if s.StartTime.Before(t.StartTime) {
		t.StartTime = s.StartTime
	}
	if b := s.Boundary(); b.After(t.EndTime) {
		t.EndTime = b
	}
	if s.StartTime.After(t.LastSampleAt) {
		t.LastSampleAt = s.StartTime
	}
	t.DistanceKm = addDistance(t.DistanceKm, s)
	return t
}

func addDistance(km float64, s telemetry.Sample) float64 {
	meters, ok := s.Distance()
	if !ok {
		return km
	}
	return decimal.NewFromFloat(km).
		Add(decimal.NewFromFloat(meters).Div(metersPerKm)).
		InexactFloat64()
}
