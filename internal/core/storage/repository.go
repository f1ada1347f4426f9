package storage

import (
	"context"
	"errors"

	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
)

var (
	// ErrNotFound is returned when a requested trip or sample does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a concurrent writer already changed the device's
	// open trip. The whole ingest must be retried.
	ErrConflict = errors.New("concurrent trip assignment conflict")
)

// SampleStore supplies telemetry samples. Returned order is unspecified.
type SampleStore interface {
	// FetchSamples returns the device's samples whose start time lies in window.
	// Samples without a start time are included only when the window is unbounded.
	FetchSamples(ctx context.Context, deviceID string, window trip.Window) ([]telemetry.Sample, error)

	// FetchLatest returns the sample with the greatest start time.
	// Returns ErrNotFound if the device has none.
	FetchLatest(ctx context.Context, deviceID string) (*telemetry.Sample, error)

	// SaveSamples stores samples without trip assignment and populates Seq.
	SaveSamples(ctx context.Context, samples []*telemetry.Sample) error

	// FetchUnassigned returns up to limit samples that have a start time but no trip,
	// ordered by device then start time.
	FetchUnassigned(ctx context.Context, limit int) ([]telemetry.Sample, error)
}

// TripStore persists trips and serializes per-device assignment.
type TripStore interface {
	// WithDevice runs fn in one unit of work holding the device's write lock.
	// Writes made through tx are applied together or not at all.
	WithDevice(ctx context.Context, deviceID string, fn func(tx TripTx) error) error

	// ListTrips returns the device's trips starting inside window, ordered by start time.
	ListTrips(ctx context.Context, deviceID string, window trip.Window) ([]trip.Trip, error)

	// GetTrip returns ErrNotFound for unknown ids.
	GetTrip(ctx context.Context, tripID string) (*trip.Trip, error)

	// UpdateDetails sets editor-owned fields and returns the updated trip.
	UpdateDetails(ctx context.Context, tripID string, details trip.Details) (*trip.Trip, error)
}

// TripTx is the device-scoped view handed to TripStore.WithDevice.
type TripTx interface {
	// FindOpenTrip returns the device's most recently created trip, nil if none.
	FindOpenTrip(ctx context.Context) (*trip.Trip, error)

	// CreateTrip inserts t. Returns ErrConflict if another writer created a trip
	// for the same device concurrently.
	CreateTrip(ctx context.Context, t *trip.Trip) error

	// ExtendTrip persists the time bounds, last sample time and distance of t.
	ExtendTrip(ctx context.Context, t *trip.Trip) error

	// InsertSample stores a new sample attached to tripID and populates Seq.
	InsertSample(ctx context.Context, s *telemetry.Sample, tripID string) error

	// AttachSample points an already stored sample at tripID.
	AttachSample(ctx context.Context, seq int64, tripID string) error
}
