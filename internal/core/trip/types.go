package trip

import (
	"errors"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/telemetry"
)

var (
	// ErrInvalidWindow is returned when a window's end precedes its start.
	ErrInvalidWindow = errors.New("invalid window: end before since")

	// ErrInvalidThreshold is returned for a negative gap threshold.
	ErrInvalidThreshold = errors.New("invalid gap threshold")

	// ErrEmptySpan is returned when summarizing a span with no samples.
	ErrEmptySpan = errors.New("empty trip span")
)

// Window bounds a query by sample start time. Zero fields are unbounded.
// Both bounds are inclusive.
type Window struct {
	Since time.Time
	End   time.Time
}

// Validate rejects windows whose end precedes their start.
func (w Window) Validate() error {
	if !w.Since.IsZero() && !w.End.IsZero() && w.End.Before(w.Since) {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// Span is a maximal run of one device's samples, sorted by start time, with no
// start-to-start gap above the threshold it was built with.
type Span struct {
	DeviceID string
	Samples  []telemetry.Sample
}

// Start is the first sample's start time.
func (s Span) Start() time.Time { return s.Samples[0].StartTime }

// Len is the number of samples in the span.
func (s Span) Len() int { return len(s.Samples) }

// Trip is the persisted identity of a drive, created and extended on ingest.
type Trip struct {
	ID       string
	DeviceID string
	// Ordinal is the 1-based creation order of the trip within its device.
	// Stores reject two trips with the same (DeviceID, Ordinal).
	Ordinal int64

	StartTime time.Time
	EndTime   time.Time
	// LastSampleAt is the latest sample start time attached to the trip.
	LastSampleAt time.Time

	StartLocation *string
	EndLocation   *string
	Note          *string

	// DistanceKm caches the sum of attached sample distances.
	DistanceKm float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Details are the fields owned by the trip editing collaborator.
// Nil fields are left unchanged.
type Details struct {
	StartLocation *string `json:"start_location"`
	EndLocation   *string `json:"end_location"`
	Note          *string `json:"note"`
}

// Apply copies non-nil detail fields onto the trip.
func (d Details) Apply(t *Trip) {
	if d.StartLocation != nil {
		t.StartLocation = d.StartLocation
	}
	if d.EndLocation != nil {
		t.EndLocation = d.EndLocation
	}
	if d.Note != nil {
		t.Note = d.Note
	}
}

// Summary is the derived, read-only reduction of one span.
type Summary struct {
	// ID is set only when the span is backed by a persisted Trip.
	ID       string    `json:"id,omitempty"`
	DeviceID string    `json:"device_id"`
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time"`

	DistanceKm      float64 `json:"distance_km"`
	AvgSpeed        float64 `json:"avg_speed"`
	DurationSeconds int64   `json:"duration_seconds"`
	SampleCount     int     `json:"sample_count"`

	// Contributor counts for the derived figures above.
	DistanceSamples int `json:"distance_samples"`
	SpeedSamples    int `json:"speed_samples"`

	StartLocation *string `json:"start_location,omitempty"`
	EndLocation   *string `json:"end_location,omitempty"`
	Note          *string `json:"note,omitempty"`
}
