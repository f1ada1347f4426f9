package telemetry

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSample marks a sample that cannot be stored or assigned to a trip.
var ErrInvalidSample = errors.New("invalid telemetry sample")

const (
	// FieldDistance is the aggregated_data key carrying meters driven in the sample window.
	FieldDistance = "distance"
	// FieldSpeed is the key of an instantaneous speed reading inside a metrics entry.
	FieldSpeed = "speed"
)

// Sample is one telemetry record for a device. Immutable once ingested.
type Sample struct {
	// Seq is the store-assigned ingest sequence; zero until persisted.
	Seq      int64
	DeviceID string
	// TripID is the persisted trip the sample was assigned to, empty if unassigned.
	TripID     string
	RecordedAt time.Time
	// StartTime is zero when the device sent no usable start timestamp.
	StartTime time.Time
	// EndTime is zero when absent.
	EndTime        time.Time
	AggregatedData Fields
	// Metrics maps a sub-interval key to a map of instantaneous readings.
	Metrics Fields
}

// HasStart reports whether the sample can take part in segmentation.
func (s Sample) HasStart() bool { return !s.StartTime.IsZero() }

// HasEnd reports whether the sample carries an end timestamp.
func (s Sample) HasEnd() bool { return !s.EndTime.IsZero() }

// Boundary is the instant the sample closes at: its end time when present, else its start.
func (s Sample) Boundary() time.Time {
	if s.HasEnd() && s.EndTime.After(s.StartTime) {
		return s.EndTime
	}
	return s.StartTime
}

// Distance returns the aggregated distance in meters.
func (s Sample) Distance() (float64, bool) {
	return s.AggregatedData.Get(FieldDistance).Float()
}

// Speeds returns every numeric speed reading across the sample's metrics entries,
// ordered by entry key so results are deterministic.
func (s Sample) Speeds() []float64 {
	var speeds []float64
	for _, key := range s.Metrics.Keys() {
		if v, ok := s.Metrics[key].Get(FieldSpeed).Float(); ok {
			speeds = append(speeds, v)
		}
	}
	return speeds
}

// Validate checks the fields required before a sample can be stored.
func (s Sample) Validate() error {
	if s.DeviceID == "" {
		return fmt.Errorf("%w: device_id is required", ErrInvalidSample)
	}
	if s.HasStart() && s.HasEnd() && s.EndTime.Before(s.StartTime) {
		return fmt.Errorf("%w: end_time must not be before start_time", ErrInvalidSample)
	}
	return nil
}
