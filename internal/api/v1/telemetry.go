package v1

import (
	"fmt"
	"math"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/telemetry"
)

// DeviceEpoch is the zero point of device timestamps: start_time and end_time
// arrive as whole seconds since 2000-01-01T00:00:00Z.
var DeviceEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// MaxDeviceSeconds is the largest device timestamp representable as a time.Duration.
const MaxDeviceSeconds = math.MaxInt64 / int64(time.Second)

// TelemetryRequest is the ingest payload sent by a device.
type TelemetryRequest struct {
	// DeviceID identifies the vehicle unit. REQUIRED.
	DeviceID string `json:"device_id"`

	// StartTime and EndTime are device-epoch seconds. Either may be null;
	// a sample without a start time is stored but never joins a trip.
	StartTime *int64 `json:"start_time"`
	EndTime   *int64 `json:"end_time"`

	// AggregatedData carries whole-window readings such as "distance" in meters.
	AggregatedData telemetry.Fields `json:"aggregated_data"`

	// Metrics maps a sub-interval key to instantaneous readings such as "speed".
	Metrics telemetry.Fields `json:"metrics"`
}

// BatchTelemetryRequest wraps several samples in one ingest call.
type BatchTelemetryRequest struct {
	Samples []TelemetryRequest `json:"samples"`
}

// Validate ensures the request has the required envelope fields.
func (r *TelemetryRequest) Validate() error {
	if r.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}
	if r.StartTime != nil && *r.StartTime < 0 {
		return fmt.Errorf("start_time must not be negative")
	}
	if r.EndTime != nil && *r.EndTime < 0 {
		return fmt.Errorf("end_time must not be negative")
	}
	if r.StartTime != nil && *r.StartTime > MaxDeviceSeconds {
		return fmt.Errorf("start_time must not exceed %d", MaxDeviceSeconds)
	}
	if r.EndTime != nil && *r.EndTime > MaxDeviceSeconds {
		return fmt.Errorf("end_time must not exceed %d", MaxDeviceSeconds)
	}
	if r.StartTime != nil && r.EndTime != nil && *r.EndTime < *r.StartTime {
		return fmt.Errorf("end_time must not be before start_time")
	}
	return nil
}

// ToSample converts the request into a domain sample stamped with recordedAt.
func (r *TelemetryRequest) ToSample(recordedAt time.Time) telemetry.Sample {
	return telemetry.Sample{
		DeviceID:       r.DeviceID,
		RecordedAt:     recordedAt,
		StartTime:      FromDeviceSeconds(r.StartTime),
		EndTime:        FromDeviceSeconds(r.EndTime),
		AggregatedData: r.AggregatedData,
		Metrics:        r.Metrics,
	}
}

// FromDeviceSeconds converts device-epoch seconds to UTC; nil maps to the zero time.
// Callers validate seconds against MaxDeviceSeconds first.
func FromDeviceSeconds(seconds *int64) time.Time {
	if seconds == nil {
		return time.Time{}
	}
	return DeviceEpoch.Add(time.Duration(*seconds) * time.Second)
}

// SampleResponse is the read model of a stored sample.
type SampleResponse struct {
	Seq            int64            `json:"seq"`
	DeviceID       string           `json:"device_id"`
	TripID         string           `json:"trip_id,omitempty"`
	RecordedAt     time.Time        `json:"recorded_at"`
	StartTime      *time.Time       `json:"start_time"`
	EndTime        *time.Time       `json:"end_time"`
	AggregatedData telemetry.Fields `json:"aggregated_data,omitempty"`
	Metrics        telemetry.Fields `json:"metrics,omitempty"`
}

// NewSampleResponse builds the read model of s.
func NewSampleResponse(s telemetry.Sample) SampleResponse {
	resp := SampleResponse{
		Seq:            s.Seq,
		DeviceID:       s.DeviceID,
		TripID:         s.TripID,
		RecordedAt:     s.RecordedAt,
		AggregatedData: s.AggregatedData,
		Metrics:        s.Metrics,
	}
	if s.HasStart() {
		start := s.StartTime
		resp.StartTime = &start
	}
	if s.HasEnd() {
		end := s.EndTime
		resp.EndTime = &end
	}
	return resp
}
