package projection

import (
	"time"

	v1 "github.com/aevon-lab/drivelog/internal/api/v1"
	"github.com/aevon-lab/drivelog/internal/core/analytics"
	"github.com/aevon-lab/drivelog/internal/core/trip"
)

// Trip summary sources.
const (
	SourceSegmented = "segmented"
	SourcePersisted = "persisted"
)

// Time-of-day views.
const (
	ViewCount   = "count"
	ViewPercent = "percent"
)

// Query selects one device's samples and the grouping applied to them.
type Query struct {
	DeviceID string
	Window   trip.Window
	Gap      time.Duration
	Source   string
}

// queryParams are the query string parameters shared by the device endpoints.
type queryParams struct {
	Since      time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	End        time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00"`
	GapSeconds *int64    `form:"gap_seconds"`
	Source     string    `form:"source"`
	View       string    `form:"view"`
}

// Drive is one span of the drive grouping view, keyed by its first start time.
type Drive struct {
	Start   time.Time           `json:"start_time"`
	Samples []v1.SampleResponse `json:"samples"`
}

type DrivesResponse struct {
	DeviceID   string  `json:"device_id"`
	GapSeconds int64   `json:"gap_seconds"`
	Drives     []Drive `json:"drives"`
	Excluded   int     `json:"excluded_samples"`
}

type TripsResponse struct {
	DeviceID   string         `json:"device_id"`
	Source     string         `json:"source"`
	GapSeconds int64          `json:"gap_seconds"`
	Trips      []trip.Summary `json:"trips"`
	Excluded   int            `json:"excluded_samples"`
}

type StatsResponse struct {
	DeviceID string `json:"device_id"`
	analytics.VehicleStats
	Excluded int `json:"excluded_samples"`
}

// TimeOfDayBucket carries either a count or a percentage depending on the view.
type TimeOfDayBucket struct {
	Label      string   `json:"label"`
	Count      *int     `json:"count,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
}

type TimeOfDayResponse struct {
	DeviceID  string            `json:"device_id"`
	View      string            `json:"view"`
	TripCount int               `json:"trip_count"`
	Buckets   []TimeOfDayBucket `json:"buckets"`
}

// TripResponse is the read model of a persisted trip.
type TripResponse struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"device_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DistanceKm    float64   `json:"distance_km"`
	StartLocation *string   `json:"start_location,omitempty"`
	EndLocation   *string   `json:"end_location,omitempty"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewTripResponse(t trip.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		DeviceID:      t.DeviceID,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		DistanceKm:    t.DistanceKm,
		StartLocation: t.StartLocation,
		EndLocation:   t.EndLocation,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func newTimeOfDayResponse(deviceID, view string, h analytics.TimeOfDayHistogram) TimeOfDayResponse {
	resp := TimeOfDayResponse{
		DeviceID:  deviceID,
		View:      view,
		TripCount: h.TripCount,
		Buckets:   make([]TimeOfDayBucket, len(h.Buckets)),
	}
	for i, b := range h.Buckets {
		bucket := TimeOfDayBucket{Label: b.Label}
		if view == ViewPercent {
			pct := b.Percentage
			bucket.Percentage = &pct
		} else {
			count := b.Count
			bucket.Count = &count
		}
		resp.Buckets[i] = bucket
	}
	return resp
}
