package analytics

import (
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// VehicleStats is the vehicle-wide reduction of a set of trips.
type VehicleStats struct {
	TotalKm               float64 `json:"total_km"`
	AvgSpeed              float64 `json:"avg_speed"`
	TotalDriveTimeMinutes int64   `json:"total_drive_time_minutes"`
	TripCount             int     `json:"trip_count"`
	// SpeedSamples is the number of raw speed readings behind AvgSpeed.
	SpeedSamples int `json:"speed_samples"`
}

// ComputeVehicleStats reduces trip summaries into vehicle statistics.
//
// AvgSpeed is the mean over every raw speed reading of every trip: each trip's
// mean is weighted by its speed reading count, never averaged per trip.
func ComputeVehicleStats(summaries []trip.Summary) VehicleStats {
	totalKm := decimal.Zero
	var durationSeconds int64
	means := make([]float64, 0, len(summaries))
	weights := make([]float64, 0, len(summaries))
	speedSamples := 0

	for _, s := range summaries {
		totalKm = totalKm.Add(decimal.NewFromFloat(s.DistanceKm))
		durationSeconds += s.DurationSeconds
		if s.SpeedSamples > 0 {
			means = append(means, s.AvgSpeed)
			weights = append(weights, float64(s.SpeedSamples))
			speedSamples += s.SpeedSamples
		}
	}

	avgSpeed := 0.0
	if speedSamples > 0 {
		avgSpeed = stat.Mean(means, weights)
	}

	return VehicleStats{
		TotalKm:               totalKm.InexactFloat64(),
		AvgSpeed:              avgSpeed,
		TotalDriveTimeMinutes: durationSeconds / 60,
		TripCount:             len(summaries),
		SpeedSamples:          speedSamples,
	}
}
