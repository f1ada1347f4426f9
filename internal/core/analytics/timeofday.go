package analytics

import (
	"errors"
	"fmt"

	"github.com/aevon-lab/drivelog/internal/core/trip"
)

// ErrInvalidBuckets marks a time-of-day bucket definition that does not map
// every hour of the day to exactly one bucket.
var ErrInvalidBuckets = errors.New("invalid time-of-day buckets")

// Bucket is a half-open hour range [StartHour, EndHour) in UTC.
// A bucket with StartHour > EndHour wraps across midnight.
type Bucket struct {
	Label     string `yaml:"label" json:"label"`
	StartHour int    `yaml:"start_hour" json:"start_hour"`
	EndHour   int    `yaml:"end_hour" json:"end_hour"`
}

func (b Bucket) contains(hour int) bool {
	if b.StartHour < b.EndHour {
		return hour >= b.StartHour && hour < b.EndHour
	}
	return hour >= b.StartHour || hour < b.EndHour
}

// Buckets is an ordered time-of-day bucket definition.
type Buckets []Bucket

// DefaultBuckets is used when the caller supplies no definition.
func DefaultBuckets() Buckets {
	return Buckets{
		{Label: "Morning (6-12)", StartHour: 6, EndHour: 12},
		{Label: "Midday (12-15)", StartHour: 12, EndHour: 15},
		{Label: "Afternoon (15-18)", StartHour: 15, EndHour: 18},
		{Label: "Evening (18-23)", StartHour: 18, EndHour: 23},
		{Label: "Night (23-6)", StartHour: 23, EndHour: 6},
	}
}

// Validate checks that labels are unique and every hour 0-23 falls in exactly one bucket.
func (bs Buckets) Validate() error {
	if len(bs) == 0 {
		return fmt.Errorf("%w: no buckets defined", ErrInvalidBuckets)
	}
	labels := make(map[string]struct{}, len(bs))
	for _, b := range bs {
		if b.Label == "" {
			return fmt.Errorf("%w: bucket label must not be empty", ErrInvalidBuckets)
		}
		if _, dup := labels[b.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidBuckets, b.Label)
		}
		labels[b.Label] = struct{}{}
		if b.StartHour < 0 || b.StartHour > 23 || b.EndHour < 0 || b.EndHour > 24 {
			return fmt.Errorf("%w: bucket %q hours out of range", ErrInvalidBuckets, b.Label)
		}
		if b.StartHour == b.EndHour {
			return fmt.Errorf("%w: bucket %q is empty", ErrInvalidBuckets, b.Label)
		}
	}
	for hour := 0; hour < 24; hour++ {
		matches := 0
		for _, b := range bs {
			if b.contains(hour) {
				matches++
			}
		}
		if matches != 1 {
			return fmt.Errorf("%w: hour %d falls in %d buckets", ErrInvalidBuckets, hour, matches)
		}
	}
	return nil
}

// indexFor returns the bucket index an hour maps to, -1 if none.
func (bs Buckets) indexFor(hour int) int {
	for i, b := range bs {
		if b.contains(hour) {
			return i
		}
	}
	return -1
}

// BucketCount is one row of a time-of-day histogram.
type BucketCount struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TimeOfDayHistogram is ordered like the bucket definition it was built from.
type TimeOfDayHistogram struct {
	TripCount int           `json:"trip_count"`
	Buckets   []BucketCount `json:"buckets"`
}

// Counts returns the raw trip count per bucket label.
func (h TimeOfDayHistogram) Counts() map[string]int {
	out := make(map[string]int, len(h.Buckets))
	for _, b := range h.Buckets {
		out[b.Label] = b.Count
	}
	return out
}

// Percentages returns the share of trips per bucket label, 0-100.
func (h TimeOfDayHistogram) Percentages() map[string]float64 {
	out := make(map[string]float64, len(h.Buckets))
	for _, b := range h.Buckets {
		out[b.Label] = b.Percentage
	}
	return out
}

// ComputeTimeOfDayHistogram buckets each trip by the UTC hour of its start.
// A nil definition uses DefaultBuckets. With no trips all counts and shares are zero.
func ComputeTimeOfDayHistogram(summaries []trip.Summary, buckets Buckets) (TimeOfDayHistogram, error) {
	if buckets == nil {
		buckets = DefaultBuckets()
	}
	if err := buckets.Validate(); err != nil {
		return TimeOfDayHistogram{}, err
	}

	counts := make([]int, len(buckets))
	for _, s := range summaries {
		if i := buckets.indexFor(s.Start.UTC().Hour()); i >= 0 {
			counts[i]++
		}
	}

	h := TimeOfDayHistogram{
		TripCount: len(summaries),
		Buckets:   make([]BucketCount, len(buckets)),
	}
	for i, b := range buckets {
		h.Buckets[i] = BucketCount{Label: b.Label, Count: counts[i]}
		if h.TripCount > 0 {
			h.Buckets[i].Percentage = float64(counts[i]) / float64(h.TripCount) * 100
		}
	}
	return h, nil
}
