package analytics

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/trip"
)

// isoWeek lists weekdays Monday first.
var isoWeek = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayHistogram counts trips per UTC weekday of their start.
// Weekdays without trips have no entry.
type WeekdayHistogram map[time.Weekday]int

// ComputeWeekdayHistogram buckets each trip by the weekday its start falls on in UTC.
func ComputeWeekdayHistogram(summaries []trip.Summary) WeekdayHistogram {
	h := make(WeekdayHistogram)
	for _, s := range summaries {
		h[s.Start.UTC().Weekday()]++
	}
	return h
}

// MarshalJSON encodes the histogram keyed by upper-case weekday name.
func (h WeekdayHistogram) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(h))
	for _, day := range isoWeek {
		if n, ok := h[day]; ok {
			out[strings.ToUpper(day.String())] = n
		}
	}
	return json.Marshal(out)
}
