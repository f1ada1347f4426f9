package trip

import (
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

var metersPerKm = decimal.NewFromInt(1000)

// Summarize reduces a span into a Summary.
//
// Distance is the sum of numeric aggregated "distance" readings (meters) in km.
// AvgSpeed is the mean of every numeric "speed" reading across the span's metrics,
// zero when there is none. Duration is |last.start - first.start| in whole seconds.
// Locations and note are copied only from a persisted trip, which also supplies the ID.
func Summarize(span Span, persisted *Trip) (Summary, error) {
	if span.Len() == 0 {
		return Summary{}, ErrEmptySpan
	}

	first := span.Samples[0]
	last := span.Samples[len(span.Samples)-1]

	meters := decimal.Zero
	distanceSamples := 0
	var speeds []float64
	end := first.Boundary()
	for _, s := range span.Samples {
		if d, ok := s.AggregatedData.Get(telemetry.FieldDistance).Decimal(); ok {
			meters = meters.Add(d)
			distanceSamples++
		}
		speeds = append(speeds, s.Speeds()...)
		if b := s.Boundary(); b.After(end) {
			end = b
		}
	}

	avgSpeed := 0.0
	if len(speeds) > 0 {
		avgSpeed = stat.Mean(speeds, nil)
	}

	duration := int64(last.StartTime.Sub(first.StartTime).Seconds())
	if duration < 0 {
		duration = -duration
	}

	summary := Summary{
		DeviceID:        span.DeviceID,
		Start:           first.StartTime,
		End:             end,
		DistanceKm:      meters.Div(metersPerKm).InexactFloat64(),
		AvgSpeed:        avgSpeed,
		DurationSeconds: duration,
		SampleCount:     span.Len(),
		DistanceSamples: distanceSamples,
		SpeedSamples:    len(speeds),
	}

	if persisted != nil {
		summary.ID = persisted.ID
		summary.StartLocation = persisted.StartLocation
		summary.EndLocation = persisted.EndLocation
		summary.Note = persisted.Note
	}
	return summary, nil
}

// SummarizeAll summarizes each span in order.
func SummarizeAll(spans []Span) ([]Summary, error) {
	summaries := make([]Summary, 0, len(spans))
	for _, span := range spans {
		s, err := Summarize(span, nil)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
