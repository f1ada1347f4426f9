package trip

import (
	"fmt"
	"sort"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/telemetry"
)

// Segmentation is the result of one Segment call.
type Segmentation struct {
	Spans []Span
	// Excluded counts samples dropped for lacking a start timestamp.
	Excluded int
}

// Samples returns the total number of samples across all spans.
func (s Segmentation) Samples() int {
	n := 0
	for _, span := range s.Spans {
		n += span.Len()
	}
	return n
}

// Segment groups samples into ordered trip spans.
//
// Samples outside the window are dropped, samples without a start time are
// counted in Excluded. The rest are stable-sorted by start time per device and
// split wherever the start-to-start gap exceeds gapThreshold; a gap equal to the
// threshold stays in the same span. Spans are returned ordered by start time.
//
// Segment is pure: the same input always yields the same spans.
func Segment(samples []telemetry.Sample, window Window, gapThreshold time.Duration) (Segmentation, error) {
	if err := window.Validate(); err != nil {
		return Segmentation{}, err
	}
	if gapThreshold < 0 {
		return Segmentation{}, fmt.Errorf("%w: %s", ErrInvalidThreshold, gapThreshold)
	}

	var result Segmentation
	byDevice := make(map[string][]telemetry.Sample)
	var devices []string
	for _, s := range samples {
		if !s.HasStart() {
			result.Excluded++
			continue
		}
		if !window.Contains(s.StartTime) {
			continue
		}
		if _, seen := byDevice[s.DeviceID]; !seen {
			devices = append(devices, s.DeviceID)
		}
		byDevice[s.DeviceID] = append(byDevice[s.DeviceID], s)
	}
	sort.Strings(devices)

	for _, device := range devices {
		result.Spans = append(result.Spans, segmentDevice(device, byDevice[device], gapThreshold)...)
	}

	sort.SliceStable(result.Spans, func(i, j int) bool {
		return result.Spans[i].Start().Before(result.Spans[j].Start())
	})
	return result, nil
}

// segmentDevice walks one device's samples keeping a single open span.
func segmentDevice(device string, samples []telemetry.Sample, gapThreshold time.Duration) []Span {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].StartTime.Before(samples[j].StartTime)
	})

	var spans []Span
	current := Span{DeviceID: device, Samples: []telemetry.Sample{samples[0]}}
	prev := samples[0].StartTime
	for _, s := range samples[1:] {
		if s.StartTime.Sub(prev) > gapThreshold {
			spans = append(spans, current)
			current = Span{DeviceID: device}
		}
		current.Samples = append(current.Samples, s)
		prev = s.StartTime
	}
	return append(spans, current)
}
