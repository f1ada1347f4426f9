package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	v1 "github.com/aevon-lab/drivelog/internal/api/v1"
	"github.com/aevon-lab/drivelog/internal/core/analytics"
	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/aevon-lab/drivelog/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid trip query")

// Policy holds the default gap thresholds used when a request names none.
type Policy struct {
	TripGap  time.Duration
	DriveGap time.Duration
}

// Service implements the trip query layer. Every read recomputes its result from
// stored samples; persisted trips only contribute identity and editable details.
type Service struct {
	samples storage.SampleStore
	trips   storage.TripStore
	policy  Policy
	buckets analytics.Buckets
}

// NewService creates a new projection service. Nil buckets use the defaults.
func NewService(samples storage.SampleStore, trips storage.TripStore, policy Policy, buckets analytics.Buckets) *Service {
	if buckets == nil {
		buckets = analytics.DefaultBuckets()
	}
	return &Service{
		samples: samples,
		trips:   trips,
		policy:  policy,
		buckets: buckets,
	}
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

func (s *Service) validate(q Query) error {
	if q.DeviceID == "" {
		return invalidQueryf("device_id is required")
	}
	if err := q.Window.Validate(); err != nil {
		return err
	}
	if q.Gap < 0 {
		return fmt.Errorf("%w: %s", trip.ErrInvalidThreshold, q.Gap)
	}
	switch q.Source {
	case "", SourceSegmented, SourcePersisted:
	default:
		return invalidQueryf("invalid source: %s (must be segmented or persisted)", q.Source)
	}
	return nil
}

// Drives groups the device's samples into spans without reducing them.
func (s *Service) Drives(ctx context.Context, q Query) (*DrivesResponse, error) {
	started := time.Now()
	if err := s.validate(q); err != nil {
		return nil, err
	}

	samples, err := s.samples.FetchSamples(ctx, q.DeviceID, q.Window)
	if err != nil {
		return nil, fmt.Errorf("fetch samples: %w", err)
	}
	seg, err := trip.Segment(samples, q.Window, q.Gap)
	if err != nil {
		return nil, err
	}
	s.logExcluded(q, seg.Excluded)

	resp := &DrivesResponse{
		DeviceID:   q.DeviceID,
		GapSeconds: int64(q.Gap / time.Second),
		Drives:     make([]Drive, 0, len(seg.Spans)),
		Excluded:   seg.Excluded,
	}
	for _, span := range seg.Spans {
		drive := Drive{Start: span.Start(), Samples: make([]v1.SampleResponse, span.Len())}
		for i, sample := range span.Samples {
			drive.Samples[i] = v1.NewSampleResponse(sample)
		}
		resp.Drives = append(resp.Drives, drive)
	}

	metrics.RecordQuery("drives", time.Since(started).Seconds(), seg.Excluded)
	return resp, nil
}

// Trips returns per-trip summaries ordered by start time.
func (s *Service) Trips(ctx context.Context, q Query) (*TripsResponse, error) {
	started := time.Now()
	summaries, excluded, err := s.summaries(ctx, q)
	if err != nil {
		return nil, err
	}

	source := q.Source
	if source == "" {
		source = SourceSegmented
	}
	metrics.RecordQuery("trips", time.Since(started).Seconds(), excluded)
	return &TripsResponse{
		DeviceID:   q.DeviceID,
		Source:     source,
		GapSeconds: int64(q.Gap / time.Second),
		Trips:      summaries,
		Excluded:   excluded,
	}, nil
}

// Stats reduces the device's trips into vehicle statistics.
func (s *Service) Stats(ctx context.Context, q Query) (*StatsResponse, error) {
	started := time.Now()
	summaries, excluded, err := s.summaries(ctx, q)
	if err != nil {
		return nil, err
	}

	metrics.RecordQuery("stats", time.Since(started).Seconds(), excluded)
	return &StatsResponse{
		DeviceID:     q.DeviceID,
		VehicleStats: analytics.ComputeVehicleStats(summaries),
		Excluded:     excluded,
	}, nil
}

// Weekday counts the device's trips by UTC weekday of their start.
func (s *Service) Weekday(ctx context.Context, q Query) (analytics.WeekdayHistogram, error) {
	started := time.Now()
	summaries, excluded, err := s.summaries(ctx, q)
	if err != nil {
		return nil, err
	}

	metrics.RecordQuery("weekday", time.Since(started).Seconds(), excluded)
	return analytics.ComputeWeekdayHistogram(summaries), nil
}

// TimeOfDay buckets the device's trips by UTC hour of their start.
func (s *Service) TimeOfDay(ctx context.Context, q Query, view string) (*TimeOfDayResponse, error) {
	started := time.Now()
	switch view {
	case "":
		view = ViewCount
	case ViewCount, ViewPercent:
	default:
		return nil, invalidQueryf("invalid view: %s (must be count or percent)", view)
	}

	summaries, excluded, err := s.summaries(ctx, q)
	if err != nil {
		return nil, err
	}
	h, err := analytics.ComputeTimeOfDayHistogram(summaries, s.buckets)
	if err != nil {
		return nil, err
	}

	metrics.RecordQuery("time_of_day", time.Since(started).Seconds(), excluded)
	resp := newTimeOfDayResponse(q.DeviceID, view, h)
	return &resp, nil
}

// UpdateTrip sets the editable details of a persisted trip.
func (s *Service) UpdateTrip(ctx context.Context, tripID string, details trip.Details) (*trip.Trip, error) {
	if tripID == "" {
		return nil, invalidQueryf("trip_id is required")
	}
	if details.StartLocation == nil && details.EndLocation == nil && details.Note == nil {
		return nil, invalidQueryf("at least one of start_location, end_location, note is required")
	}

	t, err := s.trips.UpdateDetails(ctx, tripID, details)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update trip %s: %w", tripID, err)
	}

	slog.Info("[Projection] Trip details updated", "trip_id", tripID, "device_id", t.DeviceID)
	return t, nil
}

// summaries computes the trip summaries for q from the requested source.
func (s *Service) summaries(ctx context.Context, q Query) ([]trip.Summary, int, error) {
	if err := s.validate(q); err != nil {
		return nil, 0, err
	}
	if q.Source == SourcePersisted {
		return s.persistedSummaries(ctx, q)
	}

	samples, err := s.samples.FetchSamples(ctx, q.DeviceID, q.Window)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch samples: %w", err)
	}
	seg, err := trip.Segment(samples, q.Window, q.Gap)
	if err != nil {
		return nil, 0, err
	}
	s.logExcluded(q, seg.Excluded)

	summaries, err := trip.SummarizeAll(seg.Spans)
	if err != nil {
		return nil, 0, err
	}
	return summaries, seg.Excluded, nil
}

// persistedSummaries groups samples by their stored trip id. Samples that were
// never assigned fall back to gap segmentation.
func (s *Service) persistedSummaries(ctx context.Context, q Query) ([]trip.Summary, int, error) {
	var (
		samples []telemetry.Sample
		trips   []trip.Trip
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		samples, err = s.samples.FetchSamples(gctx, q.DeviceID, q.Window)
		if err != nil {
			return fmt.Errorf("fetch samples: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		trips, err = s.trips.ListTrips(gctx, q.DeviceID, q.Window)
		if err != nil {
			return fmt.Errorf("list trips: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	known := make(map[string]*trip.Trip, len(trips))
	for i := range trips {
		known[trips[i].ID] = &trips[i]
	}

	groups := make(map[string][]telemetry.Sample)
	var unassigned []telemetry.Sample
	for _, sample := range samples {
		if sample.TripID != "" && sample.HasStart() {
			groups[sample.TripID] = append(groups[sample.TripID], sample)
			continue
		}
		unassigned = append(unassigned, sample)
	}

	tripIDs := make([]string, 0, len(groups))
	for id := range groups {
		tripIDs = append(tripIDs, id)
	}
	sort.Strings(tripIDs)

	summaries := make([]trip.Summary, 0, len(groups))
	for _, id := range tripIDs {
		persisted, err := s.lookupTrip(ctx, known, id)
		if err != nil {
			return nil, 0, err
		}

		group := groups[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartTime.Before(group[j].StartTime)
		})
		summary, err := trip.Summarize(trip.Span{DeviceID: q.DeviceID, Samples: group}, persisted)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}

	seg, err := trip.Segment(unassigned, q.Window, q.Gap)
	if err != nil {
		return nil, 0, err
	}
	s.logExcluded(q, seg.Excluded)

	fallback, err := trip.SummarizeAll(seg.Spans)
	if err != nil {
		return nil, 0, err
	}
	summaries = append(summaries, fallback...)

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Start.Before(summaries[j].Start)
	})
	return summaries, seg.Excluded, nil
}

// lookupTrip resolves a trip that started before the window. A trip that no
// longer exists yields a summary without identity.
func (s *Service) lookupTrip(ctx context.Context, known map[string]*trip.Trip, id string) (*trip.Trip, error) {
	if t, ok := known[id]; ok {
		return t, nil
	}
	t, err := s.trips.GetTrip(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn("[Projection] Sample references missing trip", "trip_id", id)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}
	known[id] = t
	return t, nil
}

func (s *Service) logExcluded(q Query, excluded int) {
	if excluded == 0 {
		return
	}
	slog.Warn("[Projection] Samples excluded from segmentation",
		"device_id", q.DeviceID,
		"excluded", excluded,
		"gap_seconds", int64(q.Gap/time.Second))
}
