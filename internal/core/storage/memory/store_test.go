package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func TestStore_FetchSamplesWindow(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.SaveSamples(ctx, []*telemetry.Sample{
		{DeviceID: "dev-1", StartTime: base},
		{DeviceID: "dev-1", StartTime: base.Add(time.Hour)},
		{DeviceID: "dev-1"},
		{DeviceID: "dev-2", StartTime: base},
	}))

	all, err := s.FetchSamples(ctx, "dev-1", trip.Window{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	bounded, err := s.FetchSamples(ctx, "dev-1", trip.Window{Since: base.Add(time.Minute)})
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	require.True(t, bounded[0].StartTime.Equal(base.Add(time.Hour)))
}

func TestStore_SaveSamplesAssignsSeq(t *testing.T) {
	s := NewStore()
	samples := []*telemetry.Sample{{DeviceID: "a"}, {DeviceID: "b"}}

	require.NoError(t, s.SaveSamples(context.Background(), samples))
	require.Equal(t, int64(1), samples[0].Seq)
	require.Equal(t, int64(2), samples[1].Seq)
}

func TestStore_FetchLatest(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.FetchLatest(ctx, "dev-1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.SaveSamples(ctx, []*telemetry.Sample{
		{DeviceID: "dev-1", StartTime: base.Add(time.Hour)},
		{DeviceID: "dev-1", StartTime: base},
		{DeviceID: "dev-1"},
	}))

	latest, err := s.FetchLatest(ctx, "dev-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), latest.Seq)
}

func TestStore_FetchUnassignedOrdersByDeviceThenStart(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.SaveSamples(ctx, []*telemetry.Sample{
		{DeviceID: "b", StartTime: base},
		{DeviceID: "a", StartTime: base.Add(time.Minute)},
		{DeviceID: "a", StartTime: base},
		{DeviceID: "a"},
	}))

	got, err := s.FetchUnassigned(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(3), got[0].Seq)
	require.Equal(t, int64(2), got[1].Seq)
}

func TestStore_WithDeviceCommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sample := &telemetry.Sample{DeviceID: "dev-1", StartTime: base}

	err := s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		open, err := tx.FindOpenTrip(ctx)
		require.NoError(t, err)
		require.Nil(t, open)

		tr := &trip.Trip{ID: "t-1", DeviceID: "dev-1", Ordinal: 1, StartTime: base, EndTime: base, LastSampleAt: base}
		if err := tx.CreateTrip(ctx, tr); err != nil {
			return err
		}
		return tx.InsertSample(ctx, sample, tr.ID)
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), sample.Seq)

	trips, err := s.ListTrips(ctx, "dev-1", trip.Window{})
	require.NoError(t, err)
	require.Len(t, trips, 1)

	samples, err := s.FetchSamples(ctx, "dev-1", trip.Window{})
	require.NoError(t, err)
	require.Equal(t, "t-1", samples[0].TripID)
}

func TestStore_WithDeviceDiscardsOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		require.NoError(t, tx.CreateTrip(ctx, &trip.Trip{ID: "t-1", DeviceID: "dev-1", Ordinal: 1, StartTime: base}))
		require.NoError(t, tx.InsertSample(ctx, &telemetry.Sample{DeviceID: "dev-1", StartTime: base}, "t-1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	trips, err := s.ListTrips(ctx, "dev-1", trip.Window{})
	require.NoError(t, err)
	require.Empty(t, trips)

	samples, err := s.FetchSamples(ctx, "dev-1", trip.Window{})
	require.NoError(t, err)
	require.Empty(t, samples)
}

func TestStore_CreateTripRejectsStaleOrdinal(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	create := func(id string, ordinal int64) error {
		return s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
			return tx.CreateTrip(ctx, &trip.Trip{ID: id, DeviceID: "dev-1", Ordinal: ordinal, StartTime: base})
		})
	}

	require.NoError(t, create("t-1", 1))
	require.ErrorIs(t, create("t-2", 1), storage.ErrConflict)
	require.NoError(t, create("t-2", 2))
}

func TestStore_ExtendAndAttach(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	orphan := &telemetry.Sample{DeviceID: "dev-1", StartTime: base.Add(time.Minute)}
	require.NoError(t, s.SaveSamples(ctx, []*telemetry.Sample{orphan}))

	require.NoError(t, s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		return tx.CreateTrip(ctx, &trip.Trip{ID: "t-1", DeviceID: "dev-1", Ordinal: 1, StartTime: base, EndTime: base, LastSampleAt: base})
	}))

	require.NoError(t, s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		open, err := tx.FindOpenTrip(ctx)
		require.NoError(t, err)
		open.EndTime = orphan.StartTime
		open.LastSampleAt = orphan.StartTime
		open.DistanceKm = 1.5
		if err := tx.ExtendTrip(ctx, open); err != nil {
			return err
		}
		return tx.AttachSample(ctx, orphan.Seq, open.ID)
	}))

	got, err := s.GetTrip(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, 1.5, got.DistanceKm)
	require.True(t, got.EndTime.Equal(orphan.StartTime))

	unassigned, err := s.FetchUnassigned(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, unassigned)

	err = s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		return tx.AttachSample(ctx, 99, "t-1")
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_ExtendKeepsDetailsEditedDuringTx(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		return tx.CreateTrip(ctx, &trip.Trip{ID: "t-1", DeviceID: "dev-1", Ordinal: 1, StartTime: base, EndTime: base, LastSampleAt: base})
	}))

	note := "flat tyre"
	later := base.Add(5 * time.Minute)
	require.NoError(t, s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		open, err := tx.FindOpenTrip(ctx)
		require.NoError(t, err)

		_, err = s.UpdateDetails(ctx, "t-1", trip.Details{Note: &note})
		require.NoError(t, err)

		open.EndTime = later
		open.LastSampleAt = later
		open.DistanceKm = 2.5
		return tx.ExtendTrip(ctx, open)
	}))

	got, err := s.GetTrip(ctx, "t-1")
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	require.Equal(t, note, *got.Note)
	require.Equal(t, 2.5, got.DistanceKm)
	require.True(t, got.LastSampleAt.Equal(later))
}

func TestStore_UpdateDetails(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	note := "commute"

	_, err := s.UpdateDetails(ctx, "missing", trip.Details{Note: &note})
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.WithDevice(ctx, "dev-1", func(tx storage.TripTx) error {
		return tx.CreateTrip(ctx, &trip.Trip{ID: "t-1", DeviceID: "dev-1", Ordinal: 1, StartTime: base})
	}))

	got, err := s.UpdateDetails(ctx, "t-1", trip.Details{Note: &note})
	require.NoError(t, err)
	require.Equal(t, "commute", *got.Note)
	require.Nil(t, got.StartLocation)
}
