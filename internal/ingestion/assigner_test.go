package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/storage/memory"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	storagemocks "github.com/aevon-lab/drivelog/internal/mocks/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

const testGap = 30 * time.Minute

func newTestAssigner(store storage.TripStore) *Assigner {
	a := NewAssigner(store)
	var mu sync.Mutex
	n := 0
	a.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("trip-%d", n)
	}
	return a
}

func sampleAt(device string, offset time.Duration, meters float64) *telemetry.Sample {
	return &telemetry.Sample{
		DeviceID:       device,
		RecordedAt:     base,
		StartTime:      base.Add(offset),
		AggregatedData: telemetry.Fields{telemetry.FieldDistance: telemetry.Number(meters)},
	}
}

func TestAssigner_CreatesThenExtends(t *testing.T) {
	store := memory.NewStore()
	a := newTestAssigner(store)
	ctx := context.Background()

	first, err := a.AssignTripOnIngest(ctx, sampleAt("d1", 0, 1000), testGap)
	require.NoError(t, err)
	require.Equal(t, "trip-1", first.ID)
	require.Equal(t, int64(1), first.Ordinal)
	require.Equal(t, 1.0, first.DistanceKm)

	second := sampleAt("d1", 500*time.Second, 500)
	second.EndTime = base.Add(560 * time.Second)
	extended, err := a.AssignTripOnIngest(ctx, second, testGap)
	require.NoError(t, err)
	require.Equal(t, "trip-1", extended.ID)
	require.Equal(t, 1.5, extended.DistanceKm)
	require.True(t, extended.EndTime.Equal(base.Add(560*time.Second)))
	require.True(t, extended.LastSampleAt.Equal(base.Add(500*time.Second)))
	require.Equal(t, "trip-1", second.TripID)
	require.NotZero(t, second.Seq)

	third, err := a.AssignTripOnIngest(ctx, sampleAt("d1", 5000*time.Second, 2000), testGap)
	require.NoError(t, err)
	require.Equal(t, "trip-2", third.ID)
	require.Equal(t, int64(2), third.Ordinal)

	trips, err := store.ListTrips(ctx, "d1", trip.Window{})
	require.NoError(t, err)
	require.Len(t, trips, 2)
}

func TestAssigner_GapBoundary(t *testing.T) {
	tests := []struct {
		name    string
		gap     time.Duration
		wantNew bool
	}{
		{name: "gap equal to threshold extends", gap: testGap},
		{name: "gap one second over threshold creates", gap: testGap + time.Second, wantNew: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAssigner(memory.NewStore())
			ctx := context.Background()

			_, err := a.AssignTripOnIngest(ctx, sampleAt("d1", 0, 0), testGap)
			require.NoError(t, err)

			got, err := a.AssignTripOnIngest(ctx, sampleAt("d1", tc.gap, 0), testGap)
			require.NoError(t, err)
			if tc.wantNew {
				require.Equal(t, "trip-2", got.ID)
			} else {
				require.Equal(t, "trip-1", got.ID)
			}
		})
	}
}

func TestAssigner_GapMeasuredFromLastSampleStart(t *testing.T) {
	a := newTestAssigner(memory.NewStore())
	ctx := context.Background()

	long := sampleAt("d1", 0, 0)
	long.EndTime = base.Add(2 * time.Hour)
	_, err := a.AssignTripOnIngest(ctx, long, testGap)
	require.NoError(t, err)

	// Within the first sample's end time, but more than the gap after its start.
	got, err := a.AssignTripOnIngest(ctx, sampleAt("d1", time.Hour, 0), testGap)
	require.NoError(t, err)
	require.Equal(t, "trip-2", got.ID)
}

func TestAssigner_OutOfOrderSampleWidensTrip(t *testing.T) {
	a := newTestAssigner(memory.NewStore())
	ctx := context.Background()

	_, err := a.AssignTripOnIngest(ctx, sampleAt("d1", 10*time.Minute, 0), testGap)
	require.NoError(t, err)

	got, err := a.AssignTripOnIngest(ctx, sampleAt("d1", 5*time.Minute, 0), testGap)
	require.NoError(t, err)
	require.Equal(t, "trip-1", got.ID)
	require.True(t, got.StartTime.Equal(base.Add(5*time.Minute)))
	require.True(t, got.LastSampleAt.Equal(base.Add(10*time.Minute)))
	require.True(t, got.EndTime.Equal(base.Add(10*time.Minute)))
}

func TestAssigner_RejectsInvalidInput(t *testing.T) {
	a := newTestAssigner(storagemocks.NewTripStore(t))
	ctx := context.Background()

	_, err := a.AssignTripOnIngest(ctx, &telemetry.Sample{DeviceID: "d1"}, testGap)
	require.ErrorIs(t, err, telemetry.ErrInvalidSample)

	_, err = a.AssignTripOnIngest(ctx, sampleAt("", 0, 0), testGap)
	require.ErrorIs(t, err, telemetry.ErrInvalidSample)

	_, err = a.AssignTripOnIngest(ctx, sampleAt("d1", 0, 0), -time.Second)
	require.ErrorIs(t, err, trip.ErrInvalidThreshold)

	_, err = a.AssignExisting(ctx, sampleAt("d1", 0, 0), testGap)
	require.ErrorIs(t, err, telemetry.ErrInvalidSample)
}

func TestAssigner_ConflictSurfaces(t *testing.T) {
	store := storagemocks.NewTripStore(t)
	store.EXPECT().
		WithDevice(mock.Anything, "d1", mock.Anything).
		Return(fmt.Errorf("failed to create trip: %w", storage.ErrConflict)).
		Once()

	a := newTestAssigner(store)
	_, err := a.AssignTripOnIngest(context.Background(), sampleAt("d1", 0, 0), testGap)
	require.ErrorIs(t, err, storage.ErrConflict)
}

func TestAssigner_AttachFailureAbortsUnitOfWork(t *testing.T) {
	boom := errors.New("disk full")
	tx := storagemocks.NewTripTx(t)
	tx.EXPECT().FindOpenTrip(mock.Anything).Return(nil, nil).Once()
	tx.EXPECT().CreateTrip(mock.Anything, mock.MatchedBy(func(tr *trip.Trip) bool {
		return tr.Ordinal == 1 && tr.DeviceID == "d1"
	})).Return(nil).Once()
	tx.EXPECT().InsertSample(mock.Anything, mock.Anything, "trip-1").Return(boom).Once()

	store := storagemocks.NewTripStore(t)
	store.EXPECT().
		WithDevice(mock.Anything, "d1", mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, fn func(storage.TripTx) error) error {
			return fn(tx)
		}).
		Once()

	a := newTestAssigner(store)
	_, err := a.AssignTripOnIngest(context.Background(), sampleAt("d1", 0, 0), testGap)
	require.ErrorIs(t, err, boom)
}

func TestAssigner_AssignExisting(t *testing.T) {
	store := memory.NewStore()
	a := newTestAssigner(store)
	ctx := context.Background()

	stored := sampleAt("d1", 0, 1200)
	require.NoError(t, store.SaveSamples(ctx, []*telemetry.Sample{stored}))

	got, err := a.AssignExisting(ctx, stored, testGap)
	require.NoError(t, err)
	require.Equal(t, "trip-1", got.ID)
	require.Equal(t, "trip-1", stored.TripID)

	unassigned, err := store.FetchUnassigned(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, unassigned)
}

func TestAssigner_ConcurrentSameDeviceOpensOneTrip(t *testing.T) {
	store := memory.NewStore()
	a := newTestAssigner(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := a.AssignTripOnIngest(ctx, sampleAt("d1", time.Duration(i)*time.Second, 10), testGap)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	trips, err := store.ListTrips(ctx, "d1", trip.Window{})
	require.NoError(t, err)
	require.Len(t, trips, 1)
	require.InDelta(t, 0.5, trips[0].DistanceKm, 1e-9)

	samples, err := store.FetchSamples(ctx, "d1", trip.Window{})
	require.NoError(t, err)
	require.Len(t, samples, 50)
	for _, s := range samples {
		require.Equal(t, trips[0].ID, s.TripID)
	}
}

func TestAssigner_DevicesAreIndependent(t *testing.T) {
	store := memory.NewStore()
	a := newTestAssigner(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, device := range []string{"d1", "d2", "d3"} {
		wg.Add(1)
		go func(device string) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, err := a.AssignTripOnIngest(ctx, sampleAt(device, time.Duration(i)*time.Minute, 0), testGap)
				assert.NoError(t, err)
			}
		}(device)
	}
	wg.Wait()

	for _, device := range []string{"d1", "d2", "d3"} {
		trips, err := store.ListTrips(ctx, device, trip.Window{})
		require.NoError(t, err)
		require.Len(t, trips, 1)
		require.Equal(t, int64(1), trips[0].Ordinal)
	}
}
