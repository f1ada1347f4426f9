package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
)

// Store is an in-memory SampleStore and TripStore.
// Useful for testing and development.
type Store struct {
	mu      sync.RWMutex
	samples []telemetry.Sample // index is Seq-1
	trips   map[string]trip.Trip
	// byDevice lists trip ids in creation order.
	byDevice map[string][]string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	nowFn func() time.Time
}

var (
	_ storage.SampleStore = (*Store)(nil)
	_ storage.TripStore   = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		trips:    make(map[string]trip.Trip),
		byDevice: make(map[string][]string),
		locks:    make(map[string]*sync.Mutex),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Store) FetchSamples(ctx context.Context, deviceID string, window trip.Window) ([]telemetry.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unbounded := window.Since.IsZero() && window.End.IsZero()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []telemetry.Sample
	for _, sample := range s.samples {
		if sample.DeviceID != deviceID {
			continue
		}
		if !sample.HasStart() {
			if unbounded {
				out = append(out, sample)
			}
			continue
		}
		if window.Contains(sample.StartTime) {
			out = append(out, sample)
		}
	}
	return out, nil
}

func (s *Store) FetchLatest(ctx context.Context, deviceID string) (*telemetry.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *telemetry.Sample
	for i := range s.samples {
		sample := s.samples[i]
		if sample.DeviceID != deviceID || !sample.HasStart() {
			continue
		}
		if latest == nil || !sample.StartTime.Before(latest.StartTime) {
			latest = &sample
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return latest, nil
}

func (s *Store) SaveSamples(ctx context.Context, samples []*telemetry.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sample := range samples {
		s.appendSampleLocked(sample, "")
	}
	return nil
}

func (s *Store) FetchUnassigned(ctx context.Context, limit int) ([]telemetry.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var out []telemetry.Sample
	for _, sample := range s.samples {
		if sample.TripID == "" && sample.HasStart() {
			out = append(out, sample)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DeviceID != out[j].DeviceID {
			return out[i].DeviceID < out[j].DeviceID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListTrips(ctx context.Context, deviceID string, window trip.Window) ([]trip.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []trip.Trip
	for _, id := range s.byDevice[deviceID] {
		t := s.trips[id]
		if window.Contains(t.StartTime) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *Store) GetTrip(ctx context.Context, tripID string) (*trip.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trips[tripID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &t, nil
}

func (s *Store) UpdateDetails(ctx context.Context, tripID string, details trip.Details) (*trip.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trips[tripID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	details.Apply(&t)
	t.UpdatedAt = s.nowFn()
	s.trips[tripID] = t
	return &t, nil
}

// WithDevice serializes fn against other writers of the same device and applies
// its staged writes only if fn returns nil.
func (s *Store) WithDevice(ctx context.Context, deviceID string, fn func(tx storage.TripTx) error) error {
	lock := s.deviceLock(deviceID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{store: s, deviceID: deviceID, extended: make(map[string]trip.Trip), attached: make(map[int64]string)}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *Store) deviceLock(deviceID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[deviceID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[deviceID] = lock
	}
	return lock
}

func (s *Store) appendSampleLocked(sample *telemetry.Sample, tripID string) {
	sample.Seq = int64(len(s.samples) + 1)
	sample.TripID = tripID
	s.samples = append(s.samples, *sample)
}

type pendingSample struct {
	sample *telemetry.Sample
	tripID string
}

// memTx stages writes until commit.
type memTx struct {
	store    *Store
	deviceID string
	created  []trip.Trip
	extended map[string]trip.Trip
	inserted []pendingSample
	attached map[int64]string
}

func (tx *memTx) FindOpenTrip(ctx context.Context) (*trip.Trip, error) {
	if n := len(tx.created); n > 0 {
		t := tx.created[n-1]
		return &t, nil
	}

	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()

	ids := tx.store.byDevice[tx.deviceID]
	if len(ids) == 0 {
		return nil, nil
	}
	t := tx.store.trips[ids[len(ids)-1]]
	if staged, ok := tx.extended[t.ID]; ok {
		t = staged
	}
	return &t, nil
}

func (tx *memTx) CreateTrip(ctx context.Context, t *trip.Trip) error {
	tx.store.mu.RLock()
	last := int64(len(tx.store.byDevice[tx.deviceID]))
	_, exists := tx.store.trips[t.ID]
	tx.store.mu.RUnlock()

	if exists || t.Ordinal != last+int64(len(tx.created))+1 {
		return storage.ErrConflict
	}
	now := tx.store.nowFn()
	t.CreatedAt = now
	t.UpdatedAt = now
	tx.created = append(tx.created, *t)
	return nil
}

func (tx *memTx) ExtendTrip(ctx context.Context, t *trip.Trip) error {
	t.UpdatedAt = tx.store.nowFn()
	for i := range tx.created {
		if tx.created[i].ID == t.ID {
			tx.created[i] = *t
			return nil
		}
	}

	tx.store.mu.RLock()
	_, ok := tx.store.trips[t.ID]
	tx.store.mu.RUnlock()
	if !ok {
		return storage.ErrNotFound
	}
	tx.extended[t.ID] = *t
	return nil
}

func (tx *memTx) InsertSample(ctx context.Context, s *telemetry.Sample, tripID string) error {
	tx.inserted = append(tx.inserted, pendingSample{sample: s, tripID: tripID})
	return nil
}

func (tx *memTx) AttachSample(ctx context.Context, seq int64, tripID string) error {
	tx.store.mu.RLock()
	ok := seq > 0 && seq <= int64(len(tx.store.samples))
	tx.store.mu.RUnlock()
	if !ok {
		return storage.ErrNotFound
	}
	tx.attached[seq] = tripID
	return nil
}

// mergeExtension copies the fields owned by extension onto the stored trip,
// leaving details written concurrently through UpdateDetails intact.
func mergeExtension(dst *trip.Trip, ext trip.Trip) {
	dst.StartTime = ext.StartTime
	dst.EndTime = ext.EndTime
	dst.LastSampleAt = ext.LastSampleAt
	dst.DistanceKm = ext.DistanceKm
	dst.UpdatedAt = ext.UpdatedAt
}

func (tx *memTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range tx.created {
		s.trips[t.ID] = t
		s.byDevice[t.DeviceID] = append(s.byDevice[t.DeviceID], t.ID)
	}
	for id, t := range tx.extended {
		cur, ok := s.trips[id]
		if !ok {
			continue
		}
		mergeExtension(&cur, t)
		s.trips[id] = cur
	}
	for _, p := range tx.inserted {
		s.appendSampleLocked(p.sample, p.tripID)
	}
	for seq, tripID := range tx.attached {
		s.samples[seq-1].TripID = tripID
	}
	return nil
}
