package partition

import (
	"hash/fnv"
	"sync"
)

// Count is the fixed number of device lock stripes.
const Count = 256

// For returns the stripe for a given device ID.
// Stable and deterministic: the same deviceID always maps to the same stripe.
func For(deviceID string) int {
	h := fnv.New32a()
	h.Write([]byte(deviceID))
	return int(h.Sum32() % Count)
}

// Locks is a fixed set of mutexes striped by device ID.
// Devices sharing a stripe serialize against each other.
type Locks struct {
	stripes [Count]sync.Mutex
}

// Lock acquires the stripe for deviceID and returns its unlock func.
func (l *Locks) Lock(deviceID string) func() {
	m := &l.stripes[For(deviceID)]
	m.Lock()
	return m.Unlock
}
