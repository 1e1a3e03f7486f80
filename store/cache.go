package store

import (
	"sync"
	"time"

	"dublinbikes/station"
)

// DefaultCacheTTL matches the five minute expiry the list endpoint has
// always used.
const DefaultCacheTTL = 5 * time.Minute

// SnapshotCache keeps the most recent full station snapshot for the
// list endpoint so it is not rebuilt on every request. It holds a
// single entry with an absolute expiry measured from the last Set.
type SnapshotCache struct {
	mu       sync.Mutex
	snapshot []station.Station
	expires  time.Time
	ttl      time.Duration
	now      func() time.Time // injectable for deterministic tests
}

// NewSnapshotCache returns an empty cache with the given TTL.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SnapshotCache{ttl: ttl, now: time.Now}
}

// Get returns the cached snapshot and whether it is still valid.
func (c *SnapshotCache) Get() ([]station.Station, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil || c.now().After(c.expires) {
		return nil, false
	}
	return c.snapshot, true
}

// Set stores a snapshot and restarts the TTL. Callers must not modify
// the slice after handing it over.
func (c *SnapshotCache) Set(snapshot []station.Station) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.expires = c.now().Add(c.ttl)
}

// Invalidate drops the cached snapshot immediately.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.expires = time.Time{}
}
