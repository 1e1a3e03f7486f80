// Package service composes the station store, the snapshot cache and
// the query pipeline into the unit the v1 handlers call.
package service

import (
	"dublinbikes/station"
	"dublinbikes/store"
)

// Stations answers queries against the in-memory store and keeps the
// full-list snapshot cache coherent across mutations.
type Stations struct {
	store *store.Memory
	cache *store.SnapshotCache
}

// New wires a service around the given store and cache.
func New(st *store.Memory, cache *store.SnapshotCache) *Stations {
	return &Stations{store: st, cache: cache}
}

// Search runs the filter/sort/paginate pipeline over the full snapshot,
// serving the snapshot from cache when it is still fresh. A periodic
// refresh does not invalidate the cache, so results may lag a refresh
// tick by up to the remaining TTL.
func (s *Stations) Search(q station.SearchQuery) []station.Station {
	snapshot, ok := s.cache.Get()
	if !ok {
		snapshot = s.store.GetAll()
		s.cache.Set(snapshot)
	}
	return station.Search(snapshot, q)
}

// Summary aggregates over the live store contents, never the cache.
func (s *Stations) Summary() station.Summary {
	return station.Summarize(s.store.GetAll())
}

// Get looks a station up by number directly in the store.
func (s *Stations) Get(number int) (station.Station, bool) {
	return s.store.GetByNumber(number)
}

// Add upserts a station and drops the cached list snapshot.
func (s *Stations) Add(st station.Station) {
	s.store.Add(st)
	s.cache.Invalidate()
}

// Update replaces the station stored under number. The cache is only
// invalidated when the store actually changed.
func (s *Stations) Update(number int, st station.Station) bool {
	ok := s.store.Update(number, st)
	if ok {
		s.cache.Invalidate()
	}
	return ok
}

// Delete removes the station stored under number, invalidating the
// cache when it existed.
func (s *Stations) Delete(number int) bool {
	ok := s.store.Delete(number)
	if ok {
		s.cache.Invalidate()
	}
	return ok
}
