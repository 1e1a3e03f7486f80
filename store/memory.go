// Package store holds the in-memory station store, the list snapshot
// cache and the JSON seed loader backing the v1 API.
package store

import (
	"sort"
	"sync"

	"dublinbikes/station"
)

// Memory is the thread-safe source of truth for station records, keyed
// by station number. Callers only ever receive copies of the stored
// data, never the map itself.
type Memory struct {
	mu       sync.RWMutex
	stations map[int]station.Station
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{stations: make(map[int]station.Station)}
}

// GetAll returns a copy of every station ordered ascending by number.
func (m *Memory) GetAll() []station.Station {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]station.Station, 0, len(m.stations))
	for _, st := range m.stations {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// GetByNumber returns the station with the given number, if present.
func (m *Memory) GetByNumber(number int) (station.Station, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.stations[number]
	return st, ok
}

// Add inserts the station, silently overwriting any existing record
// with the same number.
func (m *Memory) Add(st station.Station) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations[st.Number] = st
}

// Update replaces the record stored under number. It reports whether a
// record existed; a missing key is not an error.
func (m *Memory) Update(number int, st station.Station) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stations[number]; !ok {
		return false
	}
	m.stations[number] = st
	return true
}

// Delete removes the record stored under number and reports whether it
// existed.
func (m *Memory) Delete(number int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stations[number]; !ok {
		return false
	}
	delete(m.stations, number)
	return true
}

// ReplaceAll atomically swaps the entire store contents for the given
// set. Concurrent readers observe either the old complete set or the
// new one, never a partial mix.
func (m *Memory) ReplaceAll(stations []station.Station) {
	next := make(map[int]station.Station, len(stations))
	for _, st := range stations {
		next[st.Number] = st
	}

	m.mu.Lock()
	m.stations = next
	m.mu.Unlock()
}

// Count returns the number of stored stations.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stations)
}
