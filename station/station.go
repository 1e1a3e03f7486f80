package station

import (
	"strconv"
	"time"
)

// Position is a station's geographic location.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Station represents one bike-share dock location with capacity and
// live availability counts. The field names follow the source dataset.
type Station struct {
	// ID is the synthetic external key used by the document-store path;
	// it is always the decimal string of Number there.
	ID           string    `json:"id,omitempty"`
	Number       int       `json:"number"`
	ContractName string    `json:"contract_name,omitempty"`
	Name         string    `json:"name,omitempty"`
	Address      string    `json:"address,omitempty"`
	Position     *Position `json:"position,omitempty"`
	Banking      bool      `json:"banking"`
	Bonus        bool      `json:"bonus"`

	// BikeStands counts currently occupied docks, not total capacity.
	BikeStands          int    `json:"bike_stands"`
	AvailableBikeStands int    `json:"available_bike_stands"`
	AvailableBikes      int    `json:"available_bikes"`
	Status              string `json:"status,omitempty"`

	// LastUpdate is milliseconds since epoch of the last mutation.
	LastUpdate int64 `json:"last_update"`
}

// TotalCapacity returns occupied plus free docks.
func (s Station) TotalCapacity() int {
	return s.BikeStands + s.AvailableBikeStands
}

// Occupancy returns available bikes over total capacity, 0 when the
// station has no docks.
func (s Station) Occupancy() float64 {
	capacity := s.TotalCapacity()
	if capacity == 0 {
		return 0
	}
	return float64(s.AvailableBikes) / float64(capacity)
}

// LastUpdateTime converts the epoch-millisecond timestamp to UTC time.
func (s Station) LastUpdateTime() time.Time {
	return time.UnixMilli(s.LastUpdate).UTC()
}

// DocumentID returns the external key the document-store path uses for
// this station.
func (s Station) DocumentID() string {
	return strconv.Itoa(s.Number)
}
