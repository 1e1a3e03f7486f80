package station

import "strings"

// Summary holds aggregate metrics over the full station set.
type Summary struct {
	TotalStations int64 `json:"totalStations"`
	// TotalBikeStands sums the bike_stands field, i.e. occupied docks.
	TotalBikeStands     int64 `json:"totalBikeStands"`
	TotalAvailableBikes int64 `json:"totalAvailableBikes"`
	// TotalDocks is the combined capacity (docks plus bikes) across all
	// stations.
	TotalDocks   int64            `json:"totalDocks"`
	StatusCounts map[string]int64 `json:"statusCounts,omitempty"`
}

// Summarize computes aggregate counts over a snapshot. An empty snapshot
// yields an all-zero summary.
func Summarize(snapshot []Station) Summary {
	sum := Summary{}
	if len(snapshot) == 0 {
		return sum
	}
	sum.StatusCounts = make(map[string]int64)
	for _, st := range snapshot {
		sum.TotalStations++
		sum.TotalBikeStands += int64(st.BikeStands)
		sum.TotalAvailableBikes += int64(st.AvailableBikes)
		sum.TotalDocks += int64(st.AvailableBikeStands) + int64(st.AvailableBikes)

		status := strings.ToUpper(strings.TrimSpace(st.Status))
		if status == "" {
			status = "UNKNOWN"
		}
		sum.StatusCounts[status]++
	}
	return sum
}
