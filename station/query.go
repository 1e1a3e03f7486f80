package station

import (
	"sort"
	"strings"
)

// SortKey selects the field a search result is ordered by.
type SortKey string

const (
	SortByNumber         SortKey = "number"
	SortByName           SortKey = "name"
	SortByAvailableBikes SortKey = "available_bikes"
	SortByOccupancy      SortKey = "occupancy"
	SortByDocks          SortKey = "docks"
)

// ParseSortKey maps a query-string value to a SortKey. Unknown or empty
// values fall back to ordering by station number.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortByName
	case "available_bikes", "availablebikes", "bikes":
		return SortByAvailableBikes
	case "occupancy":
		return SortByOccupancy
	case "docks":
		return SortByDocks
	default:
		return SortByNumber
	}
}

// SearchQuery holds the per-request filter, sort and pagination inputs.
// Invalid values degrade to defaults rather than failing.
type SearchQuery struct {
	Query      string
	Status     string
	MinBikes   int
	Sort       SortKey
	Descending bool
	Page       int
	PageSize   int
}

// lessFuncs orders two stations ascending by a single sort key. Ties are
// left to the stable sort, which preserves the previous pipeline stage's
// ascending-by-number order.
var lessFuncs = map[SortKey]func(a, b Station) bool{
	SortByNumber:         func(a, b Station) bool { return a.Number < b.Number },
	SortByName:           func(a, b Station) bool { return a.Name < b.Name },
	SortByAvailableBikes: func(a, b Station) bool { return a.AvailableBikes < b.AvailableBikes },
	SortByOccupancy:      func(a, b Station) bool { return a.Occupancy() < b.Occupancy() },
	SortByDocks:          func(a, b Station) bool { return a.AvailableBikeStands < b.AvailableBikeStands },
}

// Search applies the fixed filter, sort and paginate pipeline to a
// snapshot and returns the requested page. The stage order is part of
// the contract: text filter, status filter, minimum-bikes filter,
// stable sort, pagination. The input slice is never modified.
func Search(snapshot []Station, q SearchQuery) []Station {
	filtered := make([]Station, 0, len(snapshot))
	text := strings.ToLower(strings.TrimSpace(q.Query))
	for _, st := range snapshot {
		if text != "" && !matchesText(st, text) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(st.Status, q.Status) {
			continue
		}
		if q.MinBikes > 0 && st.AvailableBikes < q.MinBikes {
			continue
		}
		filtered = append(filtered, st)
	}

	less, ok := lessFuncs[q.Sort]
	if !ok {
		less = lessFuncs[SortByNumber]
	}
	if q.Descending {
		asc := less
		less = func(a, b Station) bool { return asc(b, a) }
	}
	sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })

	return paginate(filtered, q.Page, q.PageSize)
}

func matchesText(st Station, lowered string) bool {
	if st.Name != "" && strings.Contains(strings.ToLower(st.Name), lowered) {
		return true
	}
	if st.Address != "" && strings.Contains(strings.ToLower(st.Address), lowered) {
		return true
	}
	return false
}

func paginate(stations []Station, page, pageSize int) []Station {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	skip := (page - 1) * pageSize
	if skip >= len(stations) {
		return []Station{}
	}
	end := skip + pageSize
	if end > len(stations) {
		end = len(stations)
	}
	return stations[skip:end]
}
