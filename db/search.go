package db

import (
	"context"
	"strconv"

	"dublinbikes/station"
)

const searchBaseSQL = `
    SELECT doc FROM stations
`

// occupancySQL mirrors Station.Occupancy: available bikes over total
// capacity, 0 when the station has no docks.
const occupancySQL = `CASE WHEN (doc->>'bike_stands')::int + (doc->>'available_bike_stands')::int = 0
        THEN 0
        ELSE (doc->>'available_bikes')::float / ((doc->>'bike_stands')::int + (doc->>'available_bike_stands')::int)
    END`

// sortExprs maps sort keys to their SQL ordering expression.
var sortExprs = map[station.SortKey]string{
	station.SortByNumber:         "number",
	station.SortByName:           "doc->>'name'",
	station.SortByAvailableBikes: "(doc->>'available_bikes')::int",
	station.SortByOccupancy:      occupancySQL,
	station.SortByDocks:          "(doc->>'available_bike_stands')::int",
}

// buildSearchSQL composes the server-side equivalent of the in-memory
// pipeline: same filters, same default ordering, the same
// ascending-by-number tie-break, and offset/limit pagination.
func buildSearchSQL(q station.SearchQuery) (string, []any) {
	sql := searchBaseSQL
	args := []any{}
	argPos := 1

	clause := " WHERE true"
	if q.Query != "" {
		pos := strconv.Itoa(argPos)
		clause += " AND (doc->>'name' ILIKE '%' || $" + pos + " || '%'" +
			" OR doc->>'address' ILIKE '%' || $" + pos + " || '%')"
		args = append(args, q.Query)
		argPos++
	}
	if q.Status != "" {
		clause += " AND upper(doc->>'status') = upper($" + strconv.Itoa(argPos) + ")"
		args = append(args, q.Status)
		argPos++
	}
	if q.MinBikes > 0 {
		clause += " AND (doc->>'available_bikes')::int >= $" + strconv.Itoa(argPos)
		args = append(args, q.MinBikes)
		argPos++
	}

	expr, ok := sortExprs[q.Sort]
	if !ok {
		expr = sortExprs[station.SortByNumber]
	}
	dir := " ASC"
	if q.Descending {
		dir = " DESC"
	}
	order := " ORDER BY " + expr + dir
	if expr != "number" {
		order += ", number ASC"
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	limits := " OFFSET $" + strconv.Itoa(argPos) + " LIMIT $" + strconv.Itoa(argPos+1)
	args = append(args, (page-1)*pageSize, pageSize)

	return sql + clause + order + limits, args
}

// Search runs the filter/sort/paginate pipeline server-side and returns
// the requested page.
func (r *Repository) Search(ctx context.Context, q station.SearchQuery) ([]station.Station, error) {
	sql, args := buildSearchSQL(q)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

const summarySQL = `
    SELECT COUNT(*),
           COALESCE(SUM((doc->>'bike_stands')::bigint), 0),
           COALESCE(SUM((doc->>'available_bikes')::bigint), 0),
           COALESCE(SUM((doc->>'available_bike_stands')::bigint + (doc->>'available_bikes')::bigint), 0)
    FROM stations
`

const statusCountsSQL = `
    SELECT upper(COALESCE(NULLIF(trim(doc->>'status'), ''), 'UNKNOWN')), COUNT(*)
    FROM stations
    GROUP BY 1
`

// Summary aggregates server-side over the full station set.
func (r *Repository) Summary(ctx context.Context) (station.Summary, error) {
	var sum station.Summary
	err := r.pool.QueryRow(ctx, summarySQL).Scan(
		&sum.TotalStations,
		&sum.TotalBikeStands,
		&sum.TotalAvailableBikes,
		&sum.TotalDocks,
	)
	if err != nil {
		return station.Summary{}, err
	}
	if sum.TotalStations == 0 {
		return sum, nil
	}

	rows, err := r.pool.Query(ctx, statusCountsSQL)
	if err != nil {
		return station.Summary{}, err
	}
	defer rows.Close()

	sum.StatusCounts = make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return station.Summary{}, err
		}
		sum.StatusCounts[status] = count
	}
	return sum, rows.Err()
}
