// Package db implements the document-store-backed station repository
// on PostgreSQL. Stations are stored as JSONB documents keyed by
// station number, and search/summary work is pushed into SQL so the
// endpoint behaves the same as the in-memory path.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dublinbikes/station"
)

// ErrConflict is returned by Create when a station with the same number
// already exists. Only the document-store path reports conflicts; the
// in-memory path deliberately upserts instead.
var ErrConflict = errors.New("station already exists")

const schemaSQL = `
    CREATE TABLE IF NOT EXISTS stations (
        number BIGINT PRIMARY KEY,
        id     TEXT NOT NULL,
        doc    JSONB NOT NULL
    )
`

// Repository wraps document-store access for station records.
type Repository struct {
	pool *pgxpool.Pool
}

// New connects a Repository to the database and ensures the stations
// table exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure stations table: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// Close releases the pool resources.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// normalize rewrites the synthetic document id so it always equals the
// decimal string of the station number on the way into the store.
func normalize(st station.Station) station.Station {
	st.ID = st.DocumentID()
	return st
}

const getAllSQL = `
    SELECT doc FROM stations
    ORDER BY number
`

// GetAll returns every station ordered ascending by number.
func (r *Repository) GetAll(ctx context.Context) ([]station.Station, error) {
	rows, err := r.pool.Query(ctx, getAllSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

const getByNumberSQL = `
    SELECT doc FROM stations
    WHERE number = $1
`

// GetByNumber returns the station with the given number, or nil when it
// does not exist.
func (r *Repository) GetByNumber(ctx context.Context, number int) (*station.Station, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, getByNumberSQL, number).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var st station.Station
	if err := json.Unmarshal(doc, &st); err != nil {
		return nil, fmt.Errorf("decode station %d: %w", number, err)
	}
	return &st, nil
}

const createSQL = `
    INSERT INTO stations (number, id, doc)
    VALUES ($1, $2, $3)
    ON CONFLICT (number) DO NOTHING
`

// Create inserts a new station and returns ErrConflict when the number
// is already taken.
func (r *Repository) Create(ctx context.Context, st station.Station) error {
	st = normalize(st)
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode station %d: %w", st.Number, err)
	}

	tag, err := r.pool.Exec(ctx, createSQL, st.Number, st.ID, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

const updateSQL = `
    UPDATE stations
    SET id = $2, doc = $3
    WHERE number = $1
`

// Update replaces the document stored under number. It reports whether
// a record existed; a missing key is not an error.
func (r *Repository) Update(ctx context.Context, number int, st station.Station) (bool, error) {
	st.Number = number
	st = normalize(st)
	doc, err := json.Marshal(st)
	if err != nil {
		return false, fmt.Errorf("encode station %d: %w", number, err)
	}

	tag, err := r.pool.Exec(ctx, updateSQL, number, st.ID, doc)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const deleteSQL = `
    DELETE FROM stations
    WHERE number = $1
`

// Delete removes the station stored under number and reports whether it
// existed.
func (r *Repository) Delete(ctx context.Context, number int) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteSQL, number)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ReplaceAll atomically swaps the full table contents for the given set
// inside one transaction.
func (r *Repository) ReplaceAll(ctx context.Context, stations []station.Station) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE stations`); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, st := range stations {
		st = normalize(st)
		doc, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode station %d: %w", st.Number, err)
		}
		batch.Queue(`INSERT INTO stations (number, id, doc) VALUES ($1, $2, $3)`, st.Number, st.ID, doc)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Count returns the number of stored stations.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stations`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// SeedIfEmpty bulk-loads the given stations when the table holds no
// documents yet. It returns the number of inserted records.
func (r *Repository) SeedIfEmpty(ctx context.Context, stations []station.Station) (int, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	if err := r.ReplaceAll(ctx, stations); err != nil {
		return 0, err
	}
	return len(stations), nil
}

func scanStations(rows pgx.Rows) ([]station.Station, error) {
	stations := make([]station.Station, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var st station.Station
		if err := json.Unmarshal(doc, &st); err != nil {
			return nil, fmt.Errorf("decode station document: %w", err)
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}
