package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"dublinbikes/config"
	"dublinbikes/service"
	"dublinbikes/station"
	"dublinbikes/store"
)

func newTestServer() *Server {
	cfg := config.Config{
		Port:            8080,
		CacheTTL:        5 * time.Minute,
		DefaultPageSize: 10,
	}

	m := store.NewMemory()
	m.ReplaceAll([]station.Station{
		{Number: 1, Name: "CLARENDON ROW", Address: "Clarendon Row", Status: "OPEN", AvailableBikes: 11, BikeStands: 11, AvailableBikeStands: 20},
		{Number: 2, Name: "BLESSINGTON STREET", Address: "Blessington Street", Status: "CLOSED", AvailableBikes: 6, BikeStands: 6, AvailableBikeStands: 14},
		{Number: 3, Name: "BOLTON STREET", Address: "Bolton Street", Status: "OPEN", AvailableBikes: 2, BikeStands: 12, AvailableBikeStands: 8},
	})
	stations := service.New(m, store.NewSnapshotCache(cfg.CacheTTL))

	return New(cfg, stations, nil, zap.NewNop())
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

type listResponse struct {
	Data       []station.Station `json:"data"`
	Pagination struct {
		Page     int `json:"page"`
		PageSize int `json:"pageSize"`
		Count    int `json:"count"`
	} `json:"pagination"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var out listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: got %d, want 200", rec.Code)
	}
}

func TestListStations(t *testing.T) {
	srv := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-API-Version"); got != "v1" {
		t.Errorf("X-API-Version: got %q, want v1", got)
	}

	out := decodeList(t, rec)
	if len(out.Data) != 3 {
		t.Errorf("Expected 3 stations, got %d", len(out.Data))
	}
	if out.Pagination.Page != 1 || out.Pagination.PageSize != 10 {
		t.Errorf("Unexpected pagination defaults: %+v", out.Pagination)
	}
}

func TestListStations_Filtered(t *testing.T) {
	srv := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stations?status=open&sort=bikes&dir=desc", nil)
	out := decodeList(t, rec)

	if len(out.Data) != 2 {
		t.Fatalf("Expected 2 OPEN stations, got %d", len(out.Data))
	}
	if out.Data[0].Number != 1 || out.Data[1].Number != 3 {
		t.Errorf("Expected stations [1 3] by bikes descending, got [%d %d]",
			out.Data[0].Number, out.Data[1].Number)
	}
}

func TestListStations_InvalidMinBikes(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/api/v1/stations?minBikes=lots", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid minBikes: got %d, want 400", rec.Code)
	}
}

func TestGetStation(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stations/1", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("existing station: got %d, want 200", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/stations/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing station: got %d, want 404", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/stations/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-integer number: got %d, want 400", rec.Code)
	}
}

func TestSummary(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/api/v1/stations/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: got %d, want 200", rec.Code)
	}

	var out struct {
		Data station.Summary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if out.Data.TotalStations != 3 {
		t.Errorf("TotalStations: got %d, want 3", out.Data.TotalStations)
	}
	if out.Data.TotalAvailableBikes != 19 {
		t.Errorf("TotalAvailableBikes: got %d, want 19", out.Data.TotalAvailableBikes)
	}
}

func TestCreateStation(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/stations", station.Station{Number: 42, Name: "NEW STATION"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/stations/42" {
		t.Errorf("Location: got %q", loc)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/stations/42", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("created station should be retrievable, got %d", rec.Code)
	}

	// Posting the same number again is an upsert on this path, not a conflict.
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/stations", station.Station{Number: 42, Name: "RENAMED"})
	if rec.Code != http.StatusCreated {
		t.Errorf("upsert create: got %d, want 201", rec.Code)
	}
}

func TestCreateStation_InvalidBody(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stations", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid body: got %d, want 400", rec.Code)
	}
}

func TestUpdateStation(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/stations/1", station.Station{Number: 1, Name: "RENAMED"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update: got %d, want 204", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/stations/1", nil)
	var out struct {
		Data station.Station `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode station: %v", err)
	}
	if out.Data.Name != "RENAMED" {
		t.Errorf("Name after update: got %q, want RENAMED", out.Data.Name)
	}

	rec = doRequest(t, srv, http.MethodPut, "/api/v1/stations/9999", station.Station{Number: 9999})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update missing: got %d, want 404", rec.Code)
	}
}

func TestUpdateStation_NumberMismatchRejected(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/stations/1", station.Station{Number: 2, Name: "WRONG"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("mismatched number: got %d, want 400", rec.Code)
	}

	// The store must be untouched.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/stations/1", nil)
	var out struct {
		Data station.Station `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode station: %v", err)
	}
	if out.Data.Name != "CLARENDON ROW" {
		t.Errorf("Station 1 was modified by a rejected update: %q", out.Data.Name)
	}
}

func TestDeleteStation(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodDelete, "/api/v1/stations/2", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/stations/2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted station should be gone, got %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/stations/2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing: got %d, want 404", rec.Code)
	}
}

func TestV2RoutesAbsentWithoutDocumentStore(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/api/v2/stations", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("v2 without document store: got %d, want 404", rec.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	cfg := config.Config{Port: 8080, CacheTTL: time.Minute, DefaultPageSize: 10, BearerToken: "sekrit"}
	m := store.NewMemory()
	stations := service.New(m, store.NewSnapshotCache(cfg.CacheTTL))
	srv := New(cfg, stations, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stations", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: got %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stations", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	rec = httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want 200", rec.Code)
	}
}
