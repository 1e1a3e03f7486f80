package store

import (
	"os"
	"path/filepath"
	"testing"
)

const seedJSON = `[
  {"number": 1, "name": "CLARENDON ROW", "address": "Clarendon Row",
   "bike_stands": 11, "available_bike_stands": 20, "available_bikes": 11,
   "status": "OPEN", "last_update": 1696943924000},
  {"number": 2, "name": "BLESSINGTON STREET",
   "bike_stands": 6, "available_bike_stands": 14, "available_bikes": 6,
   "status": "CLOSED", "last_update": 1696943878000}
]`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	if err := os.WriteFile(path, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("write seed fixture: %v", err)
	}

	stations, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("Expected 2 stations, got %d", len(stations))
	}
	if stations[0].Number != 1 || stations[0].Name != "CLARENDON ROW" {
		t.Errorf("First station decoded wrong: %+v", stations[0])
	}
	if stations[1].Status != "CLOSED" {
		t.Errorf("Expected status CLOSED, got %q", stations[1].Status)
	}
	if stations[0].LastUpdate != 1696943924000 {
		t.Errorf("Expected last_update 1696943924000, got %d", stations[0].LastUpdate)
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for a missing seed file")
	}
}

func TestLoadSeed_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadSeed(path); err == nil {
		t.Error("Expected error for a malformed seed file")
	}
}
