package store

import (
	"encoding/json"
	"fmt"
	"os"

	"dublinbikes/station"
)

// LoadSeed reads the station seed dataset from a JSON file. A missing
// or malformed file is reported to the caller, who is expected to log
// it and continue with an empty store.
func LoadSeed(path string) ([]station.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var stations []station.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return stations, nil
}
