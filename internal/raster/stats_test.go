package raster

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteStatsRoundTrips(t *testing.T) {
	stats := Stats{Groups: 2, Vertices: 24, Primitives: 12, Fragments: 4096}
	path := filepath.Join(t.TempDir(), "stats.json")

	if err := WriteStats(path, stats); err != nil {
		t.Fatalf("WriteStats: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got Stats
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != stats {
		t.Errorf("round-tripped stats = %+v, want %+v", got, stats)
	}
}
