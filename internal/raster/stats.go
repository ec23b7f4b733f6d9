package raster

import (
	"encoding/json"
	"os"
)

// Stats is a JSON audit-trail summary of one render run, grounded on the
// teacher's batch/manifest.go summary-record idiom: Groups/Vertices/
// Primitives describe the uploaded scene, Fragments is the running total of
// covered fragments across every frame rasterized with this Pipeline so far.
type Stats struct {
	Groups     int `json:"groups"`
	Vertices   int `json:"vertices"`
	Primitives int `json:"primitives"`
	Fragments  int `json:"fragments"`
}

// WriteStats marshals stats as indented JSON and writes it to path, in the
// same encoding/json + os.WriteFile style as the teacher's batch.WriteManifest.
func WriteStats(path string, stats Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
