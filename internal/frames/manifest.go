package frames

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame     int     `json:"frame"`
	Time      float64 `json:"time"`
	Plotted   int     `json:"plotted"`
	Respawned int     `json:"respawned"`
	Image     string  `json:"image"`
}

// WriteManifest writes manifest.json describing the successfully written frames.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Frame:     r.Frame,
			Time:      r.Time,
			Plotted:   r.Plotted,
			Respawned: r.Respawned,
			Image:     r.Image,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
