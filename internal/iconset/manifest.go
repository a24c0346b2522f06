package iconset

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one image of the iconset.
type ManifestEntry struct {
	Size     string `json:"size"`
	Scale    string `json:"scale"`
	Pixels   int    `json:"pixels"`
	Filename string `json:"filename"`
}

// Manifest describes a finished build.
type Manifest struct {
	Base      string          `json:"base"`
	Iconset   string          `json:"iconset"`
	Container string          `json:"container"`
	Packager  string          `json:"packager"`
	Resizer   string          `json:"resizer"`
	Images    []ManifestEntry `json:"images"`
	Previews  []string        `json:"previews,omitempty"`
}

func newManifestEntries(vs []Variant) []ManifestEntry {
	entries := make([]ManifestEntry, len(vs))
	for i, v := range vs {
		entries[i] = ManifestEntry{
			Size:     fmt.Sprintf("%dx%d", v.Size, v.Size),
			Scale:    fmt.Sprintf("%dx", v.Scale),
			Pixels:   v.Pixels(),
			Filename: v.Filename(),
		}
	}
	return entries
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
