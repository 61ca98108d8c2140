package frontend

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ccu1tn/onnc/internal/source"
)

// Load parses a source-graph file, picking the frontend by extension.
func Load(path string) (*source.Graph, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported source format %q (want .cue, .yaml, or .yml)", ext)
	}
}
