package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// AccessMode controls whether Sync writes the tree back to its file.
type AccessMode uint8

const (
	ReadOnly AccessMode = iota
	ReadWrite
)

// Statistics is a group/entry store backed by a JSON file.
type Statistics struct {
	path string
	mode AccessMode
	root *Group
}

// Open reads the statistics file at path. A missing file is an error in
// ReadOnly mode and an empty store in ReadWrite mode (the file is created
// on the first Sync).
func Open(path string, mode AccessMode) (*Statistics, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if mode == ReadOnly {
			return nil, fmt.Errorf("stats: cannot open %s: %w", path, err)
		}
		return &Statistics{path: path, mode: mode, root: NewGroup()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats: cannot open %s: %w", path, err)
	}

	root, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot parse %s: %w", path, err)
	}
	return &Statistics{path: path, mode: mode, root: root}, nil
}

// Read builds a read-only store from raw JSON content.
func Read(content []byte) (*Statistics, error) {
	root, err := parse(content)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot read content: %w", err)
	}
	return &Statistics{mode: ReadOnly, root: root}, nil
}

func parse(data []byte) (*Group, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return groupFromJSON(obj), nil
}

// Root returns the top-level group.
func (s *Statistics) Root() *Group { return s.root }

// Mode returns the access mode the store was opened with.
func (s *Statistics) Mode() AccessMode { return s.mode }

// Sync writes the tree back to its file. A read-only or pathless store
// syncs as a no-op.
func (s *Statistics) Sync() error {
	if s.mode == ReadOnly || s.path == "" {
		return nil
	}
	// encoding/json sorts map keys, so the file is deterministic.
	data, err := json.MarshalIndent(s.root.toJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("stats: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("stats: write %s: %w", s.path, err)
	}
	return nil
}
