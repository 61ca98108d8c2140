package pass

import (
	"errors"
	"fmt"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// RunRecord is one pass's verdict within a manager run.
type RunRecord struct {
	PassID string
	Result Result
	Err    error
}

// Manager sequences passes over one (source graph, destination graph) pair.
// Passes run strictly in registration order, exactly once each; the run
// halts on the first failure. Retry and fix-point policy belong to callers.
type Manager struct {
	passes []Pass
	ids    map[string]bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{ids: make(map[string]bool)}
}

// Add appends a pass to the run order. A duplicate identity token is a
// configuration error.
func (m *Manager) Add(p Pass) error {
	if m.ids[p.ID()] {
		return fmt.Errorf("pass %q already registered", p.ID())
	}
	m.ids[p.ID()] = true
	m.passes = append(m.passes, p)
	return nil
}

// Run executes every pass in order. The returned records cover each pass
// that ran, including a failing one; the error, when non-nil, is the
// failing pass's RunError. The destination graph stays consumable either
// way.
func (m *Manager) Run(src *source.Graph, dst *ir.Graph) ([]RunRecord, error) {
	records := make([]RunRecord, 0, len(m.passes))
	for _, p := range m.passes {
		res, err := p.Run(src, dst)
		if err != nil {
			res = Failed
			var re *RunError
			if !errors.As(err, &re) {
				err = &RunError{PassID: p.ID(), Err: err}
			}
		}
		records = append(records, RunRecord{PassID: p.ID(), Result: res, Err: err})
		if res == Failed {
			return records, err
		}
	}
	return records, nil
}
