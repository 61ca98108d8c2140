package pass

import (
	"fmt"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// Result is the verdict of one pass invocation.
type Result uint8

const (
	// Unchanged means the pass ran to completion without mutating the
	// destination graph.
	Unchanged Result = iota
	// Changed means the destination graph (or state derived from it) was
	// mutated.
	Changed
	// Failed means the pass aborted; the destination graph is still
	// consumable but the pass manager must not treat it as transformed.
	Failed
)

func (r Result) String() string {
	switch r {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// Pass is a named transformation over a (source graph, destination compute
// graph) pair. The ID is an explicit stable token assigned at construction;
// the manager uses it for ordering and deduplication, so two distinct passes
// must never share one.
//
// Run returns exactly one verdict. When the verdict is Failed the returned
// error carries the diagnostic; for Unchanged and Changed the error is nil.
// Passes are created once per session and must be safe to run once per
// graph pair; they are not required to be reentrant across graphs.
type Pass interface {
	ID() string
	Run(src *source.Graph, dst *ir.Graph) (Result, error)
}

// RunError attributes a pass failure to the pass's identity token.
type RunError struct {
	PassID string
	Err    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("pass %q: %v", e.PassID, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
