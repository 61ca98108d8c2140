package pass

import (
	"fmt"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// GraphBuildingPass walks the destination graph's operators in creation
// order and applies a visitor to each. It never reads the source graph;
// the canonical use is a backend pass updating hardware-facing auxiliary
// tables per operator.
//
// The verdict is Changed when at least one handler ran, Unchanged when
// every operator was skipped (including the empty graph), and Failed when
// a handler or the visitor's default policy errored.
type GraphBuildingPass struct {
	id      string
	visitor *Visitor
}

// NewGraphBuildingPass creates a visitor pass with the given identity token.
func NewGraphBuildingPass(id string, v *Visitor) *GraphBuildingPass {
	return &GraphBuildingPass{id: id, visitor: v}
}

// ID returns the pass's identity token.
func (p *GraphBuildingPass) ID() string { return p.id }

// Run implements Pass.
func (p *GraphBuildingPass) Run(src *source.Graph, dst *ir.Graph) (Result, error) {
	changed := false
	for i, op := range dst.Operators() {
		handled, err := p.visitor.Visit(op)
		if err != nil {
			return Failed, &RunError{PassID: p.id, Err: fmt.Errorf("operator %d (%s): %w", i, op.Kind(), err)}
		}
		if handled {
			changed = true
		}
	}
	if changed {
		return Changed, nil
	}
	return Unchanged, nil
}
