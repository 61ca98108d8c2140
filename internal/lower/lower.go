package lower

import (
	"errors"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// Match scores. Zero means "does not apply"; any positive value indicates
// applicability, with the magnitude used as a selection priority.
const (
	ScoreNotMe    = 0
	ScoreStandard = 10
	ScoreTarget   = 20
)

// ErrNotApplicable is the soft decline returned by Build when a node's
// arity or value naming rules out this particular occurrence. The registry
// responds by trying the next-highest-scoring candidate; it is never a
// compilation failure by itself.
var ErrNotApplicable = errors.New("lower: node not applicable")

// Lower is a stateless lowering strategy for one source operator kind.
// Implementations are registered once per session, carry no per-call state,
// and are safe to share across concurrent compilations of independent
// graphs.
type Lower interface {
	// Name identifies the strategy in diagnostics and audit records.
	Name() string

	// OpKind is the source operator kind this strategy is registered for.
	OpKind() ir.OpKind

	// Match returns a non-negative score for the node: ScoreNotMe when the
	// strategy does not apply, higher positive values for higher priority.
	Match(node *source.Node) int

	// Build materializes the node as an operator in g, created through the
	// graph's exclusive creation entry point and wired by name against its
	// value table. Returns ErrNotApplicable to decline softly; any other
	// error is fatal to the compilation.
	Build(g *ir.Graph, node *source.Node) (*ir.Operator, error)
}
