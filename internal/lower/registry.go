package lower

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// Registry holds the registered lowering strategies, keyed by the operator
// kind each one declares. Registration happens during session setup; after
// that the registry is read-only and safe to share across goroutines.
type Registry struct {
	lowers map[ir.OpKind][]Lower
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{lowers: make(map[ir.OpKind][]Lower)}
}

// NewStandardRegistry creates a registry pre-loaded with the standard
// lowering catalog.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	for _, l := range StandardLowers() {
		r.Register(l)
	}
	return r
}

// Register adds a strategy under its declared operator kind.
func (r *Registry) Register(l Lower) {
	kind := l.OpKind()
	r.lowers[kind] = append(r.lowers[kind], l)
}

// scored pairs a candidate with its match score for one node.
type scored struct {
	lower Lower
	score int
}

// candidates evaluates Match across the strategies registered for the
// node's kind and returns the applicable ones, highest score first. The
// sort is stable so equal scores keep registration order, which Select
// then reports as a configuration error.
func (r *Registry) candidates(node *source.Node) []scored {
	var out []scored
	for _, l := range r.lowers[ir.OpKind(node.Kind)] {
		if s := l.Match(node); s > ScoreNotMe {
			out = append(out, scored{lower: l, score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// Select returns the strategy with the strictly highest match score for the
// node. No applicable strategy yields an UnsupportedError; a tie for the
// highest score yields an AmbiguousError.
func (r *Registry) Select(node *source.Node) (Lower, error) {
	cands := r.candidates(node)
	if len(cands) == 0 {
		return nil, &UnsupportedError{Kind: node.Kind, Pos: node.Pos}
	}
	if len(cands) > 1 && cands[0].score == cands[1].score {
		return nil, &AmbiguousError{
			Kind:   node.Kind,
			Score:  cands[0].score,
			First:  cands[0].lower.Name(),
			Second: cands[1].lower.Name(),
		}
	}
	return cands[0].lower, nil
}

// LowerNode translates one source node into a compute operator. Candidates
// are tried in descending score order; a soft decline falls through to the
// next one, and exhausting the list is an UnsupportedError. Any hard error
// (in particular a wiring violation) aborts immediately.
//
// The winning strategy's name is returned alongside the operator for audit
// records.
func (r *Registry) LowerNode(g *ir.Graph, node *source.Node) (*ir.Operator, string, error) {
	cands := r.candidates(node)
	if len(cands) == 0 {
		return nil, "", &UnsupportedError{Kind: node.Kind, Pos: node.Pos}
	}
	if len(cands) > 1 && cands[0].score == cands[1].score {
		return nil, "", &AmbiguousError{
			Kind:   node.Kind,
			Score:  cands[0].score,
			First:  cands[0].lower.Name(),
			Second: cands[1].lower.Name(),
		}
	}

	for _, c := range cands {
		op, err := c.lower.Build(g, node)
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		if err != nil {
			return nil, c.lower.Name(), err
		}
		return op, c.lower.Name(), nil
	}
	return nil, "", &UnsupportedError{Kind: node.Kind, Pos: node.Pos}
}

// LowerGraph lowers every node of the source graph into g, in node order.
// The first failure stops the walk; diagnostics are attributed to the
// failing node's index and position.
func (r *Registry) LowerGraph(g *ir.Graph, src *source.Graph) error {
	for i, node := range src.Nodes {
		if _, _, err := r.LowerNode(g, node); err != nil {
			return fmt.Errorf("node %d (%s): %w", i, node.Kind, err)
		}
	}
	return nil
}
