package lower

import (
	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// StandardLowers returns one instance of every standard lowering strategy.
// Each instance is stateless and may be registered in any number of
// registries.
func StandardLowers() []Lower {
	return []Lower{
		NewUnaryLower(ir.OpAbs),
		NewUnaryLower(ir.OpRelu),
		NewUnaryLower(ir.OpSoftplus),
		NewBinaryLower(ir.OpAdd),
		NewBinaryLower(ir.OpMul),
		NewHardSigmoidLower(),
	}
}

// arityLower lowers element-wise operators with a fixed input arity and a
// single output. It covers the unary family (Abs, Relu, Softplus) and the
// binary family (Add, Mul).
type arityLower struct {
	name   string
	kind   ir.OpKind
	inputs int
}

// NewUnaryLower creates the standard lower for a one-input, one-output
// operator kind.
func NewUnaryLower(kind ir.OpKind) Lower {
	return &arityLower{name: string(kind) + "Lower", kind: kind, inputs: 1}
}

// NewBinaryLower creates the standard lower for a two-input, one-output
// operator kind.
func NewBinaryLower(kind ir.OpKind) Lower {
	return &arityLower{name: string(kind) + "Lower", kind: kind, inputs: 2}
}

func (l *arityLower) Name() string     { return l.name }
func (l *arityLower) OpKind() ir.OpKind { return l.kind }

func (l *arityLower) Match(node *source.Node) int {
	if node.Kind == string(l.kind) {
		return ScoreStandard
	}
	return ScoreNotMe
}

func (l *arityLower) Build(g *ir.Graph, node *source.Node) (*ir.Operator, error) {
	return buildWired(g, node, l.kind, l.inputs, 1)
}

// buildWired performs the shared validation and wiring sequence: gate on
// arity and unique names (soft decline), resolve every reference against the
// destination value table (hard error on a missing name), and only then
// create the operator, so a wiring failure never leaves a half-built node
// in the graph.
func buildWired(g *ir.Graph, node *source.Node, kind ir.OpKind, nIn, nOut int) (*ir.Operator, error) {
	if len(node.Inputs) != nIn || len(node.Outputs) != nOut {
		return nil, ErrNotApplicable
	}
	for _, ref := range node.Inputs {
		if !ref.HasUniqueName() {
			return nil, ErrNotApplicable
		}
	}
	for _, ref := range node.Outputs {
		if !ref.HasUniqueName() {
			return nil, ErrNotApplicable
		}
	}

	inputs := make([]ir.ValueHandle, len(node.Inputs))
	for i, ref := range node.Inputs {
		h, err := g.ValueByName(ref.UniqueName())
		if err != nil {
			return nil, err
		}
		inputs[i] = h
	}
	outputs := make([]ir.ValueHandle, len(node.Outputs))
	for i, ref := range node.Outputs {
		h, err := g.ValueByName(ref.UniqueName())
		if err != nil {
			return nil, err
		}
		outputs[i] = h
	}

	op := g.AddOperator(kind)
	for _, h := range inputs {
		op.AddInput(h)
	}
	for _, h := range outputs {
		op.AddOutput(h)
	}
	return op, nil
}

// HardSigmoid defaults, matching the operator's conventional definition
// y = max(0, min(1, alpha*x + beta)).
const (
	hardSigmoidDefaultAlpha = 0.2
	hardSigmoidDefaultBeta  = 0.5
)

// hardSigmoidLower is the attribute-carrying pattern: a unary operator
// whose alpha/beta attributes are copied from the source node, with
// defaults when absent.
type hardSigmoidLower struct{}

// NewHardSigmoidLower creates the standard HardSigmoid lower.
func NewHardSigmoidLower() Lower { return &hardSigmoidLower{} }

func (*hardSigmoidLower) Name() string     { return "HardSigmoidLower" }
func (*hardSigmoidLower) OpKind() ir.OpKind { return ir.OpHardSigmoid }

func (*hardSigmoidLower) Match(node *source.Node) int {
	if node.Kind == string(ir.OpHardSigmoid) {
		return ScoreStandard
	}
	return ScoreNotMe
}

func (l *hardSigmoidLower) Build(g *ir.Graph, node *source.Node) (*ir.Operator, error) {
	op, err := buildWired(g, node, ir.OpHardSigmoid, 1, 1)
	if err != nil {
		return nil, err
	}

	alpha, err := floatAttrOr(node.Attrs, "alpha", hardSigmoidDefaultAlpha)
	if err != nil {
		return nil, err
	}
	beta, err := floatAttrOr(node.Attrs, "beta", hardSigmoidDefaultBeta)
	if err != nil {
		return nil, err
	}
	op.SetAttr("alpha", ir.NewFloatAttr(alpha))
	op.SetAttr("beta", ir.NewFloatAttr(beta))
	return op, nil
}

// floatAttrOr reads a scalar float attribute, falling back to def when the
// name is absent. A present attribute of the wrong kind is a hard error:
// the source attribute bag is malformed, not merely unsupported.
func floatAttrOr(attrs ir.Attributes, name string, def float64) (float64, error) {
	a, ok := attrs[name]
	if !ok {
		return def, nil
	}
	f, err := ir.As[*ir.FloatAttr](a)
	if err != nil {
		return 0, err
	}
	return f.Value(), nil
}
