package ir

import "slices"

// OpKind is the symbolic kind of a compute operator.
type OpKind string

// Operator kinds with standard lowering rules. Backends may define further
// kinds; OpKind is an open string so a handler table can key on any of them.
const (
	OpAbs         OpKind = "Abs"
	OpRelu        OpKind = "Relu"
	OpSoftplus    OpKind = "Softplus"
	OpHardSigmoid OpKind = "HardSigmoid"
	OpAdd         OpKind = "Add"
	OpMul         OpKind = "Mul"
)

// Operator is a typed node in a compute graph. Operators are created only
// through Graph.AddOperator and are owned by that graph for their whole
// lifetime; they never outlive it and are never shared between graphs.
//
// Inputs and outputs are ordered handles into the owning graph's value
// table. Handles are obtained from the graph itself (AddValue, ValueByName),
// so a wired reference always resolves.
type Operator struct {
	kind    OpKind
	graph   *Graph
	inputs  []ValueHandle
	outputs []ValueHandle
	attrs   Attributes
}

// Kind returns the operator's symbolic kind.
func (o *Operator) Kind() OpKind { return o.kind }

// AddInput appends a value reference to the ordered input list.
func (o *Operator) AddInput(h ValueHandle) { o.inputs = append(o.inputs, h) }

// AddOutput appends a value reference to the ordered output list.
func (o *Operator) AddOutput(h ValueHandle) { o.outputs = append(o.outputs, h) }

// Inputs returns the ordered input handles.
func (o *Operator) Inputs() []ValueHandle { return o.inputs }

// Outputs returns the ordered output handles.
func (o *Operator) Outputs() []ValueHandle { return o.outputs }

// NumInputs returns the input count.
func (o *Operator) NumInputs() int { return len(o.inputs) }

// NumOutputs returns the output count.
func (o *Operator) NumOutputs() int { return len(o.outputs) }

// Input resolves the i-th input through the owning graph's value table.
func (o *Operator) Input(i int) *Tensor { return o.graph.Value(o.inputs[i]) }

// Output resolves the i-th output through the owning graph's value table.
func (o *Operator) Output(i int) *Tensor { return o.graph.Value(o.outputs[i]) }

// SetAttr attaches an attribute under the given name, replacing any
// previous attribute with that name.
func (o *Operator) SetAttr(name string, a Attribute) {
	if o.attrs == nil {
		o.attrs = make(Attributes)
	}
	o.attrs[name] = a
}

// Attr returns the named attribute, if present.
func (o *Operator) Attr(name string) (Attribute, bool) {
	a, ok := o.attrs[name]
	return a, ok
}

// Attrs returns the operator's attribute bag. May be nil.
func (o *Operator) Attrs() Attributes { return o.attrs }

// cloneInto duplicates the operator into dst. Handles are copied verbatim:
// a graph clone preserves value-table order, so the indices stay valid.
func (o *Operator) cloneInto(dst *Graph) *Operator {
	return &Operator{
		kind:    o.kind,
		graph:   dst,
		inputs:  slices.Clone(o.inputs),
		outputs: slices.Clone(o.outputs),
		attrs:   o.attrs.Clone(),
	}
}
