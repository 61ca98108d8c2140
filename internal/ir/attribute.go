package ir

import (
	"fmt"
	"slices"
)

// AttrKind identifies the payload type bound to an attribute.
// The kind is fixed when the attribute is constructed and is preserved
// through Clone; there is no way to change it afterwards.
type AttrKind uint8

const (
	KindFloat AttrKind = iota
	KindInteger
	KindString
	KindTensor
	KindGraph
	KindFloatVec
	KindIntegerVec
	KindStringVec
	KindTensorVec
	KindGraphVec
)

var attrKindNames = map[AttrKind]string{
	KindFloat:      "float",
	KindInteger:    "integer",
	KindString:     "string",
	KindTensor:     "tensor",
	KindGraph:      "graph",
	KindFloatVec:   "floats",
	KindIntegerVec: "integers",
	KindStringVec:  "strings",
	KindTensorVec:  "tensors",
	KindGraphVec:   "graphs",
}

func (k AttrKind) String() string {
	if name, ok := attrKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("AttrKind(%d)", uint8(k))
}

// Attribute is a sealed interface over the ten concrete attribute types:
// {float, integer, string, tensor, graph} x {scalar, vector}.
//
// Consumers must inspect Kind() and then downcast to the matching concrete
// type, either with a type switch or with the checked As helper. Each
// concrete type binds exactly one kind, so a mismatched downcast can never
// silently reinterpret another kind's payload.
type Attribute interface {
	Kind() AttrKind

	// Clone returns a deep copy. Attributes are value-like: copying
	// duplicates the payload, never shares it.
	Clone() Attribute

	attribute() // sealed
}

// KindMismatchError reports a checked downcast to the wrong concrete
// attribute type.
type KindMismatchError struct {
	Want AttrKind
	Got  AttrKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("attribute kind mismatch: want %s, got %s", e.Want, e.Got)
}

// As performs a checked downcast of an attribute to a concrete type.
// Returns a KindMismatchError when the attribute binds a different kind.
//
//	alpha, err := ir.As[*ir.FloatAttr](attr)
func As[A Attribute](a Attribute) (A, error) {
	concrete, ok := a.(A)
	if !ok {
		var want A
		return want, &KindMismatchError{Want: want.Kind(), Got: a.Kind()}
	}
	return concrete, nil
}

// FloatAttr is a scalar float attribute.
type FloatAttr struct{ value float64 }

// NewFloatAttr creates a scalar float attribute.
func NewFloatAttr(v float64) *FloatAttr { return &FloatAttr{value: v} }

func (a *FloatAttr) Kind() AttrKind   { return KindFloat }
func (a *FloatAttr) Value() float64   { return a.value }
func (a *FloatAttr) SetValue(v float64) { a.value = v }
func (a *FloatAttr) Clone() Attribute { return &FloatAttr{value: a.value} }
func (*FloatAttr) attribute()         {}

// IntAttr is a scalar integer attribute. Always int64.
type IntAttr struct{ value int64 }

// NewIntAttr creates a scalar integer attribute.
func NewIntAttr(v int64) *IntAttr { return &IntAttr{value: v} }

func (a *IntAttr) Kind() AttrKind    { return KindInteger }
func (a *IntAttr) Value() int64      { return a.value }
func (a *IntAttr) SetValue(v int64)  { a.value = v }
func (a *IntAttr) Clone() Attribute  { return &IntAttr{value: a.value} }
func (*IntAttr) attribute()          {}

// StringAttr is a scalar string attribute.
type StringAttr struct{ value string }

// NewStringAttr creates a scalar string attribute.
func NewStringAttr(v string) *StringAttr { return &StringAttr{value: v} }

func (a *StringAttr) Kind() AttrKind   { return KindString }
func (a *StringAttr) Value() string    { return a.value }
func (a *StringAttr) SetValue(v string) { a.value = v }
func (a *StringAttr) Clone() Attribute { return &StringAttr{value: a.value} }
func (*StringAttr) attribute()         {}

// TensorAttr is a scalar tensor attribute. The tensor payload is embedded
// by value; the attribute does not alias any graph's value table.
type TensorAttr struct{ value Tensor }

// NewTensorAttr creates a scalar tensor attribute. The tensor is copied.
func NewTensorAttr(v Tensor) *TensorAttr { return &TensorAttr{value: v.Clone()} }

func (a *TensorAttr) Kind() AttrKind    { return KindTensor }
func (a *TensorAttr) Value() Tensor     { return a.value }
func (a *TensorAttr) SetValue(v Tensor) { a.value = v.Clone() }
func (a *TensorAttr) Clone() Attribute  { return &TensorAttr{value: a.value.Clone()} }
func (*TensorAttr) attribute()          {}

// GraphAttr is a scalar graph attribute holding a nested compute graph
// (control-flow operators carry their subgraph bodies this way).
// The attribute owns its graph payload.
type GraphAttr struct{ value *Graph }

// NewGraphAttr creates a scalar graph attribute. The graph is deep-copied
// so the attribute never shares ownership with the caller.
func NewGraphAttr(g *Graph) *GraphAttr { return &GraphAttr{value: g.Clone()} }

func (a *GraphAttr) Kind() AttrKind    { return KindGraph }
func (a *GraphAttr) Value() *Graph     { return a.value }
func (a *GraphAttr) SetValue(g *Graph) { a.value = g.Clone() }
func (a *GraphAttr) Clone() Attribute  { return &GraphAttr{value: a.value.Clone()} }
func (*GraphAttr) attribute()          {}

// FloatsAttr is a vector float attribute.
type FloatsAttr struct{ values []float64 }

// NewFloatsAttr creates a vector float attribute. The slice is copied.
func NewFloatsAttr(vs ...float64) *FloatsAttr {
	return &FloatsAttr{values: slices.Clone(vs)}
}

func (a *FloatsAttr) Kind() AttrKind    { return KindFloatVec }
func (a *FloatsAttr) Vector() []float64 { return a.values }
func (a *FloatsAttr) Clone() Attribute  { return &FloatsAttr{values: slices.Clone(a.values)} }
func (*FloatsAttr) attribute()          {}

// IntsAttr is a vector integer attribute.
type IntsAttr struct{ values []int64 }

// NewIntsAttr creates a vector integer attribute. The slice is copied.
func NewIntsAttr(vs ...int64) *IntsAttr {
	return &IntsAttr{values: slices.Clone(vs)}
}

func (a *IntsAttr) Kind() AttrKind   { return KindIntegerVec }
func (a *IntsAttr) Vector() []int64  { return a.values }
func (a *IntsAttr) Clone() Attribute { return &IntsAttr{values: slices.Clone(a.values)} }
func (*IntsAttr) attribute()         {}

// StringsAttr is a vector string attribute.
type StringsAttr struct{ values []string }

// NewStringsAttr creates a vector string attribute. The slice is copied.
func NewStringsAttr(vs ...string) *StringsAttr {
	return &StringsAttr{values: slices.Clone(vs)}
}

func (a *StringsAttr) Kind() AttrKind   { return KindStringVec }
func (a *StringsAttr) Vector() []string { return a.values }
func (a *StringsAttr) Clone() Attribute { return &StringsAttr{values: slices.Clone(a.values)} }
func (*StringsAttr) attribute()         {}

// TensorsAttr is a vector tensor attribute.
type TensorsAttr struct{ values []Tensor }

// NewTensorsAttr creates a vector tensor attribute. Every tensor is copied.
func NewTensorsAttr(vs ...Tensor) *TensorsAttr {
	return &TensorsAttr{values: cloneTensors(vs)}
}

func (a *TensorsAttr) Kind() AttrKind   { return KindTensorVec }
func (a *TensorsAttr) Vector() []Tensor { return a.values }
func (a *TensorsAttr) Clone() Attribute { return &TensorsAttr{values: cloneTensors(a.values)} }
func (*TensorsAttr) attribute()         {}

// GraphsAttr is a vector graph attribute.
type GraphsAttr struct{ values []*Graph }

// NewGraphsAttr creates a vector graph attribute. Every graph is deep-copied.
func NewGraphsAttr(vs ...*Graph) *GraphsAttr {
	return &GraphsAttr{values: cloneGraphs(vs)}
}

func (a *GraphsAttr) Kind() AttrKind   { return KindGraphVec }
func (a *GraphsAttr) Vector() []*Graph { return a.values }
func (a *GraphsAttr) Clone() Attribute { return &GraphsAttr{values: cloneGraphs(a.values)} }
func (*GraphsAttr) attribute()         {}

func cloneTensors(ts []Tensor) []Tensor {
	out := make([]Tensor, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}
	return out
}

func cloneGraphs(gs []*Graph) []*Graph {
	out := make([]*Graph, len(gs))
	for i, g := range gs {
		out[i] = g.Clone()
	}
	return out
}

// Attributes is a named attribute bag attached to operators and source nodes.
type Attributes map[string]Attribute

// SortedNames returns attribute names in lexicographic order for
// deterministic iteration.
func (as Attributes) SortedNames() []string {
	names := make([]string, 0, len(as))
	for name := range as {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone deep-copies the bag and every attribute in it.
func (as Attributes) Clone() Attributes {
	if as == nil {
		return nil
	}
	out := make(Attributes, len(as))
	for name, a := range as {
		out[name] = a.Clone()
	}
	return out
}
