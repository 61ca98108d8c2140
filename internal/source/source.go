package source

import (
	"fmt"

	"github.com/ccu1tn/onnc/internal/ir"
)

// Position locates a node in the file it was parsed from, for diagnostics.
// A zero Position means the front end had no location information.
type Position struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries any location information.
func (p Position) IsValid() bool { return p.File != "" || p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// ValueRef is a source node's handle to a named value. A ref without a
// unique name cannot be wired into a compute graph; lowering strategies
// must decline such nodes.
type ValueRef struct {
	name string
}

// NewValueRef creates a value reference. An empty name yields a ref with
// no unique name.
func NewValueRef(name string) ValueRef { return ValueRef{name: name} }

// HasUniqueName reports whether the referenced value carries a resolvable
// unique name.
func (v ValueRef) HasUniqueName() bool { return v.name != "" }

// UniqueName returns the referenced value's name. Only meaningful when
// HasUniqueName is true.
func (v ValueRef) UniqueName() string { return v.name }

// Node is one operator occurrence in the source graph: a symbolic kind,
// ordered input and output value references, and zero or more attributes.
type Node struct {
	Kind    string
	Inputs  []ValueRef
	Outputs []ValueRef
	Attrs   ir.Attributes
	Pos     Position
}

// Graph is the source operator graph plus the value declarations used to
// pre-populate the destination compute graph's value table before any node
// is lowered.
type Graph struct {
	Name   string
	Values []ir.Tensor
	Nodes  []*Node
}
