package ir

import (
	"errors"
	"fmt"
)

// ValueHandle is a stable index into a graph's value table. Handles remain
// valid as the table grows; resolve them through Graph.Value at use time
// instead of holding tensor pointers across mutations.
type ValueHandle int32

// UnknownValueError reports a reference to a value name that is absent from
// a graph's value table. This is the wiring invariant violation: it means an
// earlier stage failed to pre-populate the table, so the current compilation
// must be aborted rather than continue building an inconsistent graph.
type UnknownValueError struct {
	Graph string
	Name  string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("graph %q has no value named %q", e.Graph, e.Name)
}

// IsWiringViolation reports whether err is (or wraps) an UnknownValueError.
func IsWiringViolation(err error) bool {
	var uve *UnknownValueError
	return errors.As(err, &uve)
}

// Graph is the compute graph: an arena owning a set of operators and the
// named value table they are wired to. Operators are kept in creation order,
// which is also the iteration order consumed by visitor-based passes.
//
// A Graph is not safe for concurrent mutation. The pipeline mutates one
// graph from one goroutine at a time; independent graphs may be compiled
// concurrently.
type Graph struct {
	name   string
	values []Tensor
	byName map[string]ValueHandle
	ops    []*Operator
}

// NewGraph creates an empty compute graph.
func NewGraph(name string) *Graph {
	return &Graph{
		name:   name,
		byName: make(map[string]ValueHandle),
	}
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// AddValue registers a named tensor in the value table and returns its
// handle. Names are unique per graph; registering a duplicate fails.
func (g *Graph) AddValue(t Tensor) (ValueHandle, error) {
	if t.Name == "" {
		return 0, fmt.Errorf("graph %q: value must have a name", g.name)
	}
	if _, exists := g.byName[t.Name]; exists {
		return 0, fmt.Errorf("graph %q: value %q already defined", g.name, t.Name)
	}
	h := ValueHandle(len(g.values))
	g.values = append(g.values, t.Clone())
	g.byName[t.Name] = h
	return h, nil
}

// ValueByName looks up the handle for a named value. An unknown name is the
// fatal wiring violation; callers must abort the compilation, not skip it.
func (g *Graph) ValueByName(name string) (ValueHandle, error) {
	h, ok := g.byName[name]
	if !ok {
		return 0, &UnknownValueError{Graph: g.name, Name: name}
	}
	return h, nil
}

// HasValue reports whether a value with the given name is registered.
func (g *Graph) HasValue(name string) bool {
	_, ok := g.byName[name]
	return ok
}

// Value resolves a handle to its tensor descriptor. The pointer is valid
// until the next AddValue call; passes that mutate descriptors in place
// should re-resolve rather than retain it. Panics on a handle that did not
// come from this graph.
func (g *Graph) Value(h ValueHandle) *Tensor {
	if h < 0 || int(h) >= len(g.values) {
		panic(fmt.Sprintf("graph %q: value handle %d out of range", g.name, h))
	}
	return &g.values[h]
}

// NumValues returns the value-table size.
func (g *Graph) NumValues() int { return len(g.values) }

// ValuesInOrder returns the value table in registration order.
func (g *Graph) ValuesInOrder() []Tensor { return g.values }

// AddOperator creates a new operator of the given kind, owned by this graph.
// This is the exclusive creation entry point: lowering strategies build
// operators through it so the graph, not the strategy, owns the node.
func (g *Graph) AddOperator(kind OpKind) *Operator {
	op := &Operator{kind: kind, graph: g}
	g.ops = append(g.ops, op)
	return op
}

// Operators returns all owned operators in stable creation order.
func (g *Graph) Operators() []*Operator { return g.ops }

// NumOperators returns the operator count.
func (g *Graph) NumOperators() int { return len(g.ops) }

// Clone deep-copies the graph: value table, operators, and attribute
// payloads. Graph-valued attributes use this so nested graphs are owned,
// never shared.
func (g *Graph) Clone() *Graph {
	out := NewGraph(g.name)
	out.values = cloneTensors(g.values)
	for name, h := range g.byName {
		out.byName[name] = h
	}
	out.ops = make([]*Operator, len(g.ops))
	for i, op := range g.ops {
		out.ops[i] = op.cloneInto(out)
	}
	return out
}
