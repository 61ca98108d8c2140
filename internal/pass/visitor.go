package pass

import (
	"fmt"

	"github.com/ccu1tn/onnc/internal/ir"
)

// VisitFunc is a per-operator-kind effect applied by a visitor-based pass.
type VisitFunc func(op *ir.Operator) error

// DefaultPolicy decides what a visitor does with an operator kind that has
// no registered handler.
type DefaultPolicy uint8

const (
	// DefaultSkip treats unhandled kinds as a no-op.
	DefaultSkip DefaultPolicy = iota
	// DefaultFail treats unhandled kinds as a pass failure.
	DefaultFail
)

// UnhandledKindError reports an operator kind reaching a DefaultFail
// visitor without a handler.
type UnhandledKindError struct {
	Kind ir.OpKind
}

func (e *UnhandledKindError) Error() string {
	return fmt.Sprintf("no visit handler for operator kind %q", e.Kind)
}

// Visitor dispatches operators to per-kind handlers. It replaces
// double-dispatch with a closed handler table: for every visited operator
// exactly one handler is invoked, or the default policy applies. Backends
// add per-kind effects by registering handlers, without the enclosing pass
// enumerating operator types.
type Visitor struct {
	policy   DefaultPolicy
	handlers map[ir.OpKind]VisitFunc
}

// NewVisitor creates a visitor with the given default policy and no
// handlers.
func NewVisitor(policy DefaultPolicy) *Visitor {
	return &Visitor{policy: policy, handlers: make(map[ir.OpKind]VisitFunc)}
}

// Handle registers the handler for an operator kind. Registering the same
// kind again replaces the previous handler, preserving the one-handler-per-
// kind guarantee.
func (v *Visitor) Handle(kind ir.OpKind, fn VisitFunc) {
	v.handlers[kind] = fn
}

// Visit dispatches one operator. It reports whether a handler ran, so a
// pass can derive its change verdict, and returns the handler's error or
// an UnhandledKindError under DefaultFail.
func (v *Visitor) Visit(op *ir.Operator) (bool, error) {
	if fn, ok := v.handlers[op.Kind()]; ok {
		return true, fn(op)
	}
	if v.policy == DefaultFail {
		return false, &UnhandledKindError{Kind: op.Kind()}
	}
	return false, nil
}
