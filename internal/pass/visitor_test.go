package pass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccu1tn/onnc/internal/ir"
)

// mixedGraph builds a graph with 2 Abs, 1 Relu, and 1 Add operator.
func mixedGraph() *ir.Graph {
	g := ir.NewGraph("main")
	g.AddOperator(ir.OpAbs)
	g.AddOperator(ir.OpRelu)
	g.AddOperator(ir.OpAbs)
	g.AddOperator(ir.OpAdd)
	return g
}

func TestVisitorExactlyOneHandler(t *testing.T) {
	counts := make(map[ir.OpKind]int)
	v := NewVisitor(DefaultSkip)
	v.Handle(ir.OpAbs, func(op *ir.Operator) error {
		counts[ir.OpAbs]++
		return nil
	})
	v.Handle(ir.OpRelu, func(op *ir.Operator) error {
		counts[ir.OpRelu]++
		return nil
	})

	g := mixedGraph()
	handledTotal := 0
	for _, op := range g.Operators() {
		handled, err := v.Visit(op)
		require.NoError(t, err)
		if handled {
			handledTotal++
		}
	}

	// Each operator of a handled kind dispatched to exactly one handler;
	// the Add operator was skipped, not double-counted anywhere.
	assert.Equal(t, 2, counts[ir.OpAbs])
	assert.Equal(t, 1, counts[ir.OpRelu])
	assert.Equal(t, 3, handledTotal)
}

func TestVisitorHandlerReplacement(t *testing.T) {
	first, second := 0, 0
	v := NewVisitor(DefaultSkip)
	v.Handle(ir.OpAbs, func(op *ir.Operator) error { first++; return nil })
	v.Handle(ir.OpAbs, func(op *ir.Operator) error { second++; return nil })

	g := ir.NewGraph("main")
	op := g.AddOperator(ir.OpAbs)
	handled, err := v.Visit(op)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestVisitorDefaultSkip(t *testing.T) {
	v := NewVisitor(DefaultSkip)
	g := ir.NewGraph("main")
	handled, err := v.Visit(g.AddOperator(ir.OpMul))
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestVisitorDefaultFail(t *testing.T) {
	v := NewVisitor(DefaultFail)
	g := ir.NewGraph("main")
	_, err := v.Visit(g.AddOperator(ir.OpMul))
	require.Error(t, err)

	var unhandled *UnhandledKindError
	require.ErrorAs(t, err, &unhandled)
	assert.Equal(t, ir.OpMul, unhandled.Kind)
}

func TestVisitorHandlerError(t *testing.T) {
	boom := errors.New("table write rejected")
	v := NewVisitor(DefaultSkip)
	v.Handle(ir.OpAbs, func(op *ir.Operator) error { return boom })

	g := ir.NewGraph("main")
	handled, err := v.Visit(g.AddOperator(ir.OpAbs))
	assert.True(t, handled)
	assert.ErrorIs(t, err, boom)
}
