package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
	"github.com/ccu1tn/onnc/internal/stats"
)

func calibrationGraph(t *testing.T) *ir.Graph {
	t.Helper()
	g := ir.NewGraph("main")
	hx, err := g.AddValue(ir.Tensor{Name: "x", DType: ir.Float32})
	require.NoError(t, err)
	hy, err := g.AddValue(ir.Tensor{Name: "y", DType: ir.Float32})
	require.NoError(t, err)
	hz, err := g.AddValue(ir.Tensor{Name: "z", DType: ir.Float32})
	require.NoError(t, err)

	abs := g.AddOperator(ir.OpAbs)
	abs.AddInput(hx)
	abs.AddOutput(hy)

	relu := g.AddOperator(ir.OpRelu)
	relu.AddInput(hy)
	relu.AddOutput(hz)
	return g
}

func TestCalibrationPassWritesDefaults(t *testing.T) {
	table := stats.NewGroup()
	p := NewCalibrationPass(table, ir.OpAbs, ir.OpRelu)

	res, err := p.Run(&source.Graph{}, calibrationGraph(t))
	require.NoError(t, err)
	assert.Equal(t, Changed, res)

	y, ok := table.Group("y")
	require.True(t, ok)
	assert.Equal(t, int64(128), y.EntryInt("threshold", 0))
	assert.Equal(t, "Abs", y.EntryString("kind", ""))

	z, ok := table.Group("z")
	require.True(t, ok)
	assert.Equal(t, "Relu", z.EntryString("kind", ""))
}

func TestCalibrationPassPreservesTunedEntries(t *testing.T) {
	table := stats.NewGroup()
	require.NoError(t, table.AddGroup("y").WriteEntry("threshold", 96))

	p := NewCalibrationPass(table, ir.OpAbs, ir.OpRelu)
	_, err := p.Run(&source.Graph{}, calibrationGraph(t))
	require.NoError(t, err)

	y, _ := table.Group("y")
	assert.Equal(t, int64(96), y.EntryInt("threshold", 0), "tuned threshold must survive")
}

func TestCalibrationPassEmptyGraph(t *testing.T) {
	p := NewCalibrationPass(stats.NewGroup(), ir.OpAbs)
	res, err := p.Run(&source.Graph{}, ir.NewGraph("empty"))
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
}

func TestCalibrationPassUnhandledKindsSkip(t *testing.T) {
	table := stats.NewGroup()
	// Only Abs is calibrated; the Relu operator passes through untouched.
	p := NewCalibrationPass(table, ir.OpAbs)

	res, err := p.Run(&source.Graph{}, calibrationGraph(t))
	require.NoError(t, err)
	assert.Equal(t, Changed, res)
	assert.False(t, table.HasGroup("z"))
}
