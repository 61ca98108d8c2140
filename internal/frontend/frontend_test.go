package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccu1tn/onnc/internal/ir"
)

const cueGraph = `
graph: {
	name: "demo"
	values: [
		{name: "x", dtype: "float32", dims: [1, 3]},
		{name: "y", dtype: "float32", dims: [1, 3]},
	]
	nodes: [
		{
			kind:    "HardSigmoid"
			inputs:  ["x"]
			outputs: ["y"]
			attrs: {
				alpha: 0.2
				beta:  0.5
			}
		},
	]
}
`

func TestParseCUE(t *testing.T) {
	g, err := ParseCUE([]byte(cueGraph), "demo.cue")
	require.NoError(t, err)

	assert.Equal(t, "demo", g.Name)
	require.Len(t, g.Values, 2)
	assert.Equal(t, "x", g.Values[0].Name)
	assert.Equal(t, ir.Float32, g.Values[0].DType)
	assert.Equal(t, []int64{1, 3}, g.Values[0].Dims)

	require.Len(t, g.Nodes, 1)
	node := g.Nodes[0]
	assert.Equal(t, "HardSigmoid", node.Kind)
	require.Len(t, node.Inputs, 1)
	assert.Equal(t, "x", node.Inputs[0].UniqueName())
	require.Len(t, node.Outputs, 1)
	assert.Equal(t, "y", node.Outputs[0].UniqueName())

	alpha, err := ir.As[*ir.FloatAttr](node.Attrs["alpha"])
	require.NoError(t, err)
	assert.InDelta(t, 0.2, alpha.Value(), 1e-9)

	assert.Equal(t, "demo.cue", node.Pos.File)
	assert.Greater(t, node.Pos.Line, 0)
}

func TestParseCUEAttrKinds(t *testing.T) {
	src := `
graph: {
	name: "attrs"
	nodes: [
		{
			kind:    "Custom"
			outputs: ["out"]
			attrs: {
				count:  4
				rate:   1.5
				mode:   "fast"
				axes:   [0, 2]
				scales: [0.5, 2.0]
				tags:   ["a", "b"]
			}
		},
	]
}
`
	g, err := ParseCUE([]byte(src), "attrs.cue")
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	attrs := g.Nodes[0].Attrs

	tests := []struct {
		name string
		kind ir.AttrKind
	}{
		{"count", ir.KindInteger},
		{"rate", ir.KindFloat},
		{"mode", ir.KindString},
		{"axes", ir.KindIntegerVec},
		{"scales", ir.KindFloatVec},
		{"tags", ir.KindStringVec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, ok := attrs[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.kind, attr.Kind())
		})
	}

	axes, err := ir.As[*ir.IntsAttr](attrs["axes"])
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, axes.Vector())
}

func TestParseCUEErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"missing graph", `other: 1`, "graph"},
		{"missing name", `graph: {values: []}`, "graph.name"},
		{"missing value name", `graph: {name: "g", values: [{dtype: "float32"}]}`, "values.name"},
		{"bad dtype", `graph: {name: "g", values: [{name: "x", dtype: "float99"}]}`, "values.dtype"},
		{"missing kind", `graph: {name: "g", nodes: [{outputs: ["y"]}]}`, "nodes.kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCUE([]byte(tt.src), "bad.cue")
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestParseCUESyntaxErrorHasPosition(t *testing.T) {
	_, err := ParseCUE([]byte("graph: {\n\tname: \"g\"\n\tname: 3\n}"), "conflict.cue")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Message)
}

const yamlGraphSrc = `
graph:
  name: demo
  values:
    - {name: x, dtype: float32, dims: [1, 3]}
    - {name: y, dtype: float32, dims: [1, 3]}
  nodes:
    - kind: HardSigmoid
      inputs: [x]
      outputs: [y]
      attrs:
        alpha: 0.2
        beta: 0.5
`

func TestParseYAML(t *testing.T) {
	g, err := ParseYAML([]byte(yamlGraphSrc), "demo.yaml")
	require.NoError(t, err)

	assert.Equal(t, "demo", g.Name)
	require.Len(t, g.Values, 2)
	assert.Equal(t, ir.Float32, g.Values[1].DType)

	require.Len(t, g.Nodes, 1)
	node := g.Nodes[0]
	assert.Equal(t, "HardSigmoid", node.Kind)
	assert.Equal(t, "demo.yaml", node.Pos.File)
	assert.Greater(t, node.Pos.Line, 0)

	beta, err := ir.As[*ir.FloatAttr](node.Attrs["beta"])
	require.NoError(t, err)
	assert.InDelta(t, 0.5, beta.Value(), 1e-9)
}

func TestParseYAMLAttrKinds(t *testing.T) {
	src := `
graph:
  name: attrs
  nodes:
    - kind: Custom
      outputs: [out]
      attrs:
        count: 4
        rate: 1.5
        mode: fast
        axes: [0, 2]
`
	g, err := ParseYAML([]byte(src), "attrs.yaml")
	require.NoError(t, err)
	attrs := g.Nodes[0].Attrs

	assert.Equal(t, ir.KindInteger, attrs["count"].Kind())
	assert.Equal(t, ir.KindFloat, attrs["rate"].Kind())
	assert.Equal(t, ir.KindString, attrs["mode"].Kind())
	assert.Equal(t, ir.KindIntegerVec, attrs["axes"].Kind())
}

func TestParseYAMLRejectsBoolAttr(t *testing.T) {
	src := `
graph:
  name: attrs
  nodes:
    - kind: Custom
      outputs: [out]
      attrs:
        flag: true
`
	_, err := ParseYAML([]byte(src), "attrs.yaml")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "nodes.attrs.flag", perr.Field)
}

func TestParseYAMLMissingName(t *testing.T) {
	_, err := ParseYAML([]byte("graph:\n  nodes: []\n"), "noname.yaml")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "graph.name", perr.Field)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("graph.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source format")
}
