package frontend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// yamlFile mirrors the CUE layout so the same graphs can be expressed in
// either format. YAML carries no position info beyond the node line, so
// diagnostics from this path are coarser than the CUE ones.
type yamlFile struct {
	Graph yamlGraph `yaml:"graph"`
}

type yamlGraph struct {
	Name   string       `yaml:"name"`
	Values []yamlTensor `yaml:"values"`
	Nodes  []yamlNode   `yaml:"nodes"`
}

type yamlTensor struct {
	Name  string  `yaml:"name"`
	DType string  `yaml:"dtype"`
	Dims  []int64 `yaml:"dims"`
}

type yamlNode struct {
	Kind    string         `yaml:"kind"`
	Inputs  []string       `yaml:"inputs"`
	Outputs []string       `yaml:"outputs"`
	Attrs   map[string]any `yaml:"attrs"`
	line    int
}

// UnmarshalYAML records the node's line for diagnostics before decoding
// the fields themselves.
func (n *yamlNode) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = yamlNode(p)
	n.line = value.Line
	return nil
}

// LoadYAML reads and parses a YAML source-graph file.
func LoadYAML(path string) (*source.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseYAML(data, path)
}

// ParseYAML parses YAML source-graph content.
func ParseYAML(data []byte, filename string) (*source.Graph, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{File: filename, Field: "graph", Message: err.Error()}
	}
	if file.Graph.Name == "" {
		return nil, &ParseError{File: filename, Field: "graph.name", Message: "name is required"}
	}

	g := &source.Graph{Name: file.Graph.Name}

	for _, yt := range file.Graph.Values {
		if yt.Name == "" {
			return nil, &ParseError{File: filename, Field: "values.name", Message: "name is required"}
		}
		dtype, err := ir.ParseDType(yt.DType)
		if err != nil {
			return nil, &ParseError{File: filename, Field: "values.dtype", Message: err.Error()}
		}
		g.Values = append(g.Values, ir.Tensor{Name: yt.Name, DType: dtype, Dims: yt.Dims})
	}

	for _, yn := range file.Graph.Nodes {
		if yn.Kind == "" {
			return nil, &ParseError{File: filename, Field: "nodes.kind", Message: "kind is required", Line: yn.line}
		}
		node := &source.Node{
			Kind: yn.Kind,
			Pos:  source.Position{File: filename, Line: yn.line},
		}
		for _, in := range yn.Inputs {
			node.Inputs = append(node.Inputs, source.NewValueRef(in))
		}
		for _, out := range yn.Outputs {
			node.Outputs = append(node.Outputs, source.NewValueRef(out))
		}
		if len(yn.Attrs) > 0 {
			node.Attrs = make(ir.Attributes, len(yn.Attrs))
			for name, raw := range yn.Attrs {
				attr, err := yamlAttr(raw)
				if err != nil {
					return nil, &ParseError{File: filename, Field: "nodes.attrs." + name, Message: err.Error(), Line: yn.line}
				}
				node.Attrs[name] = attr
			}
		}
		g.Nodes = append(g.Nodes, node)
	}

	return g, nil
}

// yamlAttr maps a decoded YAML scalar or list to an attribute. yaml.v3
// decodes untagged scalars as int, float64, string, or bool; bool has no
// attribute kind and is rejected.
func yamlAttr(raw any) (ir.Attribute, error) {
	switch v := raw.(type) {
	case int:
		return ir.NewIntAttr(int64(v)), nil
	case int64:
		return ir.NewIntAttr(v), nil
	case float64:
		return ir.NewFloatAttr(v), nil
	case string:
		return ir.NewStringAttr(v), nil
	case []any:
		return yamlVectorAttr(v)
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", raw)
	}
}

func yamlVectorAttr(elems []any) (ir.Attribute, error) {
	if len(elems) == 0 {
		return ir.NewIntsAttr(), nil
	}
	switch elems[0].(type) {
	case int, int64:
		vals := make([]int64, len(elems))
		for i, e := range elems {
			switch n := e.(type) {
			case int:
				vals[i] = int64(n)
			case int64:
				vals[i] = n
			default:
				return nil, fmt.Errorf("mixed element types in list attribute")
			}
		}
		return ir.NewIntsAttr(vals...), nil
	case float64:
		vals := make([]float64, len(elems))
		for i, e := range elems {
			f, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("mixed element types in list attribute")
			}
			vals[i] = f
		}
		return ir.NewFloatsAttr(vals...), nil
	case string:
		vals := make([]string, len(elems))
		for i, e := range elems {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("mixed element types in list attribute")
			}
			vals[i] = s
		}
		return ir.NewStringsAttr(vals...), nil
	default:
		return nil, fmt.Errorf("unsupported attribute element type %T", elems[0])
	}
}
