package frontend

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/source"
)

// LoadCUE reads and parses a CUE source-graph file.
func LoadCUE(path string) (*source.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseCUE(data, path)
}

// ParseCUE parses CUE source-graph content. Uses the CUE SDK's Go API
// directly (not a CLI subprocess); filename is used for positions in
// diagnostics.
func ParseCUE(data []byte, filename string) (*source.Graph, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(data, cue.Filename(filename))
	if err := root.Err(); err != nil {
		return nil, formatCUEError(filename, err)
	}

	gv := root.LookupPath(cue.ParsePath("graph"))
	if !gv.Exists() {
		return nil, &ParseError{File: filename, Field: "graph", Message: "graph is required"}
	}

	g := &source.Graph{}

	nameVal := gv.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &ParseError{File: filename, Field: "graph.name", Message: "name is required"}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(filename, err)
	}
	g.Name = name

	// Value declarations (optional, can be empty).
	valuesVal := gv.LookupPath(cue.ParsePath("values"))
	if valuesVal.Exists() {
		iter, err := valuesVal.List()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		for iter.Next() {
			tensor, err := parseCUETensor(filename, iter.Value())
			if err != nil {
				return nil, err
			}
			g.Values = append(g.Values, tensor)
		}
	}

	// Operator nodes (optional, can be empty).
	nodesVal := gv.LookupPath(cue.ParsePath("nodes"))
	if nodesVal.Exists() {
		iter, err := nodesVal.List()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		for iter.Next() {
			node, err := parseCUENode(filename, iter.Value())
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, node)
		}
	}

	return g, nil
}

func parseCUETensor(filename string, v cue.Value) (ir.Tensor, error) {
	var t ir.Tensor

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return t, cueFieldError(filename, v, "values.name", "name is required")
	}
	name, err := nameVal.String()
	if err != nil {
		return t, formatCUEError(filename, err)
	}
	t.Name = name

	dtypeVal := v.LookupPath(cue.ParsePath("dtype"))
	if !dtypeVal.Exists() {
		return t, cueFieldError(filename, v, "values.dtype", "dtype is required")
	}
	dtypeName, err := dtypeVal.String()
	if err != nil {
		return t, formatCUEError(filename, err)
	}
	dtype, err := ir.ParseDType(dtypeName)
	if err != nil {
		return t, cueFieldError(filename, dtypeVal, "values.dtype", err.Error())
	}
	t.DType = dtype

	dimsVal := v.LookupPath(cue.ParsePath("dims"))
	if dimsVal.Exists() {
		iter, err := dimsVal.List()
		if err != nil {
			return t, formatCUEError(filename, err)
		}
		for iter.Next() {
			d, err := iter.Value().Int64()
			if err != nil {
				return t, formatCUEError(filename, err)
			}
			t.Dims = append(t.Dims, d)
		}
	}
	return t, nil
}

func parseCUENode(filename string, v cue.Value) (*source.Node, error) {
	node := &source.Node{Pos: cuePosition(filename, v)}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return nil, cueFieldError(filename, v, "nodes.kind", "kind is required")
	}
	kind, err := kindVal.String()
	if err != nil {
		return nil, formatCUEError(filename, err)
	}
	node.Kind = kind

	node.Inputs, err = parseCUERefs(filename, v, "inputs")
	if err != nil {
		return nil, err
	}
	node.Outputs, err = parseCUERefs(filename, v, "outputs")
	if err != nil {
		return nil, err
	}

	attrsVal := v.LookupPath(cue.ParsePath("attrs"))
	if attrsVal.Exists() {
		node.Attrs = make(ir.Attributes)
		iter, err := attrsVal.Fields()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		for iter.Next() {
			attr, err := parseCUEAttr(filename, iter.Value())
			if err != nil {
				return nil, err
			}
			node.Attrs[iter.Label()] = attr
		}
	}

	return node, nil
}

func parseCUERefs(filename string, v cue.Value, field string) ([]source.ValueRef, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(filename, err)
	}
	var refs []source.ValueRef
	for iter.Next() {
		name, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		refs = append(refs, source.NewValueRef(name))
	}
	return refs, nil
}

// parseCUEAttr maps a concrete CUE value to the matching attribute kind:
// ints to integer attributes, floats to float attributes, strings to string
// attributes, and homogeneous lists to the corresponding vector attributes.
func parseCUEAttr(filename string, v cue.Value) (ir.Attribute, error) {
	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		return ir.NewIntAttr(n), nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		return ir.NewFloatAttr(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(filename, err)
		}
		return ir.NewStringAttr(s), nil
	case cue.ListKind:
		return parseCUEVectorAttr(filename, v)
	default:
		return nil, cueFieldError(filename, v, "nodes.attrs", fmt.Sprintf("unsupported attribute kind %v", v.Kind()))
	}
}

func parseCUEVectorAttr(filename string, v cue.Value) (ir.Attribute, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(filename, err)
	}

	var elems []cue.Value
	for iter.Next() {
		elems = append(elems, iter.Value())
	}
	if len(elems) == 0 {
		// The element type is unknowable; integers are the common case
		// for empty axis lists.
		return ir.NewIntsAttr(), nil
	}

	switch elems[0].Kind() {
	case cue.IntKind:
		vals := make([]int64, len(elems))
		for i, e := range elems {
			if vals[i], err = e.Int64(); err != nil {
				return nil, formatCUEError(filename, err)
			}
		}
		return ir.NewIntsAttr(vals...), nil
	case cue.FloatKind, cue.NumberKind:
		vals := make([]float64, len(elems))
		for i, e := range elems {
			if vals[i], err = e.Float64(); err != nil {
				return nil, formatCUEError(filename, err)
			}
		}
		return ir.NewFloatsAttr(vals...), nil
	case cue.StringKind:
		vals := make([]string, len(elems))
		for i, e := range elems {
			if vals[i], err = e.String(); err != nil {
				return nil, formatCUEError(filename, err)
			}
		}
		return ir.NewStringsAttr(vals...), nil
	default:
		return nil, cueFieldError(filename, v, "nodes.attrs", fmt.Sprintf("unsupported attribute element kind %v", elems[0].Kind()))
	}
}

func cuePosition(filename string, v cue.Value) source.Position {
	pos := v.Pos()
	if !pos.IsValid() {
		return source.Position{File: filename}
	}
	return source.Position{File: pos.Filename(), Line: pos.Line(), Column: pos.Column()}
}

func cueFieldError(filename string, v cue.Value, field, message string) error {
	pos := v.Pos()
	if pos.IsValid() {
		return &ParseError{File: pos.Filename(), Field: field, Message: message, Line: pos.Line(), Column: pos.Column()}
	}
	return &ParseError{File: filename, Field: field, Message: message}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(filename string, err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		pos := positions[0]
		return &ParseError{
			File:    pos.Filename(),
			Field:   "graph",
			Message: first.Error(),
			Line:    pos.Line(),
			Column:  pos.Column(),
		}
	}
	return &ParseError{File: filename, Field: "graph", Message: first.Error()}
}
