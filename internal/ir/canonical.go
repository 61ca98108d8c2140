package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Dump produces a canonical JSON rendering of the graph: object keys in
// fixed order, strings NFC-normalized, no HTML escaping, floats in shortest
// round-trip form. Two structurally equal graphs always dump to identical
// bytes, which makes the output usable for golden tests and content hashes.
func Dump(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := dumpGraph(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dumpGraph(buf *bytes.Buffer, g *Graph) error {
	buf.WriteString(`{"name":`)
	if err := writeString(buf, g.name); err != nil {
		return err
	}
	buf.WriteString(`,"operators":[`)
	for i, op := range g.ops {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := dumpOperator(buf, g, op); err != nil {
			return err
		}
	}
	buf.WriteString(`],"values":[`)
	for i := range g.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := dumpTensor(buf, &g.values[i]); err != nil {
			return err
		}
	}
	buf.WriteString(`]}`)
	return nil
}

func dumpOperator(buf *bytes.Buffer, g *Graph, op *Operator) error {
	buf.WriteString(`{"attrs":{`)
	for i, name := range op.attrs.SortedNames() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := dumpAttribute(buf, op.attrs[name]); err != nil {
			return fmt.Errorf("attr %q: %w", name, err)
		}
	}
	buf.WriteString(`},"inputs":[`)
	if err := dumpValueNames(buf, g, op.inputs); err != nil {
		return err
	}
	buf.WriteString(`],"kind":`)
	if err := writeString(buf, string(op.kind)); err != nil {
		return err
	}
	buf.WriteString(`,"outputs":[`)
	if err := dumpValueNames(buf, g, op.outputs); err != nil {
		return err
	}
	buf.WriteString(`]}`)
	return nil
}

func dumpValueNames(buf *bytes.Buffer, g *Graph, handles []ValueHandle) error {
	for i, h := range handles {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, g.Value(h).Name); err != nil {
			return err
		}
	}
	return nil
}

func dumpTensor(buf *bytes.Buffer, t *Tensor) error {
	buf.WriteString(`{"dims":[`)
	for i, d := range t.Dims {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatInt(d, 10))
	}
	buf.WriteString(`],"dtype":`)
	if err := writeString(buf, t.DType.String()); err != nil {
		return err
	}
	buf.WriteString(`,"name":`)
	if err := writeString(buf, t.Name); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func dumpAttribute(buf *bytes.Buffer, a Attribute) error {
	buf.WriteString(`{"kind":`)
	if err := writeString(buf, a.Kind().String()); err != nil {
		return err
	}
	switch attr := a.(type) {
	case *FloatAttr:
		buf.WriteString(`,"value":`)
		return writeFloat(buf, attr.Value())
	case *IntAttr:
		buf.WriteString(`,"value":` + strconv.FormatInt(attr.Value(), 10) + "}")
		return nil
	case *StringAttr:
		buf.WriteString(`,"value":`)
		if err := writeString(buf, attr.Value()); err != nil {
			return err
		}
	case *TensorAttr:
		buf.WriteString(`,"value":`)
		t := attr.Value()
		if err := dumpTensor(buf, &t); err != nil {
			return err
		}
	case *GraphAttr:
		buf.WriteString(`,"value":`)
		if err := dumpGraph(buf, attr.Value()); err != nil {
			return err
		}
	case *FloatsAttr:
		buf.WriteString(`,"values":[`)
		for i, v := range attr.Vector() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeBareFloat(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *IntsAttr:
		buf.WriteString(`,"values":[`)
		for i, v := range attr.Vector() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatInt(v, 10))
		}
		buf.WriteByte(']')
	case *StringsAttr:
		buf.WriteString(`,"values":[`)
		for i, v := range attr.Vector() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *TensorsAttr:
		buf.WriteString(`,"values":[`)
		vec := attr.Vector()
		for i := range vec {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := dumpTensor(buf, &vec[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *GraphsAttr:
		buf.WriteString(`,"values":[`)
		for i, sub := range attr.Vector() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := dumpGraph(buf, sub); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unknown attribute kind %s", a.Kind())
	}
	buf.WriteByte('}')
	return nil
}

// writeFloat writes `value` followed by the closing brace of a scalar
// attribute object.
func writeFloat(buf *bytes.Buffer, v float64) error {
	if err := writeBareFloat(buf, v); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeBareFloat(buf *bytes.Buffer, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite float %v is not representable in a canonical dump", v)
	}
	buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}

// writeString writes an NFC-normalized JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	// Encode terminates with a newline; canonical output has none.
	buf.Truncate(buf.Len() - 1)
	return nil
}
