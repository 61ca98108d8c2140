package ir

import (
	"fmt"
	"slices"
)

// DType is the element type of a tensor value.
type DType uint8

const (
	DTypeUnknown DType = iota
	Float32
	Float64
	Int32
	Int64
	Bool
)

var dtypeNames = map[DType]string{
	DTypeUnknown: "unknown",
	Float32:      "float32",
	Float64:      "float64",
	Int32:        "int32",
	Int64:        "int64",
	Bool:         "bool",
}

func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DType(%d)", uint8(d))
}

// ParseDType maps a type name used in source-graph files to a DType.
func ParseDType(name string) (DType, error) {
	for d, n := range dtypeNames {
		if n == name && d != DTypeUnknown {
			return d, nil
		}
	}
	return DTypeUnknown, fmt.Errorf("unknown dtype %q", name)
}

// Tensor describes a named tensor-shaped quantity. Tensors live in a graph's
// value table and are referenced by operators through handles; they carry no
// element data, only the descriptor the code generator needs.
type Tensor struct {
	Name  string
	DType DType
	Dims  []int64
}

// Clone returns a copy with its own Dims backing array.
func (t Tensor) Clone() Tensor {
	return Tensor{Name: t.Name, DType: t.DType, Dims: slices.Clone(t.Dims)}
}
