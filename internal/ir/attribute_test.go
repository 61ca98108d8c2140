package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeSealed(t *testing.T) {
	// Compile-time check that all ten concrete types implement Attribute.
	var _ Attribute = NewFloatAttr(0)
	var _ Attribute = NewIntAttr(0)
	var _ Attribute = NewStringAttr("")
	var _ Attribute = NewTensorAttr(Tensor{Name: "t"})
	var _ Attribute = NewGraphAttr(NewGraph("g"))
	var _ Attribute = NewFloatsAttr()
	var _ Attribute = NewIntsAttr()
	var _ Attribute = NewStringsAttr()
	var _ Attribute = NewTensorsAttr()
	var _ Attribute = NewGraphsAttr()
}

func TestAttributeKindInvariant(t *testing.T) {
	tests := []struct {
		name string
		attr Attribute
		kind AttrKind
	}{
		{"float", NewFloatAttr(1.5), KindFloat},
		{"integer", NewIntAttr(7), KindInteger},
		{"string", NewStringAttr("pad"), KindString},
		{"tensor", NewTensorAttr(Tensor{Name: "w", DType: Float32}), KindTensor},
		{"graph", NewGraphAttr(NewGraph("body")), KindGraph},
		{"floats", NewFloatsAttr(1, 2), KindFloatVec},
		{"integers", NewIntsAttr(3, 4), KindIntegerVec},
		{"strings", NewStringsAttr("a"), KindStringVec},
		{"tensors", NewTensorsAttr(Tensor{Name: "b"}), KindTensorVec},
		{"graphs", NewGraphsAttr(NewGraph("sub")), KindGraphVec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.attr.Kind())
			// Kind survives a deep copy.
			assert.Equal(t, tt.kind, tt.attr.Clone().Kind())
		})
	}
}

func TestScalarRoundTrip(t *testing.T) {
	f := NewFloatAttr(0.25)
	f.SetValue(0.75)
	assert.Equal(t, 0.75, f.Value())
	assert.Equal(t, KindFloat, f.Kind())

	i := NewIntAttr(1)
	i.SetValue(-9)
	assert.Equal(t, int64(-9), i.Value())

	s := NewStringAttr("same")
	s.SetValue("valid")
	assert.Equal(t, "valid", s.Value())
}

func TestVectorRoundTrip(t *testing.T) {
	vals := []float64{3, 1, 2}
	a := NewFloatsAttr(vals...)

	// Order preserved, payload copied from the caller's slice.
	assert.Equal(t, []float64{3, 1, 2}, a.Vector())
	vals[0] = 99
	assert.Equal(t, []float64{3, 1, 2}, a.Vector())

	empty := NewIntsAttr()
	assert.Empty(t, empty.Vector())
}

func TestCloneDuplicatesPayload(t *testing.T) {
	orig := NewIntsAttr(1, 2, 3)
	cl, err := As[*IntsAttr](orig.Clone())
	require.NoError(t, err)

	cl.Vector()[0] = 42
	assert.Equal(t, int64(1), orig.Vector()[0])
}

func TestGraphAttrOwnsPayload(t *testing.T) {
	body := NewGraph("body")
	_, err := body.AddValue(Tensor{Name: "x", DType: Float32})
	require.NoError(t, err)

	a := NewGraphAttr(body)

	// Mutating the original graph after construction must not leak into
	// the attribute's copy.
	_, err = body.AddValue(Tensor{Name: "y", DType: Float32})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Value().NumValues())
}

func TestCheckedCast(t *testing.T) {
	var attr Attribute = NewFloatAttr(0.2)

	f, err := As[*FloatAttr](attr)
	require.NoError(t, err)
	assert.Equal(t, 0.2, f.Value())

	_, err = As[*IntAttr](attr)
	require.Error(t, err)
	var mismatch *KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindInteger, mismatch.Want)
	assert.Equal(t, KindFloat, mismatch.Got)
}

func TestAttributesSortedNames(t *testing.T) {
	as := Attributes{
		"beta":  NewFloatAttr(0.5),
		"alpha": NewFloatAttr(0.2),
		"axes":  NewIntsAttr(0, 1),
	}
	assert.Equal(t, []string{"alpha", "axes", "beta"}, as.SortedNames())
}

func TestAttributesClone(t *testing.T) {
	as := Attributes{"alpha": NewFloatAttr(0.2)}
	cl := as.Clone()

	cl["alpha"].(*FloatAttr).SetValue(0.9)
	assert.Equal(t, 0.2, as["alpha"].(*FloatAttr).Value())

	var nilBag Attributes
	assert.Nil(t, nilBag.Clone())
}
