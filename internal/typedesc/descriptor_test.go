package typedesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "int32", Int32.Name())
	assert.Equal(t, "string", String.Name())
	assert.Equal(t, "struct", NewStruct(Field{Name: "a", Type: Int32}).Name())
	assert.Equal(t, "int64?", NewOptional(Int64).Name())
	assert.Equal(t, "[string]", NewArray(String).Name())
	assert.Equal(t, "map[int32 -> string?]", NewMap(Int32, NewOptional(String)).Name())
	assert.Equal(t, "[[byte]]", NewArray(NewArray(Byte)).Name())
}

func TestIsNumeric(t *testing.T) {
	for _, d := range []*Descriptor{Int16, Int32, Int64, Int64Unsafe, Float32, Float64} {
		assert.True(t, d.IsNumeric(), d.Name())
	}
	for _, d := range []*Descriptor{Byte, Bool, Binary, String, Date, Timestamp, TypeName} {
		assert.False(t, d.IsNumeric(), d.Name())
	}

	// optional mirrors its element
	assert.True(t, NewOptional(Float32).IsNumeric())
	assert.False(t, NewOptional(String).IsNumeric())

	// containers are not numeric even over numeric elements
	assert.False(t, NewArray(Int32).IsNumeric())
	assert.False(t, NewMap(Int32, Int32).IsNumeric())
}

func TestFieldType(t *testing.T) {
	s := NewStruct(
		Field{Name: "id", Type: Int32},
		Field{Name: "name", Type: String},
	)

	ft, ok := s.FieldType("name")
	require.True(t, ok)
	assert.Same(t, String, ft)

	_, ok = s.FieldType("missing")
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	a := NewStruct(Field{Name: "x", Type: NewArray(Int32)})
	b := NewStruct(Field{Name: "x", Type: NewArray(Int32)})
	c := NewStruct(Field{Name: "x", Type: NewArray(Int64)})
	d := NewStruct(Field{Name: "y", Type: NewArray(Int32)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))

	assert.True(t, Int32.Equal(Int32))
	assert.False(t, Int32.Equal(Int16))

	// Int64 and Int64Unsafe share a discriminator but are distinct kinds
	assert.False(t, Int64.Equal(Int64Unsafe))

	assert.True(t, NewMap(String, Int32).Equal(NewMap(String, Int32)))
	assert.False(t, NewMap(String, Int32).Equal(NewMap(Int32, String)))
}

func TestNewStruct_CopiesFieldSlice(t *testing.T) {
	fields := []Field{{Name: "a", Type: Int32}}
	s := NewStruct(fields...)

	fields[0] = Field{Name: "mutated", Type: String}
	assert.Equal(t, "a", s.Fields()[0].Name)
}
