// Package typedesc implements a closed, self-describing type system for
// the binary wire protocol: primitive singleton descriptors, composite
// descriptors (struct/array/optional/map), a discriminator-byte codec
// for the descriptors themselves, and shape-directed value decoding.
package typedesc

import (
	"fmt"

	"github.com/tuannm99/typewire/internal/wire"
)

// Kind is the closed set of descriptor variants.
type Kind uint8

const (
	KindByte Kind = iota
	KindBool
	KindInt16
	KindInt32
	KindInt64
	KindInt64Unsafe
	KindFloat32
	KindFloat64
	KindBinary
	KindString
	KindStruct
	KindOptional
	KindArray
	KindDate
	KindTimestamp
	KindTypeName
	KindMap
)

// Field is one named slot of a struct descriptor.
type Field struct {
	Name string
	Type *Descriptor
}

// Descriptor describes the shape of a wire value. Descriptors are
// immutable once constructed; primitive kinds are package-level
// singletons, so identity comparison works for them. Composite trees
// must be finite (a descriptor never contains itself).
type Descriptor struct {
	kind    Kind
	name    string
	numeric bool

	fields     []Field     // KindStruct
	elem       *Descriptor // KindOptional, KindArray
	key, value *Descriptor // KindMap

	// decodeFn consumes one value of this shape from the cursor.
	// Set for primitive kinds only; composites decode structurally.
	decodeFn func(*wire.Reader) (any, error)
}

func (d *Descriptor) Kind() Kind { return d.kind }

// Name is the structural display name, e.g. "int32", "[string]",
// "map[int32 -> string?]". Structs are always just "struct".
func (d *Descriptor) Name() string { return d.name }

// IsNumeric reports whether values of this shape are numbers. An
// optional over a numeric element counts as numeric.
func (d *Descriptor) IsNumeric() bool { return d.numeric }

// Fields returns the ordered field list of a struct descriptor.
// Callers must not modify the returned slice.
func (d *Descriptor) Fields() []Field { return d.fields }

// Elem returns the element descriptor of an optional or array.
func (d *Descriptor) Elem() *Descriptor { return d.elem }

// KeyType returns the key descriptor of a map.
func (d *Descriptor) KeyType() *Descriptor { return d.key }

// ValueType returns the value descriptor of a map.
func (d *Descriptor) ValueType() *Descriptor { return d.value }

// FieldType looks up a struct field's descriptor by name.
func (d *Descriptor) FieldType(name string) (*Descriptor, bool) {
	for i := range d.fields {
		if d.fields[i].Name == name {
			return d.fields[i].Type, true
		}
	}
	return nil, false
}

// Equal reports structural equality. Primitive kinds compare by
// identity since they are singletons; composites recurse.
func (d *Descriptor) Equal(o *Descriptor) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil || d.kind != o.kind {
		return false
	}
	switch d.kind {
	case KindStruct:
		if len(d.fields) != len(o.fields) {
			return false
		}
		for i := range d.fields {
			if d.fields[i].Name != o.fields[i].Name || !d.fields[i].Type.Equal(o.fields[i].Type) {
				return false
			}
		}
		return true
	case KindOptional, KindArray:
		return d.elem.Equal(o.elem)
	case KindMap:
		return d.key.Equal(o.key) && d.value.Equal(o.value)
	default:
		// distinct primitive singletons of the same kind cannot exist
		return true
	}
}

func (d *Descriptor) String() string { return d.name }

// newPrimitive builds the single shared instance for a primitive kind.
// The decode function operates on the supplied byte codec and is the
// whole of the kind's value-decode behaviour.
func newPrimitive(k Kind, name string, numeric bool, decode func(*wire.Reader) (any, error)) *Descriptor {
	return &Descriptor{kind: k, name: name, numeric: numeric, decodeFn: decode}
}

// unimplemented marks kinds whose value codec was never finished.
func unimplemented(name string) func(*wire.Reader) (any, error) {
	return func(*wire.Reader) (any, error) {
		return nil, fmt.Errorf("typedesc: decode %s value: %w", name, ErrUnimplemented)
	}
}

// Primitive singletons. Exactly one live instance per kind for the
// process lifetime; decode of a primitive descriptor always resolves
// back to these, never to a fresh object.
var (
	Byte = newPrimitive(KindByte, "byte", false, func(r *wire.Reader) (any, error) {
		v, err := r.U8()
		return v, err
	})
	Bool = newPrimitive(KindBool, "bool", false, func(r *wire.Reader) (any, error) {
		v, err := r.Bool()
		return v, err
	})
	Int16 = newPrimitive(KindInt16, "int16", true, func(r *wire.Reader) (any, error) {
		v, err := r.I16()
		return v, err
	})
	Int32 = newPrimitive(KindInt32, "int32", true, func(r *wire.Reader) (any, error) {
		v, err := r.I32()
		return v, err
	})
	Int64 = newPrimitive(KindInt64, "int64", true, func(r *wire.Reader) (any, error) {
		v, err := r.I64()
		return v, err
	})
	// Int64Unsafe shares discriminator 4 with Int64; wire decode of 4
	// always yields Int64, so this variant is only reachable by
	// constructing it programmatically. Kept for wire compatibility.
	Int64Unsafe = newPrimitive(KindInt64Unsafe, "int64", true, func(r *wire.Reader) (any, error) {
		v, err := r.I64Unsafe()
		return v, err
	})
	Float32 = newPrimitive(KindFloat32, "float32", true, func(r *wire.Reader) (any, error) {
		v, err := r.F32()
		return v, err
	})
	Float64 = newPrimitive(KindFloat64, "float64", true, func(r *wire.Reader) (any, error) {
		v, err := r.F64()
		return v, err
	})
	Binary = newPrimitive(KindBinary, "binary", false, func(r *wire.Reader) (any, error) {
		v, err := r.Bytes()
		return v, err
	})
	String = newPrimitive(KindString, "string", false, func(r *wire.Reader) (any, error) {
		v, err := r.String()
		return v, err
	})
	Date      = newPrimitive(KindDate, "date", false, unimplemented("date"))
	Timestamp = newPrimitive(KindTimestamp, "timestamp", false, unimplemented("timestamp"))
	TypeName  = newPrimitive(KindTypeName, "typename", false, func(r *wire.Reader) (any, error) {
		v, err := r.String()
		return v, err
	})
)

// NewStruct builds a struct descriptor over an ordered field list.
// Field order is part of the wire contract: values decode in exactly
// this order, with no name-based lookup.
func NewStruct(fields ...Field) *Descriptor {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return &Descriptor{kind: KindStruct, name: "struct", fields: fs}
}

// NewOptional wraps an element descriptor with a presence byte.
func NewOptional(elem *Descriptor) *Descriptor {
	return &Descriptor{
		kind:    KindOptional,
		name:    elem.name + "?",
		numeric: elem.numeric,
		elem:    elem,
	}
}

// NewArray describes an ordered sequence of one element shape.
func NewArray(elem *Descriptor) *Descriptor {
	return &Descriptor{kind: KindArray, name: "[" + elem.name + "]", elem: elem}
}

// NewMap describes a key-unique mapping.
func NewMap(key, value *Descriptor) *Descriptor {
	return &Descriptor{
		kind:  KindMap,
		name:  fmt.Sprintf("map[%s -> %s]", key.name, value.name),
		key:   key,
		value: value,
	}
}
