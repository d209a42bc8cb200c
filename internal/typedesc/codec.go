package typedesc

import (
	"errors"
	"fmt"

	"github.com/tuannm99/typewire/internal/wire"
)

var (
	ErrUnknownDiscriminator = errors.New("typedesc: unknown discriminator")
	ErrUnimplemented        = errors.New("typedesc: unimplemented")
	ErrShapeMismatch        = errors.New("typedesc: value does not match descriptor shape")
)

// Wire discriminators. Stable across releases: they are the metadata
// wire contract shared with every peer.
const (
	discByte      = 0
	discBool      = 1
	discInt16     = 2
	discInt32     = 3
	discInt64     = 4 // also Int64Unsafe, see Discriminator
	discFloat32   = 5
	discFloat64   = 6
	discBinary    = 7
	discString    = 8
	discStruct    = 9
	discOptional  = 10
	discArray     = 11
	discDate      = 12
	discTimestamp = 13
	discTypeName  = 14
	discMap       = 15

	numDiscriminators = 16
)

// Discriminator returns the wire byte for a kind. Int64 and
// Int64Unsafe intentionally share 4: the slot decodes to the safe
// variant, leaving Int64Unsafe unreachable from the wire.
func Discriminator(k Kind) byte {
	switch k {
	case KindByte:
		return discByte
	case KindBool:
		return discBool
	case KindInt16:
		return discInt16
	case KindInt32:
		return discInt32
	case KindInt64, KindInt64Unsafe:
		return discInt64
	case KindFloat32:
		return discFloat32
	case KindFloat64:
		return discFloat64
	case KindBinary:
		return discBinary
	case KindString:
		return discString
	case KindStruct:
		return discStruct
	case KindOptional:
		return discOptional
	case KindArray:
		return discArray
	case KindDate:
		return discDate
	case KindTimestamp:
		return discTimestamp
	case KindTypeName:
		return discTypeName
	case KindMap:
		return discMap
	}
	panic(fmt.Sprintf("typedesc: kind %d has no discriminator, dispatch table bug", k))
}

// codecEntry is one slot of the dispatch table: how to encode/decode a
// descriptor payload (everything after the discriminator byte).
// A nil encode means the kind has no payload.
type codecEntry struct {
	encode func(*wire.Writer, *Descriptor) error
	decode func(*wire.Reader) (*Descriptor, error)
}

var codecs [numDiscriminators]codecEntry

// The composite entries below call EncodeDescriptor/DecodeDescriptor,
// which index codecs at call time. Population order therefore does not
// matter; init is the one-time barrier before any wire traffic.
func init() {
	codecs[discByte] = singletonEntry(Byte)
	codecs[discBool] = singletonEntry(Bool)
	codecs[discInt16] = singletonEntry(Int16)
	codecs[discInt32] = singletonEntry(Int32)
	codecs[discInt64] = singletonEntry(Int64)
	codecs[discFloat32] = singletonEntry(Float32)
	codecs[discFloat64] = singletonEntry(Float64)
	codecs[discBinary] = singletonEntry(Binary)
	codecs[discString] = singletonEntry(String)
	codecs[discDate] = singletonEntry(Date)
	codecs[discTimestamp] = singletonEntry(Timestamp)
	codecs[discTypeName] = singletonEntry(TypeName)
	codecs[discStruct] = codecEntry{encode: encodeStructPayload, decode: decodeStructPayload}
	codecs[discOptional] = codecEntry{encode: encodeElemPayload, decode: decodeOptionalPayload}
	codecs[discArray] = codecEntry{encode: encodeElemPayload, decode: decodeArrayPayload}
	codecs[discMap] = codecEntry{encode: encodeMapPayload, decode: decodeMapPayload}

	for disc, e := range codecs {
		if e.decode == nil {
			panic(fmt.Sprintf("typedesc: discriminator %d has no codec entry", disc))
		}
	}
}

// singletonEntry covers primitive kinds: no payload, decode resolves
// to the pre-existing singleton.
func singletonEntry(d *Descriptor) codecEntry {
	return codecEntry{
		decode: func(*wire.Reader) (*Descriptor, error) { return d, nil },
	}
}

// EncodeDescriptor serializes the descriptor itself (metadata, not a
// value): one discriminator byte, then the kind-specific payload.
func EncodeDescriptor(w *wire.Writer, d *Descriptor) error {
	disc := Discriminator(d.kind)
	w.PutU8(disc)
	if enc := codecs[disc].encode; enc != nil {
		return enc(w, d)
	}
	return nil
}

// DecodeDescriptor reads one discriminator byte and reconstructs the
// descriptor: singletons for primitive kinds, fresh trees for
// composites. An out-of-range discriminator fails having consumed
// exactly that one byte.
func DecodeDescriptor(r *wire.Reader) (*Descriptor, error) {
	disc, err := r.U8()
	if err != nil {
		return nil, err
	}
	if int(disc) >= numDiscriminators {
		return nil, fmt.Errorf("typedesc: discriminator %d: %w", disc, ErrUnknownDiscriminator)
	}
	return codecs[disc].decode(r)
}

func encodeStructPayload(w *wire.Writer, d *Descriptor) error {
	w.PutI32(int32(len(d.fields)))
	for i := range d.fields {
		if err := w.PutString(d.fields[i].Name); err != nil {
			return err
		}
		if err := EncodeDescriptor(w, d.fields[i].Type); err != nil {
			return err
		}
	}
	return nil
}

func decodeStructPayload(r *wire.Reader) (*Descriptor, error) {
	n, err := r.I32()
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n) > r.Remaining() {
		return nil, fmt.Errorf("typedesc: struct field count %d: %w", n, wire.ErrTruncated)
	}
	fields := make([]Field, n)
	for i := range fields {
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		ft, err := DecodeDescriptor(r)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{Name: name, Type: ft}
	}
	return NewStruct(fields...), nil
}

func encodeElemPayload(w *wire.Writer, d *Descriptor) error {
	return EncodeDescriptor(w, d.elem)
}

func decodeOptionalPayload(r *wire.Reader) (*Descriptor, error) {
	elem, err := DecodeDescriptor(r)
	if err != nil {
		return nil, err
	}
	return NewOptional(elem), nil
}

func decodeArrayPayload(r *wire.Reader) (*Descriptor, error) {
	elem, err := DecodeDescriptor(r)
	if err != nil {
		return nil, err
	}
	return NewArray(elem), nil
}

func encodeMapPayload(w *wire.Writer, d *Descriptor) error {
	if err := EncodeDescriptor(w, d.key); err != nil {
		return err
	}
	return EncodeDescriptor(w, d.value)
}

func decodeMapPayload(r *wire.Reader) (*Descriptor, error) {
	key, err := DecodeDescriptor(r)
	if err != nil {
		return nil, err
	}
	value, err := DecodeDescriptor(r)
	if err != nil {
		return nil, err
	}
	return NewMap(key, value), nil
}
