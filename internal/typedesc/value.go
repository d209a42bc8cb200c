package typedesc

import (
	"fmt"

	"github.com/tuannm99/typewire/internal/wire"
)

// DecodeValue consumes one value matching the descriptor's shape.
// Decoded Go types: byte, bool, int16, int32, int64, float32, float64,
// []byte, string; struct -> map[string]any, optional -> nil or the
// element value, array -> []any, map -> map[any]any.
//
// Decoding is fail-fast: the first child error aborts the whole call
// and no partial composite is returned.
func (d *Descriptor) DecodeValue(r *wire.Reader) (any, error) {
	switch d.kind {
	case KindStruct:
		out := make(map[string]any, len(d.fields))
		// wire order of field values must equal declaration order
		for i := range d.fields {
			v, err := d.fields[i].Type.DecodeValue(r)
			if err != nil {
				return nil, err
			}
			out[d.fields[i].Name] = v
		}
		return out, nil

	case KindOptional:
		present, err := r.Bool()
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		return d.elem.DecodeValue(r)

	case KindArray:
		n, err := d.seqLen(r)
		if err != nil {
			return nil, err
		}
		out := make([]any, n)
		for i := range out {
			v, err := d.elem.DecodeValue(r)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case KindMap:
		n, err := d.seqLen(r)
		if err != nil {
			return nil, err
		}
		out := make(map[any]any, n)
		for i := 0; i < n; i++ {
			k, err := d.key.DecodeValue(r)
			if err != nil {
				return nil, err
			}
			v, err := d.value.DecodeValue(r)
			if err != nil {
				return nil, err
			}
			// duplicate keys: last write wins
			out[k] = v
		}
		return out, nil

	default:
		if d.decodeFn == nil {
			panic(fmt.Sprintf("typedesc: kind %d has no value decoder, dispatch bug", d.kind))
		}
		return d.decodeFn(r)
	}
}

// seqLen reads and sanity-checks the 4-byte count prefix of arrays and
// maps. Each element needs at least one byte, so a count beyond the
// remaining input is as fatal as a negative one.
func (d *Descriptor) seqLen(r *wire.Reader) (int, error) {
	n, err := r.I32()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > r.Remaining() {
		return 0, fmt.Errorf("typedesc: %s length %d with %d bytes left: %w",
			d.name, n, r.Remaining(), wire.ErrTruncated)
	}
	return int(n), nil
}

// EncodeValue writes one value of this shape. The dynamic type of v
// must match the descriptor; anything else is ErrShapeMismatch.
func (d *Descriptor) EncodeValue(w *wire.Writer, v any) error {
	switch d.kind {
	case KindByte:
		b, ok := v.(byte)
		if !ok {
			return d.mismatch(v)
		}
		w.PutU8(b)
		return nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return d.mismatch(v)
		}
		w.PutBool(b)
		return nil

	case KindInt16:
		x, ok := v.(int16)
		if !ok {
			return d.mismatch(v)
		}
		w.PutI16(x)
		return nil

	case KindInt32:
		x, ok := asInt32(v)
		if !ok {
			return d.mismatch(v)
		}
		w.PutI32(x)
		return nil

	case KindInt64:
		x, ok := asInt64(v)
		if !ok {
			return d.mismatch(v)
		}
		return w.PutI64(x)

	case KindInt64Unsafe:
		x, ok := asInt64(v)
		if !ok {
			return d.mismatch(v)
		}
		w.PutI64Unsafe(x)
		return nil

	case KindFloat32:
		x, ok := v.(float32)
		if !ok {
			return d.mismatch(v)
		}
		w.PutF32(x)
		return nil

	case KindFloat64:
		x, ok := asFloat64(v)
		if !ok {
			return d.mismatch(v)
		}
		w.PutF64(x)
		return nil

	case KindBinary:
		b, ok := v.([]byte)
		if !ok {
			return d.mismatch(v)
		}
		return w.PutBytes(b)

	case KindString, KindTypeName:
		s, ok := v.(string)
		if !ok {
			return d.mismatch(v)
		}
		return w.PutString(s)

	case KindDate, KindTimestamp:
		return fmt.Errorf("typedesc: encode %s value: %w", d.name, ErrUnimplemented)

	case KindStruct:
		m, ok := v.(map[string]any)
		if !ok {
			return d.mismatch(v)
		}
		for i := range d.fields {
			fv, ok := m[d.fields[i].Name]
			if !ok {
				return fmt.Errorf("typedesc: struct value missing field %q: %w",
					d.fields[i].Name, ErrShapeMismatch)
			}
			if err := d.fields[i].Type.EncodeValue(w, fv); err != nil {
				return err
			}
		}
		return nil

	case KindOptional:
		if v == nil {
			w.PutBool(false)
			return nil
		}
		w.PutBool(true)
		return d.elem.EncodeValue(w, v)

	case KindArray:
		s, ok := v.([]any)
		if !ok {
			return d.mismatch(v)
		}
		w.PutI32(int32(len(s)))
		for i := range s {
			if err := d.elem.EncodeValue(w, s[i]); err != nil {
				return err
			}
		}
		return nil

	case KindMap:
		m, ok := v.(map[any]any)
		if !ok {
			return d.mismatch(v)
		}
		w.PutI32(int32(len(m)))
		for k, mv := range m {
			if err := d.key.EncodeValue(w, k); err != nil {
				return err
			}
			if err := d.value.EncodeValue(w, mv); err != nil {
				return err
			}
		}
		return nil
	}
	panic(fmt.Sprintf("typedesc: kind %d has no value encoder, dispatch bug", d.kind))
}

func (d *Descriptor) mismatch(v any) error {
	return fmt.Errorf("typedesc: %T is not a %s value: %w", v, d.name, ErrShapeMismatch)
}

// accept the common wider/narrower numeric spellings on encode,
// same as the row codec did
func asInt32(v any) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int:
		if x >= -1<<31 && x <= 1<<31-1 {
			return int32(x), true
		}
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
