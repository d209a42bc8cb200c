package wire

import (
	"fmt"
	"math"

	"github.com/tuannm99/typewire/internal/alias/bx"
)

// Writer is an append-only buffer mirroring Reader's layouts.
// Fixed-width puts cannot fail; only var-length and range-guarded
// writes return errors.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer. The Writer must not be reused
// after the result escapes.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) PutU8(v byte) { w.buf = append(w.buf, v) }

func (w *Writer) PutBool(v bool) {
	if v {
		w.PutU8(1)
	} else {
		w.PutU8(0)
	}
}

func (w *Writer) PutI16(v int16) {
	var b [2]byte
	bx.PutU16(b[:], uint16(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutI32(v int32) {
	var b [4]byte
	bx.PutU32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}

// PutI64 rejects values outside +-MaxSafeI64, matching Reader.I64.
func (w *Writer) PutI64(v int64) error {
	if v > MaxSafeI64 || v < -MaxSafeI64 {
		return fmt.Errorf("wire: value %d: %w", v, ErrI64Range)
	}
	w.PutI64Unsafe(v)
	return nil
}

func (w *Writer) PutI64Unsafe(v int64) {
	var b [8]byte
	bx.PutU64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutF32(v float32) {
	var b [4]byte
	bx.PutU32(b[:], math.Float32bits(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutF64(v float64) {
	var b [8]byte
	bx.PutU64(b[:], math.Float64bits(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutString(s string) error { return w.putVar([]byte(s)) }

func (w *Writer) PutBytes(b []byte) error { return w.putVar(b) }

func (w *Writer) putVar(b []byte) error {
	if len(b) > math.MaxUint16 {
		return fmt.Errorf("wire: length %d: %w", len(b), ErrVarTooLong)
	}
	var l [2]byte
	bx.PutU16(l[:], uint16(len(b)))
	w.buf = append(w.buf, l[:]...)
	w.buf = append(w.buf, b...)
	return nil
}
