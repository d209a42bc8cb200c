package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/tuannm99/typewire/internal/alias/bx"
)

var (
	ErrTruncated  = errors.New("wire: truncated input")
	ErrVarTooLong = errors.New("wire: variable length exceeds u16")
	ErrI64Range   = errors.New("wire: int64 outside safe range")
)

// MaxSafeI64 is the largest magnitude the "safe" int64 codec accepts.
// Peers on dynamic runtimes lose precision above 2^53-1, so the safe
// variant refuses those values; I64Unsafe reads the full width.
const MaxSafeI64 = 1<<53 - 1

// Reader is a cursor over an immutable byte buffer.
// Every read bounds-checks and fails with ErrTruncated; after a failed
// read the cursor position is undefined for retry purposes.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// take returns the next n bytes without copying.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("wire: need %d bytes, have %d: %w", n, r.Remaining(), ErrTruncated)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) U8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Bool() (bool, error) {
	b, err := r.U8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (r *Reader) I16() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return bx.I16(b), nil
}

func (r *Reader) I32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return bx.I32(b), nil
}

// I64 reads 8 bytes and rejects values outside +-MaxSafeI64.
func (r *Reader) I64() (int64, error) {
	v, err := r.I64Unsafe()
	if err != nil {
		return 0, err
	}
	if v > MaxSafeI64 || v < -MaxSafeI64 {
		return 0, fmt.Errorf("wire: value %d: %w", v, ErrI64Range)
	}
	return v, nil
}

// I64Unsafe reads the full 8-byte width with no range guard.
func (r *Reader) I64Unsafe() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return bx.I64(b), nil
}

func (r *Reader) F32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bx.U32(b)), nil
}

func (r *Reader) F64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bx.U64(b)), nil
}

// String reads a u16 length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	b, err := r.varBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Bytes reads a u16 length-prefixed blob. The result is copied so it
// does not alias the underlying buffer.
func (r *Reader) Bytes() ([]byte, error) {
	b, err := r.varBytes()
	if err != nil {
		return nil, err
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (r *Reader) varBytes() ([]byte, error) {
	lb, err := r.take(2)
	if err != nil {
		return nil, err
	}
	return r.take(int(bx.U16(lb)))
}
