package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderWriter_RoundTrip(t *testing.T) {
	w := NewWriter()
	w.PutU8(0x7F)
	w.PutBool(true)
	w.PutBool(false)
	w.PutI16(-1234)
	w.PutI32(-123456)
	require.NoError(t, w.PutI64(1<<40))
	w.PutI64Unsafe(1 << 60)
	w.PutF32(1.5)
	w.PutF64(3.14159)
	require.NoError(t, w.PutString("hello"))
	require.NoError(t, w.PutBytes([]byte{0x01, 0x02, 0x03}))

	r := NewReader(w.Bytes())

	u8, err := r.U8()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), u8)

	b1, err := r.Bool()
	require.NoError(t, err)
	assert.True(t, b1)
	b2, err := r.Bool()
	require.NoError(t, err)
	assert.False(t, b2)

	i16, err := r.I16()
	require.NoError(t, err)
	assert.Equal(t, int16(-1234), i16)

	i32, err := r.I32()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456), i32)

	i64, err := r.I64()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), i64)

	u64, err := r.I64Unsafe()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<60), u64)

	f32, err := r.F32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)

	f64, err := r.F64()
	require.NoError(t, err)
	assert.InDelta(t, 3.14159, f64, 1e-12)

	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	bs, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, bs)

	assert.Equal(t, 0, r.Remaining())
}

func TestReader_Truncated(t *testing.T) {
	// every fixed-width read must fail cleanly on short input
	r := NewReader([]byte{0x01})
	_, err := r.I32()
	require.ErrorIs(t, err, ErrTruncated)

	r = NewReader(nil)
	_, err = r.U8()
	require.ErrorIs(t, err, ErrTruncated)

	// length prefix promises more bytes than exist
	w := NewWriter()
	require.NoError(t, w.PutString("hello"))
	r = NewReader(w.Bytes()[:4])
	_, err = r.String()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReader_BytesCopies(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.PutBytes([]byte{0xAA, 0xBB}))
	buf := w.Bytes()

	r := NewReader(buf)
	got, err := r.Bytes()
	require.NoError(t, err)

	got[0] = 0x00
	assert.Equal(t, byte(0xAA), buf[2], "decoded bytes must not alias the input buffer")
}

func TestI64_SafeRange(t *testing.T) {
	w := NewWriter()
	require.ErrorIs(t, w.PutI64(MaxSafeI64+1), ErrI64Range)
	require.NoError(t, w.PutI64(MaxSafeI64))

	// unsafe write, safe read of an out-of-range value fails
	w2 := NewWriter()
	w2.PutI64Unsafe(MaxSafeI64 + 1)
	r := NewReader(w2.Bytes())
	_, err := r.I64()
	require.ErrorIs(t, err, ErrI64Range)

	// but the unsafe read accepts it
	r = NewReader(w2.Bytes())
	v, err := r.I64Unsafe()
	require.NoError(t, err)
	assert.Equal(t, int64(MaxSafeI64+1), v)
}

func TestWriter_VarTooLong(t *testing.T) {
	w := NewWriter()
	err := w.PutString(strings.Repeat("x", 1<<16))
	require.ErrorIs(t, err, ErrVarTooLong)
}
