package schemawire

import (
	"fmt"
	"io"

	"github.com/tuannm99/typewire/internal/alias/bx"
)

const (
	// MaxFrameSize limits memory usage on malformed/hostile input.
	MaxFrameSize = 8 << 20 // 8 MiB
)

// ReadFrame reads a single length-prefixed binary frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := bx.U32BE(hdr[:])
	if n == 0 {
		return nil, fmt.Errorf("schemawire: empty frame")
	}
	if n > MaxFrameSize {
		return nil, fmt.Errorf("schemawire: frame too large: %d > %d", n, MaxFrameSize)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteFrame writes b as a length-prefixed binary frame.
func WriteFrame(w io.Writer, b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("schemawire: empty payload")
	}
	if len(b) > MaxFrameSize {
		return fmt.Errorf("schemawire: payload too large: %d > %d", len(b), MaxFrameSize)
	}

	var hdr [4]byte
	bx.PutU32BE(hdr[:], uint32(len(b)))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
