package schemawire

import (
	"fmt"

	"github.com/tuannm99/typewire/internal/typedesc"
	"github.com/tuannm99/typewire/internal/wire"
)

// Op selects the registry operation carried by a request frame.
type Op byte

const (
	OpRegister Op = iota + 1
	OpFetch
	OpList
	OpDrop
)

const (
	StatusOK    byte = 0
	StatusError byte = 1
)

// Request is one client command.
// Layout: [u8 op][string name][u8 hasSchema][descriptor?]
type Request struct {
	Op     Op
	Name   string
	Schema *typedesc.Descriptor
}

// Response answers a single request.
// Layout: [u8 status][string err][u8 hasSchema][descriptor?][i32 n][names...]
type Response struct {
	Status byte
	Err    string
	Schema *typedesc.Descriptor
	Names  []string
}

func (q Request) Encode() ([]byte, error) {
	w := wire.NewWriter()
	w.PutU8(byte(q.Op))
	if err := w.PutString(q.Name); err != nil {
		return nil, err
	}
	if q.Schema == nil {
		w.PutBool(false)
	} else {
		w.PutBool(true)
		if err := typedesc.EncodeDescriptor(w, q.Schema); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func DecodeRequest(b []byte) (Request, error) {
	r := wire.NewReader(b)
	var q Request

	op, err := r.U8()
	if err != nil {
		return q, err
	}
	q.Op = Op(op)
	if q.Op < OpRegister || q.Op > OpDrop {
		return q, fmt.Errorf("schemawire: unknown op %d", op)
	}

	if q.Name, err = r.String(); err != nil {
		return q, err
	}

	hasSchema, err := r.Bool()
	if err != nil {
		return q, err
	}
	if hasSchema {
		if q.Schema, err = typedesc.DecodeDescriptor(r); err != nil {
			return q, err
		}
	}
	return q, nil
}

func (p Response) Encode() ([]byte, error) {
	w := wire.NewWriter()
	w.PutU8(p.Status)
	if err := w.PutString(p.Err); err != nil {
		return nil, err
	}
	if p.Schema == nil {
		w.PutBool(false)
	} else {
		w.PutBool(true)
		if err := typedesc.EncodeDescriptor(w, p.Schema); err != nil {
			return nil, err
		}
	}
	w.PutI32(int32(len(p.Names)))
	for _, name := range p.Names {
		if err := w.PutString(name); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func DecodeResponse(b []byte) (Response, error) {
	r := wire.NewReader(b)
	var p Response

	status, err := r.U8()
	if err != nil {
		return p, err
	}
	p.Status = status

	if p.Err, err = r.String(); err != nil {
		return p, err
	}

	hasSchema, err := r.Bool()
	if err != nil {
		return p, err
	}
	if hasSchema {
		if p.Schema, err = typedesc.DecodeDescriptor(r); err != nil {
			return p, err
		}
	}

	n, err := r.I32()
	if err != nil {
		return p, err
	}
	if n < 0 || int(n) > r.Remaining() {
		return p, fmt.Errorf("schemawire: name count %d: %w", n, wire.ErrTruncated)
	}
	if n > 0 {
		p.Names = make([]string, n)
		for i := range p.Names {
			if p.Names[i], err = r.String(); err != nil {
				return p, err
			}
		}
	}
	return p, nil
}
