// Package typewire is the top-level facade for the typewire type
// system: self-describing descriptors for a binary wire protocol.
package typewire

import (
	"github.com/tuannm99/typewire/internal/typedesc"
	"github.com/tuannm99/typewire/internal/wire"
)

type (
	Descriptor  = typedesc.Descriptor
	Field       = typedesc.Field
	Kind        = typedesc.Kind
	ReplaceFunc = typedesc.ReplaceFunc

	Reader = wire.Reader
	Writer = wire.Writer
)

// Primitive singleton descriptors.
var (
	Byte        = typedesc.Byte
	Bool        = typedesc.Bool
	Int16       = typedesc.Int16
	Int32       = typedesc.Int32
	Int64       = typedesc.Int64
	Int64Unsafe = typedesc.Int64Unsafe
	Float32     = typedesc.Float32
	Float64     = typedesc.Float64
	Binary      = typedesc.Binary
	String      = typedesc.String
	Date        = typedesc.Date
	Timestamp   = typedesc.Timestamp
	TypeName    = typedesc.TypeName
)

var (
	NewStruct   = typedesc.NewStruct
	NewOptional = typedesc.NewOptional
	NewArray    = typedesc.NewArray
	NewMap      = typedesc.NewMap

	EncodeDescriptor = typedesc.EncodeDescriptor
	DecodeDescriptor = typedesc.DecodeDescriptor
	ReplaceType      = typedesc.ReplaceType

	NewReader = wire.NewReader
	NewWriter = wire.NewWriter
)

// Sentinel errors re-exported for callers outside the module.
var (
	ErrTruncated            = wire.ErrTruncated
	ErrUnknownDiscriminator = typedesc.ErrUnknownDiscriminator
	ErrUnimplemented        = typedesc.ErrUnimplemented
	ErrShapeMismatch        = typedesc.ErrShapeMismatch
)
