package typedesc

// ReplaceFunc is a partial rewrite: return (replacement, true) to
// substitute a node, or (nil, false) to leave it to the walker. It may
// be called with any descriptor node, including ones it has never
// seen.
type ReplaceFunc func(*Descriptor) (*Descriptor, bool)

// ReplaceType rewrites a struct descriptor tree. Every field's
// descriptor is passed through fn once: a replacement is taken
// verbatim and not walked further; otherwise composites are rebuilt
// with their children rewritten under the same rule and leaves are
// returned unchanged. The root's field list itself is always walked.
//
// The input tree is never mutated; the result is a fresh struct whose
// composite nodes are all new objects. Runs in linear time over the
// nodes visited.
func ReplaceType(fn ReplaceFunc, root *Descriptor) *Descriptor {
	if root.kind != KindStruct {
		panic("typedesc: ReplaceType root must be a struct descriptor")
	}
	fields := make([]Field, len(root.fields))
	for i := range root.fields {
		fields[i] = Field{Name: root.fields[i].Name, Type: rewrite(fn, root.fields[i].Type)}
	}
	return NewStruct(fields...)
}

func rewrite(fn ReplaceFunc, d *Descriptor) *Descriptor {
	if repl, ok := fn(d); ok {
		return repl
	}
	switch d.kind {
	case KindStruct:
		fields := make([]Field, len(d.fields))
		for i := range d.fields {
			fields[i] = Field{Name: d.fields[i].Name, Type: rewrite(fn, d.fields[i].Type)}
		}
		return NewStruct(fields...)
	case KindOptional:
		return NewOptional(rewrite(fn, d.elem))
	case KindArray:
		return NewArray(rewrite(fn, d.elem))
	case KindMap:
		return NewMap(rewrite(fn, d.key), rewrite(fn, d.value))
	default:
		// primitives are singleton leaves
		return d
	}
}
