package main

import (
	"fmt"
	"strings"

	"github.com/tuannm99/typewire/internal/typedesc"
)

// parseFields turns CLI field specs into a struct descriptor.
// Each spec is "name:type" where type is one of the primitive names,
// "[elem]" for arrays, "map[key,value]" for maps, or any of those with
// a trailing "?" for optionals, e.g.
//
//	id:int32 name:string tags:[string] score:float64?
func parseFields(specs []string) (*typedesc.Descriptor, error) {
	fields := make([]typedesc.Field, 0, len(specs))
	for _, spec := range specs {
		name, typ, ok := strings.Cut(spec, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("bad field spec %q, want name:type", spec)
		}
		d, err := parseType(typ)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, typedesc.Field{Name: name, Type: d})
	}
	return typedesc.NewStruct(fields...), nil
}

func parseType(s string) (*typedesc.Descriptor, error) {
	if elem, ok := strings.CutSuffix(s, "?"); ok {
		d, err := parseType(elem)
		if err != nil {
			return nil, err
		}
		return typedesc.NewOptional(d), nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		d, err := parseType(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return typedesc.NewArray(d), nil
	}
	if inner, ok := strings.CutPrefix(s, "map["); ok {
		inner, ok = strings.CutSuffix(inner, "]")
		if !ok {
			return nil, fmt.Errorf("unterminated map type %q", s)
		}
		ks, vs, ok := cutTopLevel(inner, ',')
		if !ok {
			return nil, fmt.Errorf("map type %q needs key,value", s)
		}
		key, err := parseType(ks)
		if err != nil {
			return nil, err
		}
		value, err := parseType(vs)
		if err != nil {
			return nil, err
		}
		return typedesc.NewMap(key, value), nil
	}

	switch s {
	case "byte":
		return typedesc.Byte, nil
	case "bool":
		return typedesc.Bool, nil
	case "int16":
		return typedesc.Int16, nil
	case "int32":
		return typedesc.Int32, nil
	case "int64":
		return typedesc.Int64, nil
	case "float32":
		return typedesc.Float32, nil
	case "float64":
		return typedesc.Float64, nil
	case "binary":
		return typedesc.Binary, nil
	case "string":
		return typedesc.String, nil
	case "date":
		return typedesc.Date, nil
	case "timestamp":
		return typedesc.Timestamp, nil
	case "typename":
		return typedesc.TypeName, nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}

// cutTopLevel splits on the first sep that is not nested inside [].
func cutTopLevel(s string, sep byte) (string, string, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

// formatSchema renders a struct descriptor one field per line.
func formatSchema(d *typedesc.Descriptor) string {
	var sb strings.Builder
	sb.WriteString("struct {\n")
	for _, f := range d.Fields() {
		fmt.Fprintf(&sb, "  %s: %s\n", f.Name, f.Type.Name())
	}
	sb.WriteString("}")
	return sb.String()
}
