// Package registry keeps named struct schemas so both ends of a
// connection can agree on value shapes without sharing compiled types.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/tuannm99/typewire/internal/typedesc"
)

var (
	ErrSchemaNotFound = errors.New("registry: schema not found")
	ErrSchemaExists   = errors.New("registry: schema already exists")
	ErrBadName        = errors.New("registry: invalid schema name")
	ErrNotStruct      = errors.New("registry: schema must be a struct descriptor")
)

// Registry is an in-memory name -> struct descriptor store. Safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*typedesc.Descriptor
}

func New() *Registry {
	return &Registry{schemas: map[string]*typedesc.Descriptor{}}
}

// Register adds a schema under a new name.
func (r *Registry) Register(name string, d *typedesc.Descriptor) error {
	if err := validateName(name); err != nil {
		return err
	}
	if d == nil || d.Kind() != typedesc.KindStruct {
		return ErrNotStruct
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemas[name]; ok {
		return ErrSchemaExists
	}
	r.schemas[name] = d
	return nil
}

// Replace upserts a schema, e.g. after a ReplaceType migration.
func (r *Registry) Replace(name string, d *typedesc.Descriptor) error {
	if err := validateName(name); err != nil {
		return err
	}
	if d == nil || d.Kind() != typedesc.KindStruct {
		return ErrNotStruct
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = d
	return nil
}

func (r *Registry) Get(name string) (*typedesc.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.schemas[name]
	if !ok {
		return nil, ErrSchemaNotFound
	}
	return d, nil
}

// List returns all registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Drop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemas[name]; !ok {
		return ErrSchemaNotFound
	}
	delete(r.schemas, name)
	return nil
}

// validateName accepts [A-Za-z_][A-Za-z0-9_.]* so names stay printable
// and usable as file/topic identifiers downstream.
func validateName(name string) error {
	if name == "" || len(name) > 128 {
		return ErrBadName
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '.'):
		default:
			return ErrBadName
		}
	}
	return nil
}
