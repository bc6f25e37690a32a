package enyup

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

// Registry owns all composition state: per-type property metadata, the
// resolved-metadata cache, and the compiled-schema lookup tables keyed by
// type and by name. Composition (Define, AddSchemaMetadata) is meant to
// run during program initialization; after that the registry is
// effectively read-only. Mutation is still guarded by a mutex so hosts
// that compose lazily from multiple goroutines stay correct.
type Registry struct {
	mu       sync.RWMutex
	meta     map[reflect.Type]*classMetadata
	resolved map[reflect.Type]*ResolvedMetadata
	byType   map[reflect.Type]schema.Schema
	byName   map[string]schema.Schema
	log      *slog.Logger
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithLogger attaches a logger for Debug-level composition events
// (schema compiled, schema registered). The default discards everything.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// New constructs an empty registry. Isolated domains (tests, tenants)
// should each construct their own instead of sharing Default.
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		meta:     make(map[reflect.Type]*classMetadata),
		resolved: make(map[reflect.Type]*ResolvedMetadata),
		byType:   make(map[reflect.Type]schema.Schema),
		byName:   make(map[string]schema.Schema),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the process-wide registry used by the package-level
// functions.
var Default = New()

// SchemaByType returns the compiled schema for a type. It accepts a
// reflect.Type, an instance, or a pointer to an instance, and returns nil
// when the type was never compiled; callers must guard against that.
func (r *Registry) SchemaByType(classOrInstance any) schema.Schema {
	t := typeOfValue(classOrInstance)
	if t == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[t]
}

// NamedSchema returns the compiled schema registered under name, or nil
// when the name is unregistered.
func (r *Registry) NamedSchema(name string) schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// register stores a compiled schema, overwriting any previous entry for
// the same type or name.
func (r *Registry) register(t reflect.Type, name string, s schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byType[t] = s
	if name != "" {
		r.byName[name] = s
	}
	r.log.Debug("schema registered", "type", t.String(), "name", name)
}

// typeFor resolves the metadata key for a type parameter, unwrapping a
// pointer type parameter to its element.
func typeFor[T any]() reflect.Type {
	return normalizeType(reflect.TypeOf((*T)(nil)).Elem())
}

// normalizeType strips pointer layers so *T and T share one identity in
// every registry table.
func normalizeType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// typeOfValue resolves a lookup key from either a reflect.Type or an
// instance.
func typeOfValue(classOrInstance any) reflect.Type {
	if classOrInstance == nil {
		return nil
	}
	if t, ok := classOrInstance.(reflect.Type); ok {
		return normalizeType(t)
	}
	return normalizeType(reflect.TypeOf(classOrInstance))
}
