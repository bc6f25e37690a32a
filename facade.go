package enyup

import (
	"context"
	"fmt"
	"reflect"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

// Params carries the arguments shared by every validation entry point.
type Params struct {
	// Object is the value to validate: a struct, struct pointer, or
	// string-keyed map. Anything else is a usage error.
	Object any

	// SchemaName selects the compiled schema: a string resolves by
	// registered name, a reflect.Type by type, and nil uses Object's own
	// runtime type.
	SchemaName any

	// Options are passed through to the engine untouched. Nil means
	// DefaultOptions (abort at the first failure).
	Options *schema.Options

	// Path selects the property to validate for the At variants, e.g.
	// "job.title" or "tags[0].name". Ignored by the other operations.
	Path string
}

func (p Params) options() schema.Options {
	if p.Options != nil {
		return *p.Options
	}
	return schema.DefaultOptions()
}

// resolveSchema locates the compiled schema for p, enforcing the façade's
// usage contract: Object must be an object, and the schema must have been
// compiled beforehand.
func (r *Registry) resolveSchema(p Params) (schema.Schema, error) {
	if p.Object == nil {
		return nil, ErrNotObject
	}
	rv := reflect.ValueOf(p.Object)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, ErrNotObject
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, p.Object)
	}

	var s schema.Schema
	switch ref := p.SchemaName.(type) {
	case nil:
		s = r.SchemaByType(p.Object)
	case string:
		s = r.NamedSchema(ref)
	case reflect.Type:
		s = r.SchemaByType(ref)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidSchemaRef, p.SchemaName)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: for %T", ErrSchemaNotRegistered, p.Object)
	}
	return s, nil
}

// Validate validates p.Object against its compiled schema, honoring
// context cancellation. On success it returns the validated value: the
// identical instance in target mode, otherwise the coerced plain data.
func (r *Registry) Validate(ctx context.Context, p Params) (any, error) {
	s, err := r.resolveSchema(p)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return s.Validate(ctx, p.Object, p.options())
}

// ValidateSync is Validate without a context.
func (r *Registry) ValidateSync(p Params) (any, error) {
	s, err := r.resolveSchema(p)
	if err != nil {
		return nil, err
	}
	return s.ValidateSync(p.Object, p.options())
}

// ValidateAt validates only the property at p.Path inside p.Object.
func (r *Registry) ValidateAt(ctx context.Context, p Params) (any, error) {
	s, err := r.resolveSchema(p)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return schema.ValidateAt(ctx, traversableRoot(s), p.Path, p.Object, p.options())
}

// ValidateSyncAt is ValidateAt without a context.
func (r *Registry) ValidateSyncAt(p Params) (any, error) {
	s, err := r.resolveSchema(p)
	if err != nil {
		return nil, err
	}
	return schema.ValidateSyncAt(traversableRoot(s), p.Path, p.Object, p.options())
}

// IsValid reports whether p.Object validates, treating resolution
// failures as invalid.
func (r *Registry) IsValid(ctx context.Context, p Params) bool {
	_, err := r.Validate(ctx, p)
	return err == nil
}

// IsValidSync is IsValid without a context.
func (r *Registry) IsValidSync(p Params) bool {
	_, err := r.ValidateSync(p)
	return err == nil
}

// Cast coerces p.Object through its compiled schema without running
// checks. In target mode the coerced data is constructed into an
// instance.
func (r *Registry) Cast(p Params) (any, error) {
	s, err := r.resolveSchema(p)
	if err != nil {
		return nil, err
	}
	return s.Cast(p.Object)
}

// traversableRoot unwraps a target-mode schema to its underlying shape so
// path resolution can descend into it.
func traversableRoot(s schema.Schema) schema.Schema {
	if ts, ok := s.(*targetSchema); ok {
		return ts.shape
	}
	return s
}

// Package-level delegates operating on the Default registry.

func Validate(ctx context.Context, p Params) (any, error) { return Default.Validate(ctx, p) }
func ValidateSync(p Params) (any, error)                  { return Default.ValidateSync(p) }
func ValidateAt(ctx context.Context, p Params) (any, error) {
	return Default.ValidateAt(ctx, p)
}
func ValidateSyncAt(p Params) (any, error)       { return Default.ValidateSyncAt(p) }
func IsValid(ctx context.Context, p Params) bool { return Default.IsValid(ctx, p) }
func IsValidSync(p Params) bool                  { return Default.IsValidSync(p) }
func Cast(p Params) (any, error)                 { return Default.Cast(p) }

// SchemaByType resolves a compiled schema from the Default registry.
func SchemaByType(classOrInstance any) schema.Schema { return Default.SchemaByType(classOrInstance) }

// NamedSchema resolves a named schema from the Default registry.
func NamedSchema(name string) schema.Schema { return Default.NamedSchema(name) }
