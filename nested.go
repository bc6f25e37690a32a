package enyup

import (
	"reflect"
	"slices"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

// TypeThunk is a deferred, zero-argument reference to a type. Thunks are
// only evaluated when the referenced schema is actually needed, which
// allows two types to reference each other regardless of the order their
// schemas are defined in.
type TypeThunk func() reflect.Type

// TypeOf builds a thunk for a statically known type.
func TypeOf[T any]() TypeThunk {
	return func() reflect.Type { return typeFor[T]() }
}

// RefineFunc adjusts a resolved schema for one call site, e.g. marking a
// nested schema required or overriding its type error. It receives a
// schema and must return the schema to use in its place.
type RefineFunc func(schema.Schema) schema.Schema

// schemaForThunk resolves the compiled schema for a referenced type,
// compiling it on demand when it was never explicitly defined. An
// already registered schema is reused as is, so a type referenced from
// several places compiles exactly once.
func (r *Registry) schemaForThunk(thunk TypeThunk) schema.Schema {
	t := normalizeType(thunk())
	if s := r.SchemaByType(t); s != nil {
		return s
	}
	return r.compile(t, defineConfig{})
}

// NestedOne returns the rule for a property holding a single instance of
// the referenced type. Resolution is fully deferred: the thunk is only
// evaluated at validation time, and the refinement is applied to the
// resolved schema on every use.
func (r *Registry) NestedOne(thunk TypeThunk, refine RefineFunc) schema.Schema {
	return schema.Lazy(func(any) schema.Schema {
		s := r.schemaForThunk(thunk)
		if refine != nil {
			return refine(s)
		}
		return s
	})
}

// NestedArray returns the rule for a property holding a slice of the
// referenced type. The resolved element schema is attached to base, or
// to a fresh array schema when base is nil; the refinement is applied to
// the array schema.
func (r *Registry) NestedArray(thunk TypeThunk, base *schema.ArraySchema, refine RefineFunc) schema.Schema {
	return schema.Lazy(func(any) schema.Schema {
		arr := base
		if arr == nil {
			arr = schema.NewArray()
		}
		var s schema.Schema = arr.Of(r.schemaForThunk(thunk))
		if refine != nil {
			return refine(s)
		}
		return s
	})
}

// NestedRecord returns the rule for a property declared as a homogeneous
// map from arbitrary string keys to the referenced type. The key set is
// only known at validation time, so the shape is built per candidate: an
// object schema assigning the element schema to every key present, or an
// empty object schema when the candidate is not an object at all, so
// that type and required errors still surface for malformed input. The
// refinement runs against that freshly built object schema either way.
func (r *Registry) NestedRecord(thunk TypeThunk, refine RefineFunc) schema.Schema {
	return schema.Lazy(func(value any) schema.Schema {
		obj := schema.NewObject()
		if keys := recordKeys(value); len(keys) > 0 {
			element := r.schemaForThunk(thunk)
			fields := make([]schema.Field, 0, len(keys))
			for _, k := range keys {
				fields = append(fields, schema.Field{Name: k, Schema: element})
			}
			obj = obj.Shape(fields...)
		}
		if refine != nil {
			return refine(obj)
		}
		return obj
	})
}

// recordKeys returns the sorted keys of a map candidate, or nil when the
// candidate is not a string-keyed map. Sorting keeps error ordering
// deterministic across runs.
func recordKeys(value any) []string {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	return keys
}
