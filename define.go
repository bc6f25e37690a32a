package enyup

import (
	"fmt"
	"reflect"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

// ConstructorFunc builds an instance of the target type from validated
// plain data. It is the contract behind target mode: the function must
// accept the validated data as its sole argument and return the new
// instance.
type ConstructorFunc func(data map[string]any) (any, error)

type nestedKind int

const (
	nestedOne nestedKind = iota
	nestedArrayOf
	nestedRecordOf
)

type nestedDecl struct {
	kind   nestedKind
	thunk  TypeThunk // nil means infer from the declared struct field
	base   *schema.ArraySchema
	refine RefineFunc
}

type propDecl struct {
	name   string
	rule   schema.Schema
	nested *nestedDecl
}

type defineConfig struct {
	name        string
	parent      TypeThunk
	props       []propDecl
	refine      RefineFunc
	target      bool
	constructor ConstructorFunc
}

// DefineOption configures a Define call.
type DefineOption func(*defineConfig)

// WithName additionally registers the compiled schema under a string
// name, independent of type identity.
func WithName(name string) DefineOption {
	return func(c *defineConfig) { c.name = name }
}

// WithParent declares the type's parent for inheritance resolution. The
// parent's own rules (and its ancestors') are merged underneath this
// type's rules when the schema compiles.
func WithParent(thunk TypeThunk) DefineOption {
	return func(c *defineConfig) { c.parent = thunk }
}

// Extends is the generic convenience form of WithParent.
func Extends[P any]() DefineOption {
	return WithParent(TypeOf[P]())
}

// WithProperty declares a primitive rule for one property. Declaration
// order is preserved and fixes error-reporting order.
func WithProperty(name string, rule schema.Schema) DefineOption {
	return func(c *defineConfig) {
		c.props = append(c.props, propDecl{name: name, rule: rule})
	}
}

// WithNested declares a property holding a single nested object. A nil
// thunk infers the referenced type from the declared struct field.
func WithNested(property string, thunk TypeThunk, refine RefineFunc) DefineOption {
	return func(c *defineConfig) {
		c.props = append(c.props, propDecl{name: property, nested: &nestedDecl{
			kind: nestedOne, thunk: thunk, refine: refine,
		}})
	}
}

// WithNestedArray declares a property holding a slice of nested objects.
// base customizes the wrapping array schema (length rules, messages); nil
// uses a plain array schema. A nil thunk infers the element type from the
// declared slice field.
func WithNestedArray(property string, thunk TypeThunk, base *schema.ArraySchema, refine RefineFunc) DefineOption {
	return func(c *defineConfig) {
		c.props = append(c.props, propDecl{name: property, nested: &nestedDecl{
			kind: nestedArrayOf, thunk: thunk, base: base, refine: refine,
		}})
	}
}

// WithNestedRecord declares a property holding a homogeneous map from
// arbitrary string keys to nested objects. A nil thunk infers the element
// type from the declared map field.
func WithNestedRecord(property string, thunk TypeThunk, refine RefineFunc) DefineOption {
	return func(c *defineConfig) {
		c.props = append(c.props, propDecl{name: property, nested: &nestedDecl{
			kind: nestedRecordOf, thunk: thunk, refine: refine,
		}})
	}
}

// WithRefine adjusts the compiled schema as the final compilation step,
// after mode-specific wrapping.
func WithRefine(refine RefineFunc) DefineOption {
	return func(c *defineConfig) { c.refine = refine }
}

// WithTarget compiles in target mode with the default constructor: a
// validated plain-data candidate is decoded into a freshly allocated
// instance of the type, while a candidate that already is an instance is
// validated in place and returned unchanged.
func WithTarget() DefineOption {
	return func(c *defineConfig) { c.target = true }
}

// WithConstructor compiles in target mode with an explicit constructor.
func WithConstructor(fn ConstructorFunc) DefineOption {
	return func(c *defineConfig) {
		c.target = true
		c.constructor = fn
	}
}

// Define registers T's property rules and compiles its schema. It is the
// class-level registration entry point: property options write into the
// metadata registry, then the schema is compiled from the resolved
// (inheritance-merged) metadata and registered by type and, when named,
// by name.
//
// Re-defining a type recompiles from the then-current metadata and
// overwrites the previous registration. A nil registry targets Default.
func Define[T any](r *Registry, opts ...DefineOption) schema.Schema {
	if r == nil {
		r = Default
	}
	t := typeFor[T]()

	var cfg defineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.parent != nil {
		r.setParent(t, normalizeType(cfg.parent()))
	}
	for _, p := range cfg.props {
		rule := p.rule
		if p.nested != nil {
			rule = r.nestedRule(t, p.name, p.nested)
		}
		r.AddSchemaMetadata(t, p.name, rule)
	}

	return r.compile(t, cfg)
}

// nestedRule materializes a nested declaration into a property rule,
// inferring the referenced type from the owner's struct field when no
// thunk was given. A declaration that cannot be inferred is a usage
// error and panics: composition-time errors are fatal to the
// registration.
func (r *Registry) nestedRule(owner reflect.Type, property string, decl *nestedDecl) schema.Schema {
	thunk := decl.thunk
	if thunk == nil {
		thunk = inferThunk(owner, property, decl.kind)
	}

	switch decl.kind {
	case nestedArrayOf:
		return r.NestedArray(thunk, decl.base, decl.refine)
	case nestedRecordOf:
		return r.NestedRecord(thunk, decl.refine)
	default:
		return r.NestedOne(thunk, decl.refine)
	}
}

func inferThunk(owner reflect.Type, property string, kind nestedKind) TypeThunk {
	f, ok := schema.DeclaredField(owner, property)
	if !ok {
		panic(fmt.Errorf("%w: %s has no field for property %q", ErrTypeInference, owner, property))
	}

	ft := f.Type
	switch kind {
	case nestedArrayOf:
		if ft.Kind() != reflect.Slice && ft.Kind() != reflect.Array {
			panic(fmt.Errorf("%w: field %s.%s is %s, expected a slice", ErrTypeInference, owner, f.Name, ft))
		}
		ft = ft.Elem()
	case nestedRecordOf:
		if ft.Kind() != reflect.Map || ft.Key().Kind() != reflect.String {
			panic(fmt.Errorf("%w: field %s.%s is %s, expected a string-keyed map", ErrTypeInference, owner, f.Name, ft))
		}
		ft = ft.Elem()
	}

	elem := normalizeType(ft)
	if elem.Kind() != reflect.Struct {
		panic(fmt.Errorf("%w: field %s.%s does not reference a struct type", ErrTypeInference, owner, f.Name))
	}
	return func() reflect.Type { return elem }
}
