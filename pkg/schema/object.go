package schema

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Field is one named entry of an object shape. Shape order is
// significant: validation visits fields in declaration order, which
// fixes the reporting order of aggregated errors.
type Field struct {
	Name   string
	Schema Schema
}

// ObjectSchema validates object candidates: maps with string keys,
// structs, and pointers to either. Struct properties are resolved by
// `json` tag, falling back to the exported field name.
//
// Validating a map returns a fresh map of validated (coerced) values.
// Validating a struct validates it in place and returns the identical
// value, preserving instance identity for callers that care about it.
type ObjectSchema struct {
	required    bool
	requiredMsg string
	typeErrMsg  string
	strict      bool
	strip       bool
	fields      []Field
	index       map[string]int
}

func NewObject() *ObjectSchema {
	return &ObjectSchema{index: map[string]int{}}
}

func (s *ObjectSchema) clone() *ObjectSchema {
	c := *s
	c.fields = slices.Clone(s.fields)
	c.index = maps.Clone(s.index)
	return &c
}

// Shape appends fields to the shape. Redeclaring an existing name
// replaces its schema and moves the field to the new position, so the
// most recent declaration wins both rule and order.
func (s *ObjectSchema) Shape(fields ...Field) *ObjectSchema {
	c := s.clone()
	for _, f := range fields {
		c.setField(f)
	}
	return c
}

func (s *ObjectSchema) setField(f Field) {
	if i, ok := s.index[f.Name]; ok {
		s.fields = slices.Delete(s.fields, i, i+1)
	}
	s.fields = append(s.fields, f)
	s.index = make(map[string]int, len(s.fields))
	for i, ff := range s.fields {
		s.index[ff.Name] = i
	}
}

// Concat merges another object schema's shape into this one. Fields of
// the other schema win on name collision and take the other schema's
// position, mirroring Shape's override semantics.
func (s *ObjectSchema) Concat(other *ObjectSchema) *ObjectSchema {
	c := s.Shape(other.fields...)
	if other.required {
		c.required = true
		if other.requiredMsg != "" {
			c.requiredMsg = other.requiredMsg
		}
	}
	if other.typeErrMsg != "" {
		c.typeErrMsg = other.typeErrMsg
	}
	if other.strict {
		c.strict = true
	}
	if other.strip {
		c.strip = true
	}
	return c
}

// Fields returns the shape in declaration order.
func (s *ObjectSchema) Fields() []Field {
	return slices.Clone(s.fields)
}

// FieldSchema returns the schema declared for a single property.
func (s *ObjectSchema) FieldSchema(name string) (Schema, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Schema, true
}

func (s *ObjectSchema) Required(msg ...string) *ObjectSchema {
	c := s.clone()
	c.required = true
	if len(msg) > 0 {
		c.requiredMsg = msg[0]
	}
	return c
}

func (s *ObjectSchema) TypeError(msg string) *ObjectSchema {
	c := s.clone()
	c.typeErrMsg = msg
	return c
}

// Strict rejects map keys that are not part of the shape. The default is
// permissive: unknown keys are carried through untouched.
func (s *ObjectSchema) Strict() *ObjectSchema {
	c := s.clone()
	c.strict = true
	return c
}

// Strip drops map keys that are not part of the shape from the validated
// output instead of carrying them through. Strict takes precedence when
// both are set.
func (s *ObjectSchema) Strip() *ObjectSchema {
	c := s.clone()
	c.strip = true
	return c
}

func (s *ObjectSchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.run(ctx, value, opts)
}

func (s *ObjectSchema) ValidateSync(value any, opts Options) (any, error) {
	return s.run(nil, value, opts)
}

func (s *ObjectSchema) run(ctx context.Context, value any, opts Options) (any, error) {
	path := opts.Path
	if isAbsent(value) {
		if s.required {
			return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
		}
		return value, nil
	}
	if !isObjectValue(value) {
		return nil, Errors{*fail(path, "typeError", value, []string{s.typeErrMsg},
			"%s must be an object type", label(path))}
	}

	rv := deref(reflect.ValueOf(value))
	isStruct := rv.Kind() == reflect.Struct

	var out map[string]any
	if !isStruct {
		out = make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			key := k.String()
			if s.strip && !s.strict {
				if _, declared := s.index[key]; !declared {
					continue
				}
			}
			out[key] = rv.MapIndex(k).Interface()
		}
	}

	var errs Errors
	if s.strict && !isStruct {
		for _, key := range slices.Sorted(maps.Keys(out)) {
			if _, ok := s.index[key]; !ok {
				errs = append(errs, *fail(joinPath(path, key), "unknown", out[key], nil,
					"%s is not a declared property", label(joinPath(path, key))))
				if opts.AbortEarly {
					return nil, errs
				}
			}
		}
	}

	for _, f := range s.fields {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fv, present := LookupField(value, f.Name)
		childOpts := opts
		childOpts.Path = joinPath(path, f.Name)
		res, err := validateChild(ctx, f.Schema, fv, childOpts)
		if err != nil {
			if ctx != nil && ctx.Err() != nil {
				return nil, err
			}
			errs = append(errs, childErrors(childOpts.Path, err)...)
			if opts.AbortEarly {
				return nil, errs
			}
			continue
		}
		if !isStruct && (present || res != nil) {
			out[f.Name] = res
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if isStruct {
		return value, nil
	}
	return out, nil
}

func (s *ObjectSchema) Cast(value any) (any, error) {
	if isAbsent(value) {
		return value, nil
	}
	if !isObjectValue(value) {
		return nil, fmt.Errorf("%w: not an object", ErrCast)
	}

	rv := deref(reflect.ValueOf(value))
	if rv.Kind() == reflect.Struct {
		return value, nil
	}

	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[k.String()] = rv.MapIndex(k).Interface()
	}
	for _, f := range s.fields {
		fv, present := LookupField(value, f.Name)
		if !present {
			continue
		}
		cv, err := f.Schema.Cast(fv)
		if err != nil {
			return nil, fmt.Errorf("cast %s: %w", f.Name, err)
		}
		out[f.Name] = cv
	}
	return out, nil
}

func (s *ObjectSchema) Describe() Description {
	d := Description{Type: "object", Rules: describeRules(s.required, nil)}
	if s.strict {
		d.Rules = append(d.Rules, "strict")
	}
	if s.strip {
		d.Rules = append(d.Rules, "strip")
	}
	for _, f := range s.fields {
		d.Fields = append(d.Fields, FieldDescription{Name: f.Name, Description: f.Schema.Describe()})
	}
	return d
}
