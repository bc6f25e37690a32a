package enyup

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

// compile builds the object-level schema for t from its resolved
// metadata and registers the result. Absent metadata compiles to an
// empty shape rather than failing, so a type can be defined before (or
// without) any property rules.
func (r *Registry) compile(t reflect.Type, cfg defineConfig) schema.Schema {
	var fields []schema.Field
	if resolved, ok := r.FindSchemaMetadata(t); ok {
		for _, p := range resolved.Properties() {
			fields = append(fields, schema.Field{Name: p.Name, Schema: p.Rule})
		}
	}
	shape := schema.NewObject().Shape(fields...)

	var compiled schema.Schema = shape
	if cfg.target {
		construct := cfg.constructor
		if construct == nil {
			construct = defaultConstructor(t)
		}
		compiled = &targetSchema{target: t, shape: shape, construct: construct}
	}
	if cfg.refine != nil {
		compiled = cfg.refine(compiled)
	}

	r.log.Debug("schema compiled",
		"type", t.String(), "properties", len(fields), "target", cfg.target)
	r.register(t, cfg.name, compiled)
	return compiled
}

// candidateCase tags the two outcomes of target-mode dispatch.
type candidateCase int

const (
	// alreadyInstance: the candidate is a runtime instance of the target
	// type; validate it in place and hand back the identical value.
	alreadyInstance candidateCase = iota
	// needsConstruction: the candidate is plain data; validate it
	// non-strictly, then build an instance from the validated data.
	needsConstruction
)

// targetSchema is the instance-reconstructing compiled schema: a shape
// schema bound to a concrete type together with a constructor.
type targetSchema struct {
	target    reflect.Type
	shape     *schema.ObjectSchema
	construct ConstructorFunc
}

func (s *targetSchema) classify(value any) candidateCase {
	if value == nil {
		return needsConstruction
	}
	if normalizeType(reflect.TypeOf(value)) == s.target {
		return alreadyInstance
	}
	return needsConstruction
}

func (s *targetSchema) Validate(ctx context.Context, value any, opts schema.Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.run(ctx, value, opts)
}

func (s *targetSchema) ValidateSync(value any, opts schema.Options) (any, error) {
	return s.run(nil, value, opts)
}

func (s *targetSchema) run(ctx context.Context, value any, opts schema.Options) (any, error) {
	switch s.classify(value) {
	case alreadyInstance:
		if _, err := s.validateShape(ctx, value, opts); err != nil {
			return nil, err
		}
		return value, nil
	default:
		validated, err := s.validateShape(ctx, value, opts)
		if err != nil {
			return nil, err
		}
		if validated == nil {
			return nil, nil
		}
		return s.construct(asDataMap(validated, s.shape))
	}
}

func (s *targetSchema) validateShape(ctx context.Context, value any, opts schema.Options) (any, error) {
	if ctx == nil {
		return s.shape.ValidateSync(value, opts)
	}
	return s.shape.Validate(ctx, value, opts)
}

func (s *targetSchema) Cast(value any) (any, error) {
	if s.classify(value) == alreadyInstance {
		return value, nil
	}
	out, err := s.shape.Cast(value)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return s.construct(asDataMap(out, s.shape))
}

func (s *targetSchema) Describe() schema.Description {
	return s.shape.Describe()
}

// asDataMap normalizes validated shape output into the plain-data map a
// constructor expects. Map output passes through; anything else (a
// foreign struct candidate) is flattened through the shape's declared
// properties.
func asDataMap(validated any, shape *schema.ObjectSchema) map[string]any {
	if m, ok := validated.(map[string]any); ok {
		return m
	}
	out := make(map[string]any)
	for _, f := range shape.Fields() {
		if v, present := schema.LookupField(validated, f.Name); present {
			out[f.Name] = v
		}
	}
	return out
}

// defaultConstructor decodes validated plain data into a freshly
// allocated instance of t, returning a pointer to it. Decoding follows
// the same `json` tags as validation-time field lookup and tolerates the
// engine's numeric widening (validated numbers are float64).
func defaultConstructor(t reflect.Type) ConstructorFunc {
	return func(data map[string]any) (any, error) {
		inst := reflect.New(t).Interface()
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           inst,
			TagName:          "json",
			WeaklyTypedInput: true,
			Squash:           true,
		})
		if err != nil {
			return nil, fmt.Errorf("construct %s: %w", t, err)
		}
		if err := dec.Decode(data); err != nil {
			return nil, fmt.Errorf("construct %s: %w", t, err)
		}
		return inst, nil
	}
}
