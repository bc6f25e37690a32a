package schema

import "context"

// LazySchema defers schema construction until the candidate value is
// known. The builder receives the actual value being validated and
// returns the schema to apply to it, which makes lazy schemas the tool
// for forward references, mutual recursion, and shapes that depend on
// the candidate (e.g. homogeneous record types whose keys are only known
// at validation time).
type LazySchema struct {
	builder func(value any) Schema
}

// Lazy wraps a builder into a deferred schema. The builder is invoked on
// every validation with the candidate value; it must not retain it.
func Lazy(builder func(value any) Schema) *LazySchema {
	return &LazySchema{builder: builder}
}

func (s *LazySchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.builder(value).Validate(ctx, value, opts)
}

func (s *LazySchema) ValidateSync(value any, opts Options) (any, error) {
	return s.builder(value).ValidateSync(value, opts)
}

func (s *LazySchema) Cast(value any) (any, error) {
	return s.builder(value).Cast(value)
}

// Describe reports only the deferred kind; the effective shape depends
// on the candidate value.
func (s *LazySchema) Describe() Description {
	return Description{Type: "lazy"}
}

// Resolve builds the effective schema for a candidate value.
func (s *LazySchema) Resolve(value any) Schema {
	return s.builder(value)
}
