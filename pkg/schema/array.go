package schema

import (
	"context"
	"fmt"
	"reflect"
	"slices"
)

// ArraySchema validates slices and arrays. An element schema attached
// with Of is applied to every element; element failures are reported at
// "<path>[i]".
type ArraySchema struct {
	required    bool
	requiredMsg string
	typeErrMsg  string
	element     Schema
	checks      []check
}

func NewArray() *ArraySchema {
	return &ArraySchema{}
}

func (s *ArraySchema) clone() *ArraySchema {
	c := *s
	c.checks = slices.Clone(s.checks)
	return &c
}

// Of sets the element schema.
func (s *ArraySchema) Of(element Schema) *ArraySchema {
	c := s.clone()
	c.element = element
	return c
}

// Element returns the configured element schema, or nil.
func (s *ArraySchema) Element() Schema {
	return s.element
}

func (s *ArraySchema) Required(msg ...string) *ArraySchema {
	c := s.clone()
	c.required = true
	if len(msg) > 0 {
		c.requiredMsg = msg[0]
	}
	return c
}

func (s *ArraySchema) TypeError(msg string) *ArraySchema {
	c := s.clone()
	c.typeErrMsg = msg
	return c
}

// Min requires at least n elements.
func (s *ArraySchema) Min(n int, msg ...string) *ArraySchema {
	return s.withCheck("min", msg, func(l int) bool { return l >= n },
		"%%s must have at least %d items", n)
}

// Max requires at most n elements.
func (s *ArraySchema) Max(n int, msg ...string) *ArraySchema {
	return s.withCheck("max", msg, func(l int) bool { return l <= n },
		"%%s must have at most %d items", n)
}

func (s *ArraySchema) withCheck(rule string, msg []string, ok func(int) bool, format string, args ...any) *ArraySchema {
	c := s.clone()
	template := fmt.Sprintf(format, args...)
	c.checks = append(c.checks, check{rule: rule, fn: func(path string, value any) *ValidationError {
		l := value.(int)
		if ok(l) {
			return nil
		}
		return fail(path, rule, l, msg, template, label(path))
	}})
	return c
}

func (s *ArraySchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.run(ctx, value, opts)
}

func (s *ArraySchema) ValidateSync(value any, opts Options) (any, error) {
	return s.run(nil, value, opts)
}

func (s *ArraySchema) run(ctx context.Context, value any, opts Options) (any, error) {
	path := opts.Path
	if isAbsent(value) {
		if s.required {
			return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
		}
		return value, nil
	}

	rv := deref(reflect.ValueOf(value))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, Errors{*fail(path, "typeError", value, []string{s.typeErrMsg},
			"%s must be an array type", label(path))}
	}

	var errs Errors
	for _, c := range s.checks {
		if verr := c.fn(path, rv.Len()); verr != nil {
			errs = append(errs, *verr)
			if opts.AbortEarly {
				return nil, errs
			}
		}
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		ev := rv.Index(i).Interface()
		if s.element == nil {
			out[i] = ev
			continue
		}
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		childOpts := opts
		childOpts.Path = indexPath(path, i)
		res, err := validateChild(ctx, s.element, ev, childOpts)
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
		out[i] = res
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s *ArraySchema) Cast(value any) (any, error) {
	if isAbsent(value) {
		return value, nil
	}
	rv := deref(reflect.ValueOf(value))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: not an array", ErrCast)
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		ev := rv.Index(i).Interface()
		if s.element == nil {
			out[i] = ev
			continue
		}
		cv, err := s.element.Cast(ev)
		if err != nil {
			return nil, fmt.Errorf("cast [%d]: %w", i, err)
		}
		out[i] = cv
	}
	return out, nil
}

func (s *ArraySchema) Describe() Description {
	d := Description{Type: "array", Rules: describeRules(s.required, s.checks)}
	if s.element != nil {
		ed := s.element.Describe()
		d.Element = &ed
	}
	return d
}
