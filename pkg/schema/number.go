package schema

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/spf13/cast"
)

// NumberSchema validates numeric values. Candidates are coerced to
// float64, so any Go numeric type and numeric strings are accepted.
type NumberSchema struct {
	required    bool
	requiredMsg string
	typeErrMsg  string
	checks      []check
}

func NewNumber() *NumberSchema {
	return &NumberSchema{}
}

func (s *NumberSchema) clone() *NumberSchema {
	c := *s
	c.checks = slices.Clone(s.checks)
	return &c
}

func (s *NumberSchema) Required(msg ...string) *NumberSchema {
	c := s.clone()
	c.required = true
	if len(msg) > 0 {
		c.requiredMsg = msg[0]
	}
	return c
}

func (s *NumberSchema) TypeError(msg string) *NumberSchema {
	c := s.clone()
	c.typeErrMsg = msg
	return c
}

// Min requires the value to be at least n.
func (s *NumberSchema) Min(n float64, msg ...string) *NumberSchema {
	return s.withCheck("min", msg, func(v float64) bool { return v >= n },
		"%%s must be at least %v", n)
}

// Max requires the value to be at most n.
func (s *NumberSchema) Max(n float64, msg ...string) *NumberSchema {
	return s.withCheck("max", msg, func(v float64) bool { return v <= n },
		"%%s must be at most %v", n)
}

func (s *NumberSchema) Positive(msg ...string) *NumberSchema {
	return s.withCheck("positive", msg, func(v float64) bool { return v > 0 },
		"%%s must be a positive number")
}

func (s *NumberSchema) Negative(msg ...string) *NumberSchema {
	return s.withCheck("negative", msg, func(v float64) bool { return v < 0 },
		"%%s must be a negative number")
}

// Integer requires the value to have no fractional part.
func (s *NumberSchema) Integer(msg ...string) *NumberSchema {
	return s.withCheck("integer", msg, func(v float64) bool { return v == math.Trunc(v) },
		"%%s must be an integer")
}

func (s *NumberSchema) withCheck(rule string, msg []string, ok func(float64) bool, format string, args ...any) *NumberSchema {
	c := s.clone()
	template := fmt.Sprintf(format, args...)
	c.checks = append(c.checks, check{rule: rule, fn: func(path string, value any) *ValidationError {
		v := value.(float64)
		if ok(v) {
			return nil
		}
		return fail(path, rule, v, msg, template, label(path))
	}})
	return c
}

func (s *NumberSchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ValidateSync(value, opts)
}

func (s *NumberSchema) ValidateSync(value any, opts Options) (any, error) {
	path := opts.Path
	if isAbsent(value) {
		if s.required {
			return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
		}
		return value, nil
	}

	v, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, Errors{*fail(path, "typeError", value, []string{s.typeErrMsg},
			"%s must be a number type", label(path))}
	}

	var errs Errors
	for _, c := range s.checks {
		if verr := c.fn(path, v); verr != nil {
			errs = append(errs, *verr)
			if opts.AbortEarly {
				break
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return v, nil
}

func (s *NumberSchema) Cast(value any) (any, error) {
	if isAbsent(value) {
		return value, nil
	}
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCast, err)
	}
	return v, nil
}

func (s *NumberSchema) Describe() Description {
	return Description{Type: "number", Rules: describeRules(s.required, s.checks)}
}
