package schema

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cast"
)

// DateSchema validates time.Time values, coercing RFC 3339 and other
// common textual timestamp layouts.
type DateSchema struct {
	required    bool
	requiredMsg string
	typeErrMsg  string
	checks      []check
}

func NewDate() *DateSchema {
	return &DateSchema{}
}

func (s *DateSchema) clone() *DateSchema {
	c := *s
	c.checks = slices.Clone(s.checks)
	return &c
}

func (s *DateSchema) Required(msg ...string) *DateSchema {
	c := s.clone()
	c.required = true
	if len(msg) > 0 {
		c.requiredMsg = msg[0]
	}
	return c
}

func (s *DateSchema) TypeError(msg string) *DateSchema {
	c := s.clone()
	c.typeErrMsg = msg
	return c
}

// Min requires the value to be at or after t.
func (s *DateSchema) Min(t time.Time, msg ...string) *DateSchema {
	return s.withCheck("min", msg, func(v time.Time) bool { return !v.Before(t) },
		"%%s must be at or after %s", t.Format(time.RFC3339))
}

// Max requires the value to be at or before t.
func (s *DateSchema) Max(t time.Time, msg ...string) *DateSchema {
	return s.withCheck("max", msg, func(v time.Time) bool { return !v.After(t) },
		"%%s must be at or before %s", t.Format(time.RFC3339))
}

func (s *DateSchema) withCheck(rule string, msg []string, ok func(time.Time) bool, format string, args ...any) *DateSchema {
	c := s.clone()
	template := fmt.Sprintf(format, args...)
	c.checks = append(c.checks, check{rule: rule, fn: func(path string, value any) *ValidationError {
		v := value.(time.Time)
		if ok(v) {
			return nil
		}
		return fail(path, rule, v, msg, template, label(path))
	}})
	return c
}

func (s *DateSchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ValidateSync(value, opts)
}

func (s *DateSchema) ValidateSync(value any, opts Options) (any, error) {
	path := opts.Path
	if isAbsent(value) {
		if s.required {
			return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
		}
		return value, nil
	}

	v, err := cast.ToTimeE(value)
	if err != nil {
		return nil, Errors{*fail(path, "typeError", value, []string{s.typeErrMsg},
			"%s must be a date type", label(path))}
	}
	if v.IsZero() && s.required {
		return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
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

func (s *DateSchema) Cast(value any) (any, error) {
	if isAbsent(value) {
		return value, nil
	}
	v, err := cast.ToTimeE(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCast, err)
	}
	return v, nil
}

func (s *DateSchema) Describe() Description {
	return Description{Type: "date", Rules: describeRules(s.required, s.checks)}
}
