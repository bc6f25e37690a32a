package schema

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// emailPattern is intentionally permissive: full RFC 5322 enforcement
// rejects addresses that are valid in practice.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// StringSchema validates string values, coercing scalar candidates via
// their canonical string form.
type StringSchema struct {
	required    bool
	requiredMsg string
	typeErrMsg  string
	checks      []check
}

// NewString returns an empty string schema. All builder methods return a
// derived copy, leaving the receiver untouched.
func NewString() *StringSchema {
	return &StringSchema{}
}

func (s *StringSchema) clone() *StringSchema {
	c := *s
	c.checks = slices.Clone(s.checks)
	return &c
}

// Required rejects absent and empty values. An optional custom message
// overrides the default "<path> is required".
func (s *StringSchema) Required(msg ...string) *StringSchema {
	c := s.clone()
	c.required = true
	if len(msg) > 0 {
		c.requiredMsg = msg[0]
	}
	return c
}

// TypeError overrides the default "must be a string type" message.
func (s *StringSchema) TypeError(msg string) *StringSchema {
	c := s.clone()
	c.typeErrMsg = msg
	return c
}

// Min requires at least n characters. Lengths count runes, not bytes.
func (s *StringSchema) Min(n int, msg ...string) *StringSchema {
	return s.withCheck("min", msg, func(v string) bool { return utf8.RuneCountInString(v) >= n },
		"%%s must be at least %d characters", n)
}

// Max requires at most n characters.
func (s *StringSchema) Max(n int, msg ...string) *StringSchema {
	return s.withCheck("max", msg, func(v string) bool { return utf8.RuneCountInString(v) <= n },
		"%%s must be at most %d characters", n)
}

// Length requires exactly n characters.
func (s *StringSchema) Length(n int, msg ...string) *StringSchema {
	return s.withCheck("length", msg, func(v string) bool { return utf8.RuneCountInString(v) == n },
		"%%s must be exactly %d characters", n)
}

// Matches requires the value to match the given pattern. The pattern is
// compiled eagerly; an invalid pattern panics at composition time.
func (s *StringSchema) Matches(pattern string, msg ...string) *StringSchema {
	re := regexp.MustCompile(pattern)
	return s.withCheck("matches", msg, func(v string) bool { return re.MatchString(v) },
		"%%s must match %q", pattern)
}

// Email requires a plausible email address.
func (s *StringSchema) Email(msg ...string) *StringSchema {
	return s.withCheck("email", msg, func(v string) bool { return emailPattern.MatchString(v) },
		"%%s must be a valid email")
}

// UUID requires a canonical UUID. Length and hyphen positions are checked
// before parsing to reject obvious non-UUIDs cheaply.
func (s *StringSchema) UUID(msg ...string) *StringSchema {
	return s.withCheck("uuid", msg, func(v string) bool {
		if len(v) != 36 {
			return false
		}
		if v[8] != '-' || v[13] != '-' || v[18] != '-' || v[23] != '-' {
			return false
		}
		_, err := uuid.Parse(v)
		return err == nil
	}, "%%s must be a valid UUID")
}

// OneOf requires the value to be one of the given alternatives.
func (s *StringSchema) OneOf(values []string, msg ...string) *StringSchema {
	return s.withCheck("oneOf", msg, func(v string) bool { return slices.Contains(values, v) },
		"%%s must be one of: %s", strings.Join(values, ", "))
}

func (s *StringSchema) withCheck(rule string, msg []string, ok func(string) bool, format string, args ...any) *StringSchema {
	c := s.clone()
	template := fmt.Sprintf(format, args...)
	c.checks = append(c.checks, check{rule: rule, fn: func(path string, value any) *ValidationError {
		v := value.(string)
		if ok(v) {
			return nil
		}
		return fail(path, rule, v, msg, template, label(path))
	}})
	return c
}

func (s *StringSchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ValidateSync(value, opts)
}

func (s *StringSchema) ValidateSync(value any, opts Options) (any, error) {
	path := opts.Path
	if isAbsent(value) {
		if s.required {
			return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
		}
		return value, nil
	}

	v, err := cast.ToStringE(value)
	if err != nil {
		return nil, Errors{*fail(path, "typeError", value, []string{s.typeErrMsg},
			"%s must be a string type", label(path))}
	}
	if v == "" && s.required {
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

func (s *StringSchema) Cast(value any) (any, error) {
	if isAbsent(value) {
		return value, nil
	}
	v, err := cast.ToStringE(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCast, err)
	}
	return v, nil
}

func (s *StringSchema) Describe() Description {
	return Description{Type: "string", Rules: describeRules(s.required, s.checks)}
}
