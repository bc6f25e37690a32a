package schema

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
)

// BoolSchema validates boolean values, coercing the usual textual and
// numeric truthy forms ("true", 1, ...).
type BoolSchema struct {
	required    bool
	requiredMsg string
	typeErrMsg  string
}

func NewBool() *BoolSchema {
	return &BoolSchema{}
}

func (s *BoolSchema) clone() *BoolSchema {
	c := *s
	return &c
}

// Required rejects absent values. false is a present value and passes.
func (s *BoolSchema) Required(msg ...string) *BoolSchema {
	c := s.clone()
	c.required = true
	if len(msg) > 0 {
		c.requiredMsg = msg[0]
	}
	return c
}

func (s *BoolSchema) TypeError(msg string) *BoolSchema {
	c := s.clone()
	c.typeErrMsg = msg
	return c
}

func (s *BoolSchema) Validate(ctx context.Context, value any, opts Options) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ValidateSync(value, opts)
}

func (s *BoolSchema) ValidateSync(value any, opts Options) (any, error) {
	path := opts.Path
	if isAbsent(value) {
		if s.required {
			return nil, Errors{*requiredError(path, []string{s.requiredMsg})}
		}
		return value, nil
	}

	v, err := cast.ToBoolE(value)
	if err != nil {
		return nil, Errors{*fail(path, "typeError", value, []string{s.typeErrMsg},
			"%s must be a boolean type", label(path))}
	}
	return v, nil
}

func (s *BoolSchema) Cast(value any) (any, error) {
	if isAbsent(value) {
		return value, nil
	}
	v, err := cast.ToBoolE(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCast, err)
	}
	return v, nil
}

func (s *BoolSchema) Describe() Description {
	return Description{Type: "bool", Rules: describeRules(s.required, nil)}
}
