package schema

import (
	"context"
	"fmt"
)

// Options controls how a validation run reports failures.
type Options struct {
	// AbortEarly stops the run at the first failing check when true.
	// When false every failing path is reported, in shape declaration
	// order.
	AbortEarly bool
	// Path is the base path prepended to every reported error. The
	// zero value reports paths relative to the validated root.
	Path string
}

// DefaultOptions aborts at the first failure, matching the synchronous
// fail-fast default of the façade entry points.
func DefaultOptions() Options {
	return Options{AbortEarly: true}
}

// Schema is a reusable validator for a single value. Implementations are
// immutable: builder methods return derived copies, so a schema can be
// shared and refined without affecting other holders.
type Schema interface {
	// Validate validates value, honoring context cancellation between
	// checks. On success it returns the validated (possibly coerced)
	// value; on failure the error is an Errors collection.
	Validate(ctx context.Context, value any, opts Options) (any, error)

	// ValidateSync is Validate without a context.
	ValidateSync(value any, opts Options) (any, error)

	// Cast coerces value to the schema's type without running checks.
	Cast(value any) (any, error)

	// Describe reports the schema's structure and configured rules.
	Describe() Description
}

// check is one configured rule on a typed, present value.
type check struct {
	rule string
	fn   func(path string, value any) *ValidationError
}

// label renders a path for use in human-readable messages.
func label(path string) string {
	if path == "" {
		return "this"
	}
	return path
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

// fail builds a ValidationError, preferring the caller's custom message
// over the rendered default.
func fail(path, rule string, value any, custom []string, format string, args ...any) *ValidationError {
	msg := fmt.Sprintf(format, args...)
	if len(custom) > 0 && custom[0] != "" {
		msg = custom[0]
	}
	return &ValidationError{Path: path, Rule: rule, Message: msg, Value: value}
}

// requiredError is the shared "<path> is required" failure.
func requiredError(path string, custom []string) *ValidationError {
	return fail(path, "required", nil, custom, "%s is required", label(path))
}

// validateChild dispatches to the context-aware entry point only when a
// context is present, so sync and async runs share one code path.
func validateChild(ctx context.Context, s Schema, value any, opts Options) (any, error) {
	if ctx == nil {
		return s.ValidateSync(value, opts)
	}
	return s.Validate(ctx, value, opts)
}

// childErrors normalizes a child failure into an Errors collection so
// container schemas can aggregate failures from any Schema implementation.
func childErrors(path string, err error) Errors {
	if verrs := ExtractErrors(err); verrs != nil {
		return verrs
	}
	return Errors{{Path: path, Rule: "invalid", Message: err.Error()}}
}
