package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned when a path passed to ValidateAt does not
// resolve to a sub-schema of the root schema.
var ErrInvalidPath = errors.New("invalid schema path")

// ErrCast is returned when a value cannot be coerced to the schema's type.
var ErrCast = errors.New("cast failed")

// ValidationError describes a single failed check.
type ValidationError struct {
	// Path locates the failing value relative to the validated root,
	// e.g. "job.title" or "tags[2]". Empty for the root value itself.
	Path string
	// Rule is the machine-readable name of the failed check, e.g.
	// "required", "min", "typeError".
	Rule string
	// Message is the human-readable failure message.
	Message string
	// Value is the offending value as seen by the check.
	Value any
}

// Errors is an ordered collection of validation errors. Order follows the
// declaration order of the validated shape, so callers can rely on stable,
// deterministic reporting.
type Errors []ValidationError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range e {
		if err.Path == "" {
			parts = append(parts, err.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", err.Path, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) Add(err ValidationError) {
	*e = append(*e, err)
}

func (e Errors) Has(path string) bool {
	for _, err := range e {
		if err.Path == path {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for the given path.
func (e Errors) Get(path string) []string {
	var messages []string
	for _, err := range e {
		if err.Path == path {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Messages returns every failure message in reporting order.
func (e Errors) Messages() []string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Message)
	}
	return messages
}

// Paths returns the distinct failing paths in reporting order.
func (e Errors) Paths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, err := range e {
		if !seen[err.Path] {
			paths = append(paths, err.Path)
			seen[err.Path] = true
		}
	}
	return paths
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// ExtractErrors extracts the Errors collection from an error chain.
// It returns nil when err carries no validation errors.
func ExtractErrors(err error) Errors {
	if err == nil {
		return nil
	}

	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var verrs Errors
	return errors.As(err, &verrs)
}
