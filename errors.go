package enyup

import "errors"

// Usage errors raised by the façade and the composition API.
var (
	// ErrNotObject is returned when a validation entry point receives a
	// nil value or a value that is not a struct, struct pointer, or map.
	ErrNotObject = errors.New("validation target must be a non-nil object")

	// ErrSchemaNotRegistered is returned when schema resolution finds no
	// compiled schema for the requested name or type.
	ErrSchemaNotRegistered = errors.New("no schema registered")

	// ErrInvalidSchemaRef is returned when Params.SchemaName is neither
	// nil, a string, nor a reflect.Type.
	ErrInvalidSchemaRef = errors.New("schema reference must be a string name or a reflect.Type")

	// ErrTypeInference is raised (as a panic, at registration time) when
	// a nested property declaration cannot infer the referenced type
	// from the declared struct field.
	ErrTypeInference = errors.New("cannot infer nested type")

	// ErrParentCycle is raised (as a panic, at resolution time) when the
	// explicitly declared parent chain loops back on itself.
	ErrParentCycle = errors.New("cyclic parent declaration")
)
