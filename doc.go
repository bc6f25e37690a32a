// Package enyup composes per-property validation rules into object-level
// schemas for Go struct types, with explicit inheritance, nested and
// deferred type references, and optional instance reconstruction from
// validated plain data.
//
// Property rules come from the pkg/schema engine and stay opaque to this
// package: enyup only orchestrates them. Rules are declared per type,
// merged across an explicitly declared parent chain (the most derived
// declaration wins), compiled into one object schema per type, and
// registered for lookup by type or by a caller-chosen name.
//
// # Architecture
//
//   - Metadata registry: per-type ordered property→rule maps plus an
//     explicit parent reference; inheritance-merged metadata is computed
//     once per type and cached, immutable after first resolution.
//   - Nested resolver: turns a deferred type reference (TypeThunk) into a
//     reusable sub-schema in three shapes: single object, array-of, and
//     record/map-of with keys only known at validation time.
//   - Compiler: converts resolved metadata into a compiled schema, in
//     plain shape mode or in target mode, which validates an existing
//     instance in place or constructs a new instance from validated data.
//   - Schema registry and façade: process-wide lookup by type and name,
//     and stateless Validate/Cast/IsValid entry points that delegate to
//     the engine.
//
// Composition is meant to happen once, at program initialization; after
// that the registry is read-only and safe to share.
//
// # Usage
//
//	type Person struct {
//		Email string `json:"email"`
//		Age   int    `json:"age"`
//	}
//
//	type Employee struct {
//		Person
//		Job        Job    `json:"job"`
//		EmployeeID string `json:"employeeId"`
//	}
//
//	enyup.Define[Person](nil,
//		enyup.WithProperty("email", schema.NewString().Required().Email()),
//		enyup.WithProperty("age", schema.NewNumber().Required().Min(18)),
//	)
//
//	enyup.Define[Employee](nil,
//		enyup.Extends[Person](),
//		enyup.WithNested("job", nil, func(s schema.Schema) schema.Schema {
//			return s.(*schema.ObjectSchema).Required()
//		}),
//		enyup.WithProperty("employeeId", schema.NewString().Required()),
//	)
//
//	_, err := enyup.ValidateSync(enyup.Params{Object: candidate})
//
// Inheritance is declared with Extends, never inferred from embedding:
// resolution must not depend on reflection over the host object model.
//
// # Error Handling
//
// Usage errors (validating a non-object, unresolvable schema references,
// nested declarations that cannot infer their type) surface immediately
// as sentinel-wrapped errors or registration-time panics. Validation
// failures are the engine's schema.Errors collection, passed through
// unmodified. Lookups for unregistered types or names return nil rather
// than failing; the façade turns that into ErrSchemaNotRegistered.
package enyup
