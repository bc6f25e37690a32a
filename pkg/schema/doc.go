// Package schema provides composable value validators: primitive schemas
// for strings, numbers, booleans, and dates, container schemas for
// objects and arrays, and a deferred (lazy) schema whose shape is built
// from the candidate value at validation time.
//
// The package is the validation engine underneath the root enyup package,
// but it is self-contained and usable on its own.
//
// # Architecture
//
// Every schema implements the Schema interface: Validate (context-aware),
// ValidateSync, Cast, and Describe. Schemas are immutable values; builder
// methods such as Required, Min, or Shape return a derived copy, so a
// schema can be registered once and refined per call site without
// affecting other holders.
//
// Object shapes are ordered. Validation visits shape fields in
// declaration order and aggregated errors follow that order, which keeps
// multi-error reporting deterministic. Name collisions in Shape and
// Concat resolve in favor of the later declaration, which also takes the
// later position.
//
// Scalar candidates are coerced rather than type-matched: a numeric
// string satisfies a number schema, any scalar satisfies a string schema,
// and textual timestamps satisfy a date schema. Coercion failures surface
// as "must be a <type> type" validation errors.
//
// # Usage
//
//	user := schema.NewObject().Shape(
//	    schema.Field{Name: "email", Schema: schema.NewString().Required().Email()},
//	    schema.Field{Name: "age", Schema: schema.NewNumber().Required().Min(18)},
//	)
//
//	validated, err := user.ValidateSync(input, schema.Options{AbortEarly: false})
//	if verrs := schema.ExtractErrors(err); verrs != nil {
//	    for _, msg := range verrs.Messages() {
//	        // "email is required", "age must be at least 18", ...
//	    }
//	}
//
// # Error Handling
//
// Validation failures are reported as the Errors collection, which
// implements the error interface and supports errors.As via
// ExtractErrors. Non-validation failures (context cancellation, invalid
// ValidateAt paths) are returned as ordinary errors and never mixed into
// an Errors collection.
package schema
