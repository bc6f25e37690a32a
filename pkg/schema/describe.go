package schema

// Description is a static report of a schema's structure, usable for
// documentation generation or debugging composed schemas.
type Description struct {
	// Type is the schema kind: "string", "number", "bool", "date",
	// "object", "array", or "lazy".
	Type string
	// Rules lists the configured rule names in declaration order.
	Rules []string
	// Fields describes an object schema's shape, in shape order.
	Fields []FieldDescription
	// Element describes an array schema's element type.
	Element *Description
}

// FieldDescription is one named entry of an object description.
type FieldDescription struct {
	Name        string
	Description Description
}

func describeRules(required bool, checks []check) []string {
	var rules []string
	if required {
		rules = append(rules, "required")
	}
	for _, c := range checks {
		rules = append(rules, c.rule)
	}
	return rules
}
