package schema

import (
	"reflect"
	"strings"
)

// isAbsent reports whether value counts as missing for required checks:
// nil itself, or a nil pointer, map, slice, or interface.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// deref unwraps pointers and interfaces down to the concrete value.
func deref(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

// isObjectValue reports whether value is an object candidate: a map with
// string-convertible keys, a struct, or a pointer to either.
func isObjectValue(value any) bool {
	if value == nil {
		return false
	}
	rv := deref(reflect.ValueOf(value))
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

// LookupField resolves a named property on an object candidate. Maps are
// looked up by key; structs by `json` tag first, then by case-insensitive
// exported field name. The second result reports whether the property is
// present at all.
func LookupField(value any, name string) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := deref(reflect.ValueOf(value))
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		f, ok := structField(rv.Type(), name)
		if !ok {
			return nil, false
		}
		cur := rv
		for _, i := range f.Index {
			if cur.Kind() == reflect.Ptr {
				if cur.IsNil() {
					return nil, false
				}
				cur = cur.Elem()
			}
			cur = cur.Field(i)
		}
		return cur.Interface(), true
	}
	return nil, false
}

// DeclaredField resolves the struct field backing a property name on a
// struct or struct-pointer type, using the same `json`-tag-then-name
// matching as validation-time lookup.
func DeclaredField(t reflect.Type, name string) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	return structField(t, name)
}

// structField finds the exported field matching a property name, honoring
// the `json` tag the way the rest of the module does. Own fields shadow
// promoted fields of embedded structs.
func structField(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, ok := f.Tag.Lookup("json"); ok && strings.HasPrefix(tag, "-") {
			continue
		}
		if tag := jsonName(f); tag != "" {
			if tag == name {
				return f, true
			}
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		if sub, ok := structField(ft, name); ok {
			sub.Index = append([]int{i}, sub.Index...)
			return sub, true
		}
	}
	return reflect.StructField{}, false
}

// jsonName extracts the field name from a `json` tag, or "" when the tag
// is absent or the field is skipped.
func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" || name == "" {
		return ""
	}
	return name
}
