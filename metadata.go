package enyup

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

// Property is one named rule of a type's metadata, in declaration order.
type Property struct {
	Name string
	Rule schema.Schema
}

// classMetadata holds the rules declared directly on one type, plus the
// explicitly declared parent type. It is owned by exactly that type:
// derived types never mutate it.
type classMetadata struct {
	parent reflect.Type
	props  []Property
	index  map[string]int
}

func newClassMetadata() *classMetadata {
	return &classMetadata{index: map[string]int{}}
}

// set inserts or overwrites a rule. A new name is appended; overwriting
// keeps the original declaration position.
func (m *classMetadata) set(name string, rule schema.Schema) {
	if i, ok := m.index[name]; ok {
		m.props[i].Rule = rule
		return
	}
	m.index[name] = len(m.props)
	m.props = append(m.props, Property{Name: name, Rule: rule})
}

// ResolvedMetadata is the inheritance-flattened property metadata for one
// type: the override-merge of its own declarations and every ancestor's,
// ancestor-declared properties first. It is computed once per type and
// cached; later registrations do not invalidate it.
type ResolvedMetadata struct {
	props []Property
	index map[string]int
}

// Properties returns the merged properties in reporting order.
func (m *ResolvedMetadata) Properties() []Property {
	return slices.Clone(m.props)
}

// Rule returns the effective rule for a property name.
func (m *ResolvedMetadata) Rule(name string) (schema.Schema, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.props[i].Rule, true
}

func (m *ResolvedMetadata) Len() int {
	return len(m.props)
}

// merge applies one class's declarations on top of the already merged
// ancestors. A re-declared name drops its ancestor position and takes the
// declaring class's position.
func (m *ResolvedMetadata) merge(cm *classMetadata) {
	for _, p := range cm.props {
		if i, ok := m.index[p.Name]; ok {
			m.props = slices.Delete(m.props, i, i+1)
		}
		m.props = append(m.props, p)
		m.index = make(map[string]int, len(m.props))
		for i, mp := range m.props {
			m.index[mp.Name] = i
		}
	}
}

// AddSchemaMetadata declares a rule for one property of type t. The last
// writer for a (type, property) pair wins; the rule itself is opaque and
// not inspected.
func (r *Registry) AddSchemaMetadata(t reflect.Type, property string, rule schema.Schema) {
	t = normalizeType(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	cm, ok := r.meta[t]
	if !ok {
		cm = newClassMetadata()
		r.meta[t] = cm
	}
	cm.set(property, rule)
}

// AddPropertyRule is the generic convenience form of AddSchemaMetadata.
// A nil registry targets Default.
func AddPropertyRule[T any](r *Registry, property string, rule schema.Schema) {
	if r == nil {
		r = Default
	}
	r.AddSchemaMetadata(typeFor[T](), property, rule)
}

// setParent records t's declared parent. Inheritance is explicit: a type
// participates in another type's hierarchy only when declared here, never
// through reflection over embedded fields.
func (r *Registry) setParent(t, parent reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cm, ok := r.meta[t]
	if !ok {
		cm = newClassMetadata()
		r.meta[t] = cm
	}
	cm.parent = parent
}

// FindSchemaMetadata resolves the inheritance-flattened metadata for t.
// The first successful resolution is cached keyed by t and returned
// unchanged forever after, even if new rules are registered later. A
// chain with no metadata at all resolves to (nil, false), which callers
// treat as "zero properties". A cyclic parent declaration is a usage
// error and panics wrapping ErrParentCycle.
func (r *Registry) FindSchemaMetadata(t reflect.Type) (*ResolvedMetadata, bool) {
	t = normalizeType(t)

	r.mu.RLock()
	if m, ok := r.resolved[t]; ok {
		r.mu.RUnlock()
		return m, true
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.resolved[t]; ok {
		return m, true
	}

	// Walk the explicit parent chain upward, then merge root-first so a
	// more derived declaration overrides its ancestors'. Parents are
	// declared explicitly, so a cycle is representable; a repeated type
	// means the declarations can never resolve.
	var chain []*classMetadata
	visited := make(map[reflect.Type]bool)
	for cur := t; cur != nil; {
		if visited[cur] {
			panic(fmt.Errorf("%w: %s is its own ancestor", ErrParentCycle, cur))
		}
		visited[cur] = true
		cm, ok := r.meta[cur]
		if !ok {
			break
		}
		chain = append(chain, cm)
		cur = cm.parent
	}
	if len(chain) == 0 {
		return nil, false
	}
	slices.Reverse(chain)

	m := &ResolvedMetadata{index: map[string]int{}}
	for _, cm := range chain {
		m.merge(cm)
	}
	r.resolved[t] = m
	return m, true
}
