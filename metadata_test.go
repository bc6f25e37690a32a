package enyup_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enyup "github.com/MattiaPispisa/en-yup-decorator"
	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

type animal struct {
	Name string `json:"name"`
	Legs int    `json:"legs"`
}

type dog struct {
	animal
	Breed string `json:"breed"`
}

type selfParent struct{}

type cycleA struct{}

type cycleB struct{}

func propertyNames(m *enyup.ResolvedMetadata) []string {
	var names []string
	for _, p := range m.Properties() {
		names = append(names, p.Name)
	}
	return names
}

func TestFindSchemaMetadataInheritance(t *testing.T) {
	t.Run("child inherits every parent property", func(t *testing.T) {
		r := enyup.New()
		enyup.AddPropertyRule[animal](r, "name", schema.NewString().Required())
		enyup.AddPropertyRule[animal](r, "legs", schema.NewNumber())
		enyup.AddPropertyRule[dog](r, "breed", schema.NewString().Required())
		enyup.Define[dog](r, enyup.Extends[animal]())

		m, ok := r.FindSchemaMetadata(reflect.TypeOf(dog{}))
		require.True(t, ok)
		assert.Equal(t, []string{"name", "legs", "breed"}, propertyNames(m))
	})

	t.Run("child override wins and takes the child's position", func(t *testing.T) {
		r := enyup.New()
		enyup.AddPropertyRule[animal](r, "name", schema.NewString())
		enyup.AddPropertyRule[animal](r, "legs", schema.NewNumber())
		enyup.AddPropertyRule[dog](r, "breed", schema.NewString())
		enyup.AddPropertyRule[dog](r, "name", schema.NewString().Required("a dog needs a name"))
		enyup.Define[dog](r, enyup.Extends[animal]())

		m, ok := r.FindSchemaMetadata(reflect.TypeOf(dog{}))
		require.True(t, ok)
		assert.Equal(t, []string{"legs", "breed", "name"}, propertyNames(m))

		rule, ok := m.Rule("name")
		require.True(t, ok)
		_, err := rule.ValidateSync(nil, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "a dog needs a name", verrs[0].Message)
	})

	t.Run("parent metadata is not polluted by the child", func(t *testing.T) {
		r := enyup.New()
		enyup.AddPropertyRule[animal](r, "name", schema.NewString())
		enyup.AddPropertyRule[dog](r, "breed", schema.NewString())
		enyup.Define[dog](r, enyup.Extends[animal]())

		m, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		require.True(t, ok)
		assert.Equal(t, []string{"name"}, propertyNames(m))
	})

	t.Run("pointer and value types share one identity", func(t *testing.T) {
		r := enyup.New()
		enyup.AddPropertyRule[*animal](r, "name", schema.NewString())

		m, ok := r.FindSchemaMetadata(reflect.TypeOf(&animal{}))
		require.True(t, ok)
		assert.Equal(t, []string{"name"}, propertyNames(m))

		_, ok = r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		assert.True(t, ok)
	})

	t.Run("absent metadata resolves to absent, not an error", func(t *testing.T) {
		r := enyup.New()
		m, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		assert.False(t, ok)
		assert.Nil(t, m)
	})
}

func TestFindSchemaMetadataCache(t *testing.T) {
	t.Run("second resolution returns the identical cached value", func(t *testing.T) {
		r := enyup.New()
		enyup.AddPropertyRule[animal](r, "name", schema.NewString())

		m1, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		require.True(t, ok)
		m2, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		require.True(t, ok)
		assert.Same(t, m1, m2)
	})

	t.Run("late registration does not invalidate the cache", func(t *testing.T) {
		r := enyup.New()
		enyup.AddPropertyRule[animal](r, "name", schema.NewString())

		m, _ := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		assert.Equal(t, 1, m.Len())

		enyup.AddPropertyRule[animal](r, "legs", schema.NewNumber())
		m2, _ := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		assert.Same(t, m, m2)
		assert.Equal(t, 1, m2.Len())
	})

	t.Run("absence is not cached", func(t *testing.T) {
		r := enyup.New()
		_, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		require.False(t, ok)

		enyup.AddPropertyRule[animal](r, "name", schema.NewString())
		m, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		require.True(t, ok)
		assert.Equal(t, 1, m.Len())
	})
}

func TestFindSchemaMetadataParentCycle(t *testing.T) {
	t.Run("a type declared as its own parent panics", func(t *testing.T) {
		r := enyup.New()
		assert.PanicsWithError(t,
			"cyclic parent declaration: enyup_test.selfParent is its own ancestor",
			func() {
				enyup.Define[selfParent](r, enyup.Extends[selfParent]())
			})
	})

	t.Run("mutual parent declarations panic on resolution", func(t *testing.T) {
		r := enyup.New()
		enyup.Define[cycleA](r, enyup.Extends[cycleB]())
		assert.Panics(t, func() {
			enyup.Define[cycleB](r, enyup.Extends[cycleA]())
		})
	})

	t.Run("the registry stays usable after a cycle panic", func(t *testing.T) {
		r := enyup.New()
		assert.Panics(t, func() {
			enyup.Define[selfParent](r, enyup.Extends[selfParent]())
		})

		enyup.AddPropertyRule[animal](r, "name", schema.NewString())
		m, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
		require.True(t, ok)
		assert.Equal(t, 1, m.Len())
	})
}

func TestAddSchemaMetadataOverwrite(t *testing.T) {
	// Re-registering a property on the same type replaces the rule in
	// place: last writer wins, position stays.
	r := enyup.New()
	enyup.AddPropertyRule[animal](r, "name", schema.NewString())
	enyup.AddPropertyRule[animal](r, "legs", schema.NewNumber())
	enyup.AddPropertyRule[animal](r, "name", schema.NewString().Required())

	m, ok := r.FindSchemaMetadata(reflect.TypeOf(animal{}))
	require.True(t, ok)
	assert.Equal(t, []string{"name", "legs"}, propertyNames(m))

	rule, _ := m.Rule("name")
	_, err := rule.ValidateSync(nil, schema.DefaultOptions())
	assert.True(t, schema.IsValidationError(err))
}
