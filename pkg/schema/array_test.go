package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

func TestArrayValidate(t *testing.T) {
	tags := schema.NewArray().Of(schema.NewString().Required())

	t.Run("validates every element", func(t *testing.T) {
		out, err := tags.ValidateSync([]any{"go", "schema"}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []any{"go", "schema"}, out)
	})

	t.Run("accepts typed slices", func(t *testing.T) {
		out, err := tags.ValidateSync([]string{"go"}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []any{"go"}, out)
	})

	t.Run("element failures carry indexed paths", func(t *testing.T) {
		_, err := tags.ValidateSync([]any{"ok", nil}, schema.Options{AbortEarly: false, Path: "tags"})
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "tags[1]", verrs[0].Path)
		assert.Equal(t, "tags[1] is required", verrs[0].Message)
	})

	t.Run("non-array fails with type error", func(t *testing.T) {
		_, err := tags.ValidateSync("nope", schema.Options{Path: "tags"})
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "tags must be an array type", verrs[0].Message)
	})

	t.Run("nil passes unless required", func(t *testing.T) {
		_, err := tags.ValidateSync(nil, schema.DefaultOptions())
		assert.NoError(t, err)

		_, err = tags.Required().ValidateSync(nil, schema.Options{Path: "tags"})
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "tags is required", verrs[0].Message)
	})

	t.Run("length checks", func(t *testing.T) {
		s := schema.NewArray().Min(1).Max(2)
		_, err := s.ValidateSync([]any{}, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "this must have at least 1 items", verrs[0].Message)

		_, err = s.ValidateSync([]any{1, 2, 3}, schema.DefaultOptions())
		assert.True(t, schema.IsValidationError(err))
	})

	t.Run("without element schema values pass through", func(t *testing.T) {
		out, err := schema.NewArray().ValidateSync([]any{1, "two"}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []any{1, "two"}, out)
	})
}

func TestArrayDescribe(t *testing.T) {
	d := schema.NewArray().Required().Of(schema.NewNumber()).Describe()
	assert.Equal(t, "array", d.Type)
	assert.Equal(t, []string{"required"}, d.Rules)
	require.NotNil(t, d.Element)
	assert.Equal(t, "number", d.Element.Type)
}
