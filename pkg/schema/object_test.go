package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattiaPispisa/en-yup-decorator/pkg/schema"
)

type account struct {
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func userSchema() *schema.ObjectSchema {
	return schema.NewObject().Shape(
		schema.Field{Name: "email", Schema: schema.NewString().Required().Email()},
		schema.Field{Name: "age", Schema: schema.NewNumber().Required().Min(18)},
	)
}

func TestObjectValidateMap(t *testing.T) {
	t.Run("valid map returns coerced data", func(t *testing.T) {
		out, err := userSchema().ValidateSync(
			map[string]any{"email": "a@b.co", "age": "21"}, schema.DefaultOptions())
		require.NoError(t, err)
		data := out.(map[string]any)
		assert.Equal(t, "a@b.co", data["email"])
		assert.Equal(t, 21.0, data["age"])
	})

	t.Run("unknown keys pass through by default", func(t *testing.T) {
		out, err := userSchema().ValidateSync(
			map[string]any{"email": "a@b.co", "age": 21, "extra": true}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, true, out.(map[string]any)["extra"])
	})

	t.Run("strip drops unknown keys from the output", func(t *testing.T) {
		out, err := userSchema().Strip().ValidateSync(
			map[string]any{"email": "a@b.co", "age": 21, "extra": true}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.NotContains(t, out.(map[string]any), "extra")
		assert.Equal(t, "a@b.co", out.(map[string]any)["email"])
	})

	t.Run("strict rejects unknown keys", func(t *testing.T) {
		_, err := userSchema().Strict().ValidateSync(
			map[string]any{"email": "a@b.co", "age": 21, "extra": true}, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "extra is not a declared property", verrs[0].Message)
	})

	t.Run("errors follow shape declaration order", func(t *testing.T) {
		_, err := userSchema().ValidateSync(map[string]any{}, schema.Options{AbortEarly: false})
		verrs := schema.ExtractErrors(err)
		assert.Equal(t, []string{"email is required", "age is required"}, verrs.Messages())
	})

	t.Run("abort early reports only the first field", func(t *testing.T) {
		_, err := userSchema().ValidateSync(map[string]any{}, schema.Options{AbortEarly: true})
		verrs := schema.ExtractErrors(err)
		assert.Equal(t, []string{"email is required"}, verrs.Messages())
	})

	t.Run("nested paths include the parent", func(t *testing.T) {
		s := schema.NewObject().Shape(
			schema.Field{Name: "job", Schema: schema.NewObject().Shape(
				schema.Field{Name: "title", Schema: schema.NewString().Required()},
			)},
		)
		_, err := s.ValidateSync(map[string]any{"job": map[string]any{}}, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "job.title", verrs[0].Path)
		assert.Equal(t, "job.title is required", verrs[0].Message)
	})
}

func TestObjectValidateStruct(t *testing.T) {
	t.Run("valid struct is returned unchanged", func(t *testing.T) {
		in := &account{Email: "a@b.co", Age: 30}
		out, err := userSchema().ValidateSync(in, schema.DefaultOptions())
		require.NoError(t, err)
		assert.Same(t, in, out)
	})

	t.Run("fields resolve by json tag", func(t *testing.T) {
		_, err := userSchema().ValidateSync(account{Email: "", Age: 30}, schema.Options{AbortEarly: false})
		verrs := schema.ExtractErrors(err)
		assert.Equal(t, []string{"email is required"}, verrs.Messages())
	})
}

func TestObjectTypeHandling(t *testing.T) {
	t.Run("non-object fails with type error", func(t *testing.T) {
		_, err := userSchema().ValidateSync(true, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "this must be an object type", verrs[0].Message)
	})

	t.Run("custom type error", func(t *testing.T) {
		_, err := userSchema().TypeError("must be an object type").ValidateSync(42, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "must be an object type", verrs[0].Message)
	})

	t.Run("nil passes unless required", func(t *testing.T) {
		_, err := userSchema().ValidateSync(nil, schema.DefaultOptions())
		assert.NoError(t, err)

		_, err = userSchema().Required().ValidateSync(nil, schema.Options{Path: "job"})
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "job is required", verrs[0].Message)
	})
}

func TestObjectShapeMerge(t *testing.T) {
	base := schema.NewObject().Shape(
		schema.Field{Name: "a", Schema: schema.NewString()},
		schema.Field{Name: "b", Schema: schema.NewNumber()},
	)

	t.Run("concat appends new fields", func(t *testing.T) {
		merged := base.Concat(schema.NewObject().Shape(
			schema.Field{Name: "c", Schema: schema.NewBool()},
		))
		var names []string
		for _, f := range merged.Fields() {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run("collision takes the right side's rule and position", func(t *testing.T) {
		merged := base.Concat(schema.NewObject().Shape(
			schema.Field{Name: "a", Schema: schema.NewString().Required()},
		))
		var names []string
		for _, f := range merged.Fields() {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"b", "a"}, names)

		_, err := merged.ValidateSync(map[string]any{"b": 1}, schema.DefaultOptions())
		verrs := schema.ExtractErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "a is required", verrs[0].Message)
	})

	t.Run("concat carries the strip flag", func(t *testing.T) {
		merged := base.Concat(schema.NewObject().Strip())
		out, err := merged.ValidateSync(map[string]any{"a": "x", "extra": 1}, schema.DefaultOptions())
		require.NoError(t, err)
		assert.NotContains(t, out.(map[string]any), "extra")
		assert.Equal(t, "x", out.(map[string]any)["a"])
	})

	t.Run("concat does not mutate the receiver", func(t *testing.T) {
		assert.Len(t, base.Fields(), 2)
	})
}

func TestObjectCast(t *testing.T) {
	out, err := userSchema().Cast(map[string]any{"age": "30"})
	require.NoError(t, err)
	assert.Equal(t, 30.0, out.(map[string]any)["age"])
	assert.NotContains(t, out.(map[string]any), "email", "cast must not fabricate absent keys")
}

func TestObjectDescribe(t *testing.T) {
	d := userSchema().Describe()
	assert.Equal(t, "object", d.Type)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "email", d.Fields[0].Name)
	assert.Equal(t, "string", d.Fields[0].Description.Type)
	assert.Equal(t, "age", d.Fields[1].Name)
}
