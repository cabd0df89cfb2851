package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func decode(t *testing.T, text string) *Result {
	t.Helper()
	return New(text, nil).Decode()
}

func decodeOK(t *testing.T, text string) *Result {
	t.Helper()
	res := decode(t, text)
	require.Empty(t, res.Errors, "unexpected decode errors for %q", text)
	return res
}

func TestDecodePrimitives(t *testing.T) {
	tests := []struct {
		input    string
		value    any
		typeName string
	}{
		{"123", int64(123), "number"},
		{"-50", int64(-50), "number"},
		{"12.34", 12.34, "number"},
		{"-0.005", -0.005, "number"},
		{`"hello"`, "hello", "string"},
		{`"hello world"`, "hello world", "string"},
		{"true", true, "bool"},
		{"false", false, "bool"},
		{"null", nil, "null"},
		{"red", "red", "string"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := decodeOK(t, tt.input)
			require.True(t, res.Node.IsPrimitive())
			assert.Equal(t, tt.value, res.Node.Value)
			assert.Equal(t, tt.typeName, res.Node.Schema.TypeName)
		})
	}
}

func TestDecodeStringEscapes(t *testing.T) {
	res := decodeOK(t, `"a\nb\tc\"d\\e"`)
	assert.Equal(t, "a\nb\tc\"d\\e", res.Node.Value)
}

func TestDecodeNamedRecord(t *testing.T) {
	res := decodeOK(t, `{id: 1, name: "Test"}`)
	node := res.Node
	require.True(t, node.IsRecord())
	assert.Equal(t, int64(1), node.Fields["id"].Value)
	assert.Equal(t, "Test", node.Fields["name"].Value)
	assert.Equal(t, "id", node.Schema.FieldAt(0).Name)
	assert.Equal(t, "name", node.Schema.FieldAt(1).Name)
}

func TestDecodePositionalRecordInfersFields(t *testing.T) {
	res := decodeOK(t, `(10, "Alice")`)
	node := res.Node
	require.True(t, node.IsRecord())
	assert.Equal(t, int64(10), node.Fields["_0"].Value)
	assert.Equal(t, "Alice", node.Fields["_1"].Value)
	assert.Equal(t, "number", node.Schema.FieldAt(0).TypeName)
	assert.Equal(t, "string", node.Schema.FieldAt(1).TypeName)
}

func TestDecodeListOfPrimitives(t *testing.T) {
	res := decodeOK(t, "[1, 2, 3]")
	node := res.Node
	require.True(t, node.IsList())
	var values []any
	for _, el := range node.Elements {
		values = append(values, el.Value)
	}
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, values)
	assert.Equal(t, "number", node.Schema.Element.TypeName)
}

func TestListElementInference(t *testing.T) {
	t.Run("first element widens any", func(t *testing.T) {
		res := decodeOK(t, `["a", "b"]`)
		assert.Equal(t, "string", res.Node.Schema.Element.TypeName)
	})

	t.Run("mismatching later element keeps first type", func(t *testing.T) {
		res := decodeOK(t, `["a", 3]`)
		assert.Equal(t, "string", res.Node.Schema.Element.TypeName)
		assert.Equal(t, "number", res.Node.Elements[1].Schema.TypeName)
	})

	t.Run("number first", func(t *testing.T) {
		res := decodeOK(t, `[3, "a"]`)
		assert.Equal(t, "number", res.Node.Schema.Element.TypeName)
		assert.Equal(t, "string", res.Node.Elements[1].Schema.TypeName)
	})

	t.Run("explicit any element widens", func(t *testing.T) {
		res := decodeOK(t, `<[any]>["a", "b", "c", 3]`)
		assert.Equal(t, "string", res.Node.Schema.Element.TypeName)
		assert.Equal(t, "number", res.Node.Elements[3].Schema.TypeName)
	})
}

func TestDecodeSchemaDefinitionAndUsage(t *testing.T) {
	res := decodeOK(t, `@User<id:int, name:string> @User(1, "Admin")`)
	node := res.Node
	assert.Equal(t, "User", node.Schema.TypeName)
	assert.Equal(t, int64(1), node.Fields["id"].Value)
	assert.Equal(t, "Admin", node.Fields["name"].Value)
	assert.Equal(t, "number", node.Schema.FieldAt(0).TypeName, "int normalizes to number")
}

func TestDecodeNestedSchemas(t *testing.T) {
	res := decodeOK(t, `
	@Profile<level:int>
	@User<id:int, profile: @Profile>
	@User(1, {level: 99})
	`)
	node := res.Node
	assert.Equal(t, int64(1), node.Fields["id"].Value)
	assert.Equal(t, int64(99), node.Fields["profile"].Fields["level"].Value)
}

func TestNamedSchemaIdentity(t *testing.T) {
	res := decodeOK(t, `@User<id:int> [@User(1),@User(2)]`)
	node := res.Node
	require.Len(t, node.Elements, 2)
	assert.Same(t, node.Elements[0].Schema, node.Elements[1].Schema,
		"@User at two sites refers to the same descriptor")
}

func TestSelfReferentialSchema(t *testing.T) {
	res := decodeOK(t, `@Tree<val:int, children:[@Tree]> @Tree(1, [])`)
	node := res.Node
	tree := node.Schema
	children, ok := tree.Field("children")
	require.True(t, ok)
	require.True(t, children.IsList())
	assert.Same(t, tree, children.Element, "self reference resolves to the same descriptor")
}

func TestRegistryFirstWriteWins(t *testing.T) {
	res := decodeOK(t, `@U<a:int> @U<b:string> @U(1)`)
	_, hasA := res.Node.Schema.Field("a")
	assert.True(t, hasA, "the first definition of @U stays registered")
}

func TestSchemaPrefixOption(t *testing.T) {
	res := New(`(5, "Bob")`, &Options{SchemaPrefix: `<id:int, name:string>`}).Decode()
	require.Empty(t, res.Errors)
	assert.Equal(t, int64(5), res.Node.Fields["id"].Value)
	assert.Equal(t, "Bob", res.Node.Fields["name"].Value)
}

func TestAnyFieldRefinedByChild(t *testing.T) {
	res := decodeOK(t, `<ab>
	{
	    ab:  ["a", "b", "c", 3]
	}`)
	node := res.Node
	field, ok := node.Schema.Field("ab")
	require.True(t, ok)
	require.True(t, field.IsList(), "any field refined to the child's list schema")
	assert.Equal(t, "string", field.Element.TypeName)
}

func TestConcreteFieldNotRefined(t *testing.T) {
	res := decodeOK(t, `<tests:string>{tests:3}`)
	field, ok := res.Node.Schema.Field("tests")
	require.True(t, ok)
	assert.Equal(t, "string", field.TypeName, "first refinement is final; string stays")
	assert.Equal(t, "number", res.Node.Fields["tests"].Schema.TypeName)
}

func TestBacktickIdentifiers(t *testing.T) {
	res := decodeOK(t, "< `User ID+`: number > (123)")
	field, ok := res.Node.Schema.Field("User ID+")
	require.True(t, ok)
	assert.Equal(t, "number", field.TypeName)
	assert.Equal(t, int64(123), res.Node.Fields["User ID+"].Value)
}

func TestBacktickKeyInNamedRecord(t *testing.T) {
	res := decodeOK(t, "{`full name`: \"Ada\"}")
	assert.Equal(t, "Ada", res.Node.Fields["full name"].Value)
}

func TestQuotedKeyInNamedRecord(t *testing.T) {
	res := decodeOK(t, `{"some key": 1}`)
	assert.Equal(t, int64(1), res.Node.Fields["some key"].Value)
}

func TestRemoveANSIColors(t *testing.T) {
	colored := "\033[91m[\033[0m1, 2\033[91m]\033[0m"

	stripped := New(colored, &Options{RemoveANSIColors: true}).Decode()
	require.Empty(t, stripped.Errors)
	require.True(t, stripped.Node.IsList())
	assert.Len(t, stripped.Node.Elements, 2)

	raw := New(colored, nil).Decode()
	assert.NotEmpty(t, raw.Errors, "raw ANSI escapes are errors when stripping is off")
}

func TestDebugLoggerDoesNotAffectResult(t *testing.T) {
	res := New(`{a: 1}`, &Options{Logger: zaptest.NewLogger(t)}).Decode()
	require.Empty(t, res.Errors)
	assert.Equal(t, int64(1), res.Node.Fields["a"].Value)
}

func TestEmptyInput(t *testing.T) {
	res := decode(t, "")
	require.NotNil(t, res.Node)
	assert.Equal(t, "null", res.Node.Schema.TypeName)
}

func TestRootSchemaContextLinked(t *testing.T) {
	res := decodeOK(t, `<[int]>[1,2]`)
	assert.Same(t, res.Schema, res.Node.Schema)
	assert.True(t, res.Node.IsList())
}
