package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodePlainPrimitive(t *testing.T) {
	n := NewNode(NewPrimitive("number"))
	n.Value = int64(42)
	assert.Equal(t, int64(42), n.Plain())
}

func TestNodePlainRecordHonorsSchemaOrder(t *testing.T) {
	schema := NewRecord("")
	for _, name := range []string{"z", "a", "m"} {
		f := NewPrimitive("number")
		f.Name = name
		schema.AddField(f)
	}

	n := NewNode(schema)
	for i, name := range []string{"z", "a", "m"} {
		child := NewNode(NewPrimitive("number"))
		child.Value = int64(i)
		n.Fields[name] = child
	}

	plain, ok := n.Plain().(*OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, plain.Keys(), "order comes from the schema, not the map")
}

func TestNodePlainList(t *testing.T) {
	n := NewNode(NewList(NewPrimitive("number")))
	for i := 1; i <= 3; i++ {
		child := NewNode(NewPrimitive("number"))
		child.Value = int64(i)
		n.Elements = append(n.Elements, child)
	}
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, n.Plain())
}

func TestNodeDebugString(t *testing.T) {
	list := NewNode(NewList(NewPrimitive("number")))
	list.Elements = append(list.Elements, NewNode(NewPrimitive("number")))
	assert.Equal(t, "<Node(LIST[number]) len=1>", list.String())

	user := NewNode(NewRecord("User"))
	id := NewPrimitive("number")
	id.Name = "id"
	user.Schema.AddField(id)
	assert.Equal(t, "<Node(RECORD:User) fields=[id]>", user.String())
}

func TestNodeJSON(t *testing.T) {
	node, err := Build(map[string]any{"x": 10, "y": "hi"})
	require.NoError(t, err)

	out := node.JSON(2, false)
	assert.Equal(t, "{\n  \"x\": 10,\n  \"y\": \"hi\"\n}", out)
}

func TestNodeJSONColorize(t *testing.T) {
	node, err := Build(map[string]any{"n": 1, "s": "v", "b": true, "z": nil})
	require.NoError(t, err)

	out := node.JSON(2, true)
	assert.Contains(t, out, jsonKey)
	assert.Contains(t, out, jsonNumber)
	assert.Contains(t, out, jsonString)
	assert.Contains(t, out, jsonBool)
	assert.Contains(t, out, jsonNull)
}

func TestNodeJSONNestedList(t *testing.T) {
	node, err := Build([]any{int64(1), int64(2)})
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]", node.JSON(2, false))
}
