package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadia-data/akd/codec/decoder"
	"github.com/arkadia-data/akd/codec/document"
)

func build(t *testing.T, v any) *document.Node {
	t.Helper()
	n, err := document.Build(v)
	require.NoError(t, err)
	return n
}

func decodeNode(t *testing.T, text string) *document.Node {
	t.Helper()
	res := decoder.New(text, nil).Decode()
	require.Empty(t, res.Errors)
	return res.Node
}

func encodeCompact(t *testing.T, n *document.Node) string {
	t.Helper()
	return New(CompactConfig()).Encode(n)
}

func TestEncodePrimitivesCompact(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"number", 123, "<number>123"},
		{"negative", -50, "<number>-50"},
		{"float", 12.34, "<number>12.34"},
		{"string", "hello", `<string>"hello"`},
		{"bool", true, "<bool>true"},
		{"null", nil, "<null>null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeCompact(t, build(t, tt.input)))
		})
	}
}

func TestEncodeRecordPretty(t *testing.T) {
	m := document.NewOrderedMap()
	m.Set("x", 10)
	m.Set("y", 20)

	out := New(DefaultConfig()).Encode(build(t, m))
	assert.Equal(t, "< x:number, y:number >\n(10, 20)", out)
}

func TestEncodeListPretty(t *testing.T) {
	out := New(DefaultConfig()).Encode(build(t, []any{1, 2}))
	assert.Equal(t, "<[number]>\n[\n  1,\n  2\n]", out)
}

func TestIncludeSchemaOff(t *testing.T) {
	cfg := CompactConfig()
	cfg.IncludeSchema = false
	m := document.NewOrderedMap()
	m.Set("x", 10)

	out := New(cfg).Encode(build(t, m))
	assert.Equal(t, "(10)", out)
}

func TestIncludeTypeOff(t *testing.T) {
	cfg := CompactConfig()
	cfg.IncludeType = false
	m := document.NewOrderedMap()
	m.Set("x", 10)
	m.Set("tags", []any{"a"})

	out := New(cfg).Encode(build(t, m))
	// Structural signatures stay even when primitive types are suppressed.
	assert.Equal(t, `<x,tags:[string]>(10,["a"])`, out)
}

func TestIncludeMetaAndCommentsOff(t *testing.T) {
	node := decodeNode(t, `[ // $a=1 // /* doc */ 1, 2 ]`)

	cfg := CompactConfig()
	cfg.IncludeMeta = false
	cfg.IncludeComments = false

	out := New(cfg).Encode(node)
	assert.NotContains(t, out, "$")
	assert.NotContains(t, out, "//")
	assert.NotContains(t, out, "/*")
}

func TestIncludeArraySize(t *testing.T) {
	node := build(t, []any{1, 2, 3})
	cfg := CompactConfig()
	cfg.IncludeArraySize = true

	out := New(cfg).Encode(node)
	assert.Equal(t, "<[number]>[//$size=3// 1,2,3]", out)
	assert.False(t, node.Attrs.Has("size"), "the node itself is not mutated")
}

func TestColorize(t *testing.T) {
	cfg := CompactConfig()
	cfg.Colorize = true

	out := New(cfg).Encode(build(t, []any{1}))
	assert.Contains(t, out, colorNumber)
	assert.Contains(t, out, colorReset)

	plain := New(CompactConfig()).Encode(build(t, []any{1}))
	assert.NotContains(t, plain, "\033[")
}

func TestEscapeNewLines(t *testing.T) {
	cfg := CompactConfig()
	cfg.EscapeNewLines = true
	out := New(cfg).Encode(build(t, "a\nb\tc"))
	assert.Equal(t, `<string>"a\nb\tc"`, out)

	raw := New(CompactConfig()).Encode(build(t, "a\nb"))
	assert.Equal(t, "<string>\"a\nb\"", raw)
}

func TestQuoteAndBackslashEscaping(t *testing.T) {
	out := New(CompactConfig()).Encode(build(t, `say "hi" \ bye`))
	assert.Equal(t, `<string>"say \"hi\" \\ bye"`, out)
}

func TestEmptyRecordRendersNull(t *testing.T) {
	out := New(CompactConfig()).Encode(build(t, map[string]any{}))
	assert.Equal(t, "(null)", out, "anonymous empty record gets no header at all")
}

func TestMissingFieldRendersNull(t *testing.T) {
	schema := document.NewRecord("")
	a := document.NewPrimitive("number")
	a.Name = "a"
	schema.AddField(a)
	b := document.NewPrimitive("number")
	b.Name = "b"
	schema.AddField(b)

	node := document.NewNode(schema)
	child := document.NewNode(document.NewPrimitive("number"))
	child.Value = int64(1)
	node.Fields["a"] = child

	assert.Equal(t, "<a:number,b:number>(1,null)", encodeCompact(t, node))
}

func TestTypeMismatchTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"list element", `["a", 3]`, `<[string]>["a",<number> 3]`},
		{"record field", `<tests:string>{tests:3}`, `<tests:string>(<number> 3)`},
		{"structure for primitive", `<test: string>(["a", "b"])`, `<test:string>(<[string]> ["a","b"])`},
		{"list value for number", `<id:number>( ["text"] )`, `<id:number>(<[string]> ["text"])`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeCompact(t, decodeNode(t, tt.input)))
		})
	}
}

func TestEncodeSchemaOnly(t *testing.T) {
	node := decodeNode(t, `@User<id:int, name:string> @User(1, "x")`)
	out := New(CompactConfig()).EncodeSchema(node.Schema)
	assert.Equal(t, "@User<id:number,name:string>", out)
}

func TestBacktickEscapedNames(t *testing.T) {
	node := decodeNode(t, "< `User ID+`: number /* system id */ > (123)")
	out := encodeCompact(t, node)
	assert.Equal(t, "<`User ID+`:number /* system id */>(123)", out)
}

func TestNominalRecordReferenceOnRevisit(t *testing.T) {
	node := decodeNode(t, `@Tree<val:int, children:[@Tree]> @Tree(1, [])`)
	out := encodeCompact(t, node)
	assert.Equal(t, "@Tree<val:number,children:[@Tree]>(1,[])", out)
}
