// Package encoder renders a document tree back to AKD text. The encoder is
// total: any validly constructed node renders without error, inserting
// inline type tags wherever a child's schema diverges from its parent's
// expectation.
package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arkadia-data/akd/codec/document"
)

// ANSI palette for colorized output. Raw constants rather than a tty-aware
// wrapper: colorized text is still format output and must be byte-identical
// across environments so the decoder's strip pass can round-trip it.
const (
	colorReset  = "\033[0m"
	colorString = "\033[92m"
	colorNumber = "\033[94m"
	colorBool   = "\033[95m"
	colorNull   = "\033[90m"
	colorType   = "\033[96m"
	colorKey    = "\033[93m"
	colorSchema = "\033[91m"
	colorTag    = "\033[91m"
	colorAttr   = "\033[93m"
)

// Encoder renders nodes according to one Config. An Encoder is cheap to
// create; create one per Encode call when sharing across goroutines.
type Encoder struct {
	cfg     Config
	visited map[*document.Schema]bool
}

// New creates an encoder with the given configuration.
func New(cfg Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode renders the node, schema header first, then the data body.
func (e *Encoder) Encode(node *document.Node) string {
	e.visited = make(map[*document.Schema]bool)
	return e.encode(node, 0, true)
}

// EncodeSchema renders just the schema header text for a descriptor.
func (e *Encoder) EncodeSchema(schema *document.Schema) string {
	e.visited = make(map[*document.Schema]bool)
	return e.encodeSchema(schema, 0, true)
}

func (e *Encoder) encode(node *document.Node, indent int, includeSchema bool) string {
	if node == nil {
		return e.color("null", colorNull)
	}

	base := e.cfg.StartIndent + indent

	if e.cfg.PromptOutput {
		return e.promptNode(node, base)
	}

	schemaPrefix := ""
	if includeSchema && node.Schema != nil && e.cfg.IncludeSchema {
		sTxt := strings.TrimSpace(e.encodeSchema(node.Schema, base, true))
		if sTxt != "" {
			if !strings.HasPrefix(sTxt, "<") && !strings.HasPrefix(sTxt, "@") {
				sTxt = "<" + sTxt + ">"
			}
			if e.cfg.Compact {
				schemaPrefix = sTxt
			} else {
				schemaPrefix = sTxt + "\n" + strings.Repeat(" ", base)
			}
		}
	}

	var data string
	switch {
	case node.IsList():
		data = e.list(node, base, false)
	case node.IsPrimitive():
		data = e.primitiveNode(node)
	case node.IsRecord():
		data = e.record(node, base)
	default:
		data = e.primitiveNode(node)
	}

	return schemaPrefix + data
}

// ---------------------------------------------------------------------
// Compatibility and type tags
// ---------------------------------------------------------------------

// schemasCompatible reports whether a child's schema matches the parent's
// expectation closely enough to render without an inline override.
func (e *Encoder) schemasCompatible(nodeSchema, expected *document.Schema) bool {
	if expected == nil || expected.IsAny() {
		return true
	}
	if nodeSchema == nil {
		return true
	}
	if nodeSchema.Kind != expected.Kind {
		return false
	}
	if nodeSchema.IsPrimitive() && expected.IsPrimitive() {
		return nodeSchema.TypeName == expected.TypeName
	}
	return true
}

// typeLabel generates the short label used in inline overrides.
func (e *Encoder) typeLabel(s *document.Schema) string {
	switch {
	case s == nil:
		return "any"
	case s.IsPrimitive():
		return s.TypeName
	case s.IsList():
		return "[" + e.typeLabel(s.Element) + "]"
	case s.IsRecord() && s.TypeName != "" && s.TypeName != "any":
		return escapeIdent(s.TypeName)
	default:
		return "any"
	}
}

// applyTypeTag prefixes val with an inline <type> tag when the schemas
// diverge. Single source of truth for override formatting.
func (e *Encoder) applyTypeTag(val string, nodeSchema, expected *document.Schema) string {
	if e.schemasCompatible(nodeSchema, expected) {
		return val
	}
	return e.color("<"+e.typeLabel(nodeSchema)+">", colorSchema) + " " + val
}

// ---------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------

func (e *Encoder) primitiveNode(node *document.Node) string {
	meta := e.metaInline(&node.Meta, false)
	if meta != "" {
		meta += " "
	}
	return meta + e.primitive(node.Value)
}

func (e *Encoder) primitive(v any) string {
	switch val := v.(type) {
	case nil:
		return e.color("null", colorNull)
	case bool:
		if val {
			return e.color("true", colorBool)
		}
		return e.color("false", colorBool)
	case string:
		return e.quotedString(val)
	case int64:
		return e.color(strconv.FormatInt(val, 10), colorNumber)
	case float64:
		return e.color(strconv.FormatFloat(val, 'g', -1, 64), colorNumber)
	case int:
		return e.color(strconv.Itoa(val), colorNumber)
	default:
		return e.color(fmt.Sprintf("%v", val), colorNumber)
	}
}

func (e *Encoder) quotedString(v string) string {
	content := strings.ReplaceAll(v, `\`, `\\`)
	if e.cfg.EscapeNewLines {
		content = strings.NewReplacer("\r\n", `\n`, "\r", `\n`, "\n", `\n`, "\t", `\t`).Replace(content)
	}
	content = strings.ReplaceAll(content, `"`, `\"`)
	return e.color(`"`+content+`"`, colorString)
}

// ---------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------

// listMeta renders the list's wrapped instance metadata, injecting the
// synthetic $size attribute when configured. The node is not mutated.
func (e *Encoder) listMeta(node *document.Node) string {
	meta := &node.Meta
	if e.cfg.IncludeArraySize {
		withSize := document.Meta{
			Comments: node.Comments,
			Attrs:    document.NewOrderedMap(),
			Tags:     node.Tags,
		}
		withSize.Attrs.Set("size", int64(len(node.Elements)))
		withSize.Attrs.Merge(node.Attrs)
		meta = &withSize
	}
	return e.metaWrapped(meta, false)
}

func (e *Encoder) list(node *document.Node, indent int, includeSchema bool) string {
	ind := strings.Repeat(" ", indent)
	childIndent := indent + e.cfg.Indent

	innerMeta := e.listMeta(node)

	schemaHeader := ""
	if includeSchema && node.Schema != nil && node.Schema.Element != nil {
		schemaHeader = strings.TrimSpace(e.encodeSchema(node.Schema.Element, 0, true))
	}
	if schemaHeader != "" {
		schemaHeader += " "
	}

	var expected *document.Schema
	if node.Schema != nil {
		expected = node.Schema.Element
	}

	if e.cfg.Compact {
		items := make([]string, 0, len(node.Elements))
		for _, el := range node.Elements {
			val := strings.TrimSpace(e.encode(el, 0, false))
			items = append(items, e.applyTypeTag(val, el.Schema, expected))
		}
		return ind + "[" + innerMeta + schemaHeader + strings.Join(items, ",") + "]"
	}

	out := []string{ind + "["}
	childPad := strings.Repeat(" ", childIndent)
	if innerMeta != "" {
		out = append(out, childPad+strings.TrimSpace(innerMeta))
	}
	if schemaHeader != "" {
		out = append(out, childPad+strings.TrimSpace(schemaHeader))
	}
	for i, el := range node.Elements {
		val := strings.TrimSpace(e.encode(el, childIndent-e.cfg.StartIndent, false))
		val = e.applyTypeTag(val, el.Schema, expected)
		line := childPad + val
		if i < len(node.Elements)-1 {
			line += ","
		}
		out = append(out, line)
	}
	out = append(out, ind+"]")
	return strings.Join(out, "\n")
}

// ---------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------

// record renders a record positionally in schema field order. Missing
// fields render as null; a record with no fields at all renders as (null).
func (e *Encoder) record(node *document.Node, indent int) string {
	innerMeta := e.metaWrapped(&node.Meta, false)

	var parts []string
	if node.Schema != nil && node.Schema.Len() > 0 {
		for _, fieldDef := range node.Schema.Fields() {
			fieldNode := node.Fields[fieldDef.Name]
			if fieldNode == nil {
				parts = append(parts, e.color("null", colorNull))
				continue
			}
			val := strings.TrimSpace(e.encode(fieldNode, indent-e.cfg.StartIndent, false))
			parts = append(parts, e.applyTypeTag(val, fieldNode.Schema, fieldDef))
		}
	} else {
		parts = append(parts, e.color("null", colorNull))
	}

	sep := ","
	if !e.cfg.Compact {
		sep = ", "
	}
	return "(" + innerMeta + strings.Join(parts, sep) + ")"
}

func (e *Encoder) pad() string {
	if e.cfg.Compact {
		return ""
	}
	return " "
}

func (e *Encoder) color(text, c string) string {
	if !e.cfg.Colorize {
		return text
	}
	return c + text + colorReset
}
