package document

import (
	"fmt"
	"strings"
)

// Node is a value linked to exactly one schema descriptor. A node owns its
// scalar value, its field children, and its element children; it shares its
// schema, which may be referenced from multiple sites through the named-type
// registry. Instance metadata on the node is distinct from the type metadata
// on its schema.
type Node struct {
	Meta

	Schema *Schema
	Name   string

	// Value is the scalar payload of a primitive node: string, int64,
	// float64, bool, or nil.
	Value any

	// Fields holds record children by name; their order is defined by the
	// linked schema's field order, not by insertion.
	Fields map[string]*Node

	// Elements holds list children in order.
	Elements []*Node
}

// NewNode creates a node linked to the given schema.
func NewNode(schema *Schema) *Node {
	return &Node{Meta: newMeta(), Schema: schema, Fields: make(map[string]*Node)}
}

// IsPrimitive reports whether the linked schema is a primitive.
func (n *Node) IsPrimitive() bool { return n.Schema != nil && n.Schema.IsPrimitive() }

// IsRecord reports whether the linked schema is a record.
func (n *Node) IsRecord() bool { return n.Schema != nil && n.Schema.IsRecord() }

// IsList reports whether the linked schema is a list.
func (n *Node) IsList() bool { return n.Schema != nil && n.Schema.IsList() }

// ApplyMeta merges collected metadata into the node. The required
// constraint is schema-only and is ignored here.
func (n *Node) ApplyMeta(info *MetaInfo) {
	if info == nil {
		return
	}
	n.ApplyCommon(info)
}

// Plain converts the node to a plain in-memory value: primitives return
// their scalar, lists a []any of their elements' conversions, records an
// *OrderedMap keyed in schema field order.
func (n *Node) Plain() any {
	switch {
	case n.IsPrimitive():
		return n.Value
	case n.IsList():
		out := make([]any, 0, len(n.Elements))
		for _, el := range n.Elements {
			out = append(out, el.Plain())
		}
		return out
	case n.IsRecord():
		out := NewOrderedMap()
		for _, f := range n.Schema.Fields() {
			if child, ok := n.Fields[f.Name]; ok {
				out.Set(f.Name, child.Plain())
			}
		}
		return out
	default:
		return n.Value
	}
}

// String renders a compact debug summary, e.g. <Node(LIST[number]) len=3>.
func (n *Node) String() string {
	typeLabel := "UNKNOWN"
	if n.Schema != nil {
		switch {
		case n.IsList():
			elType := "any"
			if n.Schema.Element != nil {
				elType = n.Schema.Element.TypeName
			}
			typeLabel = fmt.Sprintf("LIST[%s]", elType)
		case n.IsRecord() && n.Schema.TypeName != "record" && n.Schema.TypeName != "any":
			typeLabel = "RECORD:" + n.Schema.TypeName
		default:
			typeLabel = fmt.Sprintf("%s:%s", n.Schema.Kind, n.Schema.TypeName)
		}
	}

	var content []string
	switch {
	case n.IsList():
		content = append(content, fmt.Sprintf("len=%d", len(n.Elements)))
	case n.IsRecord():
		keys := make([]string, 0, 4)
		for i, f := range n.Schema.Fields() {
			if i == 3 {
				keys = append(keys, "...")
				break
			}
			keys = append(keys, f.Name)
		}
		content = append(content, fmt.Sprintf("fields=[%s]", strings.Join(keys, ", ")))
	default:
		v := fmt.Sprintf("%v", n.Value)
		if len(v) > 50 {
			v = v[:47] + "..."
		}
		content = append(content, "val="+v)
	}

	if len(n.Comments) > 0 {
		content = append(content, fmt.Sprintf("comments=%d", len(n.Comments)))
	}
	if n.Attrs != nil && n.Attrs.Len() > 0 {
		content = append(content, fmt.Sprintf("attr=[%s]", strings.Join(n.Attrs.Keys(), ", ")))
	}
	if len(n.Tags) > 0 {
		content = append(content, fmt.Sprintf("tags=[%s]", strings.Join(n.Tags, ", ")))
	}

	return fmt.Sprintf("<Node(%s) %s>", typeLabel, strings.Join(content, " "))
}
