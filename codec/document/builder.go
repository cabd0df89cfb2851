package document

import (
	"fmt"
	"sort"
)

// Build converts a plain in-memory value into a node tree. Scalars and nil
// become primitives, slices become lists, and mappings become records. An
// *OrderedMap keeps its insertion order; a plain map[string]any is accepted
// with keys sorted for determinism. Values outside the accepted union
// return an error.
func Build(value any) (*Node, error) {
	switch v := value.(type) {
	case nil:
		return buildPrimitive("null", nil), nil
	case *Node:
		return v, nil
	case bool:
		return buildPrimitive("bool", v), nil
	case string:
		return buildPrimitive("string", v), nil
	case int:
		return buildPrimitive("number", int64(v)), nil
	case int8:
		return buildPrimitive("number", int64(v)), nil
	case int16:
		return buildPrimitive("number", int64(v)), nil
	case int32:
		return buildPrimitive("number", int64(v)), nil
	case int64:
		return buildPrimitive("number", v), nil
	case uint:
		return buildPrimitive("number", int64(v)), nil
	case uint8:
		return buildPrimitive("number", int64(v)), nil
	case uint16:
		return buildPrimitive("number", int64(v)), nil
	case uint32:
		return buildPrimitive("number", int64(v)), nil
	case uint64:
		return buildPrimitive("number", int64(v)), nil
	case float32:
		return buildPrimitive("number", float64(v)), nil
	case float64:
		return buildPrimitive("number", v), nil
	case []any:
		return buildList(v)
	case *OrderedMap:
		return buildRecord(v.Keys(), func(k string) any { val, _ := v.Get(k); return val })
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return buildRecord(keys, func(k string) any { return v[k] })
	default:
		return nil, fmt.Errorf("Unsupported structure type: %T", value)
	}
}

func buildPrimitive(typeName string, value any) *Node {
	n := NewNode(NewPrimitive(typeName))
	n.Value = value
	return n
}

func buildList(items []any) (*Node, error) {
	if len(items) == 0 {
		return NewNode(NewList(NewPrimitive("any"))), nil
	}

	children := make([]*Node, 0, len(items))
	for _, item := range items {
		child, err := Build(item)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	var element *Schema
	if children[0].Schema.IsRecord() {
		// Union the fields of every record element in first-seen order;
		// the first descriptor wins for a given name.
		element = NewRecord("record")
		for _, child := range children {
			if !child.Schema.IsRecord() {
				continue
			}
			for _, f := range child.Schema.Fields() {
				if _, ok := element.Field(f.Name); !ok {
					element.AddField(f)
				}
			}
		}
	} else {
		element = children[0].Schema
	}

	node := NewNode(NewList(element))
	node.Elements = children
	return node, nil
}

func buildRecord(keys []string, get func(string) any) (*Node, error) {
	schema := NewRecord("")
	node := NewNode(schema)
	for _, key := range keys {
		child, err := Build(get(key))
		if err != nil {
			return nil, err
		}
		child.Schema.Name = key
		schema.AddField(child.Schema)
		node.Fields[key] = child
	}
	return node, nil
}
