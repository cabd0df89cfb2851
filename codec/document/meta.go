// Package document defines the AKD data model: the metadata layer, schema
// descriptors, and document nodes shared by the decoder and the encoder.
package document

import (
	"fmt"
	"strings"
)

// MetaInfo is a transient container for metadata collected from the input
// stream (a // ... // block or a run of inline modifiers) before it is
// attached to a schema or a node. It carries both the common fields and the
// schema-only required constraint.
type MetaInfo struct {
	Comments []string
	Attrs    *OrderedMap
	Tags     []string
	Required bool
}

// NewMetaInfo creates an empty accumulator.
func NewMetaInfo() *MetaInfo {
	return &MetaInfo{Attrs: NewOrderedMap()}
}

// Apply merges other into m: comments and tags append, attributes overwrite
// by key, required OR-combines.
func (m *MetaInfo) Apply(other *MetaInfo) {
	if other == nil {
		return
	}
	m.Comments = append(m.Comments, other.Comments...)
	m.Attrs.Merge(other.Attrs)
	m.Tags = append(m.Tags, other.Tags...)
	m.Required = m.Required || other.Required
}

// IsEmpty reports whether nothing has been collected.
func (m *MetaInfo) IsEmpty() bool {
	return len(m.Comments) == 0 && m.Attrs.Len() == 0 && len(m.Tags) == 0 && !m.Required
}

// String renders a compact debug summary, e.g.
// <MetaInfo !required #tag $key="val" /* 2 comments */>.
func (m *MetaInfo) String() string {
	var parts []string
	if m.Required {
		parts = append(parts, "!required")
	}
	for _, t := range m.Tags {
		parts = append(parts, "#"+t)
	}
	for _, k := range m.Attrs.Keys() {
		v, _ := m.Attrs.Get(k)
		parts = append(parts, fmt.Sprintf("$%s=%s", k, debugScalar(v)))
	}
	if n := len(m.Comments); n == 1 {
		c := m.Comments[0]
		if len(c) > 15 {
			c = c[:15] + ".."
		}
		parts = append(parts, "/* "+c+" */")
	} else if n > 1 {
		parts = append(parts, fmt.Sprintf("/* %d comments */", n))
	}
	if len(parts) == 0 {
		return "<MetaInfo (empty)>"
	}
	return "<MetaInfo " + strings.Join(parts, " ") + ">"
}

func debugScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Meta is the metadata storage embedded in both Schema and Node: comments,
// an insertion-ordered attribute map, and tags. The required constraint
// lives on Schema alone.
type Meta struct {
	Comments []string
	Attrs    *OrderedMap
	Tags     []string
}

func newMeta() Meta {
	return Meta{Attrs: NewOrderedMap()}
}

// ApplyCommon merges the common fields of info: comments append, attributes
// overwrite by key, tags append.
func (m *Meta) ApplyCommon(info *MetaInfo) {
	if info == nil {
		return
	}
	m.Comments = append(m.Comments, info.Comments...)
	m.Attrs.Merge(info.Attrs)
	m.Tags = append(m.Tags, info.Tags...)
}

// ClearCommon drops all metadata.
func (m *Meta) ClearCommon() {
	m.Comments = nil
	m.Attrs = NewOrderedMap()
	m.Tags = nil
}

// HasMeta reports whether any common metadata is present.
func (m *Meta) HasMeta() bool {
	return len(m.Comments) > 0 || m.Attrs.Len() > 0 || len(m.Tags) > 0
}

// MetaCarrier is anything pending metadata can be attached to. Both Schema
// and Node implement it; the decoder drains its accumulator through this
// interface.
type MetaCarrier interface {
	ApplyMeta(info *MetaInfo)
}
