package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the structural shape of a schema.
type Kind int

const (
	KindAny Kind = iota
	KindPrimitive
	KindRecord
	KindList
	// KindDict is reserved for a future key/value shape. It appears in
	// debug strings only; the decoder never produces it.
	KindDict
)

// String returns the debug name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "ANY"
	case KindPrimitive:
		return "PRIMITIVE"
	case KindRecord:
		return "RECORD"
	case KindList:
		return "LIST"
	case KindDict:
		return "DICT"
	default:
		return "UNKNOWN"
	}
}

// Schema describes the shape of a value: a primitive type, a record with
// ordered fields, a list with one element schema, or the any fallback.
// A schema used as a record field additionally carries the field name.
// Named record descriptors are shared through the decoder's registry, so a
// schema may be referenced from multiple sites.
type Schema struct {
	Meta

	Kind     Kind
	TypeName string // primitive type or nominal record name; "any" by default
	Name     string // field name when used inside a record
	Element  *Schema
	Required bool

	fields     []*Schema
	fieldIndex map[string]*Schema
}

// NewSchema creates a schema of the given kind with type name "any".
func NewSchema(kind Kind) *Schema {
	return &Schema{Meta: newMeta(), Kind: kind, TypeName: "any"}
}

// NewPrimitive creates a primitive schema with the given type name.
func NewPrimitive(typeName string) *Schema {
	s := NewSchema(KindPrimitive)
	s.TypeName = typeName
	return s
}

// NewRecord creates a record schema with the given nominal type name
// ("any" when name is empty).
func NewRecord(typeName string) *Schema {
	s := NewSchema(KindRecord)
	if typeName != "" {
		s.TypeName = typeName
	}
	return s
}

// NewList creates a list schema with the given element schema.
func NewList(element *Schema) *Schema {
	s := NewSchema(KindList)
	s.TypeName = "list"
	s.Element = element
	return s
}

// IsPrimitive reports whether the schema is a primitive.
func (s *Schema) IsPrimitive() bool { return s.Kind == KindPrimitive }

// IsRecord reports whether the schema is a record.
func (s *Schema) IsRecord() bool { return s.Kind == KindRecord }

// IsList reports whether the schema is a list.
func (s *Schema) IsList() bool { return s.Kind == KindList }

// IsAny reports whether the schema carries no concrete type: the ANY kind,
// or a primitive/record whose type name is still the "any" default.
func (s *Schema) IsAny() bool {
	if s.Kind == KindAny {
		return true
	}
	return s.TypeName == "any" && (s.Kind == KindPrimitive || s.Kind == KindRecord)
}

// Fields returns the ordered field list. The slice is shared; callers must
// not mutate it.
func (s *Schema) Fields() []*Schema {
	return s.fields
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// FieldAt returns the field at ordinal i.
func (s *Schema) FieldAt(i int) *Schema {
	return s.fields[i]
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (*Schema, bool) {
	f, ok := s.fieldIndex[name]
	return f, ok
}

// ClearFields removes all fields.
func (s *Schema) ClearFields() {
	s.fields = nil
	s.fieldIndex = nil
}

// AddField appends a field. Adding the first field to a non-record promotes
// the kind to RECORD. Unnamed fields are auto-named by their ordinal.
func (s *Schema) AddField(field *Schema) {
	if s.Kind != KindRecord {
		s.Kind = KindRecord
	}
	if field.Name == "" {
		field.Name = strconv.Itoa(len(s.fields))
	}
	if s.fieldIndex == nil {
		s.fieldIndex = make(map[string]*Schema)
	}
	s.fields = append(s.fields, field)
	s.fieldIndex[field.Name] = field
}

// ReplaceField replaces the field with the same name preserving its
// ordinal, or appends when no such field exists.
func (s *Schema) ReplaceField(field *Schema) {
	old, ok := s.fieldIndex[field.Name]
	if !ok {
		s.AddField(field)
		return
	}
	for i, f := range s.fields {
		if f == old {
			s.fields[i] = field
			break
		}
	}
	s.fieldIndex[field.Name] = field
}

// ApplyMeta merges collected metadata into the schema, including the
// required constraint (OR-combined).
func (s *Schema) ApplyMeta(info *MetaInfo) {
	if info == nil {
		return
	}
	s.ApplyCommon(info)
	if info.Required {
		s.Required = true
	}
}

// ClearMeta drops all metadata including the required constraint.
func (s *Schema) ClearMeta() {
	s.ClearCommon()
	s.Required = false
}

// PromoteElementMeta lifts metadata collected on a list's element schema
// onto the list itself and clears it on the element. This keeps
// `< // $attr // [int] >` attaching $attr to the list, not the element;
// the decoder performs it when popping a list context and the encoder
// before rendering one.
func (s *Schema) PromoteElementMeta() {
	if s.Kind != KindList || s.Element == nil {
		return
	}
	s.Comments = append(s.Comments, s.Element.Comments...)
	s.Attrs.Merge(s.Element.Attrs)
	s.Tags = append(s.Tags, s.Element.Tags...)
	if s.Element.Required {
		s.Required = true
	}
	s.Element.ClearMeta()
}

// String renders a technical debug summary, e.g.
// <Schema(RECORD:User) fields(2)=[id, name]>.
func (s *Schema) String() string {
	typeLabel := ""
	if s.TypeName != "" && s.TypeName != "any" && !strings.EqualFold(s.TypeName, s.Kind.String()) {
		typeLabel = ":" + s.TypeName
	}
	header := fmt.Sprintf("<Schema(%s%s)", s.Kind, typeLabel)

	nameStr := ""
	if s.Name != "" {
		nameStr = fmt.Sprintf(" name='%s'", s.Name)
	}

	var details []string
	if s.Required {
		details = append(details, "!required")
	}
	if s.Attrs != nil && s.Attrs.Len() > 0 {
		details = append(details, fmt.Sprintf("attr=[%s]", strings.Join(s.Attrs.Keys(), ", ")))
	}
	if len(s.Tags) > 0 {
		details = append(details, fmt.Sprintf("tags=[%s]", strings.Join(s.Tags, ", ")))
	}
	if len(s.Comments) > 0 {
		details = append(details, fmt.Sprintf("comments=%d", len(s.Comments)))
	}

	switch {
	case s.IsRecord():
		if len(s.fields) == 0 {
			details = append(details, "fields=[]")
		} else {
			names := make([]string, 0, 4)
			for i, f := range s.fields {
				if i == 3 {
					names = append(names, "...")
					break
				}
				names = append(names, f.Name)
			}
			details = append(details, fmt.Sprintf("fields(%d)=[%s]", len(s.fields), strings.Join(names, ", ")))
		}
	case s.IsList():
		elKind, elType := "ANY", "None"
		if s.Element != nil {
			elKind = s.Element.Kind.String()
			elType = s.Element.TypeName
		}
		details = append(details, fmt.Sprintf("element=%s:%s", elKind, elType))
	}

	detailStr := ""
	if len(details) > 0 {
		detailStr = " " + strings.Join(details, " ")
	}
	return header + nameStr + detailStr + ">"
}
