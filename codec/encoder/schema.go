package encoder

import (
	"strings"

	"github.com/arkadia-data/akd/codec/document"
)

// encodeSchema renders a schema header. Nominal records emit an @Name
// prefix; a nominal record already rendered in this pass emits the bare
// reference instead, which keeps the encoder total on cyclic definitions.
func (e *Encoder) encodeSchema(s *document.Schema, indent int, includeMeta bool) string {
	if s == nil {
		return ""
	}

	ind := strings.Repeat(" ", indent)
	pad := e.pad()

	prefix := ""
	if s.TypeName != "" && s.Kind == document.KindRecord && !s.IsAny() {
		prefix = e.color("@"+escapeIdent(s.TypeName), colorSchema)
	}

	switch {
	case s.IsPrimitive():
		metaPrefix := ""
		if includeMeta {
			metaPrefix = e.metaInline(&s.Meta, s.Required)
		}
		if metaPrefix != "" {
			metaPrefix += " "
		}
		return ind + metaPrefix + e.color(s.TypeName, colorType)

	case s.IsList():
		// Metadata collected on the element belongs to the list.
		s.PromoteElementMeta()
		listMeta := ""
		if includeMeta {
			listMeta = e.metaWrapped(&s.Meta, s.Required)
		}

		if s.Element != nil && s.Element.IsRecord() && !isNominalRecord(s.Element) {
			// List of anonymous records: the record's fields inline
			// inside [ ... ]. Nominal elements go through the record
			// path below, which emits a bare @Name reference once that
			// type has been rendered, so cyclic definitions stay finite.
			inner := e.encodeSchemaFields(s.Element)
			return ind + prefix + "<" + pad + "[" + listMeta + inner + pad + "]" + pad + ">"
		}

		inner := "any"
		if s.Element != nil {
			if t := strings.TrimSpace(e.encodeSchema(s.Element, 0, false)); t != "" {
				inner = t
			}
		}
		return ind + "[" + listMeta + e.color(inner, colorType) + "]"

	case s.IsRecord():
		if prefix != "" {
			if e.visited[s] {
				return ind + prefix
			}
			e.visited[s] = true
		}

		recordMeta := ""
		if includeMeta {
			recordMeta = e.metaWrapped(&s.Meta, s.Required)
		}

		if s.Len() == 0 {
			// A fully anonymous empty record renders no header at all,
			// so <any> never appears in front of record data.
			if prefix == "" && recordMeta == "" && s.IsAny() {
				return ""
			}
			return ind + prefix + "<" + pad + recordMeta + "any" + pad + ">"
		}

		inner := e.encodeSchemaFields(s)
		return ind + prefix + "<" + pad + recordMeta + inner + pad + ">"

	default:
		meta := ""
		if includeMeta {
			meta = e.metaWrapped(&s.Meta, s.Required)
		}
		// Bare "any" so callers embedding this in a header or field
		// signature produce re-decodable text.
		return ind + meta + "any"
	}
}

// isNominalRecord reports whether s is a record carrying a user-given type
// name (as opposed to the anonymous "any"/"record" defaults).
func isNominalRecord(s *document.Schema) bool {
	return s.IsRecord() && s.TypeName != "" && s.TypeName != "any" && s.TypeName != "record"
}

// encodeSchemaFields renders a record's field list. Each field is rendered
// as inline modifiers, the (escaped) name, the : type signature when the
// field is structural or a typed primitive, then the field's comments.
func (e *Encoder) encodeSchemaFields(s *document.Schema) string {
	pad := e.pad()
	parts := make([]string, 0, s.Len())

	for _, f := range s.Fields() {
		var fp []string

		if m := e.buildMetaString(&f.Meta, f.Required, false); m != "" {
			fp = append(fp, m)
		}

		fp = append(fp, e.color(escapeIdent(f.Name), colorKey))

		fieldType := strings.TrimSpace(e.encodeSchema(f, 0, false))
		isStructure := !f.IsPrimitive()
		isExplicitPrimitive := e.cfg.IncludeType && f.TypeName != "any"
		if fieldType != "" && (isStructure || isExplicitPrimitive) {
			fp[len(fp)-1] += ":" + e.color(fieldType, colorType)
		}

		if e.cfg.IncludeComments {
			for _, c := range f.Comments {
				fp = append(fp, e.comment(c))
			}
		}

		parts = append(parts, strings.Join(fp, " "))
	}

	return strings.Join(parts, ","+pad)
}
