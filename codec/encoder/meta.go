package encoder

import (
	"regexp"
	"strings"

	"github.com/arkadia-data/akd/codec/document"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// escapeIdent backtick-escapes any name that is not a plain identifier.
// Content between the backticks is verbatim.
func escapeIdent(name string) string {
	if identRE.MatchString(name) {
		return name
	}
	return "`" + name + "`"
}

// comment renders one comment. The inner padding is canonical in every
// mode; content is whitespace-trimmed on decode, so the padded form is
// stable under round trips.
func (e *Encoder) comment(c string) string {
	return e.color("/* "+strings.TrimSpace(c)+" */", colorNull)
}

// buildMetaString renders metadata inline: comments, the required
// constraint, attributes, then tags, space-joined. Boolean-true attributes
// render bare ($key); required renders in its attribute spelling.
func (e *Encoder) buildMetaString(m *document.Meta, required, withComments bool) string {
	var items []string

	if withComments && e.cfg.IncludeComments {
		for _, c := range m.Comments {
			items = append(items, e.comment(c))
		}
	}

	if required {
		items = append(items, e.color("$required", colorTag))
	}

	if e.cfg.IncludeMeta {
		for _, k := range m.Attrs.Keys() {
			v, _ := m.Attrs.Get(k)
			if b, ok := v.(bool); ok && b {
				items = append(items, e.color("$"+k, colorAttr))
			} else {
				items = append(items, e.color("$"+k+"=", colorAttr)+e.primitive(v))
			}
		}
		for _, t := range m.Tags {
			items = append(items, e.color("#"+t, colorTag))
		}
	}

	return strings.Join(items, " ")
}

// metaInline renders metadata without wrappers, for primitives and fields.
func (e *Encoder) metaInline(m *document.Meta, required bool) string {
	return e.buildMetaString(m, required, true)
}

// metaWrapped renders metadata wrapped in // ... // delimiters, for
// containers and schema headers. Empty metadata renders as nothing.
func (e *Encoder) metaWrapped(m *document.Meta, required bool) string {
	content := e.buildMetaString(m, required, true)
	if content == "" {
		return ""
	}
	if e.cfg.Compact {
		return e.color("//", colorSchema) + content + e.color("//", colorSchema) + " "
	}
	return " " + e.color("// ", colorSchema) + content + e.color(" //", colorSchema) + " "
}
