package encoder

import (
	"strings"

	"github.com/arkadia-data/akd/codec/document"
)

// Prompt-output mode renders a structural blueprint of the document instead
// of its data: records expand to { key: type } braces, lists show a single
// example element followed by a repeat marker, and field comments attach to
// the type slot. Data values are not emitted; the decoder and data model
// are unaffected by this mode.

const promptRepeatMarker = "... /* repeat pattern for additional items */"

func (e *Encoder) promptNode(node *document.Node, indent int) string {
	if node == nil || node.Schema == nil {
		return e.color("null", colorNull)
	}
	return strings.Repeat(" ", indent) + e.promptSchema(node.Schema, indent)
}

func (e *Encoder) promptSchema(s *document.Schema, indent int) string {
	if s == nil {
		return "any"
	}

	childIndent := indent + e.cfg.Indent
	childPad := strings.Repeat(" ", childIndent)
	closePad := strings.Repeat(" ", indent)

	switch {
	case s.IsPrimitive():
		return e.color(s.TypeName, colorType)

	case s.IsList():
		element := "any"
		if s.Element != nil {
			element = e.promptSchema(s.Element, childIndent)
		}
		return "[\n" + childPad + element + ",\n" + childPad + e.color(promptRepeatMarker, colorNull) + "\n" + closePad + "]"

	case s.IsRecord():
		if s.Len() == 0 {
			return "{}"
		}
		lines := make([]string, 0, s.Len())
		for _, f := range s.Fields() {
			line := childPad + e.color(escapeIdent(f.Name), colorKey) + ": " + e.promptSchema(f, childIndent)
			if e.cfg.IncludeComments {
				for _, c := range f.Comments {
					line += " " + e.comment(c)
				}
			}
			lines = append(lines, line)
		}
		return "{\n" + strings.Join(lines, ",\n") + "\n" + closePad + "}"

	default:
		return "any"
	}
}
