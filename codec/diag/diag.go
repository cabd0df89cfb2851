// Package diag defines the diagnostic records produced by the decoder:
// recoverable errors and warnings carrying a message, a cursor position,
// and references to the schema and node contexts active when they fired.
package diag

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/arkadia-data/akd/codec/document"
)

// Severity is the diagnostic severity level.
type Severity int

const (
	// Warning marks deprecated or ambiguous input that parsed anyway.
	Warning Severity = iota
	// Error marks a structural problem; the decoder recovered and
	// continued, but the document is not well-formed.
	Error
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Position is a cursor location in the input buffer. Line and Column are
// 1-based; Offset is the rune index.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is one recoverable decode problem.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      Position
	Context  string

	// Schema and Node reference the decoder's contexts at the time the
	// diagnostic fired. Either may be nil.
	Schema *document.Schema
	Node   *document.Node
}

// New creates a diagnostic with the given severity.
func New(severity Severity, message string, pos Position) Diagnostic {
	return Diagnostic{Severity: severity, Message: message, Pos: pos}
}

// WithContext attaches the schema and node contexts.
func (d Diagnostic) WithContext(schema *document.Schema, node *document.Node) Diagnostic {
	d.Schema = schema
	d.Node = node
	return d
}

// String renders a one-line summary for logging, e.g.
// [DecodeError] Unexpected character '?' (at pos 4).
func (d Diagnostic) String() string {
	label := "DecodeError"
	if d.Severity == Warning {
		label = "DecodeWarn"
	}
	return fmt.Sprintf("[%s] %s (at pos %d)", label, d.Message, d.Pos.Offset)
}

// MarshalJSON implements json.Marshaler. Schema and node contexts are
// flattened to their debug strings.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	out := struct {
		Severity Severity `json:"severity"`
		Message  string   `json:"message"`
		Position Position `json:"position"`
		Context  string   `json:"context,omitempty"`
		Schema   string   `json:"schema,omitempty"`
		Node     string   `json:"node,omitempty"`
	}{
		Severity: d.Severity,
		Message:  d.Message,
		Position: d.Pos,
		Context:  d.Context,
	}
	if d.Schema != nil {
		out.Schema = d.Schema.String()
	}
	if d.Node != nil {
		out.Node = d.Node.String()
	}
	return json.Marshal(out)
}
