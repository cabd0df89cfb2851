package encoder

// Config controls rendering. Every option toggles independently.
type Config struct {
	// Indent is the number of spaces per nesting level in pretty mode.
	Indent int

	// StartIndent is the initial column offset in pretty mode.
	StartIndent int

	// Compact collapses internal padding: separators become "," and the
	// schema header and data emit on one line.
	Compact bool

	// EscapeNewLines renders \n, \r, and \t in string values as escape
	// sequences instead of raw characters.
	EscapeNewLines bool

	// Colorize wraps tokens with ANSI escapes. Presentation only; the
	// decoder can strip the escapes back out.
	Colorize bool

	// IncludeSchema emits the leading schema header.
	IncludeSchema bool

	// IncludeType emits field type signatures for typed primitives.
	// Type info for "any" is suppressed regardless.
	IncludeType bool

	// IncludeMeta emits $attr and #tag metadata.
	IncludeMeta bool

	// IncludeComments emits /* ... */ comments.
	IncludeComments bool

	// IncludeArraySize injects $size=<n> into list instance metadata.
	IncludeArraySize bool

	// PromptOutput emits a structural blueprint instead of data, for use
	// inside LLM prompts.
	PromptOutput bool
}

// DefaultConfig returns the default rendering configuration: pretty mode
// with two-space indent, schema, types, metadata, and comments included.
func DefaultConfig() Config {
	return Config{
		Indent:          2,
		IncludeSchema:   true,
		IncludeType:     true,
		IncludeMeta:     true,
		IncludeComments: true,
	}
}

// CompactConfig returns the canonical compact configuration, the form the
// round-trip guarantee is stated against.
func CompactConfig() Config {
	cfg := DefaultConfig()
	cfg.Compact = true
	return cfg
}
