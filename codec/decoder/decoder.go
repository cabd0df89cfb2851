// Package decoder implements the single-pass AKD text decoder. It walks a
// rune buffer with a cursor, maintains schema and node context stacks plus a
// named-schema registry, and accumulates recoverable diagnostics instead of
// aborting: Decode always returns a (possibly partial) root node.
package decoder

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/arkadia-data/akd/codec/diag"
	"github.com/arkadia-data/akd/codec/document"
)

// maxDiagnostics caps errors and warnings independently. Further additions
// are silently dropped, bounding diagnostic memory on pathological input.
const maxDiagnostics = 50

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Options configures a decode pass.
type Options struct {
	// SchemaPrefix is a schema-only document fragment concatenated in
	// front of the input, letting callers supply an external schema.
	SchemaPrefix string

	// RemoveANSIColors strips ANSI color escapes before parsing.
	RemoveANSIColors bool

	// Debug enables the structured parse trace. When Logger is nil a
	// development logger is used.
	Debug bool

	// Logger receives the parse trace. Overrides Debug.
	Logger *zap.Logger
}

// Result is the outcome of one decode pass.
type Result struct {
	Node     *document.Node
	Schema   *document.Schema
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

// Ok reports whether the input decoded without errors.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

// Decoder is a cursor-driven parser over a fully buffered input. A Decoder
// is single-use and not safe for concurrent use; run one per goroutine.
type Decoder struct {
	src  []rune
	i    int
	line int // 1-based
	col  int // 1-based

	pending     *document.MetaInfo
	nodeStack   []*document.Node
	schemaStack []*document.Schema
	named       map[string]*document.Schema

	errors   []diag.Diagnostic
	warnings []diag.Diagnostic

	log *zap.Logger
}

// New creates a decoder for the given input text.
func New(text string, opts *Options) *Decoder {
	if opts == nil {
		opts = &Options{}
	}
	if opts.RemoveANSIColors {
		text = ansiRE.ReplaceAllString(text, "")
	}
	logger := opts.Logger
	if logger == nil {
		if opts.Debug {
			if dev, err := zap.NewDevelopment(); err == nil {
				logger = dev
			}
		}
		if logger == nil {
			logger = zap.NewNop()
		}
	}
	return &Decoder{
		src:     []rune(opts.SchemaPrefix + text),
		line:    1,
		col:     1,
		pending: document.NewMetaInfo(),
		named:   make(map[string]*document.Schema),
		log:     logger,
	}
}

// Decode parses the whole input and returns the root node, the root schema
// context, and all collected diagnostics.
func (d *Decoder) Decode() *Result {
	d.log.Debug("decode start", zap.Int("runes", len(d.src)))
	d.parseMeta(nil)

	// Leading schema definitions and references. A bare <...> or a
	// trailing @Name becomes the root's schema context.
	var rootCtx *document.Schema
loop:
	for !d.eof() {
		switch d.peek() {
		case '<':
			rootCtx = d.parseSchemaDefinition("")
			d.parseMeta(nil)
			if c := d.peek(); c == '(' || c == '{' || c == '[' {
				break loop
			}
		case '@':
			schema := d.parseSchemaAtRef()
			d.parseMeta(nil)
			if c := d.peek(); c == '@' || c == '<' {
				continue
			}
			rootCtx = schema
			break loop
		default:
			break loop
		}
	}

	if rootCtx != nil {
		d.pushSchema(rootCtx)
	}

	var root *document.Node
	if d.eof() {
		root = d.createNode(nil)
	} else {
		root = d.parseNode()
	}

	if rootCtx != nil {
		d.popSchema()
		if root.Schema == nil || root.Schema.IsAny() {
			root.Schema = rootCtx
		}
	} else {
		rootCtx = root.Schema
	}

	// Trailing comments and modifiers attach to the root.
	d.parseMeta(nil)
	d.applyPending(root)
	d.popNode()

	d.log.Debug("decode end",
		zap.Int("errors", len(d.errors)),
		zap.Int("warnings", len(d.warnings)))

	return &Result{Node: root, Schema: rootCtx, Errors: d.errors, Warnings: d.warnings}
}

// ---------------------------------------------------------------------
// Context stacks
// ---------------------------------------------------------------------

func (d *Decoder) currentSchema() *document.Schema {
	if len(d.schemaStack) == 0 {
		return nil
	}
	return d.schemaStack[len(d.schemaStack)-1]
}

func (d *Decoder) pushSchema(s *document.Schema) {
	d.schemaStack = append(d.schemaStack, s)
	d.log.Debug("push schema", zap.Stringer("schema", s), zap.Int("depth", len(d.schemaStack)))
}

// popSchema removes the current schema context. Metadata collected on a
// popped list's element is promoted to the list itself at this boundary.
func (d *Decoder) popSchema() *document.Schema {
	if len(d.schemaStack) == 0 {
		return nil
	}
	s := d.schemaStack[len(d.schemaStack)-1]
	d.schemaStack = d.schemaStack[:len(d.schemaStack)-1]
	if s != nil && s.IsList() {
		s.PromoteElementMeta()
	}
	d.log.Debug("pop schema", zap.Int("depth", len(d.schemaStack)))
	return s
}

func (d *Decoder) currentNode() *document.Node {
	if len(d.nodeStack) == 0 {
		return nil
	}
	return d.nodeStack[len(d.nodeStack)-1]
}

func (d *Decoder) pushNode(n *document.Node) {
	d.nodeStack = append(d.nodeStack, n)
	d.log.Debug("push node", zap.Stringer("node", n), zap.Int("depth", len(d.nodeStack)))
}

func (d *Decoder) popNode() *document.Node {
	if len(d.nodeStack) == 0 {
		return nil
	}
	n := d.nodeStack[len(d.nodeStack)-1]
	d.nodeStack = d.nodeStack[:len(d.nodeStack)-1]
	d.log.Debug("pop node", zap.Int("depth", len(d.nodeStack)))
	return n
}

func (d *Decoder) nodeCarrier() document.MetaCarrier {
	if n := d.currentNode(); n != nil {
		return n
	}
	return nil
}

func (d *Decoder) schemaCarrier() document.MetaCarrier {
	if s := d.currentSchema(); s != nil {
		return s
	}
	return nil
}

// ---------------------------------------------------------------------
// Pending metadata
// ---------------------------------------------------------------------

// applyPending drains the accumulator onto obj. Every schema and node picks
// up whatever metadata was collected since the last attachment.
func (d *Decoder) applyPending(obj document.MetaCarrier) {
	if obj != nil {
		obj.ApplyMeta(d.pending)
	}
	d.pending = document.NewMetaInfo()
}

// attachTrailing flushes pending metadata onto the most recent child, or
// onto the container when no child has been parsed yet. This is the
// trailing-attachment rule applied at separators and closing delimiters.
func (d *Decoder) attachTrailing(last, container *document.Node) {
	if last != nil {
		d.applyPending(last)
		return
	}
	d.applyPending(container)
}

func (d *Decoder) attachTrailingSchema(last, container *document.Schema) {
	if last != nil {
		d.applyPending(last)
		return
	}
	d.applyPending(container)
}

// ---------------------------------------------------------------------
// Object creation
// ---------------------------------------------------------------------

// createSchema builds a schema, drains pending metadata onto it, and pushes
// it as the current schema context.
func (d *Decoder) createSchema(kind document.Kind, typeName string) *document.Schema {
	schema := document.NewSchema(kind)
	if typeName != "" {
		schema.TypeName = typeName
	}
	d.applyPending(schema)
	d.pushSchema(schema)
	return schema
}

// createNode builds a node for the given scalar value (nil for structures
// and null), reconciling the inferred primitive schema with the current
// schema context. On a mismatch the inferred schema wins; the encoder later
// renders the divergence as an inline type tag.
func (d *Decoder) createNode(value any) *document.Node {
	current := d.currentSchema()
	if current == nil {
		current = document.NewSchema(document.KindAny)
		d.pushSchema(current)
	}

	final := current
	if value != nil {
		var inferred *document.Schema
		switch value.(type) {
		case bool:
			inferred = document.NewPrimitive("bool")
		case int64, float64:
			inferred = document.NewPrimitive("number")
		case string:
			inferred = document.NewPrimitive("string")
		default:
			inferred = document.NewPrimitive("any")
		}

		switch {
		case current.Kind == document.KindAny:
			final = inferred
		case current.TypeName == inferred.TypeName:
			// Exact match; keep the context schema.
		case current.TypeName == "number" && (inferred.TypeName == "int" || inferred.TypeName == "float"):
			// Numeric aliases collapse into the number context.
		default:
			final = inferred
		}
	} else {
		// No scalar: either the start of a structure (keep the context)
		// or a null literal.
		if current.IsRecord() || current.IsList() {
			final = current
		} else {
			final = document.NewPrimitive("null")
		}
	}

	node := document.NewNode(final)
	node.Value = value
	d.applyPending(node)
	d.pushNode(node)
	return node
}

// ---------------------------------------------------------------------
// Diagnostics
// ---------------------------------------------------------------------

func (d *Decoder) position() diag.Position {
	return diag.Position{Offset: d.i, Line: d.line, Column: d.col}
}

func (d *Decoder) addError(msg string) {
	if len(d.errors) >= maxDiagnostics {
		return
	}
	d.log.Debug("error", zap.String("msg", msg), zap.Int("pos", d.i))
	d.errors = append(d.errors,
		diag.New(diag.Error, msg, d.position()).WithContext(d.currentSchema(), d.currentNode()))
}

func (d *Decoder) addWarning(msg string) {
	if len(d.warnings) >= maxDiagnostics {
		return
	}
	d.log.Debug("warning", zap.String("msg", msg), zap.Int("pos", d.i))
	d.warnings = append(d.warnings,
		diag.New(diag.Warning, msg, d.position()).WithContext(d.currentSchema(), d.currentNode()))
}

// registerSchema records a named definition. The first write wins at a
// given name; later definitions keep resolving to the original descriptor.
func (d *Decoder) registerSchema(name string, s *document.Schema) {
	if _, ok := d.named[name]; ok {
		return
	}
	d.named[name] = s
	d.log.Debug("register schema", zap.String("name", name))
}
