package decoder

import (
	"fmt"
	"unicode"

	"github.com/arkadia-data/akd/codec/document"
)

// parseNode is the value dispatcher. It consumes prefix metadata, looks at
// the next character, and hands off to the structure or primitive parser.
func (d *Decoder) parseNode() *document.Node {
	d.parseMeta(d.nodeCarrier())

	if d.eof() {
		d.addError("Unexpected EOF while expecting a node")
		return d.createNode(nil)
	}

	ch := d.peek()
	var node *document.Node
	switch {
	case ch == '@':
		node = d.parseNodeWithSchemaRef()
	case ch == '<':
		node = d.parseNodeWithInlineSchema()
	case ch == '[':
		node = d.parseList()
	case ch == '(':
		node = d.parsePositionalRecord()
	case ch == '{':
		node = d.parseNamedRecord()
	case ch == '"':
		node = d.createNode(d.readQuotedString())
	case unicode.IsDigit(ch) || ch == '-':
		node = d.createNode(d.readNumber())
	case isIdentStart(ch) || ch == '`':
		node = d.parseRawString()
	default:
		d.addError(fmt.Sprintf("Unexpected character '%c'", ch))
		d.advance(1)
		node = d.createNode(nil)
	}

	d.applyPending(node)
	return node
}

// parseNodeWithSchemaRef parses @Type <value>.
func (d *Decoder) parseNodeWithSchemaRef() *document.Node {
	schema := d.parseSchemaAtRef()
	d.pushSchema(schema)
	node := d.parseNode()
	d.popSchema()
	node.Schema = schema
	return node
}

// parseNodeWithInlineSchema parses <...> <value>.
func (d *Decoder) parseNodeWithInlineSchema() *document.Node {
	schema := d.parseSchemaDefinition("")
	d.pushSchema(schema)
	node := d.parseNode()
	d.popSchema()
	node.Schema = schema
	return node
}

// parseRawString parses an unquoted word: true/false/null resolve to their
// literal values, anything else is a string.
func (d *Decoder) parseRawString() *document.Node {
	switch raw := d.parseIdent(); raw {
	case "true":
		return d.createNode(true)
	case "false":
		return d.createNode(false)
	case "null":
		return d.createNode(nil)
	default:
		return d.createNode(raw)
	}
}

// parseList parses [ ... ]. The node inherits a list context or mutates its
// schema into a list of any; an any element schema widens to the schema of
// the first element produced.
func (d *Decoder) parseList() *document.Node {
	d.log.Debug("list begin")
	d.advance(1)

	node := d.createNode(nil)
	node.Elements = []*document.Node{}
	if node.Schema.Kind != document.KindList {
		node.Schema.Kind = document.KindList
		node.Schema.TypeName = "list"
		node.Schema.Element = document.NewPrimitive("any")
	}

	parent := node.Schema
	child := document.NewPrimitive("any")
	if parent.IsList() && parent.Element != nil {
		child = parent.Element
	}

	var last *document.Node
	for {
		d.parseMeta(node)

		if d.eof() {
			d.addError("Unexpected EOF: List not closed, expected ']'")
			break
		}
		if d.peek() == ']' {
			d.attachTrailing(last, node)
			d.advance(1)
			break
		}
		if d.peek() == ',' {
			d.attachTrailing(last, node)
			d.advance(1)
			continue
		}

		d.pushSchema(child)
		last = d.parseNode()
		node.Elements = append(node.Elements, last)

		if parent.Element != nil && parent.Element.IsAny() {
			parent.Element = last.Schema
		}

		d.attachTrailing(last, node)
		d.popNode()
		d.popSchema()
	}

	d.log.Debug("list end")
	return node
}

// parsePositionalRecord parses ( ... ). Values map onto schema fields by
// ordinal; without a schema, fields _0, _1, ... are inferred from the
// parsed children and appended to the record schema.
func (d *Decoder) parsePositionalRecord() *document.Node {
	d.log.Debug("positional record begin")
	d.advance(1)

	node := d.createNode(nil)
	if node.Schema.Kind != document.KindRecord {
		node.Schema.Kind = document.KindRecord
		node.Schema.TypeName = "any"
	}

	// Freeze the predefined fields so inferred appends do not shift the
	// mapping of later values.
	predefined := append([]*document.Schema(nil), node.Schema.Fields()...)

	index := 0
	closed := false
	var last *document.Node

	for !d.eof() {
		d.parseMeta(node)
		if d.eof() {
			break
		}

		if d.peek() == ')' {
			d.attachTrailing(last, node)
			d.advance(1)
			closed = true
			break
		}
		if d.peek() == ',' {
			d.attachTrailing(last, node)
			d.advance(1)
			continue
		}

		field := document.NewSchema(document.KindAny)
		if index < len(predefined) {
			field = predefined[index]
		}

		d.pushSchema(field)
		last = d.parseNode()

		if index < len(predefined) {
			node.Fields[predefined[index].Name] = last
		} else {
			name := fmt.Sprintf("_%d", index)
			inferred := last.Schema
			inferred.Name = name
			node.Schema.AddField(inferred)
			node.Fields[name] = last
		}

		d.attachTrailing(last, node)
		d.popNode()
		d.popSchema()
		index++
	}

	if !closed {
		d.addError("Unexpected EOF: Record not closed, expected ')'")
	}
	d.log.Debug("positional record end")
	return node
}

// parseNamedRecord parses { key: value, ... }. Values parse under the
// matching field schema when one exists; an any field is replaced by the
// child's concrete schema (first refinement is final), and missing fields
// are inferred and appended.
func (d *Decoder) parseNamedRecord() *document.Node {
	d.log.Debug("named record begin")
	d.advance(1)

	node := d.createNode(nil)
	if node.Schema.Kind != document.KindRecord {
		node.Schema.Kind = document.KindRecord
		node.Schema.TypeName = "any"
	}
	current := node.Schema

	closed := false
	var last *document.Node

	for !d.eof() {
		d.parseMeta(node)
		if d.eof() {
			break
		}

		if d.peek() == '}' {
			d.attachTrailing(last, node)
			d.advance(1)
			closed = true
			break
		}
		if d.peek() == ',' {
			d.attachTrailing(last, node)
			d.advance(1)
			continue
		}

		key := d.parseIdent()
		if key == "" {
			if d.peek() == '"' {
				key = d.readQuotedString()
			} else {
				d.addError("Expected key in record")
				d.advance(1)
				continue
			}
		}
		d.skipWhitespace()
		d.expect(':')

		field := document.NewSchema(document.KindAny)
		if f, ok := current.Field(key); ok {
			field = f
		}

		d.pushSchema(field)
		last = d.parseNode()

		if !last.Schema.IsAny() {
			if f, ok := current.Field(key); ok && f.IsAny() {
				last.Schema.Name = key
				current.ReplaceField(last.Schema)
			}
		}
		if _, ok := current.Field(key); !ok {
			inferred := last.Schema
			inferred.Name = key
			current.AddField(inferred)
		}

		node.Fields[key] = last
		d.attachTrailing(last, node)
		d.popNode()
		d.popSchema()
	}

	if !closed {
		d.addError("Unexpected EOF: Record not closed, expected '}'")
	}
	d.log.Debug("named record end")
	return node
}
