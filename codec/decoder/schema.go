package decoder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arkadia-data/akd/codec/document"
)

// primitiveAliases maps the primitive type spellings accepted in schemas to
// their canonical names. The canonical name is what the encoder emits.
var primitiveAliases = map[string]string{
	"string": "string",
	"bool":   "bool",
	"number": "number",
	"null":   "null",
	"binary": "binary",
	"int":    "number",
	"float":  "number",
	"any":    "any",
}

// parseSchemaAtRef parses @Name as either a definition (@Name<...>) or a
// reference. Unknown references yield a forward-declaration placeholder
// record with that type name.
func (d *Decoder) parseSchemaAtRef() *document.Schema {
	d.advance(1) // '@'
	typeName := d.parseIdent()
	d.skipWhitespace()

	if d.peek() == '<' {
		d.log.Debug("schema definition", zap.String("name", typeName))
		schema := d.parseSchemaDefinition(typeName)
		if schema.IsAny() {
			schema.Kind = document.KindRecord
		}
		return schema
	}

	d.log.Debug("schema reference", zap.String("name", typeName))
	if s, ok := d.named[typeName]; ok {
		return s
	}
	return document.NewRecord(typeName)
}

// parseSchemaDefinition parses a < ... > schema block. Named definitions
// are registered before their body is parsed so self-referential types
// resolve to the same descriptor.
func (d *Decoder) parseSchemaDefinition(typeName string) *document.Schema {
	if !d.expect('<') {
		schema := d.createSchema(document.KindAny, typeName)
		d.popSchema()
		return schema
	}

	schema := d.createSchema(document.KindRecord, typeName)
	if typeName != "" {
		d.registerSchema(typeName, schema)
	}
	d.parseSchemaBodyContent(schema, '>')
	d.popSchema()
	return schema
}

// parseSchemaBodyContent parses fields or a list element inside < ... > or
// [ ... ], mutating schema in place.
func (d *Decoder) parseSchemaBodyContent(schema *document.Schema, end rune) {
	var fieldSchema *document.Schema
	closed := false

	for !d.eof() {
		d.parseMeta(schema)
		if d.eof() {
			break
		}
		ch := d.peek()

		if ch == end {
			d.advance(1)
			closed = true
			break
		}

		// A leading [ switches the schema to a list; the bracketed body
		// describes the element.
		if ch == '[' {
			d.advance(1)
			d.log.Debug("schema list begin")
			schema.Kind = document.KindList
			schema.ClearFields()
			d.applyPending(schema)

			element := document.NewSchema(document.KindAny)
			d.parseSchemaBodyContent(element, ']')
			schema.Element = element

			d.parseMeta(schema)
			if d.peek() == end {
				d.advance(1)
			}
			d.applyPending(schema)
			return
		}

		if ch == ',' {
			d.attachTrailingSchema(fieldSchema, schema)
			d.advance(1)
			continue
		}

		name := d.parseIdent()
		if name == "" {
			d.addError("Expected identifier")
			d.advance(1)
			continue
		}
		d.skipWhitespace()

		// A bare primitive token in an otherwise empty schema switches
		// the whole schema to that primitive (shorthand like <number>).
		if canonical, ok := primitiveAliases[name]; ok && d.peek() != ':' && schema.Len() == 0 {
			schema.Kind = document.KindPrimitive
			schema.TypeName = canonical
			continue
		}

		if d.peek() == ':' {
			d.advance(1)
			fieldSchema = d.parseSchemaType()
		} else {
			fieldSchema = document.NewPrimitive("any")
		}
		fieldSchema.Name = name

		// Prefix metadata collected before the field name.
		d.applyPending(fieldSchema)

		// Trailing metadata between the type and the separator.
		d.parseMeta(schema)
		d.attachTrailingSchema(fieldSchema, schema)

		schema.AddField(fieldSchema)
	}

	if !closed {
		d.addError(fmt.Sprintf("Unexpected EOF: Schema not closed, expected '%c'", end))
	}
	d.attachTrailingSchema(fieldSchema, schema)
}

// parseSchemaType parses a type signature after a field name: a primitive,
// a [element] list shortform, a @Name reference or inline definition, or an
// anonymous < ... > block.
func (d *Decoder) parseSchemaType() *document.Schema {
	d.parseMeta(d.schemaCarrier())

	switch ch := d.peek(); ch {
	case '[':
		d.advance(1)
		lst := document.NewSchema(document.KindList)
		d.applyPending(lst)
		lst.Element = d.parseSchemaType()
		d.expect(']')
		return lst

	case '@':
		d.advance(1)
		name := d.parseIdent()
		d.parseMeta(d.schemaCarrier())
		if d.peek() == '<' {
			schema := d.parseSchemaDefinition(name)
			if schema.IsAny() {
				schema.Kind = document.KindRecord
			}
			return schema
		}
		if s, ok := d.named[name]; ok {
			return s
		}
		return document.NewRecord(name)

	case '<':
		return d.parseSchemaDefinition("")

	default:
		name := d.parseIdent()
		if canonical, ok := primitiveAliases[name]; ok {
			s := document.NewPrimitive(canonical)
			d.applyPending(s)
			return s
		}
		if s, ok := d.named[name]; ok {
			return s
		}
		if name == "" {
			return document.NewSchema(document.KindAny)
		}
		// Implicit reference to a type defined later.
		return document.NewRecord(name)
	}
}
