package decoder

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/arkadia-data/akd/codec/document"
)

// parseMeta consumes whitespace, comments, metadata blocks, and inline
// modifiers in front of (or behind) an object. Delimited // ... // blocks
// apply directly to obj — the enclosing container — while comments and
// inline modifiers accumulate on the pending buffer and attach to the next
// created object. This split is what makes block metadata inside a
// container belong to the container and prefix metadata belong to the next
// child.
func (d *Decoder) parseMeta(obj document.MetaCarrier) {
	for !d.eof() {
		d.skipWhitespace()

		ch, next := d.peek(), d.peekNext()

		if ch == '/' && next == '*' {
			d.pending.Comments = append(d.pending.Comments, d.parseCommentBlock())
			continue
		}
		if ch == '/' && next != '*' {
			d.parseMetaBlock(obj)
			continue
		}
		if ch == '$' || ch == '#' || ch == '!' {
			d.parseInlineModifier()
			continue
		}
		break
	}
}

// parseCommentBlock consumes a /* ... */ block, handling nesting and the
// backslash escape, and returns the trimmed content.
func (d *Decoder) parseCommentBlock() string {
	d.advance(2)

	nesting := 1
	var sb strings.Builder

	for !d.eof() && nesting > 0 {
		ch := d.peek()

		if ch == '\\' {
			d.advance(1)
			if !d.eof() {
				sb.WriteRune(d.next())
			}
			continue
		}
		if ch == '/' && d.peekNext() == '*' {
			nesting++
			d.advance(2)
			sb.WriteString("/*")
			continue
		}
		if ch == '*' && d.peekNext() == '/' {
			nesting--
			d.advance(2)
			if nesting > 0 {
				sb.WriteString("*/")
			}
			continue
		}
		sb.WriteRune(ch)
		d.advance(1)
	}

	if nesting > 0 {
		d.addError("Unterminated comment")
	}
	return strings.TrimSpace(sb.String())
}

// parseMetaBlock parses a delimited metadata block. The canonical delimiter
// is // ... //; the legacy single-slash form / ... / is still accepted, the
// opener deciding which closer is expected. The collected metadata applies
// to obj when present, otherwise it falls back to the pending buffer with a
// warning.
func (d *Decoder) parseMetaBlock(obj document.MetaCarrier) *document.MetaInfo {
	d.expect('/')
	double := false
	if d.peek() == '/' {
		d.advance(1)
		double = true
	}

	meta := document.NewMetaInfo()
	for !d.eof() {
		d.skipWhitespace()

		ch, next := d.peek(), d.peekNext()

		if ch == '/' && next == '*' {
			meta.Comments = append(meta.Comments, d.parseCommentBlock())
			continue
		}
		if ch == '/' {
			if !double {
				d.advance(1)
				break
			}
			if next == '/' {
				d.advance(2)
				break
			}
		}
		if ch == '$' {
			d.parseMetaAttribute(meta)
			continue
		}
		if ch == '#' {
			d.parseMetaTag(meta)
			continue
		}
		if ch == '!' {
			d.parseMetaFlag(meta)
			continue
		}

		// Implicit attribute: key=value without the $ prefix. Accepted
		// with a style warning.
		if isIdentStart(ch) {
			key := d.parseIdent()
			var val any = true
			d.skipWhitespace()
			if d.peek() == '=' {
				d.advance(1)
				val = d.parsePrimitiveValue()
			}
			d.addWarning(fmt.Sprintf("Implicit attribute '%s'. Use '$%s' instead.", key, key))
			meta.Attrs.Set(key, val)
			continue
		}

		d.addError(fmt.Sprintf("Unexpected token in meta block: %c", ch))
		d.advance(1)
	}

	if obj != nil {
		obj.ApplyMeta(meta)
	} else {
		d.addWarning(fmt.Sprintf("There is no parent to add the meta block '%s'", meta))
		d.pending.Apply(meta)
	}
	return meta
}

// parseInlineModifier dispatches a stray $attr, #tag, or !flag outside a
// metadata block into the pending buffer.
func (d *Decoder) parseInlineModifier() {
	switch d.peek() {
	case '$':
		d.parseMetaAttribute(d.pending)
	case '#':
		d.parseMetaTag(d.pending)
	case '!':
		d.parseMetaFlag(d.pending)
	default:
		d.advance(1)
	}
}

// parseMetaAttribute parses $key or $key=value. $required (valueless or
// =true) is the attribute spelling of the required constraint and sets the
// flag instead of an attribute entry.
func (d *Decoder) parseMetaAttribute(meta *document.MetaInfo) {
	d.advance(1)
	key := d.parseIdent()

	var val any = true
	d.skipWhitespace()
	if d.peek() == '=' {
		d.advance(1)
		val = d.parsePrimitiveValue()
	}

	if key == "required" {
		if b, ok := val.(bool); ok && b {
			meta.Required = true
			return
		}
	}
	meta.Attrs.Set(key, val)
	d.log.Debug("meta attribute", zap.String("key", key))
}

// parseMetaTag parses #tag.
func (d *Decoder) parseMetaTag(meta *document.MetaInfo) {
	d.advance(1)
	tag := d.parseIdent()
	meta.Tags = append(meta.Tags, tag)
}

// parseMetaFlag parses !flag. !required is the only recognized flag.
func (d *Decoder) parseMetaFlag(meta *document.MetaInfo) {
	d.advance(1)
	flag := d.parseIdent()
	if flag == "required" {
		meta.Required = true
		return
	}
	d.addWarning("Unknown flag: !" + flag)
}

// parsePrimitiveValue reads a bare scalar (used for attribute values)
// without creating a node.
func (d *Decoder) parsePrimitiveValue() any {
	if d.eof() {
		return nil
	}
	ch := d.peek()
	if ch == '"' {
		return d.readQuotedString()
	}
	if unicode.IsDigit(ch) || ch == '-' {
		return d.readNumber()
	}
	switch raw := d.parseIdent(); raw {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	default:
		return raw
	}
}
