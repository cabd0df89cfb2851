package document

import (
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

// ANSI codes for JSON token colorisation, matching the encoder's palette.
const (
	jsonReset  = "\033[0m"
	jsonString = "\033[92m"
	jsonNumber = "\033[94m"
	jsonBool   = "\033[95m"
	jsonNull   = "\033[90m"
	jsonKey    = "\033[93m"
)

var jsonTokenRE = regexp.MustCompile(`(".*?"\s*:)|(".*?")|\b(true|false|null)\b|(-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)

// JSON renders the node as a JSON string with the given indent width.
// When colorize is set, tokens are wrapped with ANSI escapes: keys yellow,
// strings green, numbers blue, booleans magenta, null gray. Record keys
// keep schema field order.
func (n *Node) JSON(indent int, colorize bool) string {
	var sb strings.Builder
	writeJSONValue(&sb, n.Plain(), indent, 0)
	out := sb.String()
	if !colorize {
		return out
	}
	return jsonTokenRE.ReplaceAllStringFunc(out, colorizeJSONToken)
}

func colorizeJSONToken(tok string) string {
	switch {
	case strings.HasSuffix(strings.TrimSpace(tok), ":"):
		return jsonKey + tok + jsonReset
	case strings.HasPrefix(tok, `"`):
		return jsonString + tok + jsonReset
	case tok == "true" || tok == "false":
		return jsonBool + tok + jsonReset
	case tok == "null":
		return jsonNull + tok + jsonReset
	default:
		return jsonNumber + tok + jsonReset
	}
}

func writeJSONValue(sb *strings.Builder, v any, indent, depth int) {
	switch val := v.(type) {
	case *OrderedMap:
		if val.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{")
		for i, k := range val.Keys() {
			if i > 0 {
				sb.WriteString(jsonItemSep(indent))
			}
			writeJSONIndent(sb, indent, depth+1)
			writeJSONScalar(sb, k)
			sb.WriteString(": ")
			child, _ := val.Get(k)
			writeJSONValue(sb, child, indent, depth+1)
		}
		writeJSONIndent(sb, indent, depth)
		sb.WriteString("}")
	case []any:
		if len(val) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[")
		for i, item := range val {
			if i > 0 {
				sb.WriteString(jsonItemSep(indent))
			}
			writeJSONIndent(sb, indent, depth+1)
			writeJSONValue(sb, item, indent, depth+1)
		}
		writeJSONIndent(sb, indent, depth)
		sb.WriteString("]")
	default:
		writeJSONScalar(sb, val)
	}
}

func jsonItemSep(indent int) string {
	if indent > 0 {
		return ","
	}
	return ", "
}

func writeJSONIndent(sb *strings.Builder, indent, depth int) {
	if indent <= 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", indent*depth))
}

func writeJSONScalar(sb *strings.Builder, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		sb.WriteString("null")
		return
	}
	sb.Write(b)
}
