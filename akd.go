// Package akd implements the Arkadia Data (AKD) format: a schema-first,
// token-efficient textual encoding intended as a denser alternative to JSON
// for passing structured data to and from language models. A document
// carries an explicit schema header followed by data rendered positionally
// or nominally, plus a metadata layer (comments, $key=value attributes,
// #tags, flags) that is first-class in the syntax but transparent to
// consumers who only want the data.
//
// The package exposes three entry points: Decode turns AKD text into a
// schema-linked document tree, Encode renders a tree (or any plain value)
// back to AKD text, and Parse exposes the plain-value builder directly.
package akd

import (
	"github.com/arkadia-data/akd/codec/decoder"
	"github.com/arkadia-data/akd/codec/document"
	"github.com/arkadia-data/akd/codec/encoder"
)

// Decode parses AKD text into a document tree. It never fails outright:
// the result carries a (possibly partial) root node together with all
// recoverable errors and warnings, and callers treat an empty error list
// as success. A nil opts decodes with defaults.
func Decode(text string, opts *decoder.Options) *decoder.Result {
	return decoder.New(text, opts).Decode()
}

// Encode renders data as AKD text. The data may be a *document.Node or any
// plain value accepted by the builder (scalars, nil, []any, *OrderedMap,
// map[string]any); plain values are converted first. A nil cfg uses
// DefaultConfig.
func Encode(data any, cfg *encoder.Config) (string, error) {
	node, err := document.Build(data)
	if err != nil {
		return "", err
	}
	c := encoder.DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return encoder.New(c).Encode(node), nil
}

// Parse converts a plain value into a document node without rendering it.
func Parse(value any) (*document.Node, error) {
	return document.Build(value)
}
