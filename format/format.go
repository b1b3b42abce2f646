// Package format renders syntax trees, lexical items and diagnostics.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/verilox/verilog/parser"
)

// Encoder writes a syntax tree.
type Encoder interface {
	Encode(node parser.Node) error
}

// NewEncoder returns the tree encoder for a format name: "tree" or "json".
func NewEncoder(name string, w io.Writer, showPositions bool) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w, showPositions), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
