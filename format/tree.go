package format

import (
	"io"

	"github.com/dhamidi/verilox/verilog/parser"
)

// TreeEncoder writes the indented outline produced by parser.Dump.
type TreeEncoder struct {
	w             io.Writer
	showPositions bool
}

func NewTreeEncoder(w io.Writer, showPositions bool) *TreeEncoder {
	return &TreeEncoder{w: w, showPositions: showPositions}
}

func (e *TreeEncoder) Encode(node parser.Node) error {
	_, err := io.WriteString(e.w, parser.Dump(node, e.showPositions))
	return err
}
