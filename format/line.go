package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/verilox/verilog/parser"
)

// LineEncoder writes one tab-separated line per node: kind, position, byte
// range and quoted text. Children are not written.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(node parser.Node) ([]byte, error) {
	loc := node.Location()
	return fmt.Appendf(nil, "%s\t%d:%d\t%d-%d\t%q\n",
		node.Kind(),
		loc.Line, loc.Column,
		loc.Head, loc.Tail,
		lexeme(node),
	), nil
}

// lexeme returns the text an item stands for, descending into wrappers such
// as identifier.
func lexeme(node parser.Node) string {
	for node.Text() == "" {
		children := node.Children()
		if len(children) != 1 {
			return ""
		}
		node = children[0]
	}
	return node.Text()
}
