package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/verilox/verilog/annex"
	"github.com/dhamidi/verilox/verilog/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

// EncodeError writes a parse failure, including every alternative that was
// tried.
func (e *ASTJSONEncoder) EncodeError(err error) error {
	text, merr := json.MarshalIndent(map[string]*astJSONError{"error": errorToJSON(err)}, "", "  ")
	if merr != nil {
		return merr
	}
	_, werr := e.w.Write(append(text, '\n'))
	return werr
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Citation string         `json:"citation,omitempty"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Head   int `json:"head"`
	Tail   int `json:"tail"`
}

type astJSONError struct {
	Kind         string          `json:"kind,omitempty"`
	Category     string          `json:"category"`
	Message      string          `json:"message"`
	Span         *astJSONSpan    `json:"span,omitempty"`
	Alternatives []*astJSONError `json:"alternatives,omitempty"`
}

func spanToJSON(loc parser.Location) *astJSONSpan {
	if loc.Line == 0 {
		return nil
	}
	return &astJSONSpan{Line: loc.Line, Column: loc.Column, Head: loc.Head, Tail: loc.Tail}
}

func nodeToJSON(n parser.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind: n.Kind().String(),
		Span: spanToJSON(n.Location()),
		Text: n.Text(),
	}
	if p, ok := annex.ForKind(n.Kind()); ok {
		jn.Citation = p.Citation()
	}

	if children := n.Children(); len(children) > 0 {
		jn.Children = make([]*astJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}

func errorToJSON(err error) *astJSONError {
	var (
		perr   *parser.Error
		unimpl *parser.UnimplementedError
		inc    *parser.IncompleteError
	)
	switch {
	case errors.As(err, &perr):
		je := &astJSONError{
			Kind:     perr.Kind.String(),
			Category: "failed",
			Message:  perr.Error(),
			Span:     spanToJSON(perr.Loc),
		}
		for _, alt := range perr.Alternatives {
			je.Alternatives = append(je.Alternatives, errorToJSON(alt))
		}
		return je
	case errors.As(err, &unimpl):
		return &astJSONError{Kind: unimpl.Kind.String(), Category: "unimplemented", Message: unimpl.Error(), Span: spanToJSON(unimpl.Loc)}
	case errors.As(err, &inc):
		return &astJSONError{Kind: inc.Kind.String(), Category: "incomplete", Message: inc.Error(), Span: spanToJSON(inc.Loc)}
	}
	return &astJSONError{Category: "io", Message: err.Error()}
}
