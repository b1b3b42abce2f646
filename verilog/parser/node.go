package parser

import (
	"fmt"
	"strings"
)

// NodeKind enumerates the productions known to the parser. The same values
// tag nodes and the errors raised while attempting a production.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Source text
	KindSourceText
	KindDescription

	// Lexical
	KindWhiteSpace
	KindComment
	KindOneLineComment
	KindBlockComment
	KindIdentifier
	KindSimpleIdentifier
	KindEscapedIdentifier
	KindLexicalItem
)

var nodeKindNames = map[NodeKind]string{
	KindInvalid:           "invalid",
	KindSourceText:        "source_text",
	KindDescription:       "description",
	KindWhiteSpace:        "white_space",
	KindComment:           "comment",
	KindOneLineComment:    "one_line_comment",
	KindBlockComment:      "block_comment",
	KindIdentifier:        "identifier",
	KindSimpleIdentifier:  "simple_identifier",
	KindEscapedIdentifier: "escaped_identifier",
	KindLexicalItem:       "lexical_item",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() NodeKind
	Location() Location
	// Text returns the source text a leaf stands for, or "" for interior nodes.
	Text() string
	Children() []Node
}

// Dump renders n and its descendants as an indented outline.
func Dump(n Node, showPositions bool) string {
	var b strings.Builder
	dump(&b, n, 0, showPositions)
	return b.String()
}

func dump(b *strings.Builder, n Node, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind().String())
	if showPositions {
		loc := n.Location()
		fmt.Fprintf(b, " [%d:%d %d-%d]", loc.Line, loc.Column, loc.Head, loc.Tail)
	}
	if text := n.Text(); text != "" {
		fmt.Fprintf(b, " %q", text)
	}
	b.WriteString("\n")
	for _, child := range n.Children() {
		dump(b, child, indent+1, showPositions)
	}
}

// WhiteSpaceChar is the character a WhiteSpace node was parsed from.
type WhiteSpaceChar byte

const (
	Space    WhiteSpaceChar = ' '
	Tab      WhiteSpaceChar = '\t'
	Newline  WhiteSpaceChar = '\n'
	Formfeed WhiteSpaceChar = '\f'
)

func (c WhiteSpaceChar) String() string {
	switch c {
	case Space:
		return "Space"
	case Tab:
		return "Tab"
	case Newline:
		return "Newline"
	case Formfeed:
		return "Formfeed"
	}
	return "Unknown"
}

// WhiteSpace is a single white space character.
//
// A.9.4 White space DEF: 0
//
// The formal syntax lists eof as a white_space alternative, while clause 5.3
// defines white space without it and adds form feeds. End of file is not
// treated as white space here: a production that accepts an empty match at
// end of input lets a repetition over an empty file loop forever. Callers
// that reach the end of a source use Input.Final instead.
type WhiteSpace struct {
	Char WhiteSpaceChar
	Loc  Location
}

func (n *WhiteSpace) Kind() NodeKind     { return KindWhiteSpace }
func (n *WhiteSpace) Location() Location { return n.Loc }
func (n *WhiteSpace) Text() string       { return string(rune(n.Char)) }
func (n *WhiteSpace) Children() []Node   { return nil }

// SimpleIdentifier is an identifier made of letters, digits, underscores and
// dollar signs that does not start with a digit or dollar sign.
//
// A.9.3 Identifiers DEF: 70
type SimpleIdentifier struct {
	Body string
	Loc  Location
}

func (n *SimpleIdentifier) Kind() NodeKind     { return KindSimpleIdentifier }
func (n *SimpleIdentifier) Location() Location { return n.Loc }
func (n *SimpleIdentifier) Text() string       { return n.Body }
func (n *SimpleIdentifier) Children() []Node   { return nil }

// EscapedIdentifier is an identifier introduced by a backslash. Body holds
// the characters after the backslash.
//
// A.9.3 Identifiers DEF: 18
type EscapedIdentifier struct {
	Body string
	Loc  Location
}

func (n *EscapedIdentifier) Kind() NodeKind     { return KindEscapedIdentifier }
func (n *EscapedIdentifier) Location() Location { return n.Loc }
func (n *EscapedIdentifier) Text() string       { return n.Body }
func (n *EscapedIdentifier) Children() []Node   { return nil }

// Identifier is either a simple or an escaped identifier. Exactly one of the
// fields is set.
//
// A.9.3 Identifiers DEF: 35
type Identifier struct {
	Simple  *SimpleIdentifier
	Escaped *EscapedIdentifier
}

func (n *Identifier) Kind() NodeKind { return KindIdentifier }

func (n *Identifier) Location() Location {
	if n.Escaped != nil {
		return n.Escaped.Loc
	}
	return n.Simple.Loc
}

// Name returns the identifier as it is referred to, without an escape prefix.
func (n *Identifier) Name() string {
	if n.Escaped != nil {
		return n.Escaped.Body
	}
	return n.Simple.Body
}

func (n *Identifier) Text() string { return "" }

func (n *Identifier) Children() []Node {
	if n.Escaped != nil {
		return []Node{n.Escaped}
	}
	return []Node{n.Simple}
}

type CommentStyle int

const (
	LineComment CommentStyle = iota
	BlockComment
)

// Comment is a one-line or block comment. Text excludes the delimiters.
//
// A.9.2 Comments DEF: 0
// A.9.2 Comments DEF: 1
// A.9.2 Comments DEF: 2
//
// The newline ending a one-line comment is left in the input for the white
// space production.
type Comment struct {
	Style CommentStyle
	Body  string
	Loc   Location
}

func (n *Comment) Kind() NodeKind {
	if n.Style == BlockComment {
		return KindBlockComment
	}
	return KindOneLineComment
}

func (n *Comment) Location() Location { return n.Loc }
func (n *Comment) Text() string       { return n.Body }
func (n *Comment) Children() []Node   { return nil }

// SourceText is the root of a compilation unit. Items holds white space,
// comments and descriptions in source order.
//
// A.1.2 SystemVerilog source text DEF: 0
type SourceText struct {
	Items []Node
	Loc   Location
}

func (n *SourceText) Kind() NodeKind     { return KindSourceText }
func (n *SourceText) Location() Location { return n.Loc }
func (n *SourceText) Text() string       { return "" }
func (n *SourceText) Children() []Node   { return n.Items }
