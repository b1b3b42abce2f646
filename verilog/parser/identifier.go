package parser

import "strings"

var ParseIdentifier = Alt(KindIdentifier,
	Map(ParseSimpleIdentifier, func(n *SimpleIdentifier) *Identifier { return &Identifier{Simple: n} }),
	Map(ParseEscapedIdentifier, func(n *EscapedIdentifier) *Identifier { return &Identifier{Escaped: n} }),
)

func ParseSimpleIdentifier(in Input) (*SimpleIdentifier, Input, error) {
	ch, ok := in.peek(0)
	if !ok {
		return nil, in, truncated(KindSimpleIdentifier, in, 1)
	}
	if !isIdentifierStart(ch) {
		return nil, in, fail(KindSimpleIdentifier, in, 0, "expected letter or underscore, got %q", ch)
	}
	n := 1
	for n < in.Len() && isIdentifierPart(in.text[n]) {
		n++
	}
	if n == in.Len() && !in.Final() {
		return nil, in, incomplete(KindSimpleIdentifier, in, 1)
	}
	loc := in.Span(n)
	body, rest := in.Advance(n)
	return &SimpleIdentifier{Body: strings.Clone(body), Loc: loc}, rest, nil
}

func ParseEscapedIdentifier(in Input) (*EscapedIdentifier, Input, error) {
	ch, ok := in.peek(0)
	if !ok {
		return nil, in, truncated(KindEscapedIdentifier, in, 1)
	}
	if ch != '\\' {
		return nil, in, fail(KindEscapedIdentifier, in, 0, "expected '\\', got %q", ch)
	}
	n := 1
	for n < in.Len() && isPrintable(in.text[n]) {
		n++
	}
	if n == in.Len() && !in.Final() {
		return nil, in, incomplete(KindEscapedIdentifier, in, 1)
	}
	if n == 1 {
		if n == in.Len() {
			return nil, in, truncated(KindEscapedIdentifier, in, 1)
		}
		return nil, in, fail(KindEscapedIdentifier, in, 1, "empty escaped identifier")
	}
	loc := in.Span(n)
	text, rest := in.Advance(n)
	return &EscapedIdentifier{Body: strings.Clone(text[1:]), Loc: loc}, rest, nil
}

func isIdentifierStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentifierPart(ch byte) bool {
	return isIdentifierStart(ch) || ch >= '0' && ch <= '9' || ch == '$'
}

// isPrintable reports printable ASCII other than space.
func isPrintable(ch byte) bool {
	return ch > ' ' && ch <= '~'
}
