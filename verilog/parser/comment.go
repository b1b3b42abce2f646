package parser

import "strings"

var ParseComment = Alt(KindComment, ParseOneLineComment, ParseBlockComment)

// ParseOneLineComment parses "//" up to, but not including, the next newline.
// At the end of a final input the comment ends with the source.
func ParseOneLineComment(in Input) (*Comment, Input, error) {
	if err := expectOpening(KindOneLineComment, in, '/'); err != nil {
		return nil, in, err
	}
	n := strings.IndexByte(in.text[2:], '\n')
	if n < 0 {
		if !in.Final() {
			return nil, in, incomplete(KindOneLineComment, in, 1)
		}
		n = in.Len() - 2
	}
	loc := in.Span(2 + n)
	text, rest := in.Advance(2 + n)
	return &Comment{Style: LineComment, Body: strings.Clone(text[2:]), Loc: loc}, rest, nil
}

// ParseBlockComment parses "/*" through the first "*/". Block comments do not
// nest.
func ParseBlockComment(in Input) (*Comment, Input, error) {
	if err := expectOpening(KindBlockComment, in, '*'); err != nil {
		return nil, in, err
	}
	n := strings.Index(in.text[2:], "*/")
	if n < 0 {
		needed := 2
		if in.Len() > 2 && strings.HasSuffix(in.text, "*") {
			needed = 1
		}
		if in.Final() {
			return nil, in, &Error{
				Kind:    KindBlockComment,
				Loc:     in.Span(in.Len()),
				Message: "unterminated block comment",
				Err:     ErrEndOfSource,
			}
		}
		return nil, in, incomplete(KindBlockComment, in, needed)
	}
	loc := in.Span(2 + n + 2)
	text, rest := in.Advance(2 + n + 2)
	return &Comment{Style: BlockComment, Body: strings.Clone(text[2 : 2+n]), Loc: loc}, rest, nil
}

// expectOpening checks for '/' followed by second.
func expectOpening(kind NodeKind, in Input, second byte) error {
	ch, ok := in.peek(0)
	if !ok {
		return truncated(kind, in, 2)
	}
	if ch != '/' {
		return fail(kind, in, 0, "expected '/', got %q", ch)
	}
	ch, ok = in.peek(1)
	if !ok {
		return truncated(kind, in, 1)
	}
	if ch != second {
		return fail(kind, in, 1, "expected %q after '/', got %q", second, ch)
	}
	return nil
}
