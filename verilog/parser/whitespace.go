package parser

func ParseWhiteSpace(in Input) (*WhiteSpace, Input, error) {
	ch, ok := in.peek(0)
	if !ok {
		return nil, in, truncated(KindWhiteSpace, in, 1)
	}
	switch c := WhiteSpaceChar(ch); c {
	case Space, Tab, Newline, Formfeed:
		node := &WhiteSpace{Char: c, Loc: in.Span(1)}
		_, rest := in.Advance(1)
		return node, rest, nil
	}
	return nil, in, fail(KindWhiteSpace, in, 0, "expected space, tab, newline or form feed, got %q", ch)
}
