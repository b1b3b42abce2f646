package parser

var parseTrivia = Alt(KindSourceText, AsNode(ParseWhiteSpace), AsNode(ParseComment))

// ParseLexicalItem parses one white space character, comment or identifier.
var ParseLexicalItem = Alt(KindLexicalItem,
	AsNode(ParseWhiteSpace),
	AsNode(ParseComment),
	AsNode(ParseIdentifier),
)

// ParseDescription stands in for the description production.
//
// A.1.2 SystemVerilog source text DEF: 1
func ParseDescription(in Input) (Node, Input, error) {
	return nil, in, &UnimplementedError{Kind: KindDescription, Loc: in.Point()}
}

// ParseSourceText parses a whole compilation unit. On a non-final input it
// asks for more bytes once the input is exhausted, since more descriptions
// may follow.
func ParseSourceText(in Input) (*SourceText, Input, error) {
	start := in
	var items []Node
	for in.Len() > 0 {
		item, rest, err := parseSourceTextItem(in)
		if err != nil {
			return nil, start, err
		}
		items = append(items, item)
		in = rest
	}
	if !in.Final() {
		return nil, start, incomplete(KindSourceText, in, 1)
	}
	return newSourceText(start, in, items), in, nil
}

func newSourceText(start, end Input, items []Node) *SourceText {
	loc := start.Point()
	loc.Tail = end.Offset()
	return &SourceText{Items: items, Loc: loc}
}

// parseSourceTextItem parses the next white space, comment or description.
// Input that cannot begin trivia is handed to the description production
// unless a comment was recognizably started.
func parseSourceTextItem(in Input) (Node, Input, error) {
	item, rest, err := parseTrivia(in)
	if err == nil {
		return item, rest, nil
	}
	if perr, ok := err.(*Error); ok && perr.Progress() == 0 {
		return ParseDescription(in)
	}
	return nil, in, err
}
