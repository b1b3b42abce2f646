package annex

import (
	"strconv"

	"github.com/dhamidi/verilox/verilog/parser"
)

// Production describes one grammar production. Helper productions that have
// no Annex A definition of their own leave Section empty; productions that
// the parser does not build a node for use parser.KindInvalid.
type Production struct {
	Name    string
	Section string
	Def     int
	Kind    parser.NodeKind
}

func (p Production) Cited() bool {
	return p.Section != ""
}

// Citation returns the traceability string used in node documentation.
func (p Production) Citation() string {
	if !p.Cited() {
		return ""
	}
	return p.Section + " DEF: " + strconv.Itoa(p.Def)
}

const (
	sourceText  = "A.1.2 SystemVerilog source text"
	comments    = "A.9.2 Comments"
	identifiers = "A.9.3 Identifiers"
	whiteSpace  = "A.9.4 White space"
)

var registry = []Production{
	{Name: "source_text", Section: sourceText, Def: 0, Kind: parser.KindSourceText},
	{Name: "description", Section: sourceText, Def: 1, Kind: parser.KindDescription},
	{Name: "lexical_item", Kind: parser.KindLexicalItem},
	{Name: "comment", Section: comments, Def: 0, Kind: parser.KindComment},
	{Name: "one_line_comment", Section: comments, Def: 1, Kind: parser.KindOneLineComment},
	{Name: "block_comment", Section: comments, Def: 2, Kind: parser.KindBlockComment},
	{Name: "comment_text", Section: comments, Def: 3},
	{Name: "any_ascii_character"},
	{Name: "identifier", Section: identifiers, Def: 35, Kind: parser.KindIdentifier},
	{Name: "escaped_identifier", Section: identifiers, Def: 18, Kind: parser.KindEscapedIdentifier},
	{Name: "simple_identifier", Section: identifiers, Def: 70, Kind: parser.KindSimpleIdentifier},
	{Name: "letter"},
	{Name: "digit"},
	{Name: "printable_except_white_space"},
	{Name: "white_space", Section: whiteSpace, Def: 0, Kind: parser.KindWhiteSpace},
}

// Productions returns a copy of the registry in grammar order.
func Productions() []Production {
	return append([]Production(nil), registry...)
}

func Lookup(name string) (Production, bool) {
	for _, p := range registry {
		if p.Name == name {
			return p, true
		}
	}
	return Production{}, false
}

// ForKind returns the production a node or error kind stands for.
func ForKind(kind parser.NodeKind) (Production, bool) {
	if kind == parser.KindInvalid {
		return Production{}, false
	}
	for _, p := range registry {
		if p.Kind == kind {
			return p, true
		}
	}
	return Production{}, false
}
