package parser

import "testing"

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindInvalid, "invalid"},
		{KindSourceText, "source_text"},
		{KindWhiteSpace, "white_space"},
		{KindEscapedIdentifier, "escaped_identifier"},
		{KindLexicalItem, "lexical_item"},
		{NodeKind(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	tree, _, err := ParseSourceText(NewInput("// hi\n", WithEndOfSource()))
	if err != nil {
		t.Fatal(err)
	}
	want := "source_text [1:1 0-6]\n" +
		"  one_line_comment [1:1 0-5] \" hi\"\n" +
		"  white_space [1:6 5-6] \"\\n\"\n"
	if got := Dump(tree, true); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}

	id, _, err := ParseIdentifier(NewInput("\\a+b", WithEndOfSource()))
	if err != nil {
		t.Fatal(err)
	}
	want = "identifier\n  escaped_identifier \"a+b\"\n"
	if got := Dump(id, false); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}
}

func TestLocationString(t *testing.T) {
	in := NewInput("a\nbc", WithSource(NewSource("x.sv")))
	_, rest := in.Advance(3)
	if got := rest.Point().String(); got != "x.sv:2:2" {
		t.Errorf("String() = %q, want %q", got, "x.sv:2:2")
	}
	if got := NewInput("").Point().String(); got != "1:1" {
		t.Errorf("String() = %q, want %q", got, "1:1")
	}
}

func TestInputAdvance(t *testing.T) {
	in := NewInput("ab\ncd\n\nef")
	consumed, rest := in.Advance(7)
	if consumed != "ab\ncd\n\n" {
		t.Errorf("consumed = %q", consumed)
	}
	if rest.Line() != 4 || rest.Column() != 1 || rest.Offset() != 7 {
		t.Errorf("cursor = %d:%d offset %d, want 4:1 offset 7", rest.Line(), rest.Column(), rest.Offset())
	}
	_, rest = rest.Advance(1)
	if rest.Column() != 2 {
		t.Errorf("Column() = %d, want 2", rest.Column())
	}
	_, rest = rest.Advance(10)
	if rest.Len() != 0 || rest.Offset() != 9 {
		t.Errorf("over-advance: Len %d Offset %d, want 0 and 9", rest.Len(), rest.Offset())
	}
	if in.Len() != 9 || in.Offset() != 0 {
		t.Error("Advance modified its receiver")
	}
}

func TestInputExtendKeepsCursor(t *testing.T) {
	_, in := NewInput("x\ny").Advance(2)
	ext := in.Extend("z").Finish()
	if ext.String() != "yz" || ext.Line() != 2 || ext.Column() != 1 || !ext.Final() {
		t.Errorf("Extend = %q at %d:%d final %v", ext.String(), ext.Line(), ext.Column(), ext.Final())
	}
	if in.Final() {
		t.Error("Finish modified its receiver")
	}
}
