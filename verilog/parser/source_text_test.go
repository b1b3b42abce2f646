package parser

import (
	"errors"
	"testing"
)

func TestParseSourceTextTrivia(t *testing.T) {
	src := NewSource("top.sv")
	input := "// header\n/* block\ncomment */\t\n\f"
	tree, rest, err := ParseSourceText(NewInput(input, WithSource(src), WithEndOfSource()))
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if rest.Len() != 0 {
		t.Errorf("rest = %q, want empty", rest.String())
	}

	want := []struct {
		kind   NodeKind
		line   int
		column int
	}{
		{KindOneLineComment, 1, 1},
		{KindWhiteSpace, 1, 10},
		{KindBlockComment, 2, 1},
		{KindWhiteSpace, 3, 11},
		{KindWhiteSpace, 3, 12},
		{KindWhiteSpace, 4, 1},
	}
	if len(tree.Items) != len(want) {
		t.Fatalf("got %d items, want %d:\n%s", len(tree.Items), len(want), Dump(tree, true))
	}
	for i, w := range want {
		item := tree.Items[i]
		loc := item.Location()
		if item.Kind() != w.kind || loc.Line != w.line || loc.Column != w.column {
			t.Errorf("item %d = %v at %d:%d, want %v at %d:%d", i, item.Kind(), loc.Line, loc.Column, w.kind, w.line, w.column)
		}
		if loc.Source != src {
			t.Errorf("item %d does not share the source handle", i)
		}
	}
	if tree.Loc.Head != 0 || tree.Loc.Tail != len(input) {
		t.Errorf("tree Loc = %d-%d, want 0-%d", tree.Loc.Head, tree.Loc.Tail, len(input))
	}
}

func TestParseSourceTextEmptyFile(t *testing.T) {
	tree, _, err := ParseSourceText(NewInput("", WithEndOfSource()))
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(tree.Items) != 0 {
		t.Errorf("got %d items, want 0", len(tree.Items))
	}
}

func TestParseSourceTextNeedsEndOfSource(t *testing.T) {
	for _, input := range []string{"", "  \n", "// c\n"} {
		t.Run(input, func(t *testing.T) {
			in := NewInput(input)
			_, rest, err := ParseSourceText(in)
			if _, ok := IsIncomplete(err); !ok {
				t.Fatalf("error = %v, want incomplete", err)
			}
			if rest != in {
				t.Errorf("rest = %q, want input unchanged", rest.String())
			}
		})
	}
}

func TestParseSourceTextDescriptionIsUnimplemented(t *testing.T) {
	in := NewInput("\n\n  module m;\nendmodule\n", WithSource(NewSource("m.v")), WithEndOfSource())
	_, rest, err := ParseSourceText(in)
	var unimpl *UnimplementedError
	if !errors.As(err, &unimpl) {
		t.Fatalf("error = %v, want *UnimplementedError", err)
	}
	if unimpl.Kind != KindDescription {
		t.Errorf("Kind = %v, want %v", unimpl.Kind, KindDescription)
	}
	if unimpl.Loc.Line != 3 || unimpl.Loc.Column != 3 || unimpl.Loc.Head != 4 {
		t.Errorf("Loc = %s (offset %d), want m.v:3:3 (offset 4)", unimpl.Loc, unimpl.Loc.Head)
	}
	if rest != in {
		t.Errorf("rest = %q, want input unchanged", rest.String())
	}
}

func TestParseSourceTextUnterminatedComment(t *testing.T) {
	_, _, err := ParseSourceText(NewInput("  /* never closed", WithEndOfSource()))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if perr.Kind != KindSourceText {
		t.Errorf("Kind = %v, want %v", perr.Kind, KindSourceText)
	}
	if perr.Deepest().Kind != KindBlockComment {
		t.Errorf("Deepest().Kind = %v, want %v", perr.Deepest().Kind, KindBlockComment)
	}
	if perr.Loc.Column != 3 {
		t.Errorf("Loc.Column = %d, want 3", perr.Loc.Column)
	}
}
