package parser

import (
	"errors"
	"testing"
)

func TestParseComment(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
		body  string
		rest  string
	}{
		{"// hello\nx", KindOneLineComment, " hello", "\nx"},
		{"//\n", KindOneLineComment, "", "\n"},
		{"/* a\nb */ x", KindBlockComment, " a\nb ", " x"},
		{"/**/", KindBlockComment, "", ""},
		{"/* // */\n", KindBlockComment, " // ", "\n"},
		{"/* /* */ */", KindBlockComment, " /* ", " */"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, rest, err := ParseComment(NewInput(tt.input))
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if c.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", c.Kind(), tt.kind)
			}
			if c.Body != tt.body {
				t.Errorf("Body = %q, want %q", c.Body, tt.body)
			}
			if rest.String() != tt.rest {
				t.Errorf("rest = %q, want %q", rest.String(), tt.rest)
			}
		})
	}
}

func TestParseCommentIncomplete(t *testing.T) {
	tests := []struct {
		input  string
		needed int
	}{
		{"", 2},
		{"/", 1},
		{"// no newline yet", 1},
		{"/*", 2},
		{"/* body", 2},
		{"/* body *", 1},
		{"/*/", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, _, err := ParseComment(NewInput(tt.input))
			needed, ok := IsIncomplete(err)
			if !ok {
				t.Fatalf("error = %v, want incomplete", err)
			}
			if needed != tt.needed {
				t.Errorf("Needed = %d, want %d", needed, tt.needed)
			}
		})
	}
}

func TestParseCommentAtEndOfSource(t *testing.T) {
	c, rest, err := ParseComment(NewInput("// trailing", WithEndOfSource()))
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if c.Body != " trailing" || rest.Len() != 0 {
		t.Errorf("got %q rest %q", c.Body, rest.String())
	}

	in := NewInput("/* open\n", WithEndOfSource())
	_, rest, err = ParseComment(in)
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if perr.Kind != KindComment {
		t.Errorf("Kind = %v, want %v", perr.Kind, KindComment)
	}
	if deepest := perr.Deepest(); deepest.Kind != KindBlockComment {
		t.Errorf("Deepest().Kind = %v, want %v", deepest.Kind, KindBlockComment)
	}
	if perr.Progress() != in.Len() {
		t.Errorf("Progress = %d, want %d", perr.Progress(), in.Len())
	}
	if !errors.Is(err, ErrEndOfSource) {
		t.Errorf("error = %v, want ErrEndOfSource in chain", err)
	}
	if rest != in {
		t.Errorf("rest = %q, want input unchanged", rest.String())
	}
}

func TestParseCommentRejects(t *testing.T) {
	for _, input := range []string{"x", "/x", " //"} {
		t.Run(input, func(t *testing.T) {
			in := NewInput(input)
			_, rest, err := ParseComment(in)
			var perr *Error
			if !errors.As(err, &perr) || perr.Kind != KindComment {
				t.Fatalf("error = %v, want comment failure", err)
			}
			if len(perr.Alternatives) != 2 {
				t.Errorf("got %d alternatives, want 2", len(perr.Alternatives))
			}
			if rest != in {
				t.Errorf("rest = %q, want input unchanged", rest.String())
			}
		})
	}
}
