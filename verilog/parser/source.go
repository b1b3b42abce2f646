package parser

import "fmt"

// Source identifies where parsed text came from. One *Source is shared by
// every Location parsed from the same origin and is never modified.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Location records where a parsed fragment came from. Head and Tail are byte
// offsets into the source with Head <= Tail; Line and Column (both 1-based,
// Column counted in bytes) describe Head.
type Location struct {
	Line   int
	Column int
	Head   int
	Tail   int
	Source *Source
}

func (l Location) Len() int {
	return l.Tail - l.Head
}

func (l Location) String() string {
	if path := l.Source.Path(); path != "" {
		return fmt.Sprintf("%s:%d:%d", path, l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
