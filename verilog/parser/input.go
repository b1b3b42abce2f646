package parser

import "strings"

type InputOption func(*Input)

func WithSource(src *Source) InputOption {
	return func(in *Input) {
		in.source = src
	}
}

// WithEndOfSource marks the input as the complete remainder of its source.
// Productions treat the end of such an input as a hard stop instead of
// asking for more bytes.
func WithEndOfSource() InputOption {
	return func(in *Input) {
		in.final = true
	}
}

// Input is an immutable view of the unconsumed part of a source. Copies are
// cheap and independent; advancing returns a new Input.
type Input struct {
	text      string
	offset    int
	line      int
	lineStart int
	source    *Source
	final     bool
}

func NewInput(text string, opts ...InputOption) Input {
	in := Input{text: text, line: 1}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

func (in Input) String() string {
	return in.text
}

func (in Input) Len() int {
	return len(in.text)
}

func (in Input) Offset() int {
	return in.offset
}

func (in Input) Line() int {
	return in.line
}

func (in Input) Column() int {
	return in.offset - in.lineStart + 1
}

func (in Input) Source() *Source {
	return in.source
}

// Final reports whether no bytes can follow the end of this input.
func (in Input) Final() bool {
	return in.final
}

func (in Input) peek(i int) (byte, bool) {
	if i >= len(in.text) {
		return 0, false
	}
	return in.text[i], true
}

// Span returns the location of the next n bytes.
func (in Input) Span(n int) Location {
	if n > len(in.text) {
		n = len(in.text)
	}
	return Location{
		Line:   in.line,
		Column: in.Column(),
		Head:   in.offset,
		Tail:   in.offset + n,
		Source: in.source,
	}
}

// Point returns the zero-width location of the cursor.
func (in Input) Point() Location {
	return in.Span(0)
}

// Advance splits off the first n bytes, returning them and the remainder
// with the cursor moved past every consumed newline.
func (in Input) Advance(n int) (string, Input) {
	if n > len(in.text) {
		n = len(in.text)
	}
	consumed := in.text[:n]
	rest := in
	rest.text = in.text[n:]
	rest.offset = in.offset + n
	if nl := strings.Count(consumed, "\n"); nl > 0 {
		rest.line = in.line + nl
		rest.lineStart = in.offset + strings.LastIndexByte(consumed, '\n') + 1
	}
	return consumed, rest
}

// Extend returns the same cursor over the current text followed by more.
func (in Input) Extend(more string) Input {
	in.text += more
	return in
}

// Finish returns the same view marked as the end of its source.
func (in Input) Finish() Input {
	in.final = true
	return in
}
