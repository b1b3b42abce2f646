package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEndOfSource is the cause of failures at the end of a final input.
var ErrEndOfSource = errors.New("unexpected end of source")

// Error reports that the input cannot begin an instance of Kind. Nothing was
// consumed; Loc starts at the attempted position and spans the bytes that
// were examined before the failure was certain.
type Error struct {
	Kind    NodeKind
	Loc     Location
	Message string

	// Err is the failure that caused this one, if any. For an ordered choice
	// it is the alternative that progressed furthest.
	Err error

	// Alternatives holds every failed branch of an ordered choice, in the
	// order they were tried.
	Alternatives []*Error
}

func (e *Error) Error() string {
	return e.Loc.String() + ": " + e.describe()
}

func (e *Error) describe() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		var cause *Error
		if errors.As(e.Err, &cause) {
			b.WriteString(cause.describe())
		} else {
			b.WriteString(e.Err.Error())
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Progress returns how many bytes past the attempted position were examined.
func (e *Error) Progress() int {
	return e.Loc.Len()
}

// Deepest follows the chain of causes to the most specific failure.
func (e *Error) Deepest() *Error {
	deepest := e
	for {
		var cause *Error
		if deepest.Err == nil || !errors.As(deepest.Err, &cause) {
			return deepest
		}
		deepest = cause
	}
}

// IncompleteError reports that the input ended inside a possible match.
// Needed is a lower bound on the number of additional bytes required.
type IncompleteError struct {
	Kind   NodeKind
	Needed int
	Loc    Location
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s: incomplete input, need at least %d more byte(s)", e.Loc, e.Kind, e.Needed)
}

// UnimplementedError reports a production whose grammar body does not exist
// yet. It never means the input is malformed.
type UnimplementedError struct {
	Kind NodeKind
	Loc  Location
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s: %s: production not implemented", e.Loc, e.Kind)
}

// IsIncomplete reports whether err asks for more input, and how much.
func IsIncomplete(err error) (int, bool) {
	var inc *IncompleteError
	if errors.As(err, &inc) {
		return inc.Needed, true
	}
	return 0, false
}

func IsUnimplemented(err error) bool {
	var unimpl *UnimplementedError
	return errors.As(err, &unimpl)
}

func fail(kind NodeKind, in Input, progress int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Loc:     in.Span(progress),
		Message: fmt.Sprintf(format, args...),
	}
}

func incomplete(kind NodeKind, in Input, needed int) *IncompleteError {
	return &IncompleteError{Kind: kind, Needed: needed, Loc: in.Span(in.Len())}
}

// truncated reports a match cut off by the end of the input: a request for
// more bytes, or a failure if the input is final.
func truncated(kind NodeKind, in Input, needed int) error {
	if in.Final() {
		return &Error{Kind: kind, Loc: in.Span(in.Len()), Err: ErrEndOfSource}
	}
	return incomplete(kind, in, needed)
}
