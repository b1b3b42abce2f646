package workspace

import (
	"errors"
	"fmt"

	"github.com/dhamidi/verilox/verilog/annex"
	"github.com/dhamidi/verilox/verilog/parser"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Diagnostic is a parse failure positioned in a file.
type Diagnostic struct {
	Severity Severity
	// Kind is the most specific production that failed.
	Kind     parser.NodeKind
	Loc      parser.Location
	Message  string
	Citation string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Loc, d.Severity, d.Message)
}

// Diagnose converts a parse error into a diagnostic. Productions that are
// not implemented yet are informational; everything else is an error.
func Diagnose(err error) Diagnostic {
	var (
		perr   *parser.Error
		unimpl *parser.UnimplementedError
		inc    *parser.IncompleteError
	)
	var d Diagnostic
	switch {
	case errors.As(err, &unimpl):
		d = Diagnostic{
			Severity: SeverityInfo,
			Kind:     unimpl.Kind,
			Loc:      unimpl.Loc,
			Message:  unimpl.Kind.String() + " is not supported yet",
		}
	case errors.As(err, &perr):
		deepest := perr.Deepest()
		msg := deepest.Message
		if msg == "" && deepest.Err != nil {
			msg = deepest.Err.Error()
		}
		d = Diagnostic{
			Severity: SeverityError,
			Kind:     deepest.Kind,
			Loc:      perr.Loc,
			Message:  deepest.Kind.String() + ": " + msg,
		}
	case errors.As(err, &inc):
		d = Diagnostic{
			Severity: SeverityError,
			Kind:     inc.Kind,
			Loc:      inc.Loc,
			Message:  fmt.Sprintf("%s: input ended early", inc.Kind),
		}
	default:
		d = Diagnostic{Severity: SeverityError, Message: err.Error()}
	}
	if p, ok := annex.ForKind(d.Kind); ok {
		d.Citation = p.Citation()
	}
	return d
}

// isParseError reports whether err is about the text rather than the reader.
func isParseError(err error) bool {
	var (
		perr   *parser.Error
		unimpl *parser.UnimplementedError
	)
	_, inc := parser.IsIncomplete(err)
	return errors.As(err, &perr) || errors.As(err, &unimpl) || inc
}
