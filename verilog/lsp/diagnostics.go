package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/verilox/verilog/workspace"
)

// Diagnostics converts workspace diagnostics into protocol diagnostics for a
// document with the given content.
func Diagnostics(content []byte, ds []workspace.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(ds))
	source := lsName
	for _, d := range ds {
		severity := severity(d.Severity)
		message := d.Message
		if d.Citation != "" {
			message += " (" + d.Citation + ")"
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: position(content, d.Loc.Head),
				End:   position(content, d.Loc.Tail),
			},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}
	return out
}

func severity(s workspace.Severity) protocol.DiagnosticSeverity {
	switch s {
	case workspace.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case workspace.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

// position converts a byte offset into a zero-based line and UTF-16
// character offset.
func position(content []byte, offset int) protocol.Position {
	offset = min(max(offset, 0), len(content))
	var line, lineStart int
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	var character int
	for rest := content[lineStart:offset]; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		if n := utf16.RuneLen(r); n > 0 {
			character += n
		} else {
			character++
		}
		rest = rest[size:]
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}
