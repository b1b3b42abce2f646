package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dhamidi/verilox/verilog/workspace"
)

// SetColorMode applies a --color setting of "always", "never" or "auto".
// In auto mode color is used only when out is a terminal and NO_COLOR is
// unset. It reports whether color is enabled.
func SetColorMode(mode string, out *os.File) bool {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(out.Fd())) || os.Getenv("NO_COLOR") != ""
	}
	return !color.NoColor
}

type styles struct {
	location *color.Color
	err      *color.Color
	warning  *color.Color
	info     *color.Color
	citation *color.Color
	marker   *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.Bold),
		err:      color.New(color.Bold, color.FgHiRed),
		warning:  color.New(color.Bold, color.FgYellow),
		info:     color.New(color.Bold, color.FgHiBlue),
		citation: color.New(color.FgHiBlack),
		marker:   color.New(color.FgHiGreen),
	}
	for _, c := range []*color.Color{s.location, s.err, s.warning, s.info, s.citation, s.marker} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *styles) severity(sev workspace.Severity) *color.Color {
	switch sev {
	case workspace.SeverityWarning:
		return s.warning
	case workspace.SeverityInfo:
		return s.info
	}
	return s.err
}

// DiagnosticPrinter writes diagnostics in the conventional
// "file:line:col: severity: message" form followed by the offending source
// line and a marker under the failing range.
type DiagnosticPrinter struct {
	w io.Writer
	s *styles
}

func NewDiagnosticPrinter(w io.Writer, colored bool) *DiagnosticPrinter {
	return &DiagnosticPrinter{w: w, s: newStyles(colored)}
}

func (p *DiagnosticPrinter) Print(d workspace.Diagnostic, content []byte) error {
	var b strings.Builder
	b.WriteString(p.s.location.Sprint(d.Loc.String() + ":"))
	b.WriteString(" ")
	b.WriteString(p.s.severity(d.Severity).Sprint(d.Severity.String() + ":"))
	b.WriteString(" ")
	b.WriteString(d.Message)
	if d.Citation != "" {
		b.WriteString(" ")
		b.WriteString(p.s.citation.Sprint("[" + d.Citation + "]"))
	}
	b.WriteString("\n")

	if line, ok := excerpt(content, d); ok {
		b.WriteString(line.text)
		b.WriteString("\n")
		b.WriteString(line.pad)
		b.WriteString(p.s.marker.Sprint("^" + strings.Repeat("~", line.width-1)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// PrintSummary writes the number of files and diagnostics by severity.
func (p *DiagnosticPrinter) PrintSummary(files int, ds []workspace.Diagnostic) error {
	counts := map[workspace.Severity]int{}
	for _, d := range ds {
		counts[d.Severity]++
	}
	_, err := fmt.Fprintf(p.w, "%d file(s) checked: %s, %s, %s\n", files,
		p.s.err.Sprintf("%d error(s)", counts[workspace.SeverityError]),
		p.s.warning.Sprintf("%d warning(s)", counts[workspace.SeverityWarning]),
		p.s.info.Sprintf("%d info", counts[workspace.SeverityInfo]),
	)
	return err
}

type sourceLine struct {
	text  string
	pad   string
	width int
}

func excerpt(content []byte, d workspace.Diagnostic) (sourceLine, bool) {
	head := d.Loc.Head
	if d.Loc.Line == 0 || head > len(content) {
		return sourceLine{}, false
	}
	start := head - (d.Loc.Column - 1)
	if start < 0 {
		return sourceLine{}, false
	}
	end := len(content)
	if i := bytes.IndexByte(content[start:], '\n'); i >= 0 {
		end = start + i
	}

	pad := bytes.Clone(content[start:head])
	for i, ch := range pad {
		if ch != '\t' {
			pad[i] = ' '
		}
	}
	width := min(d.Loc.Tail, end) - head
	return sourceLine{
		text:  string(content[start:end]),
		pad:   string(pad),
		width: max(width, 1),
	}, true
}
