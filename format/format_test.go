package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/verilox/verilog/parser"
	"github.com/dhamidi/verilox/verilog/workspace"
)

func parseFinal(t *testing.T, text string) *parser.SourceText {
	t.Helper()
	tree, _, err := parser.ParseSourceText(parser.NewInput(text, parser.WithEndOfSource()))
	require.NoError(t, err)
	return tree
}

func TestNewEncoder(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewEncoder("xml", &buf, false)
	assert.EqualError(t, err, `unknown format "xml"`)

	enc, err := NewEncoder("tree", &buf, false)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(parseFinal(t, "/**/ ")))
	assert.Equal(t, "source_text\n  block_comment\n  white_space \" \"\n", buf.String())
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(parseFinal(t, "// x\n")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "source_text", got["kind"])
	assert.Equal(t, "A.1.2 SystemVerilog source text DEF: 0", got["citation"])

	children := got["children"].([]any)
	require.Len(t, children, 2)
	comment := children[0].(map[string]any)
	assert.Equal(t, "one_line_comment", comment["kind"])
	assert.Equal(t, " x", comment["text"])
	assert.Equal(t, "A.9.2 Comments DEF: 1", comment["citation"])
	assert.Equal(t, map[string]any{"line": 1.0, "column": 1.0, "head": 0.0, "tail": 4.0}, comment["span"])
}

func TestASTJSONEncoderError(t *testing.T) {
	_, _, err := parser.ParseComment(parser.NewInput("/x"))
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).EncodeError(err))

	var got struct {
		Error struct {
			Kind         string `json:"kind"`
			Category     string `json:"category"`
			Alternatives []struct {
				Kind string `json:"kind"`
			} `json:"alternatives"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "comment", got.Error.Kind)
	assert.Equal(t, "failed", got.Error.Category)
	require.Len(t, got.Error.Alternatives, 2)
	assert.Equal(t, "one_line_comment", got.Error.Alternatives[0].Kind)
	assert.Equal(t, "block_comment", got.Error.Alternatives[1].Kind)

	buf.Reset()
	_, _, err = parser.ParseSourceText(parser.NewInput("module", parser.WithEndOfSource()))
	require.NoError(t, NewASTJSONEncoder(&buf).EncodeError(err))
	assert.Contains(t, buf.String(), `"category": "unimplemented"`)
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewLineEncoder(&buf)
	in := parser.NewInput("clk \\a+b", parser.WithEndOfSource())
	for in.Len() > 0 {
		item, rest, err := parser.ParseLexicalItem(in)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(item))
		in = rest
	}
	assert.Equal(t,
		"identifier\t1:1\t0-3\t\"clk\"\n"+
			"white_space\t1:4\t3-4\t\" \"\n"+
			"identifier\t1:5\t4-8\t\"a+b\"\n",
		buf.String())
}

func TestDiagnosticPrinter(t *testing.T) {
	content := []byte("// ok\n\t  /* open\n")
	d := workspace.Diagnostic{
		Severity: workspace.SeverityError,
		Kind:     parser.KindBlockComment,
		Loc:      parser.Location{Line: 2, Column: 4, Head: 9, Tail: len(content), Source: parser.NewSource("a.sv")},
		Message:  "block_comment: unterminated block comment",
		Citation: "A.9.2 Comments DEF: 2",
	}
	var buf bytes.Buffer
	p := NewDiagnosticPrinter(&buf, false)
	require.NoError(t, p.Print(d, content))
	assert.Equal(t,
		"a.sv:2:4: error: block_comment: unterminated block comment [A.9.2 Comments DEF: 2]\n"+
			"\t  /* open\n"+
			"\t  ^~~~~~~\n",
		buf.String())

	buf.Reset()
	require.NoError(t, p.PrintSummary(3, []workspace.Diagnostic{d, {Severity: workspace.SeverityInfo}}))
	assert.Equal(t, "3 file(s) checked: 1 error(s), 0 warning(s), 1 info\n", buf.String())
}

func TestDiagnosticPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	d := workspace.Diagnostic{Severity: workspace.SeverityInfo, Message: "description is not supported yet"}
	require.NoError(t, NewDiagnosticPrinter(&buf, true).Print(d, nil))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "no excerpt without a location")
}

func TestSetColorMode(t *testing.T) {
	assert.True(t, SetColorMode("always", nil))
	assert.False(t, SetColorMode("never", nil))
}

func TestSARIFReport(t *testing.T) {
	report := NewSARIFReport("1.2.3")
	driver := report.Runs[0].Tool.Driver
	assert.Equal(t, ToolName, driver.Name)
	assert.Equal(t, "1.2.3", driver.Version)
	assert.NotEmpty(t, driver.Rules)
	for _, r := range driver.Rules {
		assert.NotEqual(t, "letter", r.ID, "uncited helpers are not rules")
	}

	content := []byte("x\n  /* a\nb")
	report.AddDiagnostic("/work/rtl/top.sv", content, workspace.Diagnostic{
		Severity: workspace.SeverityError,
		Kind:     parser.KindBlockComment,
		Loc:      parser.Location{Line: 2, Column: 3, Head: 4, Tail: len(content)},
		Message:  "block_comment: unterminated block comment",
	})
	report.AddDiagnostic("rtl/m.v", []byte("module"), workspace.Diagnostic{
		Severity: workspace.SeverityInfo,
		Kind:     parser.KindDescription,
		Loc:      parser.Location{Line: 1, Column: 1},
	})

	results := report.Runs[0].Results
	require.Len(t, results, 2)

	r := results[0]
	assert.Equal(t, "block_comment", r.RuleID)
	assert.Equal(t, "error", r.Level)
	loc := r.Locations[0].PhysicalLocation
	assert.Equal(t, "file:///work/rtl/top.sv", loc.ArtifactLocation.URI)
	assert.Equal(t, SARIFRegion{
		StartLine: 2, StartColumn: 3, EndLine: 3, EndColumn: 2,
		Snippet: &SARIFMessage{Text: "/* a\nb"},
	}, loc.Region)

	r = results[1]
	assert.Equal(t, "description", r.RuleID)
	assert.Equal(t, "note", r.Level)
	assert.Equal(t, "rtl/m.v", r.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Nil(t, r.Locations[0].PhysicalLocation.Region.Snippet)

	data, err := report.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"$schema": "`+SARIFSchemaURI+`"`)
}
