package format

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/dhamidi/verilox/verilog/annex"
	"github.com/dhamidi/verilox/verilog/workspace"
)

// SARIF 2.1.0 constants
const (
	SARIFSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	SARIFVersion   = "2.1.0"
	ToolName       = "verilox"
	toolInfoURI    = "https://github.com/dhamidi/verilox"
)

type SARIFReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []SARIFRule `json:"rules,omitempty"`
}

// SARIFRule is one grammar production. Results refer to the production
// that failed.
type SARIFRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SARIFMessage `json:"shortDescription"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine   int           `json:"startLine"`
	StartColumn int           `json:"startColumn"`
	EndLine     int           `json:"endLine"`
	EndColumn   int           `json:"endColumn"`
	Snippet     *SARIFMessage `json:"snippet,omitempty"`
}

// NewSARIFReport creates a report whose rules are the cited Annex A
// productions.
func NewSARIFReport(version string) *SARIFReport {
	driver := SARIFDriver{
		Name:           ToolName,
		Version:        version,
		InformationURI: toolInfoURI,
	}
	for _, p := range annex.Productions() {
		if !p.Cited() {
			continue
		}
		driver.Rules = append(driver.Rules, SARIFRule{
			ID:               p.Name,
			Name:             p.Name,
			ShortDescription: SARIFMessage{Text: p.Citation()},
		})
	}
	return &SARIFReport{
		Schema:  SARIFSchemaURI,
		Version: SARIFVersion,
		Runs: []SARIFRun{{
			Tool:    SARIFTool{Driver: driver},
			Results: []SARIFResult{},
		}},
	}
}

// AddDiagnostic records d for the file at path whose text is content.
func (r *SARIFReport) AddDiagnostic(path string, content []byte, d workspace.Diagnostic) {
	ruleID := "io"
	if p, ok := annex.ForKind(d.Kind); ok {
		ruleID = p.Name
	}

	region := SARIFRegion{StartLine: max(d.Loc.Line, 1), StartColumn: max(d.Loc.Column, 1)}
	region.EndLine, region.EndColumn = endOf(content, d)
	if d.Loc.Tail > d.Loc.Head && d.Loc.Tail <= len(content) {
		region.Snippet = &SARIFMessage{Text: string(content[d.Loc.Head:d.Loc.Tail])}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, SARIFResult{
		RuleID:  ruleID,
		Level:   sarifLevel(d.Severity),
		Message: SARIFMessage{Text: d.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: fileURI(path)},
				Region:           region,
			},
		}},
	})
}

func (r *SARIFReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func sarifLevel(s workspace.Severity) string {
	switch s {
	case workspace.SeverityWarning:
		return "warning"
	case workspace.SeverityInfo:
		return "note"
	}
	return "error"
}

// endOf returns the 1-based line and exclusive column of the end of d.
func endOf(content []byte, d workspace.Diagnostic) (int, int) {
	line, col := max(d.Loc.Line, 1), max(d.Loc.Column, 1)
	tail := min(d.Loc.Tail, len(content))
	for i := d.Loc.Head; i < tail; i++ {
		if content[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// fileURI converts a file path to SARIF URI format. Absolute paths get a
// file:// prefix, relative paths stay as they are.
func fileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
