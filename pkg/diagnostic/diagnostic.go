// Package diagnostic turns the scanner's tolerated issues into
// severity-tagged diagnostics with line/column ranges, plus formatters for
// the output shapes editors want.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/walteh/golivehtml/pkg/position"
	"github.com/walteh/golivehtml/pkg/scanner"
	"gitlab.com/tozd/go/errors"
)

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity string

const (
	Error   DiagnosticSeverity = "error"
	Warning DiagnosticSeverity = "warning"
)

// Diagnostic is a single diagnostic message anchored to a document range.
type Diagnostic struct {
	Message  string
	Range    position.Range
	Severity DiagnosticSeverity
}

// Diagnostics groups a document's diagnostics by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Empty reports whether there is nothing to show.
func (d *Diagnostics) Empty() bool {
	return len(d.Errors) == 0 && len(d.Warnings) == 0
}

// FromScan converts scan issues for text into diagnostics. Unmatched close
// tags are errors (the tag was dropped entirely); unclosed tags are warnings
// (the scanner bounded them with a synthetic closure).
func FromScan(text string, issues []scanner.Issue) *Diagnostics {
	diagnostics := &Diagnostics{
		Errors:   make([]Diagnostic, 0),
		Warnings: make([]Diagnostic, 0),
	}

	for _, issue := range issues {
		switch issue.Kind {
		case scanner.IssueUnmatchedClose:
			pos := position.NewBasicPosition("</"+issue.Name+">", issue.Offset)
			diagnostics.Errors = append(diagnostics.Errors, Diagnostic{
				Message:  fmt.Sprintf("Close tag </%s> has no matching open tag", issue.Name),
				Range:    pos.GetRange(text),
				Severity: Error,
			})
		case scanner.IssueUnclosedTag:
			pos := position.NewBasicPosition("<"+issue.Name, issue.Offset)
			diagnostics.Warnings = append(diagnostics.Warnings, Diagnostic{
				Message:  fmt.Sprintf("Tag <%s> is never closed", issue.Name),
				Range:    pos.GetRange(text),
				Severity: Warning,
			})
		}
	}

	return diagnostics
}

// Formatter formats diagnostics into a specific output shape.
type Formatter interface {
	Format(diagnostics *Diagnostics) ([]byte, error)
}

// NewFormatter returns the formatter for a named format: "vscode", "json",
// or "text".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "vscode", "json":
		return &VSCodeFormatter{}, nil
	case "text":
		return &TextFormatter{}, nil
	}
	return nil, errors.Errorf("unknown diagnostics format %q", format)
}

// VSCodeFormatter emits the JSON shape VSCode's problem matcher consumes:
// numeric severities and zero-based positions.
type VSCodeFormatter struct{}

func (f *VSCodeFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	type vsPlace struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	}
	type vsRange struct {
		Start vsPlace `json:"start"`
		End   vsPlace `json:"end"`
	}
	type vsDiagnostic struct {
		Severity int     `json:"severity"`
		Message  string  `json:"message"`
		Range    vsRange `json:"range"`
	}

	convert := func(d Diagnostic, severity int) vsDiagnostic {
		return vsDiagnostic{
			Severity: severity,
			Message:  d.Message,
			Range: vsRange{
				Start: vsPlace{Line: d.Range.Start.Line, Character: d.Range.Start.Character},
				End:   vsPlace{Line: d.Range.End.Line, Character: d.Range.End.Character},
			},
		}
	}

	result := make([]vsDiagnostic, 0, len(diagnostics.Errors)+len(diagnostics.Warnings))
	for _, d := range diagnostics.Errors {
		result = append(result, convert(d, 1))
	}
	for _, d := range diagnostics.Warnings {
		result = append(result, convert(d, 2))
	}

	return json.Marshal(result)
}

// TextFormatter emits one human-readable line per diagnostic with one-based
// line:column locations.
type TextFormatter struct{}

func (f *TextFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	var sb strings.Builder
	write := func(d Diagnostic) {
		fmt.Fprintf(&sb, "%s %d:%d %s\n",
			d.Severity, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Message)
	}
	for _, d := range diagnostics.Errors {
		write(d)
	}
	for _, d := range diagnostics.Warnings {
		write(d)
	}

	return []byte(sb.String()), nil
}
