package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats a report for output.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiReset  = "\x1b[0m"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	useColor bool
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(useColor bool) *TextFormatter {
	return &TextFormatter{useColor: useColor}
}

// Format writes issues grouped by content set and version, then a summary.
func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	p := &printer{w: w}
	scope := ""
	for _, issue := range r.Issues {
		if s := scopeOf(issue); s != scope {
			if scope != "" {
				p.println()
			}
			p.printf("%s\n", s)
			scope = s
		}
		f.formatIssue(p, issue)
	}
	if len(r.Issues) > 0 {
		p.println()
	}

	p.println(strings.Repeat("━", 60))
	p.printf("Checked %d content set%s, %d version%s, %d document%s\n",
		r.Sets, pluralize(r.Sets), r.Versions, pluralize(r.Versions), r.Documents, pluralize(r.Documents))
	if n := r.ErrorCount(); n > 0 {
		p.printf("  %d error%s (fails the build)\n", n, pluralize(n))
	}
	if n := r.WarningCount(); n > 0 {
		p.printf("  %d warning%s\n", n, pluralize(n))
	}
	switch {
	case r.HasErrors():
		p.println("Navigation has errors.")
	case r.HasWarnings():
		p.println("Navigation is valid with warnings.")
	default:
		p.println("Navigation is valid.")
	}
	return p.err
}

func (f *TextFormatter) formatIssue(p *printer, issue Issue) {
	var icon, color string
	switch issue.Severity {
	case SeverityError:
		icon, color = "✗", ansiRed
	case SeverityWarning:
		icon, color = "⚠", ansiYellow
	default:
		icon, color = "ℹ", ansiBlue
	}
	if f.useColor {
		icon = color + icon + ansiReset
	}
	where := issue.Location
	if where == "" {
		where = issue.File
	}
	if where != "" {
		p.printf("  %s %s [%s] %s\n", icon, where, issue.Rule, issue.Message)
	} else {
		p.printf("  %s [%s] %s\n", icon, issue.Rule, issue.Message)
	}
	if issue.Fix != "" {
		p.printf("      Fix: %s\n", issue.Fix)
	}
}

func scopeOf(issue Issue) string {
	switch {
	case issue.ContentSet == "":
		return "site"
	case issue.Version == "":
		return issue.ContentSet
	default:
		return issue.ContentSet + "@" + issue.Version
	}
}

// printer remembers the first write error so formatting code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, args...)
	}
}

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput is the JSON document written by JSONFormatter.
type JSONOutput struct {
	Sets         int         `json:"sets"`
	Versions     int         `json:"versions"`
	Documents    int         `json:"documents"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue is one issue in JSON output.
type JSONIssue struct {
	Severity   string `json:"severity"`
	Rule       string `json:"rule"`
	ContentSet string `json:"content_set,omitempty"`
	Version    string `json:"version,omitempty"`
	Sidebar    string `json:"sidebar,omitempty"`
	DocID      string `json:"doc_id,omitempty"`
	Location   string `json:"location,omitempty"`
	File       string `json:"file,omitempty"`
	Message    string `json:"message"`
	Fix        string `json:"fix,omitempty"`
}

// Format writes r as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	out := JSONOutput{
		Sets:         r.Sets,
		Versions:     r.Versions,
		Documents:    r.Documents,
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(r.Issues)),
	}
	for _, issue := range r.Issues {
		out.Issues = append(out.Issues, JSONIssue{
			Severity:   strings.ToLower(issue.Severity.String()),
			Rule:       issue.Rule,
			ContentSet: issue.ContentSet,
			Version:    issue.Version,
			Sidebar:    issue.Sidebar,
			DocID:      issue.DocID,
			Location:   issue.Location,
			File:       issue.File,
			Message:    issue.Message,
			Fix:        issue.Fix,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// NewFormatter returns the formatter for format ("json" or text).
func NewFormatter(format string, useColor bool) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter(useColor)
	}
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
