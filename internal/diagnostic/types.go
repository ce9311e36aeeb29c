package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes of the diagnostics produced by mapkit.
const (
	CodeDuplicateKey  = "duplicate-key"
	CodeEmptyDocument = "empty-document"
	CodeIgnoredKey    = "ignored-key"
	CodeMissingPath   = "missing-path"
	CodeNotMapping    = "not-mapping"
)

// Diagnostics holds every finding gathered while processing documents.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Source names the document this relates to (if any).
	Source string
	// Path is the key path this relates to (if any).
	Path string
	// Suggestions are keys the user may have meant.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Add appends diag to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, source, path string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Source: source, Path: path})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, source, path string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Source: source, Path: path})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, source, path string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Source: source, Path: path})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if there
// are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string, e.g.
// "base.yaml server.port: [missing-path] key not found (did you mean: ports)".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Source != "" {
		prefix = append(prefix, d.Source)
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
