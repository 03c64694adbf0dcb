package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Diagnostic codes.
const (
	CodeFilterFallback      = "filter-fallback"
	CodeAssignmentIgnored   = "assignment-ignored"
	CodeInstantiationFailed = "instantiation-failed"
	CodeUnusedSelector      = "unused-selector"
	CodeCycleDetected       = "cycle-detected"
	CodeMaxDepthExceeded    = "max-depth-exceeded"
)

// Diagnostics holds all diagnostic information from one request.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code    string
	Message string
	// Signature of the node the event relates to (if any).
	Signature string
	// Path of the node the event relates to (if any).
	Path string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

func (d *Diagnostics) add(severity DiagnosticSeverity, code, message, signature, path string) {
	diag := Diagnostic{
		Severity:  severity,
		Code:      code,
		Message:   message,
		Signature: signature,
		Path:      path,
	}

	switch severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, signature, path string) {
	d.add(DiagnosticError, code, message, signature, path)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, signature, path string) {
	d.add(DiagnosticWarning, code, message, signature, path)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, signature, path string) {
	d.add(DiagnosticInfo, code, message, signature, path)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// ByCode returns the diagnostics with the given code.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic
	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns the error diagnostics combined, or nil if valid.
func (d *Diagnostics) Error() error {
	var err error
	for _, e := range d.Errors {
		err = multierr.Append(err, errors.New(e.String()))
	}

	return err
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Signature != "" {
		prefix = append(prefix, "["+d.Signature+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
