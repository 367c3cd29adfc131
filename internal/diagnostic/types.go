package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"mp-generator/internal/common"
)

// Diagnostics holds all diagnostic information from a build.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Phase names the pipeline phase that reported it (e.g. "partition").
	Phase string
	// Subject identifies the page, package, asset or route involved (if any).
	Subject string
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
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, phase, subject string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Phase:    phase,
		Subject:  subject,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, phase, subject string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Phase:       phase,
		Subject:     subject,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, phase, subject string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Phase:    phase,
		Subject:  subject,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasCode reports whether any diagnostic carries the given code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, diag := range d.All() {
		if diag.Code == code {
			return true
		}
	}

	return false
}

// All returns every diagnostic, errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic to logger, mapping severity to log level.
func (d *Diagnostics) Log(logger zerolog.Logger) {
	for _, diag := range d.All() {
		var ev *zerolog.Event

		switch diag.Severity {
		case DiagnosticError:
			ev = logger.Error()
		case DiagnosticWarning:
			ev = logger.Warn()
		default:
			ev = logger.Debug()
		}

		ev = ev.Str("code", diag.Code).Str("phase", diag.Phase)
		if diag.Subject != "" {
			ev = ev.Str("subject", diag.Subject)
		}

		if len(diag.Suggestions) > 0 {
			ev = ev.Strs("suggestions", diag.Suggestions)
		}

		ev.Msg(diag.Message)
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Phase != "" {
		prefix = append(prefix, "["+d.Phase+"]")
	}

	if d.Subject != "" {
		prefix = append(prefix, d.Subject)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
