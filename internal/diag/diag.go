// Package diag provides diagnostic (error/warning) types for the front end.
package diag

import (
	"fmt"

	"cminus/internal/span"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Stable diagnostic codes.
const (
	// Lexer
	CodeUnexpectedChar = "E1001"
	CodeBadNumber      = "E1002"

	// Parser
	CodeIncomplete   = "E2001" // fewer tokens remain than the rule needs
	CodeMismatch     = "E2002" // a required fixed token has the wrong kind
	CodeUnmatched    = "E2003" // no matching closing delimiter in range
	CodeAlternatives = "E2004" // every alternative of a rule failed
	CodeTooDeep      = "E2005" // nesting limit exceeded
	CodeEmptyInput   = "E2006"
	CodeEmptyStmt    = "W2001"
)

// Diagnostic represents a front-end diagnostic message.
type Diagnostic struct {
	Code     string    `json:"code"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Span     span.Span `json:"span"`
	Hint     string    `json:"hint,omitempty"`
}

// String returns a human-readable representation of the diagnostic.
func (d Diagnostic) String() string {
	prefix := d.Severity.String()
	loc := fmt.Sprintf("%d:%d", d.Span.Start.Line, d.Span.Start.Column)
	msg := fmt.Sprintf("[%s] %s at %s: %s", d.Code, prefix, loc, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Error implements the error interface so a diagnostic can travel as one.
func (d Diagnostic) Error() string {
	return d.String()
}

// Errorf creates an error diagnostic at the given span.
func Errorf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// Warningf creates a warning diagnostic at the given span.
func Warningf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// Either joins the failures of two alternatives into one diagnostic.
// The span is taken from whichever alternative got further into the
// source, along with its hint.
func Either(a, b Diagnostic) Diagnostic {
	far := a
	if after(b.Span.Start, a.Span.Start) {
		far = b
	}
	return Diagnostic{
		Code:     CodeAlternatives,
		Severity: Error,
		Message:  a.Message + " or " + b.Message,
		Span:     far.Span,
		Hint:     far.Hint,
	}
}

func after(p, q span.Position) bool {
	if p.Line != q.Line {
		return p.Line > q.Line
	}
	return p.Column > q.Column
}
