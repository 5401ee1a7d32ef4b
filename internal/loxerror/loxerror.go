// Package loxerror carries the two error taxonomies of the interpreter
// pipeline: accumulated syntax/resolution diagnostics, and the single
// runtime error that aborts an evaluation.
package loxerror

import (
	"fmt"

	"lox/internal/token"
)

// Diagnostic is a single scan/parse/resolve error.
type Diagnostic struct {
	Line    int
	Where   string // "" for scanner errors, " at end", or " at 'lexeme'"
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter accumulates diagnostics across a scan/parse/resolve run and
// tracks the two process-wide flags the driver needs to pick an exit
// code. A Reporter is threaded explicitly through the pipeline rather
// than kept as package state, so a REPL can reset HadError between lines
// while HadRuntimeError persists.
type Reporter struct {
	Diagnostics     []Diagnostic
	HadError        bool
	HadRuntimeError bool
}

// Reset clears accumulated diagnostics and the syntax-error flag. Called
// between REPL lines; HadRuntimeError is left untouched.
func (r *Reporter) Reset() {
	r.Diagnostics = nil
	r.HadError = false
}

// Report records a diagnostic at a bare line (scanner errors have no
// "where" clause).
func (r *Reporter) Report(line int, message string) {
	r.add(Diagnostic{Line: line, Message: message})
}

// ReportAt records a diagnostic located at a token, following the
// at-end/at-lexeme distinction.
func (r *Reporter) ReportAt(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	r.add(Diagnostic{Line: tok.Line, Where: where, Message: message})
}

func (r *Reporter) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	r.HadError = true
}

// RuntimeError is a failure raised by the evaluator. It carries the
// offending token so the driver can print the line.
type RuntimeError struct {
	Tok     token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Tok.Line)
}

func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Tok: tok, Message: fmt.Sprintf(format, args...)}
}
