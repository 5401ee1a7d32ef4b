package main

import (
	"fmt"
	"io"
	"os"

	"lox/internal/interp"
	"lox/internal/lexer"
	"lox/internal/loxerror"
	"lox/internal/parser"
	"lox/internal/resolver"
)

// run drives one source string through the full pipeline: scan, parse,
// resolve, evaluate. Diagnostics from the scan/parse/resolve stages are
// written straight to stderr and stop the pipeline before evaluation
// ever runs — syntax/resolution errors and runtime errors are two
// disjoint failure modes, never mixed in the same pass.
func run(source string, reporter *loxerror.Reporter, out io.Writer) error {
	tokens := lexer.New(source, reporter).ScanTokens()
	stmts := parser.New(tokens, reporter).Parse()
	if reporter.HadError {
		printDiagnostics(reporter)
		return nil
	}

	locals := resolver.New(reporter).Resolve(stmts)
	if reporter.HadError {
		printDiagnostics(reporter)
		return nil
	}

	return interp.New(locals, reporter, out).Interpret(stmts)
}

func printDiagnostics(reporter *loxerror.Reporter) {
	for _, d := range reporter.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
