package parser

import (
	"testing"

	"lox/internal/ast"
	"lox/internal/lexer"
	"lox/internal/loxerror"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *loxerror.Reporter) {
	t.Helper()
	r := &loxerror.Reporter{}
	toks := lexer.New(source, r).ScanTokens()
	stmts := New(toks, r).Parse()
	return stmts, r
}

func TestParse_VarDeclaration(t *testing.T) {
	stmts, r := parse(t, `var a = 1 + 2;`)
	if r.HadError {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	v, ok := stmts[0].(*ast.Var)
	if !ok {
		t.Fatalf("got %T, want *ast.Var", stmts[0])
	}
	if _, ok := v.Initializer.(*ast.Binary); !ok {
		t.Fatalf("got initializer %T, want *ast.Binary", v.Initializer)
	}
}

func TestParse_ForDesugarsToWhile(t *testing.T) {
	stmts, r := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if r.HadError {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	block, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("got %T, want *ast.Block", stmts[0])
	}
	if len(block.Stmts) != 2 {
		t.Fatalf("got %d stmts in desugared block, want 2 (init + while)", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.Var); !ok {
		t.Fatalf("got %T, want *ast.Var as first desugared stmt", block.Stmts[0])
	}
	if _, ok := block.Stmts[1].(*ast.While); !ok {
		t.Fatalf("got %T, want *ast.While as second desugared stmt", block.Stmts[1])
	}
}

func TestParse_AssignmentTargetRewriting(t *testing.T) {
	stmts, r := parse(t, `a.b = 1;`)
	if r.HadError {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	expr := stmts[0].(*ast.Expression).Expr
	if _, ok := expr.(*ast.Set); !ok {
		t.Fatalf("got %T, want *ast.Set", expr)
	}
}

func TestParse_ClassDeclaration(t *testing.T) {
	stmts, r := parse(t, `class A { greet() { return 1; } }`)
	if r.HadError {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	class, ok := stmts[0].(*ast.Class)
	if !ok {
		t.Fatalf("got %T, want *ast.Class", stmts[0])
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "greet" {
		t.Fatalf("got methods %+v, want [greet]", class.Methods)
	}
}

func TestParse_InvalidAssignmentTargetReportsError(t *testing.T) {
	_, r := parse(t, `1 = 2;`)
	if !r.HadError {
		t.Fatal("expected an error for an invalid assignment target")
	}
}

func TestParse_MissingSemicolonSynchronizes(t *testing.T) {
	stmts, r := parse(t, "var a = 1\nvar b = 2;")
	if !r.HadError {
		t.Fatal("expected a missing-semicolon error")
	}
	// synchronize() should let parsing continue past the error.
	if len(stmts) < 1 {
		t.Fatalf("expected parsing to continue after synchronizing, got %d stmts", len(stmts))
	}
}

func TestParse_LessThanAfterClassNameIsNotAGrammarProduction(t *testing.T) {
	_, r := parse(t, `class B < A {}`)
	if !r.HadError {
		t.Fatal("expected an error: class declarations have no superclass clause")
	}
}
