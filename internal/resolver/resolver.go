// Package resolver implements the static lexical-scoping pass that runs
// between parsing and evaluation. It walks the AST once, tracking a
// stack of block scopes, and for every variable-reference expression
// records how many scopes out (the "distance") its binding lives — or
// leaves it unrecorded, meaning "look it up as a global at run time."
package resolver

import (
	"lox/internal/ast"
	"lox/internal/loxerror"
	"lox/internal/token"
)

type functionType int

const (
	noFunction functionType = iota
	inFunction
	inInitializer
	inMethod
)

type classType int

const (
	noClass classType = iota
	inClass
)

// Locals is the side-table the evaluator consults: for each resolved
// expression node, how many environments out its binding lives.
type Locals map[ast.Expr]int

// Resolver performs the single static-analysis pass.
type Resolver struct {
	reporter *loxerror.Reporter
	locals   Locals

	scopes []map[string]bool // innermost scope last
	currentFunction functionType
	currentClass    classType
}

func New(reporter *loxerror.Reporter) *Resolver {
	return &Resolver{reporter: reporter, locals: make(Locals)}
}

// Resolve runs the pass over a full program and returns the populated
// side-table.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.resolveStmts(stmts)
	return r.locals
}

// ============================================================
// Scope stack
// ============================================================

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ReportAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records the distance from the innermost scope out to the
// scope that declares name, for expr. No entry is recorded if name is
// never declared in any enclosing scope — the evaluator treats that as
// a global lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ============================================================
// Statements
// ============================================================

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.Class:
		r.resolveClass(s)

	case *ast.Expression:
		r.resolveExpr(s.Expr)

	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)

	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.Return:
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.reporter.ReportAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = inClass

	r.declare(s.Name)
	r.define(s.Name)

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		ft := inMethod
		if method.Name.Lexeme == "init" {
			ft = inInitializer
		}
		r.resolveFunction(method, ft)
	}

	r.endScope()

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, ft functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = ft

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// ============================================================
// Expressions
// ============================================================

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Literal:
		// no sub-expressions, nothing to resolve

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == noClass {
			r.reporter.ReportAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !ready {
				r.reporter.ReportAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	}
}
