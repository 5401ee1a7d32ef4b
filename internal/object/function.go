package object

import (
	"fmt"

	"lox/internal/ast"
)

// Function is a user-defined Lox function or method: a declaration node
// plus the environment that was current at the moment of declaration
// (its closure — never recreated afterward).
//
// The call itself is performed by the evaluator (internal/interp), not
// here — Function only needs to satisfy Callable (Arity) and carry what
// the evaluator needs to build the call's activation record. This keeps
// internal/object free of a dependency on internal/interp.
type Function struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) TypeName() string { return "function" }
func (f *Function) String() string   { return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme) }
func (f *Function) Arity() int       { return len(f.Declaration.Params) }

// Bind returns a copy of f whose closure is a new environment, parented
// at f's original closure, with "this" defined to point at instance. A
// fresh binding is produced on every property access; closures are never
// mutated in place.
func (f *Function) Bind(instance Value) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}
