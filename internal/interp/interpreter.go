// Package interp is the tree-walking evaluator: it executes the statement
// list the parser produced, consulting the resolver's side-table for
// variable lookups.
//
// Dispatch is a big per-node-type switch returning an ExecResult sum type
// alongside error, rather than using panic/recover for non-local return
// (see DESIGN.md for that choice).
package interp

import (
	"fmt"
	"io"
	"time"

	"lox/internal/ast"
	"lox/internal/loxerror"
	"lox/internal/object"
	"lox/internal/resolver"
	"lox/internal/token"
)

// Signal tags what an executed statement is asking its caller to do.
type Signal int

const (
	SignalNone Signal = iota
	SignalReturn
)

// ExecResult is what every statement-executing method returns: either
// "keep going" (SignalNone) or "unwind to the nearest function call with
// this value" (SignalReturn). There is no break/continue signal because
// Lox's grammar has no break/continue statements.
type ExecResult struct {
	Signal Signal
	Value  object.Value
}

var none = ExecResult{Signal: SignalNone}

// Interpreter walks a resolved AST and performs its effects.
type Interpreter struct {
	globals  *object.Environment
	env      *object.Environment
	locals   resolver.Locals
	reporter *loxerror.Reporter
	out      io.Writer
}

func New(locals resolver.Locals, reporter *loxerror.Reporter, out io.Writer) *Interpreter {
	globals := object.NewEnvironment(nil)
	defineNatives(globals)
	return &Interpreter{globals: globals, env: globals, locals: locals, reporter: reporter, out: out}
}

// defineNatives installs the one native function the language provides:
// clock(), returning elapsed seconds as a float64.
func defineNatives(env *object.Environment) {
	env.Define("clock", &object.Native{
		NameStr: "clock",
		ArityN:  0,
		Fn: func(args []object.Value) (object.Value, error) {
			return object.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}

// Interpret runs a full program, stopping and reporting at the first
// runtime error.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if _, err := in.execute(s); err != nil {
			if rerr, ok := err.(*loxerror.RuntimeError); ok {
				in.reporter.HadRuntimeError = true
				return rerr
			}
			return err
		}
	}
	return nil
}

// ============================================================
// Statements
// ============================================================

func (in *Interpreter) execute(stmt ast.Stmt) (ExecResult, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Stmts, object.NewEnvironment(in.env))

	case *ast.Class:
		return in.executeClass(s)

	case *ast.Expression:
		_, err := in.evaluate(s.Expr)
		return none, err

	case *ast.Function:
		fn := &object.Function{Declaration: s, Closure: in.env, IsInitializer: false}
		in.env.Define(s.Name.Lexeme, fn)
		return none, nil

	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return none, err
		}
		if object.IsTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return none, nil

	case *ast.Print:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return none, err
		}
		fmt.Fprintln(in.out, v.String())
		return none, nil

	case *ast.Return:
		value := object.Value(object.Nil{})
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return none, err
			}
			value = v
		}
		return ExecResult{Signal: SignalReturn, Value: value}, nil

	case *ast.Var:
		value := object.Value(object.Nil{})
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return none, err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return none, nil

	case *ast.While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return none, err
			}
			if !object.IsTruthy(cond) {
				return none, nil
			}
			result, err := in.execute(s.Body)
			if err != nil || result.Signal != SignalNone {
				return result, err
			}
		}
	}
	return none, nil
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment on every exit path.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *object.Environment) (ExecResult, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		result, err := in.execute(s)
		if err != nil || result.Signal != SignalNone {
			return result, err
		}
	}
	return none, nil
}

// executeClass evaluates a class declaration: every method closes over
// the environment the class was declared in.
func (in *Interpreter) executeClass(s *ast.Class) (ExecResult, error) {
	in.env.Define(s.Name.Lexeme, object.Nil{})

	methods := make(map[string]*object.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &object.Function{
			Declaration:   m,
			Closure:       in.env,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &object.Class{Name: s.Name.Lexeme, Methods: methods}
	if err := in.env.Assign(s.Name, class); err != nil {
		return none, err
	}
	return none, nil
}

// ============================================================
// Expressions
// ============================================================

func (in *Interpreter) evaluate(expr ast.Expr) (object.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Variable:
		return in.lookupVariable(e, e.Name)

	case *ast.Assign:
		return in.evalAssign(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	case *ast.This:
		return in.lookupVariable(e, e.Keyword)
	}
	return object.Nil{}, nil
}

func literalValue(v any) object.Value {
	switch val := v.(type) {
	case nil:
		return object.Nil{}
	case bool:
		return object.Boolean(val)
	case float64:
		return object.Number(val)
	case string:
		return object.String(val)
	default:
		return object.Nil{}
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary) (object.Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.MINUS:
		n, ok := right.(object.Number)
		if !ok {
			return nil, loxerror.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return object.Boolean(!object.IsTruthy(right)), nil
	}
	return object.Nil{}, nil
}

func (in *Interpreter) evalBinary(e *ast.Binary) (object.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.PLUS:
		if ln, ok := left.(object.Number); ok {
			if rn, ok := right.(object.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(object.String); ok {
			if rs, ok := right.(object.String); ok {
				return ls + rs, nil
			}
		}
		return nil, loxerror.NewRuntimeError(e.Operator, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case token.STAR:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case token.SLASH:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil

	case token.GREATER:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return object.Boolean(ln > rn), nil

	case token.GREATER_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return object.Boolean(ln >= rn), nil

	case token.LESS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return object.Boolean(ln < rn), nil

	case token.LESS_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return object.Boolean(ln <= rn), nil

	case token.BANG_EQUAL:
		return object.Boolean(!object.Equal(left, right)), nil

	case token.EQUAL_EQUAL:
		return object.Boolean(object.Equal(left, right)), nil
	}
	return object.Nil{}, nil
}

func numberOperands(op token.Token, left, right object.Value) (object.Number, object.Number, error) {
	ln, ok := left.(object.Number)
	if !ok {
		return 0, 0, loxerror.NewRuntimeError(op, "Operands must be numbers.")
	}
	rn, ok := right.(object.Number)
	if !ok {
		return 0, 0, loxerror.NewRuntimeError(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (in *Interpreter) evalLogical(e *ast.Logical) (object.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.OR {
		if object.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !object.IsTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) lookupVariable(expr ast.Expr, name token.Token) (object.Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, loxerror.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) evalAssign(e *ast.Assign) (object.Value, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[e]; ok {
		in.env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := in.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (object.Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]object.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		return nil, loxerror.NewRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, loxerror.NewRuntimeError(e.ClosingParen, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	switch c := callable.(type) {
	case *object.Native:
		return c.Fn(args)
	case *object.Function:
		return in.callFunction(c, args)
	case *object.Class:
		return in.instantiate(c, args)
	}
	return nil, loxerror.NewRuntimeError(e.ClosingParen, "Can only call functions and classes.")
}

// callFunction builds a fresh environment parented at the function's
// closure, one binding per parameter, then executes the body as a block.
// An initializer always returns "this" regardless of what (if anything)
// its body returned.
func (in *Interpreter) callFunction(fn *object.Function, args []object.Value) (object.Value, error) {
	env := object.NewEnvironment(fn.Closure)
	for i, p := range fn.Declaration.Params {
		env.Define(p.Lexeme, args[i])
	}

	result, err := in.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if result.Signal == SignalReturn {
		return result.Value, nil
	}
	return object.Nil{}, nil
}

func (in *Interpreter) instantiate(class *object.Class, args []object.Value) (object.Value, error) {
	instance := object.NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		if _, err := in.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (in *Interpreter) evalGet(e *ast.Get) (object.Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*object.Instance)
	if !ok {
		return nil, loxerror.NewRuntimeError(e.Name, "Only instances have properties.")
	}
	return inst.Get(e.Name)
}

func (in *Interpreter) evalSet(e *ast.Set) (object.Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*object.Instance)
	if !ok {
		return nil, loxerror.NewRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, value)
	return value, nil
}
