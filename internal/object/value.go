// Package object implements the runtime value representations and the
// environment chain.
//
// Value uses a tagged-interface style (TypeName()/String() on every
// concrete value type) rather than boxing into interface{} directly,
// covering Lox's value set: nil, boolean, number, string, and the
// callable family.
package object

import (
	"strconv"
	"strings"
)

// Value is the interface every Lox runtime value implements.
type Value interface {
	TypeName() string
	String() string
}

// Nil represents Lox's "nil" literal. The zero value is the only value.
type Nil struct{}

func (Nil) TypeName() string { return "nil" }
func (Nil) String() string   { return "nil" }

// Boolean represents true/false.
type Boolean bool

func (b Boolean) TypeName() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is Lox's single numeric type: IEEE-754 double.
type Number float64

func (n Number) TypeName() string { return "number" }

// String strips a trailing ".0" for integer-valued numbers, so
// "print 2+2;" emits 4, not 4.0.
func (n Number) String() string {
	f := float64(n)
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String (Lox) represents a text value. Named differently from the Go
// builtin to avoid a name collision with the interface method.
type String string

func (s String) TypeName() string { return "string" }
func (s String) String() string   { return string(s) }

// Callable is implemented by every value that can appear as the callee
// of a Call expression: user functions, native functions, and classes
// (construction).
type Callable interface {
	Value
	Arity() int
}

// IsTruthy: nil and false are falsy, everything else (including 0 and
// "") is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(val)
	default:
		return true
	}
}

// Equal: nil equals only nil, numbers/strings/booleans compare by value,
// everything else (callables, instances) compares by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return a == b
	}
}

// Native is a foreign (Go-implemented) callable, such as clock().
type Native struct {
	NameStr string
	ArityN  int
	Fn      func(args []Value) (Value, error)
}

func (n *Native) TypeName() string { return "native function" }
func (n *Native) String() string   { return "<native fn>" }
func (n *Native) Arity() int       { return n.ArityN }

// ValuesString joins values with a separator, used by tests and
// debug tooling.
func ValuesString(vals []Value, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}
