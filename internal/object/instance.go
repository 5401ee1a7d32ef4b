package object

import (
	"fmt"

	"lox/internal/loxerror"
	"lox/internal/token"
)

// Instance is a Lox class instance: a class reference plus a dynamic
// field map (the method table lives on Class, not here).
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) TypeName() string { return "instance" }
func (i *Instance) String() string   { return fmt.Sprintf("%s instance", i.Class.Name) }

// Get reads a property: fields take precedence over methods, and a found
// method is bound fresh to this instance before being returned.
func (i *Instance) Get(tok token.Token) (Value, error) {
	if v, ok := i.Fields[tok.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.Class.FindMethod(tok.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, loxerror.NewRuntimeError(tok, "Undefined property '%s'.", tok.Lexeme)
}

// Set writes a field, creating the key if needed.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
