package object

// Class is a Lox class value: a fixed method table built at declaration
// time.
type Class struct {
	Name    string
	Methods map[string]*Function
}

func (c *Class) TypeName() string { return "class" }
func (c *Class) String() string   { return c.Name }

// Arity is 0 unless the class declares an "init" method, in which case
// it is that method's arity.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// FindMethod looks up name on c's own method table.
func (c *Class) FindMethod(name string) (*Function, bool) {
	m, ok := c.Methods[name]
	return m, ok
}
