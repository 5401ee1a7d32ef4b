package interp

import (
	"strings"
	"testing"

	"lox/internal/lexer"
	"lox/internal/loxerror"
	"lox/internal/parser"
	"lox/internal/resolver"
)

// run scans, parses, resolves, and evaluates source, returning everything
// printed plus any error.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	r := &loxerror.Reporter{}
	toks := lexer.New(source, r).ScanTokens()
	stmts := parser.New(toks, r).Parse()
	if r.HadError {
		t.Fatalf("unexpected scan/parse errors: %v", r.Diagnostics)
	}
	locals := resolver.New(r).Resolve(stmts)
	if r.HadError {
		t.Fatalf("unexpected resolve errors: %v", r.Diagnostics)
	}
	var out strings.Builder
	err := New(locals, r, &out).Interpret(stmts)
	return out.String(), err
}

func expectOutput(t *testing.T, source, want string) {
	t.Helper()
	got, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != want {
		t.Errorf("got output %q, want %q", got, want)
	}
}

func TestInterpret_Arithmetic(t *testing.T) {
	expectOutput(t, `print 2 + 2;`, "4\n")
	expectOutput(t, `print 1 + 1.5;`, "2.5\n")
	expectOutput(t, `print "foo" + "bar";`, "foobar\n")
}

func TestInterpret_StringConcatTypeError(t *testing.T) {
	_, err := run(t, `print "a" + 1;`)
	if err == nil {
		t.Fatal("expected a runtime type error")
	}
	if !strings.Contains(err.Error(), "Operands must be two numbers or two strings.") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestInterpret_ForLoopDesugaringAndShortCircuit(t *testing.T) {
	expectOutput(t, `
		var sum = 0;
		for (var i = 1; i <= 3; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`, "6\n")

	expectOutput(t, `
		fun sideEffect() { print "called"; return true; }
		if (false and sideEffect()) {}
		print "done";
	`, "done\n")
}

func TestInterpret_ClosureCapturesLiveBinding(t *testing.T) {
	expectOutput(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`, "1\n2\n3\n")
}

func TestInterpret_ResolverFixesVariableAtDeclarationSite(t *testing.T) {
	expectOutput(t, `
		var a = "global";
		{
			fun showA() {
				print a;
			}
			showA();
			var a = "block";
			showA();
		}
	`, "global\nglobal\n")
}

func TestInterpret_ClassWithInitializerAndMethod(t *testing.T) {
	expectOutput(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				return "Hello, " + this.name + "!";
			}
		}
		var g = Greeter("World");
		print g.greet();
	`, "Hello, World!\n")
}

func TestInterpret_EarlyReturnFromInitializerStillReturnsThis(t *testing.T) {
	expectOutput(t, `
		class Thing {
			init() {
				this.value = 1;
				return;
			}
		}
		var t = Thing();
		print t.value;
	`, "1\n")
}

func TestInterpret_ArityMismatchRuntimeError(t *testing.T) {
	_, err := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	if err == nil {
		t.Fatal("expected an arity mismatch runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1.") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestInterpret_UndefinedVariableRuntimeError(t *testing.T) {
	_, err := run(t, `print nope;`)
	if err == nil {
		t.Fatal("expected an undefined variable error")
	}
	if !strings.Contains(err.Error(), "Undefined variable 'nope'.") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestInterpret_OnlyInstancesHaveFieldsAndProperties(t *testing.T) {
	_, err := run(t, `var n = 1; n.x = 2;`)
	if err == nil || !strings.Contains(err.Error(), "Only instances have fields.") {
		t.Fatalf("got %v", err)
	}

	_, err = run(t, `var n = 1; print n.x;`)
	if err == nil || !strings.Contains(err.Error(), "Only instances have properties.") {
		t.Fatalf("got %v", err)
	}
}

func TestInterpret_NativeClock(t *testing.T) {
	got, err := run(t, `print clock() >= 0;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "true\n" {
		t.Fatalf("got %q, want %q", got, "true\n")
	}
}
