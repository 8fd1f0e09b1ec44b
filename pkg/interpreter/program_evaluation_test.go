package interpreter_test

import (
	"errors"
	"testing"

	"minilang/interpreter-go/pkg/interpreter"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/runtime"
)

func runSource(t *testing.T, source string) (*runtime.Environment, error) {
	t.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", source, err)
	}
	return interpreter.Run(prog, nil)
}

func mustRun(t *testing.T, source string) *runtime.Environment {
	t.Helper()
	env, err := runSource(t, source)
	if err != nil {
		t.Fatalf("Run(%q) returned error: %v", source, err)
	}
	return env
}

func expectValue(t *testing.T, env *runtime.Environment, name string, want runtime.Value) {
	t.Helper()
	got, ok := env.Lookup(name)
	if !ok {
		t.Fatalf("expected %s to be bound", name)
	}
	if got != want {
		t.Fatalf("expected %s = %s, got %s", name, runtime.Format(want), runtime.Format(got))
	}
}

func TestProgramPrecedence(t *testing.T) {
	env := mustRun(t, "int x; x = 2 + 3 * 4")
	expectValue(t, env, "x", runtime.IntValue{Val: 14})
}

func TestProgramLeftAssociativity(t *testing.T) {
	env := mustRun(t, "int x, y; x = 10 - 3 - 2; y = 24 / 4 / 2")
	expectValue(t, env, "x", runtime.IntValue{Val: 5})
	expectValue(t, env, "y", runtime.IntValue{Val: 3})
}

func TestProgramShortCircuit(t *testing.T) {
	env := mustRun(t, "bool b; b = false && (x == 1)")
	expectValue(t, env, "b", runtime.BoolValue{Val: false})
	prog, err := parser.ParseBoolean("false && (x == 1)")
	if err != nil {
		t.Fatalf("ParseBoolean returned error: %v", err)
	}
	got, err := interpreter.EvaluateBoolean(prog, runtime.NewEnvironment())
	if err != nil || got {
		t.Fatalf("expected false without error, got %v, %v", got, err)
	}
}

func TestProgramRedeclarationResets(t *testing.T) {
	_, err := runSource(t, "int x; x = 5; int x; int y; y = x")
	var unsetErr *interpreter.UseOfUnsetVariableError
	if !errors.As(err, &unsetErr) || unsetErr.Name != "x" {
		t.Fatalf("expected UseOfUnsetVariableError for x, got %v", err)
	}
	if unsetErr.Pos.Line != 1 || unsetErr.Pos.Column != 33 {
		t.Fatalf("expected error at 1:33, got %s", unsetErr.Pos)
	}
}

func TestProgramWhileLoop(t *testing.T) {
	env := mustRun(t, `
int i;
i = 0;
while (i < 3) {
  i = i + 1;
}`)
	expectValue(t, env, "i", runtime.IntValue{Val: 3})
}

func TestProgramDivisionByZero(t *testing.T) {
	_, err := runSource(t, "int x; x = 1 / 0")
	var divErr *interpreter.DivisionByZeroError
	if !errors.As(err, &divErr) {
		t.Fatalf("expected DivisionByZeroError, got %v", err)
	}
	if divErr.Pos.Column != 16 {
		t.Fatalf("expected divisor position 1:16, got %s", divErr.Pos)
	}
}

func TestProgramUndeclaredAssignment(t *testing.T) {
	env, err := runSource(t, "x = 1")
	var undeclaredErr *interpreter.UndeclaredVariableError
	if !errors.As(err, &undeclaredErr) || undeclaredErr.Name != "x" {
		t.Fatalf("expected UndeclaredVariableError for x, got %v", err)
	}
	if env != nil {
		t.Fatalf("expected no environment on error")
	}
}

func TestProgramBooleansAndNesting(t *testing.T) {
	env := mustRun(t, `
int n, evens; bool done; float avg;
n = 0; evens = 0; done = false;
while (not done) {
  if (n % 2 == 0) { evens = evens + 1 }
  n = n + 1;
  done = n >= 10 || (n > 100 && missing == 1)
}
avg = evens / 2.0;
{ int scratch; scratch = 1 }`)
	expectValue(t, env, "evens", runtime.IntValue{Val: 5})
	expectValue(t, env, "done", runtime.BoolValue{Val: true})
	expectValue(t, env, "avg", runtime.FloatValue{Val: 2.5})
	if !env.Has("scratch") {
		t.Fatalf("blocks share the program environment; expected scratch to be bound")
	}
	if keys := env.Keys(); len(keys) != 5 || keys[0] != "avg" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestProgramParenthesizedArithmeticInGuard(t *testing.T) {
	env := mustRun(t, "int a, b; a = 1; b = 2; if ((a + b) * 2 - 1 < 6) { a = 0 } else { a = 9 }")
	expectValue(t, env, "a", runtime.IntValue{Val: 0})
}

func TestEvaluateExpressionIsPure(t *testing.T) {
	env := runtime.NewEnvironment()
	env.Declare("x", "int")
	_ = env.Assign("x", runtime.IntValue{Val: 4})
	expr, err := parser.ParseExpression("x * x + 0.5")
	if err != nil {
		t.Fatalf("ParseExpression returned error: %v", err)
	}
	got, err := interpreter.EvaluateExpression(expr, env)
	if err != nil {
		t.Fatalf("EvaluateExpression returned error: %v", err)
	}
	if got != (runtime.FloatValue{Val: 16.5}) {
		t.Fatalf("expected 16.5, got %s", runtime.Format(got))
	}
	if env.Len() != 1 {
		t.Fatalf("environment changed size to %d", env.Len())
	}
}
