package interpreter

import (
	"errors"
	"math"
	"testing"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

func envWith(t *testing.T, bindings map[string]runtime.Value) *runtime.Environment {
	t.Helper()
	env := runtime.NewEnvironment()
	for name, val := range bindings {
		env.Declare(name, val.Kind().String())
		if err := env.Assign(name, val); err != nil {
			t.Fatalf("Assign(%s) returned error: %v", name, err)
		}
	}
	return env
}

func TestArithmeticPromotion(t *testing.T) {
	interp := New()
	env := runtime.NewEnvironment()
	cases := []struct {
		name string
		expr ast.Expression
		want runtime.Value
	}{
		{"IntPlusInt", ast.Bin("+", ast.Int(2), ast.Int(3)), runtime.IntValue{Val: 5}},
		{"IntPlusFloat", ast.Bin("+", ast.Int(2), ast.Flt(0.5)), runtime.FloatValue{Val: 2.5}},
		{"FloatTimesInt", ast.Bin("*", ast.Flt(1.5), ast.Int(2)), runtime.FloatValue{Val: 3}},
		{"IntDivisionTruncates", ast.Bin("/", ast.Int(7), ast.Int(2)), runtime.IntValue{Val: 3}},
		{"NegativeDivisionTruncates", ast.Bin("/", ast.Int(-7), ast.Int(2)), runtime.IntValue{Val: -3}},
		{"ModuloTakesDividendSign", ast.Bin("%", ast.Int(-7), ast.Int(3)), runtime.IntValue{Val: -1}},
		{"FloatDivision", ast.Bin("/", ast.Int(7), ast.Flt(2)), runtime.FloatValue{Val: 3.5}},
		{"Overflow", ast.Bin("+", ast.Int(math.MaxInt64), ast.Int(1)), runtime.IntValue{Val: math.MinInt64}},
		{"MinDividedByMinusOne", ast.Bin("/", ast.Int(math.MinInt64), ast.Int(-1)), runtime.IntValue{Val: math.MinInt64}},
		{"Chain", ast.Chain(ast.Int(10), "-", ast.Int(3), "-", ast.Int(2)), runtime.IntValue{Val: 5}},
		{"Paren", ast.Bin("-", ast.Int(10), ast.Paren(ast.Bin("-", ast.Int(3), ast.Int(2)))), runtime.IntValue{Val: 9}},
	}
	for _, tc := range cases {
		got, err := interp.evaluateExpression(tc.expr, env)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestDivisionByZeroDiagnostics(t *testing.T) {
	interp := New()
	env := runtime.NewEnvironment()
	cases := []ast.Expression{
		ast.Bin("/", ast.Int(1), ast.Int(0)),
		ast.Bin("%", ast.Int(1), ast.Int(0)),
		ast.Bin("/", ast.Flt(1), ast.Flt(0)),
		ast.Bin("/", ast.Int(1), ast.Flt(0)),
	}
	for idx, expr := range cases {
		_, err := interp.evaluateExpression(expr, env)
		var divErr *DivisionByZeroError
		if !errors.As(err, &divErr) {
			t.Fatalf("case %d: expected DivisionByZeroError, got %v", idx, err)
		}
	}
}

func TestArithmeticTypeErrors(t *testing.T) {
	interp := New()
	env := envWith(t, map[string]runtime.Value{"flag": runtime.BoolValue{Val: true}})
	cases := []ast.Expression{
		ast.Bin("%", ast.Flt(5), ast.Int(2)),
		ast.Bin("%", ast.Int(5), ast.Flt(0)),
		ast.Bin("+", ast.ID("flag"), ast.Int(1)),
		ast.Bin("*", ast.Int(2), ast.ID("flag")),
	}
	for idx, expr := range cases {
		_, err := interp.evaluateExpression(expr, env)
		var typeErr *TypeError
		if !errors.As(err, &typeErr) {
			t.Fatalf("case %d: expected TypeError, got %v", idx, err)
		}
	}
}

func TestComparisons(t *testing.T) {
	interp := New()
	env := envWith(t, map[string]runtime.Value{
		"a": runtime.BoolValue{Val: true},
		"b": runtime.BoolValue{Val: false},
	})
	cases := []struct {
		expr ast.BooleanExpression
		want bool
	}{
		{ast.Cmp("<", ast.Int(1), ast.Int(2)), true},
		{ast.Cmp(">=", ast.Int(2), ast.Int(2)), true},
		{ast.Cmp("==", ast.Int(2), ast.Flt(2.0)), true},
		{ast.Cmp("!=", ast.Flt(2.5), ast.Int(2)), true},
		{ast.Cmp("<=", ast.Flt(3), ast.Int(2)), false},
		{ast.Cmp("==", ast.ID("a"), ast.ID("b")), false},
		{ast.Cmp("!=", ast.ID("a"), ast.ID("b")), true},
		{ast.Not(ast.Cmp(">", ast.Int(1), ast.Int(0))), false},
		{ast.Test(ast.ID("a")), true},
	}
	for idx, tc := range cases {
		got, err := interp.evaluateBoolean(tc.expr, env)
		if err != nil {
			t.Fatalf("case %d: unexpected error %v", idx, err)
		}
		if got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", idx, tc.want, got)
		}
	}
}

func TestComparisonTypeErrors(t *testing.T) {
	interp := New()
	env := envWith(t, map[string]runtime.Value{"a": runtime.BoolValue{Val: true}})
	cases := []ast.BooleanExpression{
		ast.Cmp("<", ast.ID("a"), ast.ID("a")),
		ast.Cmp("==", ast.ID("a"), ast.Int(1)),
		ast.Test(ast.Int(1)),
	}
	for idx, expr := range cases {
		_, err := interp.evaluateBoolean(expr, env)
		var typeErr *TypeError
		if !errors.As(err, &typeErr) {
			t.Fatalf("case %d: expected TypeError, got %v", idx, err)
		}
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	env := runtime.NewEnvironment()
	undeclared := ast.Cmp("==", ast.ID("x"), ast.Int(1))
	got, err := EvaluateBoolean(ast.And(ast.Bool(false), undeclared), env)
	if err != nil || got {
		t.Fatalf("expected false without error, got %v, %v", got, err)
	}
	got, err = EvaluateBoolean(ast.Or(ast.Bool(true), undeclared), env)
	if err != nil || !got {
		t.Fatalf("expected true without error, got %v, %v", got, err)
	}
	_, err = EvaluateBoolean(ast.Or(ast.Bool(false), undeclared), env)
	var undeclaredErr *UndeclaredVariableError
	if !errors.As(err, &undeclaredErr) || undeclaredErr.Name != "x" {
		t.Fatalf("expected undeclared x once the right side runs, got %v", err)
	}
	got, err = EvaluateBoolean(ast.And(ast.Bool(true), ast.Bool(true), ast.Bool(true)), env)
	if err != nil || !got {
		t.Fatalf("expected true for all-true chain, got %v, %v", got, err)
	}
}

func TestVariableErrors(t *testing.T) {
	env := runtime.NewEnvironment()
	env.Declare("x", "int")
	_, err := EvaluateExpression(ast.ID("x"), env)
	var unsetErr *UseOfUnsetVariableError
	if !errors.As(err, &unsetErr) || unsetErr.Name != "x" {
		t.Fatalf("expected UseOfUnsetVariableError for x, got %v", err)
	}
	_, err = EvaluateExpression(ast.ID("y"), env)
	var undeclaredErr *UndeclaredVariableError
	if !errors.As(err, &undeclaredErr) || undeclaredErr.Name != "y" {
		t.Fatalf("expected UndeclaredVariableError for y, got %v", err)
	}
	if undeclaredErr.Error() != "interpreter: undeclared variable 'y'" {
		t.Fatalf("unexpected message %q", undeclaredErr.Error())
	}
}

func TestRunThreadsEnvironment(t *testing.T) {
	prog := ast.Prog(
		ast.Decl("int", "i", "total"),
		ast.Assign("i", ast.Int(0)),
		ast.Assign("total", ast.Int(0)),
		ast.While(ast.Cmp("<", ast.ID("i"), ast.Int(4)), ast.Blk(
			ast.Assign("total", ast.Bin("+", ast.ID("total"), ast.ID("i"))),
			ast.Assign("i", ast.Bin("+", ast.ID("i"), ast.Int(1))),
		)),
		ast.IfElse(ast.Cmp("==", ast.ID("total"), ast.Int(6)),
			ast.Blk(ast.Assign("i", ast.Int(100))),
			ast.Blk(ast.Assign("i", ast.Int(-1))),
		),
	)
	env, err := Run(prog, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got, _ := env.Lookup("total"); got != (runtime.IntValue{Val: 6}) {
		t.Fatalf("expected total 6, got %#v", got)
	}
	if got, _ := env.Lookup("i"); got != (runtime.IntValue{Val: 100}) {
		t.Fatalf("expected i 100, got %#v", got)
	}
}

func TestRunClonesInitialEnvironment(t *testing.T) {
	initial := envWith(t, map[string]runtime.Value{"n": runtime.IntValue{Val: 1}})
	prog := ast.Prog(ast.Assign("n", ast.Bin("*", ast.ID("n"), ast.Int(10))))
	env, err := Run(prog, initial)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got, _ := env.Lookup("n"); got != (runtime.IntValue{Val: 10}) {
		t.Fatalf("expected n 10, got %#v", got)
	}
	if got, _ := initial.Lookup("n"); got != (runtime.IntValue{Val: 1}) {
		t.Fatalf("initial environment was modified: %#v", got)
	}
}

func TestGuardMustBeBool(t *testing.T) {
	initial := envWith(t, map[string]runtime.Value{"n": runtime.IntValue{Val: 1}})
	prog := ast.Prog(ast.IfThen(ast.Test(ast.ID("n")), ast.Blk()))
	_, err := Run(prog, initial)
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeError for int guard, got %v", err)
	}
}

func TestStepLimit(t *testing.T) {
	prog := ast.Prog(ast.While(ast.Bool(true), ast.Blk()))
	interp := New(WithStepLimit(50))
	_, err := interp.Run(prog, nil)
	var limitErr *StepLimitError
	if !errors.As(err, &limitErr) || limitErr.Limit != 50 {
		t.Fatalf("expected StepLimitError, got %v", err)
	}

	counting := ast.Prog(
		ast.Decl("int", "i"),
		ast.Assign("i", ast.Int(0)),
		ast.While(ast.Cmp("<", ast.ID("i"), ast.Int(3)), ast.Blk(
			ast.Assign("i", ast.Bin("+", ast.ID("i"), ast.Int(1))),
		)),
	)
	// 3 top-level statements, 3 iterations, 3 loop-body statements.
	if _, err := New(WithStepLimit(9)).Run(counting, nil); err != nil {
		t.Fatalf("expected run within budget, got %v", err)
	}
	if _, err := New(WithStepLimit(8)).Run(counting, nil); !errors.As(err, &limitErr) {
		t.Fatalf("expected StepLimitError with budget 8, got %v", err)
	}
	reused := New(WithStepLimit(9))
	for n := 0; n < 2; n++ {
		if _, err := reused.Run(counting, nil); err != nil {
			t.Fatalf("run %d: budget must reset between runs, got %v", n, err)
		}
	}
}
