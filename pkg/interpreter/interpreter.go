package interpreter

import (
	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

// Interpreter evaluates programs against a flat environment.
type Interpreter struct {
	stepLimit int
	steps     int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStepLimit bounds the number of statements and loop iterations a single
// Run may execute. Zero or a negative limit means unlimited.
func WithStepLimit(limit int) Option {
	return func(i *Interpreter) {
		i.stepLimit = limit
	}
}

// New returns an interpreter with the given options applied.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// StepLimit returns the configured budget, zero when unlimited.
func (i *Interpreter) StepLimit() int {
	return i.stepLimit
}

// Run executes program against a clone of initial (a fresh environment when
// nil) and returns the final environment. On error no environment is
// returned and initial is left untouched.
func (i *Interpreter) Run(program *ast.Program, initial *runtime.Environment) (*runtime.Environment, error) {
	var env *runtime.Environment
	if initial == nil {
		env = runtime.NewEnvironment()
	} else {
		env = initial.Clone()
	}
	i.steps = 0
	if program == nil {
		return env, nil
	}
	env, err := i.evaluateStatements(program.Body, env)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// Run executes program with a default interpreter.
func Run(program *ast.Program, env *runtime.Environment) (*runtime.Environment, error) {
	return New().Run(program, env)
}

// EvaluateExpression computes the value of expr without modifying env. A
// boolean expression yields a BoolValue.
func EvaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return New().evaluateExpression(expr, ensureEnv(env))
}

// EvaluateBoolean computes the truth value of expr, short-circuiting '||'
// and '&&'.
func EvaluateBoolean(expr ast.BooleanExpression, env *runtime.Environment) (bool, error) {
	return New().evaluateBoolean(expr, ensureEnv(env))
}

func ensureEnv(env *runtime.Environment) *runtime.Environment {
	if env == nil {
		return runtime.NewEnvironment()
	}
	return env
}

func (i *Interpreter) tick(node ast.Node) error {
	if i.stepLimit <= 0 {
		return nil
	}
	i.steps++
	if i.steps > i.stepLimit {
		return &StepLimitError{Limit: i.stepLimit, Pos: startOf(node)}
	}
	return nil
}
