package interpreter

import (
	"fmt"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

// Each statement takes the current environment and returns the environment
// the next statement runs in.

func (i *Interpreter) evaluateStatements(body []ast.Statement, env *runtime.Environment) (*runtime.Environment, error) {
	var err error
	for _, stmt := range body {
		if env, err = i.evaluateStatement(stmt, env); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (*runtime.Environment, error) {
	if err := i.tick(node); err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case *ast.DeclareStatement:
		return i.evaluateDeclare(n, env)
	case *ast.AssignStatement:
		return i.evaluateAssign(n, env)
	case *ast.IfStatement:
		return i.evaluateIf(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhile(n, env)
	case *ast.Block:
		return i.evaluateStatements(n.Body, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateDeclare(stmt *ast.DeclareStatement, env *runtime.Environment) (*runtime.Environment, error) {
	for _, id := range stmt.Names {
		env.Declare(id.Name, stmt.TypeName)
	}
	return env, nil
}

func (i *Interpreter) evaluateAssign(stmt *ast.AssignStatement, env *runtime.Environment) (*runtime.Environment, error) {
	name := stmt.Target.Name
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(name, val); err != nil {
		return nil, &UndeclaredVariableError{Name: name, Pos: startOf(stmt.Target)}
	}
	return env, nil
}

func (i *Interpreter) evaluateIf(stmt *ast.IfStatement, env *runtime.Environment) (*runtime.Environment, error) {
	cond, err := i.evaluateBoolean(stmt.Condition, env)
	if err != nil {
		return nil, err
	}
	if cond {
		return i.evaluateStatements(stmt.Then.Body, env)
	}
	if stmt.Else != nil {
		return i.evaluateStatements(stmt.Else.Body, env)
	}
	return env, nil
}

func (i *Interpreter) evaluateWhile(loop *ast.WhileStatement, env *runtime.Environment) (*runtime.Environment, error) {
	for {
		cond, err := i.evaluateBoolean(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !cond {
			return env, nil
		}
		if err := i.tick(loop); err != nil {
			return nil, err
		}
		if env, err = i.evaluateStatements(loop.Body.Body, env); err != nil {
			return nil, err
		}
	}
}
