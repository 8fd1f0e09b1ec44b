package driver

import (
	"fmt"
	"strconv"
	"strings"

	"minilang/interpreter-go/pkg/runtime"
)

// ParseBinding reads an initial value written as "type:value", for example
// "int:10", "float:2.5" or "bool:true". Without a type prefix the type is
// inferred from the literal.
func ParseBinding(text string) (runtime.Binding, error) {
	text = strings.TrimSpace(text)
	typeName, literal, typed := strings.Cut(text, ":")
	if !typed {
		return inferBinding(text)
	}
	typeName = strings.TrimSpace(typeName)
	literal = strings.TrimSpace(literal)
	switch typeName {
	case "int":
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return runtime.Binding{}, fmt.Errorf("invalid int %q", literal)
		}
		return runtime.Binding{TypeName: typeName, Value: runtime.IntValue{Val: n}}, nil
	case "float":
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return runtime.Binding{}, fmt.Errorf("invalid float %q", literal)
		}
		return runtime.Binding{TypeName: typeName, Value: runtime.FloatValue{Val: f}}, nil
	case "bool":
		switch literal {
		case "true":
			return runtime.Binding{TypeName: typeName, Value: runtime.BoolValue{Val: true}}, nil
		case "false":
			return runtime.Binding{TypeName: typeName, Value: runtime.BoolValue{Val: false}}, nil
		}
		return runtime.Binding{}, fmt.Errorf("invalid bool %q", literal)
	default:
		return runtime.Binding{}, fmt.Errorf("unknown type %q (want int, float or bool)", typeName)
	}
}

func inferBinding(literal string) (runtime.Binding, error) {
	switch {
	case literal == "true" || literal == "false":
		return ParseBinding("bool:" + literal)
	case strings.ContainsAny(literal, ".eE"):
		return ParseBinding("float:" + literal)
	case literal == "":
		return runtime.Binding{}, fmt.Errorf("empty value")
	default:
		return ParseBinding("int:" + literal)
	}
}

// NewEnvironment builds an environment holding the given bindings.
func NewEnvironment(bindings map[string]runtime.Binding) *runtime.Environment {
	env := runtime.NewEnvironment()
	for name, b := range bindings {
		env.Declare(name, b.TypeName)
		_ = env.Assign(name, b.Value)
	}
	return env
}
