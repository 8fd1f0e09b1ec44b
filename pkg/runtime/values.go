package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUnset Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// UnsetValue marks a variable that has been declared but not yet assigned.
type UnsetValue struct{}

func (UnsetValue) Kind() Kind { return KindUnset }

// IsUnset reports whether v is nil or UnsetValue.
func IsUnset(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(UnsetValue)
	return ok
}

// Format renders a value the way the CLI prints it.
func Format(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return formatFloat(val.Val)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case UnsetValue, nil:
		return "<unset>"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

// formatFloat keeps a decimal point on integral floats so 2.0 does not read
// back as an int.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
