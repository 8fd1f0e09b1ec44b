package runtime

import (
	"math"
	"testing"
)

func TestEnvironmentDeclareAndAssign(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign("x", IntValue{Val: 1}); err == nil {
		t.Fatalf("expected assigning an undeclared name to fail")
	}
	if env.Has("x") {
		t.Fatalf("failed assignment must not insert a binding")
	}
	env.Declare("x", "int")
	val, ok := env.Lookup("x")
	if !ok || !IsUnset(val) {
		t.Fatalf("expected x to be unset after declaration, got %#v", val)
	}
	if err := env.Assign("x", IntValue{Val: 7}); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	val, _ = env.Lookup("x")
	if iv, ok := val.(IntValue); !ok || iv.Val != 7 {
		t.Fatalf("expected 7, got %#v", val)
	}
	if typ, _ := env.TypeOf("x"); typ != "int" {
		t.Fatalf("expected declared type int, got %q", typ)
	}
}

func TestEnvironmentRedeclareResets(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", "int")
	_ = env.Assign("x", IntValue{Val: 3})
	env.Declare("x", "float")
	val, _ := env.Lookup("x")
	if !IsUnset(val) {
		t.Fatalf("expected redeclaration to reset x, got %#v", val)
	}
	if typ, _ := env.TypeOf("x"); typ != "float" {
		t.Fatalf("expected redeclared type float, got %q", typ)
	}
}

func TestEnvironmentCloneIsIndependent(t *testing.T) {
	env := NewEnvironment()
	env.Declare("b", "bool")
	env.Declare("a", "int")
	clone := env.Clone()
	_ = clone.Assign("a", IntValue{Val: 1})
	clone.Declare("c", "int")
	if val, _ := env.Lookup("a"); !IsUnset(val) {
		t.Fatalf("clone assignment leaked into original: %#v", val)
	}
	if env.Len() != 2 || clone.Len() != 3 {
		t.Fatalf("unexpected sizes %d and %d", env.Len(), clone.Len())
	}
	keys := clone.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
	snap := clone.Snapshot()
	if snap["a"].Value != (IntValue{Val: 1}) || snap["a"].TypeName != "int" {
		t.Fatalf("unexpected snapshot entry %#v", snap["a"])
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{IntValue{Val: 5}, "5"},
		{IntValue{Val: -12}, "-12"},
		{FloatValue{Val: 2.5}, "2.5"},
		{FloatValue{Val: 2}, "2.0"},
		{FloatValue{Val: 1e21}, "1e+21"},
		{FloatValue{Val: math.Inf(1)}, "+Inf"},
		{BoolValue{Val: true}, "true"},
		{UnsetValue{}, "<unset>"},
		{nil, "<unset>"},
	}
	for _, tc := range cases {
		if got := Format(tc.val); got != tc.want {
			t.Fatalf("Format(%#v) = %q, want %q", tc.val, got, tc.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindFloat.String() != "float" || Kind(42).String() != "unknown_kind_42" {
		t.Fatalf("unexpected kind names %q %q", KindFloat.String(), Kind(42).String())
	}
}
