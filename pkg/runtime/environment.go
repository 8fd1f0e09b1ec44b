package runtime

import (
	"fmt"
	"sort"
)

// Binding pairs a value with the type name it was declared with.
type Binding struct {
	TypeName string
	Value    Value
}

// Environment is the single flat store of variable bindings for a run.
// Blocks share it; there are no nested scopes.
type Environment struct {
	values map[string]Binding
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Binding)}
}

// Declare binds name to Unset, replacing any earlier binding.
func (e *Environment) Declare(name, typeName string) {
	e.values[name] = Binding{TypeName: typeName, Value: UnsetValue{}}
}

// Assign rebinds an existing variable. Assigning an undeclared name fails.
func (e *Environment) Assign(name string, value Value) error {
	b, ok := e.values[name]
	if !ok {
		return fmt.Errorf("undeclared variable '%s'", name)
	}
	b.Value = value
	e.values[name] = b
	return nil
}

// Lookup returns the value bound to name.
func (e *Environment) Lookup(name string) (Value, bool) {
	b, ok := e.values[name]
	if !ok {
		return nil, false
	}
	return b.Value, true
}

// TypeOf returns the declared type name of a variable.
func (e *Environment) TypeOf(name string) (string, bool) {
	b, ok := e.values[name]
	return b.TypeName, ok
}

func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

func (e *Environment) Len() int {
	return len(e.values)
}

// Keys returns the bound names in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Binding {
	out := make(map[string]Binding, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent environment with the same bindings.
func (e *Environment) Clone() *Environment {
	return &Environment{values: e.Snapshot()}
}
