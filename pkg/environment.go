package lilt

import "sort"

// Environment maps identifiers to their current values. It is created empty
// for an evaluation run and passed explicitly, never held as package state,
// so repeated or reentrant runs are independent.
type Environment struct {
	entries map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{
		entries: make(map[string]Value),
	}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.entries[name]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	e.entries[name] = v
}

// Names returns all bound identifiers in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.entries))
	for name := range e.entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (e *Environment) Clear() {
	e.entries = make(map[string]Value)
}
