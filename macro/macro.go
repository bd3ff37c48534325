// Package macro implements the assembler's macro table: an ordered mapping
// from macro name to its captured, verbatim body lines. Macros in this ISA
// take no parameters and must be defined before first use (see spec.md
// Non-goals) — this table exists only for the duration of preprocessing.
package macro

import "fmt"

// Macro is a single macro definition: a name and its body lines, stored
// verbatim (including original whitespace) in definition order.
type Macro struct {
	Name string
	Body []string
}

// Table is the ordered, uniquely-keyed macro table.
type Table struct {
	order []string
	byKey map[string]*Macro
}

// New creates an empty macro table.
func New() *Table {
	return &Table{byKey: make(map[string]*Macro)}
}

// DefineEmpty begins a new macro with an empty body and returns a handle the
// caller appends lines to as the body is scanned. It is an error to redefine
// an existing macro name.
func (t *Table) DefineEmpty(name string) (*Macro, error) {
	if _, exists := t.byKey[name]; exists {
		return nil, fmt.Errorf("macro %q already defined", name)
	}
	m := &Macro{Name: name}
	t.byKey[name] = m
	t.order = append(t.order, name)
	return m, nil
}

// Lookup returns a macro by name.
func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.byKey[name]
	return m, ok
}

// All returns every macro in definition order.
func (t *Table) All() []*Macro {
	out := make([]*Macro, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byKey[name])
	}
	return out
}
