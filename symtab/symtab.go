// Package symtab implements the assembler's symbol table: an
// insertion-ordered mapping from symbol name to its address, segment, and
// external/entry flags.
package symtab

import "fmt"

// SegmentKind identifies which segment a symbol's address is relative to.
type SegmentKind int

const (
	Instruction SegmentKind = iota
	Directive
)

func (s SegmentKind) String() string {
	switch s {
	case Instruction:
		return "instruction"
	case Directive:
		return "directive"
	default:
		return "unknown"
	}
}

// Symbol is a single entry in the symbol table.
type Symbol struct {
	Name       string
	Address    uint16
	Segment    SegmentKind
	IsExternal bool
	IsEntry    bool
}

// Table is the ordered, uniquely-keyed symbol table. Insertion order is
// preserved and determines output iteration order.
type Table struct {
	order []string
	byKey map[string]*Symbol
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{byKey: make(map[string]*Symbol)}
}

// Define adds a new symbol at a provisional address. It is an error to
// redefine an existing name.
func (t *Table) Define(name string, segment SegmentKind, address uint16) (*Symbol, error) {
	if _, exists := t.byKey[name]; exists {
		return nil, fmt.Errorf("symbol %q already exists", name)
	}
	sym := &Symbol{Name: name, Segment: segment, Address: address}
	t.byKey[name] = sym
	t.order = append(t.order, name)
	return sym, nil
}

// DefineExternal adds a new external symbol: address 0, segment Directive,
// by convention. It is an error to redefine an existing name.
func (t *Table) DefineExternal(name string) (*Symbol, error) {
	if _, exists := t.byKey[name]; exists {
		return nil, fmt.Errorf("symbol %q already exists", name)
	}
	sym := &Symbol{Name: name, Segment: Directive, IsExternal: true}
	t.byKey[name] = sym
	t.order = append(t.order, name)
	return sym, nil
}

// Remove deletes a symbol, rolling back a provisional definition that a
// later validation failure has invalidated.
func (t *Table) Remove(name string) {
	if _, exists := t.byKey[name]; !exists {
		return
	}
	delete(t.byKey, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Lookup returns a symbol by name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byKey[name]
	return sym, ok
}

// MarkEntry sets is_entry=true on an existing, non-external symbol. It is
// idempotent: marking an already-entry symbol again succeeds silently.
func (t *Table) MarkEntry(name string) error {
	sym, ok := t.byKey[name]
	if !ok {
		return fmt.Errorf("symbol %q does not exist", name)
	}
	if sym.IsExternal {
		return fmt.Errorf("symbol %q is external and cannot be an entry", name)
	}
	sym.IsEntry = true
	return nil
}

// FinalizeAddresses performs the end-of-pass-1 address finalisation sweep
// described in spec.md §4.3: non-external INSTRUCTION symbols get
// MEM_START added; non-external DIRECTIVE symbols get finalIC+MEM_START
// added (they were recorded relative to DC at definition time).
func (t *Table) FinalizeAddresses(memStart, finalIC uint16) {
	for _, name := range t.order {
		sym := t.byKey[name]
		if sym.IsExternal {
			continue
		}
		switch sym.Segment {
		case Instruction:
			sym.Address += memStart
		case Directive:
			sym.Address += finalIC + memStart
		}
	}
}

// All returns every symbol in insertion order.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byKey[name])
	}
	return out
}

// Entries returns every symbol with IsEntry set, in insertion order.
func (t *Table) Entries() []*Symbol {
	var out []*Symbol
	for _, name := range t.order {
		if sym := t.byKey[name]; sym.IsEntry {
			out = append(out, sym)
		}
	}
	return out
}
