// Package assembler implements the per-file two-pass assembly pipeline
// (spec.md §4.3/§4.4): the first pass builds the symbol table and lays out
// code/data, the second pass resolves operands into the remaining words.
// Grounded on the teacher's parser.Parser.firstPass/Parse control flow,
// restructured around a per-file Context in place of the original C
// program's process-wide globals (spec.md §9).
package assembler

import (
	"masm100/encode"
	"masm100/symtab"
	"masm100/word"
)

// Context carries every piece of mutable assembly state for one source
// file: instruction/data counters, the symbol table, the laid-out code and
// data segments, and the externals recorded during the second pass. It
// replaces the original C program's globals (ic, dc, line_num,
// symbol_table, is_entry_exists, is_extern_exists) with a single
// per-file value threaded explicitly through both passes and the emitter;
// line numbers are derived from each pass's own line index instead.
type Context struct {
	IC uint16
	DC uint16

	Symbols *symtab.Table
	Code    []word.Word
	Data    []word.Word
	Externs []encode.ExternalRef

	EntryExists  bool
	ExternExists bool

	// LabelFailures records, by 1-based line number, every line on which
	// FirstPass rejected the line's label (too long, invalid syntax, or a
	// duplicate definition) before ever reaching opcode/directive dispatch —
	// so no code words were reserved for it, however opcode-shaped the rest
	// of the line might look. SecondPass consults this to skip such a line
	// entirely rather than index past the words FirstPass actually laid
	// down for subsequent lines.
	LabelFailures map[int]bool
}

// NewContext creates an empty Context ready for a first pass.
func NewContext() *Context {
	return &Context{Symbols: symtab.New(), LabelFailures: make(map[int]bool)}
}
