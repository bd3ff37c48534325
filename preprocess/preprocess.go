// Package preprocess implements the assembler's macro preprocessor
// (spec.md §4.2): it scans a source file line by line, captures
// user-defined macro bodies, and expands invocations into an expanded
// source stream consumed by both assembly passes.
package preprocess

import (
	"fmt"

	"masm100/assembler/asmerr"
	"masm100/lexutil"
	"masm100/macro"
)

// wordSeps separates the leading token (mcro/endmcro/macro name) from the
// rest of a preprocessor control line.
const wordSeps = " \t"

// Preprocessor holds the state needed to scan a source file for macro
// definitions and invocations: the macro table being built, a pointer to
// the macro currently being captured, and whether capture is in progress.
type Preprocessor struct {
	macros      *macro.Table
	current     *macro.Macro
	insideMacro bool
	lineNumber  int
}

// New creates a Preprocessor with an empty macro table.
func New() *Preprocessor {
	return &Preprocessor{macros: macro.New()}
}

// Macros returns the macro table built up so far.
func (p *Preprocessor) Macros() *macro.Table {
	return p.macros
}

// Process scans lines and returns the expanded source stream. Any error
// aborts preprocessing immediately; per spec.md §4.2 the caller must treat
// a non-nil error as meaning the partially-expanded stream does not exist.
func (p *Preprocessor) Process(lines []string) ([]string, error) {
	var expanded []string
	p.lineNumber = 0

	for _, raw := range lines {
		p.lineNumber++
		trimmed := lexutil.Trim(raw)
		firstTok := lexutil.CopyNextToken(trimmed, wordSeps)
		rest := lexutil.ExtractRemaining(trimmed, wordSeps)

		switch {
		case firstTok == "mcro":
			if err := p.beginMacro(rest); err != nil {
				return nil, err
			}

		case p.insideMacro && firstTok == "endmcro":
			if !lexutil.IsEmptyOrWhitespace(rest) {
				return nil, asmerr.New(p.lineNumber, asmerr.MacroExtraneousText,
					"extraneous text after endmcro")
			}
			p.current = nil
			p.insideMacro = false

		case p.insideMacro:
			p.current.Body = append(p.current.Body, raw)

		default:
			if m, ok := p.macros.Lookup(trimmed); ok {
				expanded = append(expanded, m.Body...)
			} else {
				expanded = append(expanded, raw)
			}
		}
	}

	return expanded, nil
}

func (p *Preprocessor) beginMacro(rest string) error {
	nameTok := lexutil.CopyNextToken(rest, wordSeps)
	afterName := lexutil.ExtractRemaining(rest, wordSeps)

	if nameTok == "" {
		return asmerr.New(p.lineNumber, asmerr.MacroNameMissing, "mcro requires a macro name")
	}
	if !lexutil.IsEmptyOrWhitespace(afterName) {
		return asmerr.New(p.lineNumber, asmerr.MacroExtraneousText, "extraneous text after macro name")
	}

	name, ok := lexutil.IsSymbolName(nameTok, false)
	if !ok {
		return asmerr.Newf(p.lineNumber, asmerr.MacroNameInvalid, "invalid macro name: %q", nameTok)
	}

	m, err := p.macros.DefineEmpty(name)
	if err != nil {
		return asmerr.New(p.lineNumber, asmerr.MacroAlreadyDefined, fmt.Sprintf("macro %q already defined", name))
	}
	p.current = m
	p.insideMacro = true
	return nil
}
