// Package encode implements the instruction-encoding layer shared by both
// assembly passes (spec.md §4.5): addressing-mode detection, operand-count
// and mode-combination validation, opcode-word bit-packing, and operand-word
// encoding. Grounded on the teacher's encoder.Encoder mnemonic-dispatch
// shape, adapted from ARM's 32-bit/multi-condition-code instructions to
// this ISA's 12-bit, three-addressing-mode world.
package encode

import (
	"masm100/lexutil"
	"masm100/symtab"
	"masm100/word"
)

// Mode is an addressing mode. Values are the exact wire-visible encodings
// from spec.md §4.5 and are never renumbered.
type Mode int

const (
	None      Mode = -1
	Immediate Mode = 1
	Direct    Mode = 3
	RegDirect Mode = 5
)

// MemStart is the base address (spec.md §3/§6) that absolute addresses and
// external-reference sites are offset by.
const MemStart uint16 = 100

// ExternalRef records one DIRECT-mode reference to an external symbol,
// recorded in the order it is encountered during pass 2.
type ExternalRef struct {
	Symbol  string
	Address uint16
}

// DetectMode classifies an operand token by shape alone, per spec.md §4.5:
// a number is IMMEDIATE, @r0..@r7 is REG_DIRECT, a bare valid symbol name is
// DIRECT. Anything else is invalid.
func DetectMode(tok string) (Mode, bool) {
	if lexutil.IsNumber(tok) {
		return Immediate, true
	}
	if _, ok := lexutil.IsRegister(tok); ok {
		return RegDirect, true
	}
	if _, ok := lexutil.IsSymbolName(tok, false); ok {
		return Direct, true
	}
	return None, false
}

// OperandCount returns how many operands op takes: 0, 1, or 2.
func OperandCount(op lexutil.Opcode) int {
	switch op {
	case lexutil.Mov, lexutil.Cmp, lexutil.Add, lexutil.Sub, lexutil.Lea:
		return 2
	case lexutil.Not, lexutil.Clr, lexutil.Inc, lexutil.Dec, lexutil.Jmp,
		lexutil.Bne, lexutil.Red, lexutil.Prn, lexutil.Jsr:
		return 1
	default:
		return 0
	}
}

var sourceModes = []Mode{Immediate, Direct, RegDirect}
var destOnlyModes = []Mode{Direct, RegDirect}
var allModes = []Mode{Immediate, Direct, RegDirect}

func contains(modes []Mode, m Mode) bool {
	for _, want := range modes {
		if want == m {
			return true
		}
	}
	return false
}

// ValidateModes checks src/dest against the mode-combination table of
// spec.md §4.5. For one-operand instructions src must be None; for
// zero-operand instructions both must be None.
func ValidateModes(op lexutil.Opcode, src, dest Mode) bool {
	switch op {
	case lexutil.Mov, lexutil.Add, lexutil.Sub:
		return contains(sourceModes, src) && contains(destOnlyModes, dest)
	case lexutil.Lea:
		return src == Direct && contains(destOnlyModes, dest)
	case lexutil.Not, lexutil.Clr, lexutil.Inc, lexutil.Dec, lexutil.Jmp,
		lexutil.Bne, lexutil.Red, lexutil.Jsr:
		return src == None && contains(destOnlyModes, dest)
	case lexutil.Cmp:
		return contains(allModes, src) && contains(allModes, dest)
	case lexutil.Prn:
		return src == None && contains(allModes, dest)
	case lexutil.Rts, lexutil.Stop:
		return src == None && dest == None
	default:
		return false
	}
}

func modeField(m Mode) uint16 {
	if m == None {
		return 0
	}
	return uint16(m)
}

// EncodeOpcodeWord packs the first (opcode) word: [src_mode:3][opcode:4]
// [dest_mode:3] above the 2-bit ARE tag, which is always ABSOLUTE.
func EncodeOpcodeWord(op lexutil.Opcode, src, dest Mode) word.Word {
	value := (modeField(src) << 7) | (uint16(op) << 3) | modeField(dest)
	return word.Pack(value, word.Absolute)
}

// AdditionalWordCount returns how many operand words follow the opcode
// word: one per present operand, except that two REG_DIRECT operands share
// a single word.
func AdditionalWordCount(hasSrc bool, src Mode, hasDest bool, dest Mode) int {
	if hasSrc && hasDest && src == RegDirect && dest == RegDirect {
		return 1
	}
	count := 0
	if hasSrc {
		count++
	}
	if hasDest {
		count++
	}
	return count
}

// EncodeImmediate packs an IMMEDIATE operand word: the numeric value,
// ARE = ABSOLUTE.
func EncodeImmediate(value int) word.Word {
	return word.Pack(uint16(int16(value)), word.Absolute)
}

// EncodeSourceRegDirect packs a REG_DIRECT source operand that does not
// share its word with a REG_DIRECT destination: the register number
// shifted left by 5, ARE = ABSOLUTE.
func EncodeSourceRegDirect(reg int) word.Word {
	return word.Pack(uint16(reg)<<5, word.Absolute)
}

// EncodeDestRegDirect packs a REG_DIRECT destination operand that does not
// share its word with a REG_DIRECT source: the register number in the low
// bits, ARE = ABSOLUTE.
func EncodeDestRegDirect(reg int) word.Word {
	return word.Pack(uint16(reg), word.Absolute)
}

// EncodeSharedRegDirect packs the single word shared by a REG_DIRECT source
// and a REG_DIRECT destination: (srcReg<<5)|destReg, ARE = ABSOLUTE.
func EncodeSharedRegDirect(srcReg, destReg int) word.Word {
	return word.Pack((uint16(srcReg)<<5)|uint16(destReg), word.Absolute)
}

// EncodeDirect packs a DIRECT operand word by resolving sym. If sym is
// external, the value field is 0, ARE = EXTERNAL, and a non-nil
// ExternalRef is returned recording the reference site at ic+MemStart.
// Otherwise the value field is the symbol's finalised address, ARE =
// RELOCATABLE, and the returned ExternalRef is nil.
func EncodeDirect(sym *symtab.Symbol, ic uint16) (word.Word, *ExternalRef) {
	if sym.IsExternal {
		ref := &ExternalRef{Symbol: sym.Name, Address: ic + MemStart}
		return word.Pack(0, word.External), ref
	}
	return word.Pack(sym.Address, word.Relocatable), nil
}
