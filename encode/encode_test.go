package encode_test

import (
	"testing"

	"masm100/encode"
	"masm100/lexutil"
	"masm100/symtab"
)

func TestDetectMode(t *testing.T) {
	cases := []struct {
		tok  string
		want encode.Mode
		ok   bool
	}{
		{"5", encode.Immediate, true},
		{"-3", encode.Immediate, true},
		{"@r0", encode.RegDirect, true},
		{"@r7", encode.RegDirect, true},
		{"LABEL", encode.Direct, true},
		{"@r8", encode.None, false},
		{"", encode.None, false},
	}
	for _, c := range cases {
		got, ok := encode.DetectMode(c.tok)
		if got != c.want || ok != c.ok {
			t.Errorf("DetectMode(%q) = (%v, %v), want (%v, %v)", c.tok, got, ok, c.want, c.ok)
		}
	}
}

func TestOperandCount(t *testing.T) {
	cases := map[lexutil.Opcode]int{
		lexutil.Mov:  2,
		lexutil.Lea:  2,
		lexutil.Jmp:  1,
		lexutil.Prn:  1,
		lexutil.Rts:  0,
		lexutil.Stop: 0,
	}
	for op, want := range cases {
		if got := encode.OperandCount(op); got != want {
			t.Errorf("OperandCount(%v) = %d, want %d", op, got, want)
		}
	}
}

func TestValidateModes(t *testing.T) {
	if !encode.ValidateModes(lexutil.Mov, encode.Immediate, encode.Direct) {
		t.Errorf("mov immediate,direct should be valid")
	}
	if encode.ValidateModes(lexutil.Mov, encode.Immediate, encode.Immediate) {
		t.Errorf("mov with immediate destination should be invalid")
	}
	if !encode.ValidateModes(lexutil.Lea, encode.Direct, encode.RegDirect) {
		t.Errorf("lea direct,regdirect should be valid")
	}
	if encode.ValidateModes(lexutil.Lea, encode.Immediate, encode.RegDirect) {
		t.Errorf("lea with immediate source should be invalid")
	}
	if !encode.ValidateModes(lexutil.Jmp, encode.None, encode.Direct) {
		t.Errorf("jmp direct should be valid")
	}
	if !encode.ValidateModes(lexutil.Cmp, encode.Immediate, encode.Immediate) {
		t.Errorf("cmp permits all mode combinations")
	}
	if !encode.ValidateModes(lexutil.Rts, encode.None, encode.None) {
		t.Errorf("rts with no operands should be valid")
	}
	if encode.ValidateModes(lexutil.Rts, encode.None, encode.Direct) {
		t.Errorf("rts with an operand should be invalid")
	}
}

func TestEncodeOpcodeWord(t *testing.T) {
	w := encode.EncodeOpcodeWord(lexutil.Mov, encode.Immediate, encode.Direct)
	if w.AREBits() != 0 {
		t.Errorf("opcode word ARE = %v, want Absolute", w.AREBits())
	}
	value := w.Value()
	wantDest := uint16(encode.Direct)
	wantOp := uint16(lexutil.Mov) << 3
	wantSrc := uint16(encode.Immediate) << 7
	if value != wantSrc|wantOp|wantDest {
		t.Errorf("opcode word value = %#b, want %#b", value, wantSrc|wantOp|wantDest)
	}
}

func TestEncodeOpcodeWordZeroOperand(t *testing.T) {
	w := encode.EncodeOpcodeWord(lexutil.Stop, encode.None, encode.None)
	wantOp := uint16(lexutil.Stop) << 3
	if w.Value() != wantOp {
		t.Errorf("stop opcode word value = %#b, want %#b", w.Value(), wantOp)
	}
}

func TestAdditionalWordCount(t *testing.T) {
	if got := encode.AdditionalWordCount(true, encode.RegDirect, true, encode.RegDirect); got != 1 {
		t.Errorf("two reg-direct operands should share one word, got %d", got)
	}
	if got := encode.AdditionalWordCount(true, encode.Immediate, true, encode.Direct); got != 2 {
		t.Errorf("immediate+direct should need two words, got %d", got)
	}
	if got := encode.AdditionalWordCount(false, encode.None, true, encode.Direct); got != 1 {
		t.Errorf("single destination operand should need one word, got %d", got)
	}
	if got := encode.AdditionalWordCount(false, encode.None, false, encode.None); got != 0 {
		t.Errorf("no operands should need zero words, got %d", got)
	}
}

func TestEncodeSharedRegDirect(t *testing.T) {
	w := encode.EncodeSharedRegDirect(3, 5)
	if w.Value() != (3<<5)|5 {
		t.Errorf("shared reg-direct value = %#b, want %#b", w.Value(), (3<<5)|5)
	}
}

func TestEncodeDirectExternalRecordsReference(t *testing.T) {
	st := symtab.New()
	sym, _ := st.DefineExternal("EXT")

	w, ref := encode.EncodeDirect(sym, 1)
	if w.AREBits() != 1 {
		t.Errorf("external direct word ARE = %v, want External", w.AREBits())
	}
	if w.Value() != 0 {
		t.Errorf("external direct word value = %d, want 0", w.Value())
	}
	if ref == nil || ref.Symbol != "EXT" || ref.Address != 101 {
		t.Errorf("ExternalRef = %+v, want {EXT 101}", ref)
	}
}

func TestEncodeDirectRelocatable(t *testing.T) {
	st := symtab.New()
	sym, _ := st.Define("LABEL", symtab.Instruction, 0)
	sym.Address = 103

	w, ref := encode.EncodeDirect(sym, 0)
	if ref != nil {
		t.Errorf("relocatable direct reference should not produce an ExternalRef, got %+v", ref)
	}
	if w.AREBits() != 2 {
		t.Errorf("relocatable direct word ARE = %v, want Relocatable", w.AREBits())
	}
	if w.Value() != 103 {
		t.Errorf("relocatable direct word value = %d, want 103", w.Value())
	}
}
