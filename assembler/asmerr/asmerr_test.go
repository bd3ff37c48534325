package asmerr_test

import (
	"strings"
	"testing"

	"masm100/assembler/asmerr"
)

func TestErrorFormattingWithLine(t *testing.T) {
	err := asmerr.New(12, asmerr.SymbolTooLong, "symbol exceeds 31 characters")
	want := "line 12: symbol exceeds 31 characters"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorFormattingWithoutLine(t *testing.T) {
	err := asmerr.New(0, asmerr.NotEnoughParams, "usage: masm100 file...")
	want := "usage: masm100 file..."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := asmerr.Newf(3, asmerr.MacroNameInvalid, "invalid macro name: %q", "mov")
	if !strings.Contains(err.Error(), `"mov"`) {
		t.Errorf("Error() = %q, want it to contain the quoted name", err.Error())
	}
}

func TestListAccumulatesAndReportsAll(t *testing.T) {
	var list asmerr.List
	if list.HasErrors() {
		t.Fatalf("empty list should report HasErrors() == false")
	}

	list.Add(asmerr.New(1, asmerr.UndefinedOpDir, "undefined operation"))
	list.Add(asmerr.New(2, asmerr.IllegalComma, "illegal comma"))

	if !list.HasErrors() {
		t.Fatalf("list should report HasErrors() == true after Add")
	}
	if len(list.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(list.Errors))
	}

	joined := list.Error()
	if !strings.Contains(joined, "line 1:") || !strings.Contains(joined, "line 2:") {
		t.Errorf("Error() = %q, want both lines represented", joined)
	}
}
