package preprocess_test

import (
	"strings"
	"testing"

	"masm100/preprocess"
)

func TestExpandsMacroInvocation(t *testing.T) {
	src := []string{
		"mcro INIT",
		"\tmov #0, @r1",
		"\tclr @r2",
		"endmcro",
		"\tINIT",
		"\tstop",
	}

	p := preprocess.New()
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	want := []string{
		"\tmov #0, @r1",
		"\tclr @r2",
		"\tstop",
	}
	if len(out) != len(want) {
		t.Fatalf("Process() = %#v, want %#v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, out[i], want[i])
		}
	}
}

func TestLinesOutsideMacroPassThroughUnchanged(t *testing.T) {
	src := []string{"MAIN:\tmov #1, @r1", "\tstop"}
	p := preprocess.New()
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(out) != 2 || out[0] != src[0] || out[1] != src[1] {
		t.Errorf("Process() = %#v, want unchanged %#v", out, src)
	}
}

func TestMcroMissingNameFails(t *testing.T) {
	p := preprocess.New()
	if _, err := p.Process([]string{"mcro"}); err == nil {
		t.Errorf("expected error for mcro with no name")
	}
}

func TestMcroExtraneousTextFails(t *testing.T) {
	p := preprocess.New()
	if _, err := p.Process([]string{"mcro INIT extra"}); err == nil {
		t.Errorf("expected error for extraneous text after macro name")
	}
}

func TestMcroInvalidNameFails(t *testing.T) {
	p := preprocess.New()
	if _, err := p.Process([]string{"mcro mov"}); err == nil {
		t.Errorf("expected error defining a macro named after a reserved opcode")
	}
}

func TestEndmcroExtraneousTextFails(t *testing.T) {
	p := preprocess.New()
	lines := []string{"mcro INIT", "\tstop", "endmcro junk"}
	if _, err := p.Process(lines); err == nil {
		t.Errorf("expected error for extraneous text after endmcro")
	}
}

func TestDuplicateMacroNameFails(t *testing.T) {
	p := preprocess.New()
	lines := []string{
		"mcro INIT", "\tstop", "endmcro",
		"mcro INIT", "\tstop", "endmcro",
	}
	if _, err := p.Process(lines); err == nil {
		t.Errorf("expected error redefining macro INIT")
	}
}

func TestMacrosAvailableAfterProcess(t *testing.T) {
	p := preprocess.New()
	p.Process([]string{"mcro INIT", "\tstop", "endmcro"})
	if _, ok := p.Macros().Lookup("INIT"); !ok {
		t.Errorf("expected macro table to retain INIT after Process")
	}
}

func TestMacroBodyPreservesRawWhitespace(t *testing.T) {
	p := preprocess.New()
	lines := []string{"mcro M", "    mov #1, @r1", "endmcro", "M"}
	out, err := p.Process(lines)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(out) != 1 || !strings.HasPrefix(out[0], "    ") {
		t.Errorf("Process() = %#v, want body line with original indentation preserved", out)
	}
}
