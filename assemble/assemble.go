// Package assemble glues the preprocessor, both assembly passes, and the
// output emitter into the single per-file entry point spec.md §6
// describes, in the teacher's main.go-picks-the-file / library-does-the-work
// style (compare the teacher's main.go call into loader.LoadProgramIntoVM).
package assemble

import (
	"os"
	"strings"

	"masm100/assembler"
	"masm100/assembler/asmerr"
	"masm100/config"
	"masm100/emit"
	"masm100/preprocess"
)

// Result carries the outcome of assembling one source file.
type Result struct {
	BaseName string
	Errors   *asmerr.List
	Context  *assembler.Context
}

// Success reports whether the file produced no pass-1/pass-2 errors and
// its artifacts (if any were requested) were written.
func (r *Result) Success() bool {
	return r.Errors == nil || !r.Errors.HasErrors()
}

// AssembleFile runs the full pipeline for one source file, named by its
// base name (without the .as extension): preprocess -> write .am -> first
// pass -> second pass -> emit artifacts. A preprocessor failure deletes any
// partial .am output (spec.md §4.2/§5) and aborts the file.
func AssembleFile(baseName string, cfg *config.Config) *Result {
	srcPath := baseName + ".as"

	raw, err := os.ReadFile(srcPath) // #nosec G304 -- path is derived from a user-supplied base name
	if err != nil {
		return fileError(baseName, "cannot read %s: %v", srcPath, err)
	}
	lines := splitLines(string(raw))

	pp := preprocess.New()
	expanded, err := pp.Process(lines)
	if err != nil {
		os.Remove(baseName + ".am")
		errs := &asmerr.List{}
		if ppErr, ok := err.(*asmerr.Error); ok {
			errs.Add(ppErr)
		} else {
			errs.Add(asmerr.New(0, asmerr.FileIO, err.Error()))
		}
		return &Result{BaseName: baseName, Errors: errs}
	}

	amPath := baseName + ".am"
	if err := os.WriteFile(amPath, []byte(strings.Join(expanded, "\n")+"\n"), 0600); err != nil {
		return fileError(baseName, "cannot write %s: %v", amPath, err)
	}

	ctx := assembler.NewContext()
	errs := assembler.FirstPass(expanded, ctx)
	secondErrs := assembler.SecondPass(expanded, ctx)
	errs.Errors = append(errs.Errors, secondErrs.Errors...)

	result := &Result{BaseName: baseName, Errors: errs, Context: ctx}
	if errs.HasErrors() {
		return result
	}

	if err := emit.WriteAll(baseName, ctx, cfg); err != nil {
		errs.Add(asmerr.New(0, asmerr.FileIO, err.Error()))
	}
	return result
}

func fileError(baseName, format string, args ...any) *Result {
	errs := &asmerr.List{}
	errs.Add(asmerr.Newf(0, asmerr.FileIO, format, args...))
	return &Result{BaseName: baseName, Errors: errs}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
