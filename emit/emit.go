// Package emit writes the three output artifacts (spec.md §4.6): the
// object file, the entries file, and the externals file. Grounded on the
// teacher's loader.LoadProgramIntoVM "walk the finalised program and
// segment tables, write sequentially" shape, repurposed: the teacher loads
// words into a running VM's memory, this package instead serialises words
// to text streams, since no VM exists in this domain.
package emit

import (
	"fmt"
	"io"
	"os"

	"masm100/assembler"
	"masm100/config"
	"masm100/word"
)

// Artifacts names the three output files produced for one assembled
// source, derived from its base name per spec.md §6.
type Artifacts struct {
	Object  string
	Entries string
	Externs string
}

// FileNames derives the three artifact paths for baseName.
func FileNames(baseName string) Artifacts {
	return Artifacts{
		Object:  baseName + ".ob",
		Entries: baseName + ".ent",
		Externs: baseName + ".ext",
	}
}

// WriteAll writes the object artifact always, and the entries/externs
// artifacts only when ctx.EntryExists/ctx.ExternExists, per spec.md §4.6.
// cfg's [Output] section selects the base-64 alphabet and can individually
// suppress each artifact kind.
func WriteAll(baseName string, ctx *assembler.Context, cfg *config.Config) error {
	names := FileNames(baseName)
	alphabet := cfg.Output.Base64Alphabet
	if alphabet == "" {
		alphabet = word.Alphabet
	}

	if cfg.Output.WriteObject {
		if err := writeFile(names.Object, func(w io.Writer) error {
			return WriteObject(w, ctx, alphabet)
		}); err != nil {
			return err
		}
	}

	if cfg.Output.WriteEntries && ctx.EntryExists {
		if err := writeFile(names.Entries, func(w io.Writer) error {
			return WriteEntries(w, ctx)
		}); err != nil {
			return err
		}
	}

	if cfg.Output.WriteExterns && ctx.ExternExists {
		if err := writeFile(names.Externs, func(w io.Writer) error {
			return WriteExterns(w, ctx)
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) // #nosec G304 -- path is derived from a user-supplied base name
	if err != nil {
		return fmt.Errorf("emit: cannot create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

// WriteObject renders the object artifact: a header line "<IC>\t<DC>"
// followed by one two-character base-64 word per line, code words first
// then data words, in segment order.
func WriteObject(w io.Writer, ctx *assembler.Context, alphabet string) error {
	if _, err := fmt.Fprintf(w, "%d\t%d\n", len(ctx.Code), len(ctx.Data)); err != nil {
		return err
	}
	for _, c := range ctx.Code {
		if _, err := fmt.Fprintln(w, word.Encode(c, alphabet)); err != nil {
			return err
		}
	}
	for _, d := range ctx.Data {
		if _, err := fmt.Fprintln(w, word.Encode(d, alphabet)); err != nil {
			return err
		}
	}
	return nil
}

// WriteEntries renders one "<name>\t<address>" line per entry symbol, in
// insertion order.
func WriteEntries(w io.Writer, ctx *assembler.Context) error {
	for _, sym := range ctx.Symbols.Entries() {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", sym.Name, sym.Address); err != nil {
			return err
		}
	}
	return nil
}

// WriteExterns renders one "<name>\t<address>" line per external-reference
// record, in the order the references were recorded during the second
// pass. Multiple references to the same external symbol produce multiple
// lines; this duplication is by design (spec.md §9).
func WriteExterns(w io.Writer, ctx *assembler.Context) error {
	for _, ref := range ctx.Externs {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", ref.Symbol, ref.Address); err != nil {
			return err
		}
	}
	return nil
}
