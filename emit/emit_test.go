package emit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masm100/assembler"
	"masm100/emit"
	"masm100/word"
)

func TestWriteObjectHeaderAndWords(t *testing.T) {
	lines := []string{
		"MAIN:   mov @r3, @r4",
		"        stop",
	}
	ctx := assembler.NewContext()
	require.False(t, assembler.FirstPass(lines, ctx).HasErrors())
	require.False(t, assembler.SecondPass(lines, ctx).HasErrors())

	var buf bytes.Buffer
	require.NoError(t, emit.WriteObject(&buf, ctx, word.Alphabet))

	out := buf.String()
	assert.Contains(t, out, "3\t0\n")

	rows := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, rows, 4, "header plus 3 code words")
	for _, row := range rows[1:] {
		assert.Len(t, row, 2, "each word renders as exactly two base-64 characters")
	}
}

func TestWriteEntriesOnlyListsEntrySymbols(t *testing.T) {
	lines := []string{
		"X:      .data 1",
		"        .entry X",
	}
	ctx := assembler.NewContext()
	require.False(t, assembler.FirstPass(lines, ctx).HasErrors())
	require.False(t, assembler.SecondPass(lines, ctx).HasErrors())
	require.True(t, ctx.EntryExists)

	var buf bytes.Buffer
	require.NoError(t, emit.WriteEntries(&buf, ctx))
	assert.Equal(t, "X\t100\n", buf.String())
}

func TestWriteExternsRecordsEachReference(t *testing.T) {
	lines := []string{
		"        .extern EXT",
		"        jmp EXT",
		"        stop",
	}
	ctx := assembler.NewContext()
	require.False(t, assembler.FirstPass(lines, ctx).HasErrors())
	require.False(t, assembler.SecondPass(lines, ctx).HasErrors())
	require.True(t, ctx.ExternExists)

	var buf bytes.Buffer
	require.NoError(t, emit.WriteExterns(&buf, ctx))
	assert.Equal(t, "EXT\t101\n", buf.String())
}

func TestFileNamesDerivedFromBaseName(t *testing.T) {
	names := emit.FileNames("program")
	assert.Equal(t, "program.ob", names.Object)
	assert.Equal(t, "program.ent", names.Entries)
	assert.Equal(t, "program.ext", names.Externs)
}
