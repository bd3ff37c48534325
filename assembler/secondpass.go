package assembler

import (
	"strconv"
	"strings"

	"masm100/assembler/asmerr"
	"masm100/encode"
	"masm100/lexutil"
	"masm100/word"
)

// SecondPass implements spec.md §4.4: it re-walks the expanded source,
// resolving operand symbols into the remaining words reserved by
// FirstPass, recording external-reference sites, and resolving `.entry`
// directives against the finalised symbol table.
func SecondPass(lines []string, ctx *Context) *asmerr.List {
	errs := &asmerr.List{}
	ctx.IC = 0
	ctx.Externs = nil

	for i, raw := range lines {
		lineNumber := i + 1
		if lexutil.ShouldIgnore(raw) {
			continue
		}
		if ctx.LabelFailures[lineNumber] {
			// FirstPass rejected this line's label before ever reaching
			// opcode/directive dispatch, so it reserved no code words for
			// it regardless of what the rest of the line looks like.
			// Re-processing it here would write past the words FirstPass
			// actually laid down for every line that follows.
			continue
		}

		tok := lexutil.CopyNextToken(raw, labelSeps)
		rest := raw
		if strings.HasSuffix(tok, ":") {
			rest = lexutil.ExtractRemaining(raw, labelSeps)
			tok = lexutil.CopyNextToken(rest, operatorSeps)
		} else {
			tok = lexutil.CopyNextToken(raw, operatorSeps)
		}
		operandsLine := lexutil.ExtractRemaining(rest, operatorSeps)

		if op, ok := lexutil.FindOperation(tok); ok {
			n, err := secondPassOperation(op, operandsLine, lineNumber, ctx.IC, ctx)
			ctx.IC += n
			if err != nil {
				errs.Add(err)
			}
			continue
		}

		if dir, ok := lexutil.FindDirective(tok); ok && dir == lexutil.Entry {
			name := lexutil.Trim(operandsLine)
			sym, ok := ctx.Symbols.Lookup(name)
			switch {
			case !ok:
				errs.Add(asmerr.Newf(lineNumber, asmerr.EntryNotFound, "entry symbol not found: %q", name))
			case sym.IsExternal:
				errs.Add(asmerr.Newf(lineNumber, asmerr.EntryCannotBeExtern, "entry symbol %q is external", name))
			default:
				ctx.Symbols.MarkEntry(name)
				ctx.EntryExists = true
			}
		}
		// .data, .string, and .extern are no-ops in the second pass.
	}

	return errs
}

// secondPassOperation resolves the operand words for one opcode line. It
// returns the total word count (opcode word + operands) so the caller's IC
// stays aligned with the slots FirstPass reserved in ctx.Code. FirstPass
// only reserves those slots once a line passes its own operand-count and
// mode-combination checks (firstPassOperation returns before appending
// anything on either failure), so this must mirror that exactly: a count or
// mode-combination failure here reports 0 words and no error (FirstPass has
// already reported it), and only a resolution failure past that point (e.g.
// an undefined DIRECT symbol) reports the full reserved count, since
// FirstPass already laid those slots down.
func secondPassOperation(op lexutil.Opcode, operandsLine string, lineNumber int, ic uint16, ctx *Context) (uint16, *asmerr.Error) {
	tokens := parseOperandTokens(operandsLine)
	want := encode.OperandCount(op)
	if len(tokens) != want {
		return 0, nil
	}

	var srcMode, destMode = encode.None, encode.None
	var srcTok, destTok string
	switch want {
	case 2:
		srcMode, _ = encode.DetectMode(tokens[0])
		destMode, _ = encode.DetectMode(tokens[1])
		srcTok, destTok = tokens[0], tokens[1]
	case 1:
		destMode, _ = encode.DetectMode(tokens[0])
		destTok = tokens[0]
	}

	if !encode.ValidateModes(op, srcMode, destMode) {
		return 0, nil
	}

	hasSrc, hasDest := want == 2, want >= 1
	n := encode.AdditionalWordCount(hasSrc, srcMode, hasDest, destMode)
	total := uint16(1 + n)

	pos := ic + 1
	if hasSrc && hasDest && srcMode == encode.RegDirect && destMode == encode.RegDirect {
		srcReg, _ := lexutil.IsRegister(srcTok)
		destReg, _ := lexutil.IsRegister(destTok)
		ctx.Code[pos] = encode.EncodeSharedRegDirect(srcReg, destReg)
		return total, nil
	}

	if hasSrc {
		w, ref, err := resolveOperandWord(srcMode, srcTok, true, pos, lineNumber, ctx)
		if err != nil {
			return total, err
		}
		ctx.Code[pos] = w
		if ref != nil {
			ctx.Externs = append(ctx.Externs, *ref)
		}
		pos++
	}
	if hasDest {
		w, ref, err := resolveOperandWord(destMode, destTok, false, pos, lineNumber, ctx)
		if err != nil {
			return total, err
		}
		ctx.Code[pos] = w
		if ref != nil {
			ctx.Externs = append(ctx.Externs, *ref)
		}
	}
	return total, nil
}

func resolveOperandWord(mode encode.Mode, tok string, isSource bool, pos uint16, lineNumber int, ctx *Context) (word.Word, *encode.ExternalRef, *asmerr.Error) {
	switch mode {
	case encode.Immediate:
		value, _ := strconv.Atoi(tok)
		return encode.EncodeImmediate(value), nil, nil
	case encode.RegDirect:
		reg, _ := lexutil.IsRegister(tok)
		if isSource {
			return encode.EncodeSourceRegDirect(reg), nil, nil
		}
		return encode.EncodeDestRegDirect(reg), nil, nil
	case encode.Direct:
		sym, ok := ctx.Symbols.Lookup(tok)
		if !ok {
			return 0, nil, asmerr.Newf(lineNumber, asmerr.UndefinedDirectReference, "undefined symbol: %q", tok)
		}
		w, ref := encode.EncodeDirect(sym, pos)
		return w, ref, nil
	default:
		return 0, nil, asmerr.New(lineNumber, asmerr.InvalidAddressingMode, "invalid operand")
	}
}
