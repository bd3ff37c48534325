package assembler

import (
	"strconv"
	"strings"

	"masm100/assembler/asmerr"
	"masm100/encode"
	"masm100/lexutil"
	"masm100/symtab"
	"masm100/word"
)

const labelSeps = ":\t "
const operatorSeps = ",\t "

// FirstPass implements spec.md §4.3: it walks the expanded source once,
// building the symbol table, laying out code and data, and validating
// syntax and addressing modes. Errors are collected and the pass continues
// to the end; the symbol table's addresses are finalised only once, after
// every line has been processed.
func FirstPass(lines []string, ctx *Context) *asmerr.List {
	errs := &asmerr.List{}
	ctx.IC = 0
	ctx.DC = 0
	ctx.LabelFailures = make(map[int]bool)

	for i, raw := range lines {
		lineNumber := i + 1
		if lexutil.ShouldIgnore(raw) {
			continue
		}
		if err := firstPassLine(raw, lineNumber, ctx); err != nil {
			errs.Add(err)
		}
	}

	ctx.Symbols.FinalizeAddresses(encode.MemStart, ctx.IC)
	return errs
}

func firstPassLine(line string, lineNumber int, ctx *Context) *asmerr.Error {
	tok := lexutil.CopyNextToken(line, labelSeps)
	rest := line
	labelName := ""
	hasLabel := false

	if strings.HasSuffix(tok, ":") {
		if bare := strings.TrimSuffix(tok, ":"); len(bare) > 31 {
			ctx.LabelFailures[lineNumber] = true
			return asmerr.Newf(lineNumber, asmerr.SymbolTooLong, "symbol name too long: %q", bare)
		}
		name, ok := lexutil.IsSymbolName(tok, true)
		if !ok {
			ctx.LabelFailures[lineNumber] = true
			return asmerr.Newf(lineNumber, asmerr.InvalidSymbolSyntax, "invalid symbol name: %q", tok)
		}
		if _, err := ctx.Symbols.Define(name, symtab.Instruction, 0); err != nil {
			ctx.LabelFailures[lineNumber] = true
			return asmerr.Newf(lineNumber, asmerr.SymbolAlreadyExists, "symbol %q already exists", name)
		}
		labelName, hasLabel = name, true

		rest = lexutil.ExtractRemaining(line, labelSeps)
		if lexutil.IsEmptyOrWhitespace(rest) {
			ctx.Symbols.Remove(labelName)
			return asmerr.New(lineNumber, asmerr.SymbolOnly, "label with no instruction or directive")
		}
		tok = lexutil.CopyNextToken(rest, operatorSeps)
	} else {
		tok = lexutil.CopyNextToken(line, operatorSeps)
	}

	rollback := func() {
		if hasLabel {
			ctx.Symbols.Remove(labelName)
		}
	}

	if op, ok := lexutil.FindOperation(tok); ok {
		operandsLine := lexutil.ExtractRemaining(rest, operatorSeps)
		if err := checkCommas(operandsLine, lineNumber); err != nil {
			rollback()
			return err
		}
		if hasLabel {
			sym, _ := ctx.Symbols.Lookup(labelName)
			sym.Segment = symtab.Instruction
			sym.Address = ctx.IC
		}
		if err := firstPassOperation(op, operandsLine, lineNumber, ctx); err != nil {
			rollback()
			return err
		}
		return nil
	}

	if dir, ok := lexutil.FindDirective(tok); ok {
		if hasLabel {
			if dir == lexutil.Entry || dir == lexutil.Extern {
				rollback()
				hasLabel = false
			} else {
				sym, _ := ctx.Symbols.Lookup(labelName)
				sym.Segment = symtab.Directive
				sym.Address = ctx.DC
			}
		}
		operandsLine := lexutil.ExtractRemaining(rest, operatorSeps)
		if err := checkCommas(operandsLine, lineNumber); err != nil {
			rollback()
			return err
		}
		if err := firstPassDirective(dir, operandsLine, lineNumber, ctx); err != nil {
			rollback()
			return err
		}
		return nil
	}

	rollback()
	return asmerr.Newf(lineNumber, asmerr.UndefinedOpDir, "undefined operation or directive: %q", tok)
}

func checkCommas(operandsLine string, lineNumber int) *asmerr.Error {
	if hasLeadingComma(operandsLine) {
		return asmerr.New(lineNumber, asmerr.IllegalComma, "line starts with a comma")
	}
	if hasConsecutiveCommas(operandsLine) {
		return asmerr.New(lineNumber, asmerr.ConsecutiveCommas, "consecutive commas")
	}
	return nil
}

func firstPassOperation(op lexutil.Opcode, operandsLine string, lineNumber int, ctx *Context) *asmerr.Error {
	tokens := parseOperandTokens(operandsLine)
	want := encode.OperandCount(op)
	if len(tokens) != want {
		return asmerr.Newf(lineNumber, asmerr.InvalidOperandCount,
			"%v expects %d operand(s), got %d", op, want, len(tokens))
	}

	var srcMode, destMode = encode.None, encode.None
	switch want {
	case 2:
		var ok1, ok2 bool
		if srcMode, ok1 = encode.DetectMode(tokens[0]); !ok1 {
			return asmerr.Newf(lineNumber, asmerr.InvalidAddressingMode, "invalid operand: %q", tokens[0])
		}
		if destMode, ok2 = encode.DetectMode(tokens[1]); !ok2 {
			return asmerr.Newf(lineNumber, asmerr.InvalidAddressingMode, "invalid operand: %q", tokens[1])
		}
	case 1:
		var ok bool
		if destMode, ok = encode.DetectMode(tokens[0]); !ok {
			return asmerr.Newf(lineNumber, asmerr.InvalidAddressingMode, "invalid operand: %q", tokens[0])
		}
	}

	if !encode.ValidateModes(op, srcMode, destMode) {
		return asmerr.Newf(lineNumber, asmerr.InvalidModeCombination, "invalid addressing-mode combination for %v", op)
	}

	n := encode.AdditionalWordCount(want == 2, srcMode, want >= 1, destMode)
	ctx.Code = append(ctx.Code, encode.EncodeOpcodeWord(op, srcMode, destMode))
	for i := 0; i < n; i++ {
		ctx.Code = append(ctx.Code, 0)
	}
	ctx.IC += uint16(1 + n)
	return nil
}

func firstPassDirective(dir lexutil.Directive, operandsLine string, lineNumber int, ctx *Context) *asmerr.Error {
	switch dir {
	case lexutil.Data:
		return firstPassData(operandsLine, lineNumber, ctx)
	case lexutil.String:
		return firstPassString(operandsLine, lineNumber, ctx)
	case lexutil.Entry:
		_, err := parseSoleSymbolName(operandsLine, lineNumber)
		return err
	case lexutil.Extern:
		name, err := parseSoleSymbolName(operandsLine, lineNumber)
		if err != nil {
			return err
		}
		if _, defErr := ctx.Symbols.DefineExternal(name); defErr != nil {
			return asmerr.Newf(lineNumber, asmerr.SymbolAlreadyExists, "symbol %q already exists", name)
		}
		ctx.ExternExists = true
		return nil
	default:
		return asmerr.New(lineNumber, asmerr.UndefinedOpDir, "unknown directive")
	}
}

func firstPassData(operandsLine string, lineNumber int, ctx *Context) *asmerr.Error {
	tokens := parseOperandTokens(operandsLine)
	if len(tokens) == 0 {
		return asmerr.New(lineNumber, asmerr.DataNotANumber, ".data requires at least one number")
	}
	for _, tok := range tokens {
		if tok == "" {
			return asmerr.New(lineNumber, asmerr.DataExtraneousText, "empty item between commas")
		}
		numTok := lexutil.CopyNextToken(tok, " \t")
		remainder := lexutil.ExtractRemaining(tok, " \t")
		if !lexutil.IsNumber(numTok) {
			return asmerr.Newf(lineNumber, asmerr.DataNotANumber, "not a number: %q", tok)
		}
		if !lexutil.IsEmptyOrWhitespace(remainder) {
			return asmerr.New(lineNumber, asmerr.DataExtraneousText, "extraneous text after number")
		}
		value, _ := strconv.Atoi(numTok)
		ctx.Data = append(ctx.Data, word.Pack(uint16(int16(value)), word.Absolute))
		ctx.DC++
	}
	return nil
}

func firstPassString(operandsLine string, lineNumber int, ctx *Context) *asmerr.Error {
	tok := lexutil.Trim(operandsLine)
	if !lexutil.IsString(tok) {
		return asmerr.Newf(lineNumber, asmerr.StringNotAString, "not a string literal: %q", tok)
	}
	content := tok[1 : len(tok)-1]
	for i := 0; i < len(content); i++ {
		ctx.Data = append(ctx.Data, word.Pack(uint16(content[i]), word.Absolute))
		ctx.DC++
	}
	ctx.Data = append(ctx.Data, word.Pack(0, word.Absolute))
	ctx.DC++
	return nil
}

func parseSoleSymbolName(operandsLine string, lineNumber int) (string, *asmerr.Error) {
	tok := lexutil.Trim(operandsLine)
	nameTok := lexutil.CopyNextToken(tok, " \t")
	remainder := lexutil.ExtractRemaining(tok, " \t")
	if nameTok == "" {
		return "", asmerr.New(lineNumber, asmerr.InvalidSymbolSyntax, "missing symbol name")
	}
	if !lexutil.IsEmptyOrWhitespace(remainder) {
		return "", asmerr.New(lineNumber, asmerr.InvalidSymbolSyntax, "extraneous text after symbol name")
	}
	if len(nameTok) > 31 {
		return "", asmerr.Newf(lineNumber, asmerr.SymbolTooLong, "symbol name too long: %q", nameTok)
	}
	name, ok := lexutil.IsSymbolName(nameTok, false)
	if !ok {
		return "", asmerr.Newf(lineNumber, asmerr.InvalidSymbolSyntax, "invalid symbol name: %q", nameTok)
	}
	return name, nil
}
