// Package lexutil provides the small, stateless lexical helpers shared by
// the preprocessor and both assembly passes: whitespace trimming, the
// separator-driven token extraction contract, and the closed-vocabulary
// classifiers (registers, numbers, strings, symbol names, opcodes,
// directives).
package lexutil

import (
	"strings"
)

// Trim removes leading and trailing whitespace from both ends of s.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// SkipLeadingWhitespace returns s with leading spaces and tabs removed.
func SkipLeadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

// TrimTrailingWhitespace returns s with trailing spaces, tabs, and newline
// characters removed.
func TrimTrailingWhitespace(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}

// IsEmptyOrWhitespace reports whether s contains nothing but whitespace.
func IsEmptyOrWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ShouldIgnore reports whether a source line should be skipped entirely: it
// is blank, or its first non-whitespace character is a comment marker ';'.
func ShouldIgnore(line string) bool {
	trimmed := SkipLeadingWhitespace(line)
	if IsEmptyOrWhitespace(trimmed) {
		return true
	}
	return trimmed[0] == ';'
}

// CopyNextToken skips leading whitespace in src, then copies characters up
// to the first character in seps (or end of string). If the terminating
// character is ':', the colon is included in the returned token — this
// supports label syntax ("MAIN:").
func CopyNextToken(src, seps string) string {
	s := SkipLeadingWhitespace(src)
	i := 0
	for i < len(s) && !strings.ContainsAny(string(s[i]), seps) {
		i++
	}
	token := s[:i]
	if i < len(s) && s[i] == ':' {
		token += ":"
	}
	return token
}

// ExtractRemaining advances past the next token (per the same separator
// contract as CopyNextToken) and any immediately following ':', then skips
// whitespace and returns what remains of src.
func ExtractRemaining(src, seps string) string {
	s := SkipLeadingWhitespace(src)
	i := 0
	for i < len(s) && !strings.ContainsAny(string(s[i]), seps) {
		i++
	}
	rest := s[i:]
	if len(rest) > 0 && rest[0] == ':' {
		rest = rest[1:]
	}
	return SkipLeadingWhitespace(rest)
}

// IsNumber reports whether tok is an optionally-signed decimal integer: an
// optional leading '+' or '-', followed by at least one digit, with no
// other characters.
func IsNumber(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '+' || tok[0] == '-' {
		i++
	}
	if i == len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// IsRegister reports whether tok names one of the 8 registers @r0..@r7,
// returning the register number when it does.
func IsRegister(tok string) (int, bool) {
	if len(tok) != 3 || tok[0] != '@' || tok[1] != 'r' {
		return 0, false
	}
	d := tok[2]
	if d < '0' || d > '7' {
		return 0, false
	}
	return int(d - '0'), true
}

// IsString reports whether tok is a double-quoted string literal: at least
// two characters, the first and last are '"', and there is no interior '"'.
func IsString(tok string) bool {
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return false
	}
	for i := 1; i < len(tok)-1; i++ {
		if tok[i] == '"' {
			return false
		}
	}
	return true
}

const maxNameLength = 31

// IsSymbolName reports whether tok is a legal symbol/macro name. If
// expectColon is set, tok must end in ':' (stripped before further
// validation). The remaining name must be 1..31 characters, start with an
// alphabetic character, contain only alphanumeric characters thereafter,
// and must not collide with a register, opcode, or directive name. On
// success it returns the bare name (without any trailing colon).
func IsSymbolName(tok string, expectColon bool) (string, bool) {
	name := tok
	if expectColon {
		if len(name) == 0 || name[len(name)-1] != ':' {
			return "", false
		}
		name = name[:len(name)-1]
	}

	if len(name) == 0 || len(name) > maxNameLength {
		return "", false
	}
	if !isAlpha(name[0]) {
		return "", false
	}
	for i := 1; i < len(name); i++ {
		if !isAlpha(name[i]) && !isDigit(name[i]) {
			return "", false
		}
	}

	if _, ok := IsRegister(name); ok {
		return "", false
	}
	if _, ok := FindOperation(name); ok {
		return "", false
	}
	if _, ok := FindDirective(name); ok {
		return "", false
	}

	return name, true
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Opcode identifies one of the 16 instruction mnemonics. Values are
// assigned in declaration order and are wire-visible (they land directly in
// the opcode-word bit layout); never renumber them.
type Opcode int

const (
	Mov Opcode = iota
	Cmp
	Add
	Sub
	Not
	Clr
	Lea
	Inc
	Dec
	Jmp
	Bne
	Red
	Prn
	Jsr
	Rts
	Stop
)

var opcodeNames = map[string]Opcode{
	"mov": Mov, "cmp": Cmp, "add": Add, "sub": Sub,
	"not": Not, "clr": Clr, "lea": Lea, "inc": Inc,
	"dec": Dec, "jmp": Jmp, "bne": Bne, "red": Red,
	"prn": Prn, "jsr": Jsr, "rts": Rts, "stop": Stop,
}

var opcodeStrings = func() map[Opcode]string {
	m := make(map[Opcode]string, len(opcodeNames))
	for name, op := range opcodeNames {
		m[op] = name
	}
	return m
}()

func (o Opcode) String() string {
	if s, ok := opcodeStrings[o]; ok {
		return s
	}
	return "<invalid opcode>"
}

// FindOperation looks up tok against the closed vocabulary of opcodes,
// requiring an exact match.
func FindOperation(tok string) (Opcode, bool) {
	op, ok := opcodeNames[tok]
	return op, ok
}

// Directive identifies one of the 4 assembler directives.
type Directive int

const (
	Data Directive = iota
	String
	Entry
	Extern
)

var directiveNames = map[string]Directive{
	".data": Data, ".string": String, ".entry": Entry, ".extern": Extern,
}

var directiveStrings = func() map[Directive]string {
	m := make(map[Directive]string, len(directiveNames))
	for name, d := range directiveNames {
		m[d] = name
	}
	return m
}()

func (d Directive) String() string {
	if s, ok := directiveStrings[d]; ok {
		return s
	}
	return "<invalid directive>"
}

// FindDirective looks up tok against the closed vocabulary of directives,
// requiring an exact match.
func FindDirective(tok string) (Directive, bool) {
	d, ok := directiveNames[tok]
	return d, ok
}
