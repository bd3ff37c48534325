package assembler

import (
	"strings"

	"masm100/lexutil"
)

// parseOperandTokens splits an already comma-validated operand list into
// its comma-separated pieces. An empty (whitespace-only) line yields no
// tokens.
func parseOperandTokens(s string) []string {
	trimmed := lexutil.Trim(s)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = lexutil.Trim(p)
	}
	return out
}

// hasLeadingComma reports whether s (the text immediately following an
// opcode/directive token) begins with a comma.
func hasLeadingComma(s string) bool {
	return len(s) > 0 && s[0] == ','
}

// hasConsecutiveCommas reports whether s contains two commas separated only
// by whitespace.
func hasConsecutiveCommas(s string) bool {
	seenComma := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',':
			if seenComma {
				return true
			}
			seenComma = true
		case ' ', '\t':
			// whitespace between commas does not reset the run
		default:
			seenComma = false
		}
	}
	return false
}
