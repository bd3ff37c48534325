package word_test

import (
	"testing"

	"masm100/word"
)

func TestPackExtractsValueAndARE(t *testing.T) {
	w := word.Pack(0x155, word.Relocatable)
	if w.Value() != 0x155 {
		t.Errorf("Value() = %#x, want %#x", w.Value(), 0x155)
	}
	if w.AREBits() != word.Relocatable {
		t.Errorf("AREBits() = %v, want %v", w.AREBits(), word.Relocatable)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for v := 0; v < 1<<12; v++ {
		w := word.Word(v)
		enc := word.Encode(w, word.Alphabet)
		if len(enc) != 2 {
			t.Fatalf("Encode(%#x) = %q, want length 2", v, enc)
		}
		got, err := word.Decode(enc, word.Alphabet)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", enc, err)
		}
		if got != w {
			t.Errorf("round trip %#x -> %q -> %#x", v, enc, got)
		}
	}
}

func TestEncodeIsBijective(t *testing.T) {
	seen := make(map[string]word.Word)
	for v := 0; v < 1<<12; v++ {
		w := word.Word(v)
		enc := word.Encode(w, word.Alphabet)
		if prev, ok := seen[enc]; ok {
			t.Fatalf("encoding collision: %#x and %#x both encode to %q", prev, w, enc)
		}
		seen[enc] = w
	}
	if len(seen) != 1<<12 {
		t.Errorf("got %d distinct encodings, want %d", len(seen), 1<<12)
	}
}
