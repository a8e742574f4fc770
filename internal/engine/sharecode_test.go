package engine

import (
	"strings"
	"testing"
)

func TestShareCodeKnownToken(t *testing.T) {
	mode, seed, err := DecodeShareCode("DP-ORANGE42")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mode != ModeDeep {
		t.Fatalf("mode = %s, want deep", mode)
	}
	if got := EncodeShareCode(mode, seed); got != "DP-ORANGE42" {
		t.Fatalf("re-encode = %q, want DP-ORANGE42", got)
	}
}

func TestShareCodeRoundTripStable(t *testing.T) {
	seeds := []string{"alpha", "beltway-blues", "long haul", "x", "route 66"}
	for _, text := range seeds {
		for _, mode := range AllModes {
			root := SeedFromString(text)
			code := EncodeShareCode(mode, root)
			gotMode, gotSeed, err := DecodeShareCode(code)
			if err != nil {
				t.Fatalf("decode %q: %v", code, err)
			}
			if gotMode != mode {
				t.Fatalf("decode %q: mode %s, want %s", code, gotMode, mode)
			}
			if again := EncodeShareCode(gotMode, gotSeed); again != code {
				t.Fatalf("re-encode of %q drifted to %q", code, again)
			}
		}
	}
}

func TestShareCodeCaseAndWhitespace(t *testing.T) {
	mode, seed, err := DecodeShareCode("  dp-orange42 ")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mode != ModeDeep || EncodeShareCode(mode, seed) != "DP-ORANGE42" {
		t.Fatalf("lenient parse failed: mode=%s", mode)
	}
}

func TestShareCodeErrors(t *testing.T) {
	if _, _, err := DecodeShareCode("XX-ORANGE42"); err == nil || !strings.Contains(err.Error(), "prefix") {
		t.Fatalf("bad prefix error = %v", err)
	}
	if _, _, err := DecodeShareCode("ORANGE42"); err == nil {
		t.Fatal("missing prefix accepted")
	}
	if _, _, err := DecodeShareCode("TR-ORANGE"); err == nil {
		t.Fatal("missing digits accepted")
	}
	if _, _, err := DecodeShareCode("TR-42"); err == nil {
		t.Fatal("missing word accepted")
	}
}

func TestShareCodeSuggestsNearestWord(t *testing.T) {
	_, _, err := DecodeShareCode("TR-ORNGE42")
	if err == nil {
		t.Fatal("misspelled word accepted")
	}
	if !strings.Contains(err.Error(), "ORANGE") {
		t.Fatalf("error should suggest the nearest word: %v", err)
	}
}

func TestShareWordListIntegrity(t *testing.T) {
	if len(shareWords) != 512 {
		t.Fatalf("word list has %d entries, want 512", len(shareWords))
	}
	seen := map[string]bool{}
	for i, w := range shareWords {
		if w == "" {
			t.Fatalf("empty word at index %d", i)
		}
		if w != strings.ToLower(w) {
			t.Fatalf("word %q at index %d not lowercase", w, i)
		}
		if seen[w] {
			t.Fatalf("duplicate word %q", w)
		}
		seen[w] = true
	}
}
