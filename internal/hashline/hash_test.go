package hashline

import (
	"strings"
	"testing"
)

func TestLineHashes_Deterministic(t *testing.T) {
	lines := mustSplit(t, "alpha\nbeta\ngamma\n")
	first := LineHashes(lines)
	second := LineHashes(lines)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line %d: %q != %q across runs", i+1, first[i], second[i])
		}
	}
}

func TestLineHashes_ShapeAndAlphabet(t *testing.T) {
	lines := mustSplit(t, "x\n\n  indented\ntab\there\nunicode ✓\n")
	for i, h := range LineHashes(lines) {
		if len(h) != 2 {
			t.Fatalf("line %d hash %q: length %d, want 2", i+1, h, len(h))
		}
		for j := 0; j < 2; j++ {
			if !strings.ContainsRune(hashAlphabet, rune(h[j])) {
				t.Errorf("line %d hash %q contains %q outside alphabet", i+1, h, h[j])
			}
		}
		if h == DeletedHash {
			t.Errorf("line %d produced the reserved deleted hash", i+1)
		}
	}
}

// Hashes are cumulative: lines before an edit keep their hashes, no matter
// what changes after them.
func TestLineHashes_PrefixStability(t *testing.T) {
	orig := mustSplit(t, "a\nb\nc\nd\ne\n")
	edited := mustSplit(t, "a\nb\nc\nCHANGED\ne\n")

	ho := LineHashes(orig)
	he := LineHashes(edited)

	for i := 0; i < 3; i++ {
		if ho[i] != he[i] {
			t.Errorf("line %d before the edit changed hash: %q -> %q", i+1, ho[i], he[i])
		}
	}
}

// Terminator style is not part of the hash input; only content is.
func TestLineHashes_TerminatorIndependent(t *testing.T) {
	lf := mustSplit(t, "a\nb\nc\n")
	crlf := mustSplit(t, "a\r\nb\r\nc\r\n")
	none := mustSplit(t, "a\nb\nc")

	hl := LineHashes(lf)
	hc := LineHashes(crlf)
	hn := LineHashes(none)
	for i := range hl {
		if hl[i] != hc[i] || hl[i] != hn[i] {
			t.Errorf("line %d: hashes differ across terminator styles: %q %q %q", i+1, hl[i], hc[i], hn[i])
		}
	}
}

// The hash of line i depends only on lines 1..i, so identical prefixes in
// different buffers agree line for line.
func TestLineHashes_DependsOnlyOnPrefix(t *testing.T) {
	a := mustSplit(t, "one\ntwo\nthree\n")
	b := mustSplit(t, "one\ntwo\nthree\nfour\nfive\n")

	ha := LineHashes(a)
	hb := LineHashes(b)
	for i := range ha {
		if ha[i] != hb[i] {
			t.Errorf("line %d: prefix hash differs: %q vs %q", i+1, ha[i], hb[i])
		}
	}
}
