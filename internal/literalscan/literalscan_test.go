package literalscan

import (
	"bytes"
	"testing"
)

func TestDetectPlainAlternation(t *testing.T) {
	lits, anchoredStart, anchoredEnd, ok := Detect([]byte("cat|dog|bird"))
	if !ok {
		t.Fatalf("expected detection to succeed")
	}
	if anchoredStart || anchoredEnd {
		t.Fatalf("expected no anchors")
	}
	want := [][]byte{[]byte("cat"), []byte("dog"), []byte("bird")}
	if len(lits) != len(want) {
		t.Fatalf("got %d literals, want %d", len(lits), len(want))
	}
	for i := range want {
		if !bytes.Equal(lits[i], want[i]) {
			t.Fatalf("literal %d = %q, want %q", i, lits[i], want[i])
		}
	}
}

func TestDetectAnchored(t *testing.T) {
	_, anchoredStart, anchoredEnd, ok := Detect([]byte("^abc$"))
	if !ok || !anchoredStart || !anchoredEnd {
		t.Fatalf("expected anchored single-literal detection")
	}
}

func TestDetectRejectsMetacharacters(t *testing.T) {
	cases := []string{"a.b", "a*", "a+", "a?", "(a|b)", "[abc]", "a{2,3}"}
	for _, c := range cases {
		if _, _, _, ok := Detect([]byte(c)); ok {
			t.Fatalf("expected Detect(%q) to reject", c)
		}
	}
}

func TestDetectRejectsEmptyAlternative(t *testing.T) {
	cases := []string{"a||b", "|a", "a|"}
	for _, c := range cases {
		if _, _, _, ok := Detect([]byte(c)); ok {
			t.Fatalf("expected Detect(%q) to reject empty alternative", c)
		}
	}
}

func TestDetectAcceptsEscapedMeta(t *testing.T) {
	lits, _, _, ok := Detect([]byte(`a\.b`))
	if !ok {
		t.Fatalf("expected escaped literal to be detected")
	}
	if !bytes.Equal(lits[0], []byte("a.b")) {
		t.Fatalf("got %q, want %q", lits[0], "a.b")
	}
}

func TestScannerSeekFindsNextOccurrence(t *testing.T) {
	s, ok := New([][]byte{[]byte("cat"), []byte("dog")})
	if !ok {
		t.Fatalf("expected scanner construction to succeed")
	}
	pos, ok := s.Seek([]byte("my dog barks"), 0)
	if !ok || pos != 3 {
		t.Fatalf("got pos=%d ok=%v, want pos=3 ok=true", pos, ok)
	}
}

func TestScannerSeekAdvancesFromGivenOffset(t *testing.T) {
	s, ok := New([][]byte{[]byte("cat")})
	if !ok {
		t.Fatalf("expected scanner construction to succeed")
	}
	// Two occurrences; seeking from just past the first must find the second.
	pos, ok := s.Seek([]byte("catxxxcat"), 1)
	if !ok || pos != 6 {
		t.Fatalf("got pos=%d ok=%v, want pos=6 ok=true", pos, ok)
	}
}

func TestScannerSeekNoOccurrence(t *testing.T) {
	s, ok := New([][]byte{[]byte("zzz")})
	if !ok {
		t.Fatalf("expected scanner construction to succeed")
	}
	if _, ok := s.Seek([]byte("abcdef"), 0); ok {
		t.Fatalf("expected no occurrence")
	}
}

func TestScannerSeekPastEndOfHaystack(t *testing.T) {
	s, ok := New([][]byte{[]byte("cat")})
	if !ok {
		t.Fatalf("expected scanner construction to succeed")
	}
	if _, ok := s.Seek([]byte("cat"), 10); ok {
		t.Fatalf("expected no occurrence when seeking past the haystack's end")
	}
}
