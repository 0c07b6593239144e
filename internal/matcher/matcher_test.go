package matcher

import (
	"testing"

	"github.com/retix/retix/internal/epsilon"
	"github.com/retix/retix/internal/parser"
	"github.com/retix/retix/internal/subset"
)

const defaultMaxCountedRepeat = 1000

func compileDFA(t *testing.T, pattern string) *subset.DFA {
	t.Helper()
	a, err := parser.Parse([]byte(pattern), defaultMaxCountedRepeat)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	elim := epsilon.Eliminate(a)
	return subset.Build(elim)
}

func TestMatchFirstLiteral(t *testing.T) {
	dfa := compileDFA(t, "abc")
	ok, pos, length := MatchFirst(dfa, []byte("xxabcyy"), nil)
	if !ok || pos != 2 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=2 length=3", ok, pos, length)
	}
}

func TestMatchFirstNoMatch(t *testing.T) {
	dfa := compileDFA(t, "abc")
	ok, _, _ := MatchFirst(dfa, []byte("xyz"), nil)
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestMatchFirstGreedyStar(t *testing.T) {
	dfa := compileDFA(t, "a*")
	ok, pos, length := MatchFirst(dfa, []byte("aaab"), nil)
	if !ok || pos != 0 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=0 length=3", ok, pos, length)
	}
}

func TestMatchFirstLazyStar(t *testing.T) {
	dfa := compileDFA(t, "a*?b")
	ok, pos, length := MatchFirst(dfa, []byte("aaab"), nil)
	if !ok || pos != 0 || length != 4 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=0 length=4", ok, pos, length)
	}
}

func TestMatchFirstAlternation(t *testing.T) {
	dfa := compileDFA(t, "cat|dog")
	ok, pos, length := MatchFirst(dfa, []byte("my dog barks"), nil)
	if !ok || pos != 3 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=3 length=3", ok, pos, length)
	}
}

func TestMatchFirstLeftmost(t *testing.T) {
	dfa := compileDFA(t, "a+")
	ok, pos, length := MatchFirst(dfa, []byte("xxaaaxx"), nil)
	if !ok || pos != 2 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=2 length=3", ok, pos, length)
	}
}

func TestMatchFirstAnchoredStart(t *testing.T) {
	dfa := compileDFA(t, "^abc")
	if ok, _, _ := MatchFirst(dfa, []byte("xabc"), nil); ok {
		t.Fatalf("expected no match: pattern is start-anchored")
	}
	ok, pos, length := MatchFirst(dfa, []byte("abcxyz"), nil)
	if !ok || pos != 0 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=0 length=3", ok, pos, length)
	}
}

func TestMatchFirstAnchoredEnd(t *testing.T) {
	dfa := compileDFA(t, "abc$")
	if ok, _, _ := MatchFirst(dfa, []byte("abcxyz"), nil); ok {
		t.Fatalf("expected no match: pattern is end-anchored")
	}
	ok, pos, length := MatchFirst(dfa, []byte("xyzabc"), nil)
	if !ok || pos != 3 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=3 length=3", ok, pos, length)
	}
}

func TestMatchFirstEmptyPatternMatchesEmptyString(t *testing.T) {
	dfa := compileDFA(t, "")
	ok, pos, length := MatchFirst(dfa, []byte(""), nil)
	if !ok || pos != 0 || length != 0 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=0 length=0", ok, pos, length)
	}
}

func TestMatchFirstOptionalMatchesEmptyAtLeftmostPosition(t *testing.T) {
	dfa := compileDFA(t, "a?")
	ok, pos, length := MatchFirst(dfa, []byte("xyz"), nil)
	if !ok || pos != 0 || length != 0 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=0 length=0", ok, pos, length)
	}
}

func TestMatchFirstCountedRepeat(t *testing.T) {
	dfa := compileDFA(t, "a{2,4}")
	ok, pos, length := MatchFirst(dfa, []byte("aaaaa"), nil)
	if !ok || pos != 0 || length != 4 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=0 length=4", ok, pos, length)
	}
}

func TestMatchFirstCharClass(t *testing.T) {
	dfa := compileDFA(t, "[a-c]+")
	ok, pos, length := MatchFirst(dfa, []byte("xxabcxx"), nil)
	if !ok || pos != 2 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=2 length=3", ok, pos, length)
	}
}

// TestMatchFirstSeekJumpsRestartAnchor confirms seek is only ever asked to
// skip forward past positions the plain advance would have rejected anyway,
// and never changes the reported match.
func TestMatchFirstSeekJumpsRestartAnchor(t *testing.T) {
	dfa := compileDFA(t, "cat")
	input := []byte("xxxxxcatyy")

	seekCalls := 0
	seek := func(anchor int) (int, bool) {
		seekCalls++
		return 5, true
	}

	ok, pos, length := MatchFirst(dfa, input, seek)
	if !ok || pos != 5 || length != 3 {
		t.Fatalf("got ok=%v pos=%d length=%d, want ok=true pos=5 length=3", ok, pos, length)
	}
	if seekCalls == 0 {
		t.Fatal("expected seek to be consulted at least once")
	}
}

// TestMatchFirstSeekExhaustionReportsNoMatch confirms a seek that reports
// no further candidates short-circuits the search.
func TestMatchFirstSeekExhaustionReportsNoMatch(t *testing.T) {
	dfa := compileDFA(t, "cat")
	seek := func(anchor int) (int, bool) { return 0, false }

	ok, _, _ := MatchFirst(dfa, []byte("xyz"), seek)
	if ok {
		t.Fatal("expected no match once seek reports exhaustion")
	}
}
