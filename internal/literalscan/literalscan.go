// Package literalscan is a restart-anchor accelerator for patterns that are
// a pure alternation of literal byte strings (e.g. `cat|dog|bird`, optionally
// `^`/`$` anchored). Rather than stepping the DFA byte by byte through
// certainly-non-matching input to find where such a pattern could start, it
// hands the haystack to an Aho-Corasick automaton, which finds the next
// occurrence of any alternative in one linear pass. This mirrors the
// "literal engine bypass" the teacher reaches for when a pattern decomposes
// into many literal alternatives (its meta package selects an equivalent
// strategy once the alternative count crosses a threshold; here it's wired
// unconditionally whenever the pattern qualifies, since there is no larger
// strategy table to gate it).
package literalscan

import "github.com/coregx/ahocorasick"

// Scanner finds candidate restart-anchor positions for internal/matcher's
// search loop: the earliest offset at or after a given position where some
// literal alternative begins. It never replaces the DFA and knows nothing
// about anchors (`^`/`$`) — internal/matcher remains the authoritative
// source for match length and tie-break semantics; a position this Scanner
// returns that the DFA can't actually complete a match from (e.g. because
// the pattern is `^`-anchored and the occurrence isn't at position 0) is
// simply rejected by the DFA's own step rule on the next attempt.
type Scanner struct {
	automaton *ahocorasick.Automaton
}

// New builds a Scanner from a literal set, or returns (nil, false) if the
// automaton could not be built (e.g. zero patterns).
func New(literals [][]byte) (*Scanner, bool) {
	if len(literals) == 0 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Scanner{automaton: auto}, true
}

// Seek reports the earliest offset >= from at which some literal
// alternative begins. ok is false once no further occurrence exists, which
// means no later restart anchor could possibly succeed either.
func (s *Scanner) Seek(haystack []byte, from int) (next int, ok bool) {
	if from > len(haystack) {
		return 0, false
	}
	m := s.automaton.Find(haystack, from)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}
