// Package matcher runs the leftmost-match search over a subset-construction
// DFA. It has no error return: every call produces either a match at
// (pos, length) or no match at all.
package matcher

import (
	"github.com/retix/retix/internal/automaton"
	"github.com/retix/retix/internal/subset"
)

// MatchFirst reports the leftmost match, running the DFA from each restart
// anchor in turn until an attempt succeeds. ok is false
// if no match starts anywhere in input. The DFA is only read, never
// mutated, so a single compiled automaton may be shared across concurrent
// calls on independent inputs.
//
// seek, if non-nil, is consulted every time the search is about to start a
// fresh attempt at a new restart anchor (never for the very first attempt
// at position 0, which must go through the LINE_START transition
// unconditionally so `^` keeps meaning "position 0" and nothing else). It
// receives the anchor the byte-at-a-time advance would try next and may
// return a later position to jump to instead, or ok=false to report that
// no further attempt can possibly succeed. seek only ever skips anchors
// the plain advance would have rejected anyway, so it cannot change the
// reported match: the DFA step loop below remains the sole source of
// match length and tie-break semantics.
func MatchFirst(dfa *subset.DFA, input []byte, seek func(anchor int) (next int, ok bool)) (ok bool, pos, length int) {
	// LINE_START is fed exactly once, logically at position -1, to move off
	// the bare start state before the per-byte loop begins. A pattern with
	// no `^` folds the same real-byte transitions onto the start state
	// itself (via the bypass epsilon Optional+Chain installs), so the two
	// only diverge for an anchored pattern, which is the point: a restart
	// must fall back to the bare start state, never back through
	// LINE_START again, or `^` would stop meaning anything after the first
	// attempt.
	initial, hasInitial := dfa.States[dfa.Start].Transitions[automaton.LineStart]
	if !hasInitial {
		return false, 0, 0
	}

	current := initial
	restartAnchor := 0
	p := restartAnchor

	var matchStart, checkpoint int
	haveMatchStart, haveCheckpoint := false, false

	// seedEmptyMatch records a pending zero-length match at the current
	// attempt's anchor when current is itself accepting before any real
	// byte is consumed (e.g. `a?`, `a*` at a position where the quantified
	// atom doesn't occur). Without this, an attempt that can only succeed
	// by consuming nothing would never install the checkpoint rule 1 needs.
	seedEmptyMatch := func() {
		if dfa.States[current].Accept {
			matchStart = p
			haveMatchStart = true
			checkpoint = p - 1
			haveCheckpoint = true
		}
	}
	seedEmptyMatch()

	for {
		atEnd := p >= len(input)
		var sigma byte
		if atEnd {
			sigma = automaton.LineEnd
		} else {
			sigma = input[p]
		}

		next, hasTransition := dfa.States[current].Transitions[sigma]
		if !hasTransition {
			if haveCheckpoint {
				return true, matchStart, checkpoint + 1 - matchStart
			}
			if atEnd {
				return false, 0, 0
			}
			haveMatchStart = false
			haveCheckpoint = false
			current = dfa.Start
			restartAnchor++
			if seek != nil {
				seeked, ok := seek(restartAnchor)
				if !ok {
					return false, 0, 0
				}
				restartAnchor = seeked
			}
			p = restartAnchor
			seedEmptyMatch()
			continue
		}

		target := dfa.States[next]
		if target.Accept {
			if !haveMatchStart {
				matchStart = p
				haveMatchStart = true
			}
			switch {
			case atEnd:
				return true, matchStart, p - matchStart
			case target.Behaviour == automaton.Greedy:
				checkpoint = p
				haveCheckpoint = true
				current = next
				p++
			default: // lazy or none: stop as soon as reached
				return true, matchStart, p + 1 - matchStart
			}
			continue
		}

		if !haveMatchStart {
			matchStart = p
			haveMatchStart = true
		}
		current = next
		p++
	}
}
