// Package subset performs subset construction: given an epsilon-free NFA
// (see internal/epsilon), it builds the equivalent deterministic automaton
// whose states are sets of NFA states, canonicalized by a sorted-and-hashed
// key so that two discoveries of the same set collapse onto one DFA state.
package subset

import (
	"hash/fnv"
	"sort"

	"github.com/retix/retix/internal/automaton"
)

// StateID indexes a state within a DFA's state slice.
type StateID uint32

// InvalidState marks the absence of a transition target.
const InvalidState StateID = 0xFFFFFFFF

// State is one subset-construction state: the canonical sorted set of NFA
// states it represents, whether any member accepts, the greedy/lazy
// behaviour resolved over all of its members, and its deterministic byte
// transitions.
type State struct {
	NFAStates   []automaton.StateID
	Accept      bool
	Behaviour   automaton.Behaviour
	Transitions map[byte]StateID
}

// DFA is a flat, fully materialized deterministic automaton built by
// Build. Every reachable subset is present; there is no further lazy
// determinization step (the whole transition table is built up front).
type DFA struct {
	States []*State
	Start  StateID
}

// stateKey is a canonical hash of a sorted NFA state set, used to collapse
// repeated discoveries of the same subset onto a single DFA state.
type stateKey uint64

func computeKey(set []automaton.StateID) stateKey {
	h := fnv.New64a()
	for _, id := range set {
		_, _ = h.Write([]byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)})
	}
	return stateKey(h.Sum64())
}

// canonicalize returns a sorted, deduplicated copy of set.
func canonicalize(set []automaton.StateID) []automaton.StateID {
	if len(set) == 0 {
		return nil
	}
	cp := make([]automaton.StateID, len(set))
	copy(cp, set)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:1]
	for _, id := range cp[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// Build runs subset construction over a, starting from a's single start
// state. a must already be epsilon-free (run internal/epsilon.Eliminate
// first); Build never follows an Epsilon transition.
func Build(a *automaton.Automaton) *DFA {
	dfa := &DFA{}
	cache := make(map[stateKey]StateID)

	startID := dfa.intern(a, cache, []automaton.StateID{a.Start()})
	dfa.Start = startID

	queue := []StateID{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		st := dfa.States[id]

		var targets [256][]automaton.StateID
		var used [256]bool
		for _, nid := range st.NFAStates {
			for _, t := range a.States[nid].Transitions {
				if t.Status != automaton.Active {
					continue
				}
				targets[t.Symbol] = append(targets[t.Symbol], t.Target)
				used[t.Symbol] = true
			}
		}

		for b := 0; b < 256; b++ {
			if !used[b] {
				continue
			}
			before := len(dfa.States)
			targetID := dfa.intern(a, cache, targets[b])
			st.Transitions[byte(b)] = targetID
			if len(dfa.States) > before {
				queue = append(queue, targetID)
			}
		}
	}

	return dfa
}

// intern looks up (or creates) the DFA state for the canonicalized form of
// set, appending a new State to dfa.States when the set hasn't been seen
// before.
func (dfa *DFA) intern(a *automaton.Automaton, cache map[stateKey]StateID, set []automaton.StateID) StateID {
	canon := canonicalize(set)
	key := computeKey(canon)
	if id, ok := cache[key]; ok {
		return id
	}

	accept := false
	behaviour := automaton.None
	for _, nid := range canon {
		s := a.States[nid]
		if s.Role.IsEnd() {
			accept = true
		}
		behaviour = combineBehaviour(behaviour, s.Behaviour)
	}

	id := StateID(len(dfa.States))
	dfa.States = append(dfa.States, &State{
		NFAStates:   canon,
		Accept:      accept,
		Behaviour:   behaviour,
		Transitions: make(map[byte]StateID),
	})
	cache[key] = id
	return id
}

// combineBehaviour resolves two behaviour tags merging into the same
// subset state: greedy outranks lazy, which outranks none, mirroring
// internal/epsilon's tie-break for the same situation one level down.
func combineBehaviour(a, b automaton.Behaviour) automaton.Behaviour {
	if a == automaton.Greedy || b == automaton.Greedy {
		return automaton.Greedy
	}
	if a == automaton.Lazy || b == automaton.Lazy {
		return automaton.Lazy
	}
	return automaton.None
}
