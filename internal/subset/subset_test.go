package subset

import (
	"testing"

	"github.com/retix/retix/internal/automaton"
	"github.com/retix/retix/internal/epsilon"
)

func buildDFA(t *testing.T, build func() *automaton.Automaton) *DFA {
	t.Helper()
	a := build()
	elim := epsilon.Eliminate(a)
	return Build(elim)
}

func TestBuildSingleSymbol(t *testing.T) {
	dfa := buildDFA(t, func() *automaton.Automaton { return automaton.NewSingleSymbol('a') })

	start := dfa.States[dfa.Start]
	if start.Accept {
		t.Fatalf("start state must not accept before consuming 'a'")
	}
	next, ok := start.Transitions['a']
	if !ok {
		t.Fatalf("expected transition on 'a'")
	}
	if !dfa.States[next].Accept {
		t.Fatalf("expected accepting state after consuming 'a'")
	}
}

func TestBuildAlternationMergesStates(t *testing.T) {
	dfa := buildDFA(t, func() *automaton.Automaton {
		a := automaton.NewSingleSymbol('a')
		b := automaton.NewSingleSymbol('b')
		return automaton.Alternative(a, b)
	})

	start := dfa.States[dfa.Start]
	aTarget, aOK := start.Transitions['a']
	bTarget, bOK := start.Transitions['b']
	if !aOK || !bOK {
		t.Fatalf("expected transitions on both 'a' and 'b'")
	}
	if !dfa.States[aTarget].Accept || !dfa.States[bTarget].Accept {
		t.Fatalf("expected both branches to reach an accepting state")
	}
}

func TestBuildRepeatSelfLoops(t *testing.T) {
	dfa := buildDFA(t, func() *automaton.Automaton {
		a := automaton.NewSingleSymbol('a')
		automaton.Repeat(a)
		return a
	})

	start := dfa.States[dfa.Start]
	if !start.Accept {
		t.Fatalf("start state of a* must accept the empty string")
	}
	next, ok := start.Transitions['a']
	if !ok {
		t.Fatalf("expected a self-sustaining transition on 'a'")
	}
	if next != dfa.Start {
		t.Fatalf("expected a* to loop back to the start state, got distinct state %d", next)
	}
}

func TestBuildDedupesEquivalentStates(t *testing.T) {
	// (a|a) should collapse both branches' target state into one DFA state,
	// since both reach the same canonical NFA state set after a single 'a'.
	dfa := buildDFA(t, func() *automaton.Automaton {
		a := automaton.NewSingleSymbol('a')
		a2 := automaton.NewSingleSymbol('a')
		return automaton.Alternative(a, a2)
	})
	if len(dfa.States) != 2 {
		t.Fatalf("expected exactly 2 DFA states (start + one accept), got %d", len(dfa.States))
	}
}

func TestBuildBehaviourPropagation(t *testing.T) {
	dfa := buildDFA(t, func() *automaton.Automaton {
		a := automaton.NewSingleSymbol('a')
		automaton.Repeat(a)
		automaton.MakeLazy(a)
		return a
	})
	start := dfa.States[dfa.Start]
	if start.Behaviour != automaton.Lazy {
		t.Fatalf("expected lazy behaviour on start state, got %v", start.Behaviour)
	}
}
