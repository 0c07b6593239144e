// Package epsilon rewrites an NFA-with-epsilon into an epsilon-free NFA:
// every state's outgoing Active transitions are replaced by the union of
// Active transitions reachable through its epsilon-closure (its own
// Epsilon transitions are kept in place with status Dead), its Role gains
// RoleEnd if any state in that closure accepts, and its Behaviour combines
// the tags of every closure member. The result has the same state count
// and indices as the input;
// only the Transitions/Role/Behaviour fields change.
package epsilon

import (
	"github.com/retix/retix/internal/automaton"
	"github.com/retix/retix/internal/conv"
	"github.com/retix/retix/internal/sparse"
)

// Eliminate returns a new automaton with no Epsilon transitions, built by
// computing each state's epsilon-closure and collapsing it down to a
// single set of Active transitions and an accept role/behaviour. Subset
// construction operates on the result directly: it never needs to follow
// an epsilon edge.
func Eliminate(a *automaton.Automaton) *automaton.Automaton {
	n := a.Len()
	out := &automaton.Automaton{
		States:            make([]automaton.State, n),
		LineStartAnchored: a.LineStartAnchored,
		LineEndAnchored:   a.LineEndAnchored,
	}

	closure := sparse.NewSparseSet(conv.IntToUint32(n))
	var stack []automaton.StateID

	for i := 0; i < n; i++ {
		closure.Clear()
		stack = stack[:0]

		start := automaton.StateID(i)
		closure.Insert(uint32(start))
		stack = append(stack, start)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, t := range a.States[cur].Transitions {
				if t.Status == automaton.Epsilon && !closure.Contains(uint32(t.Target)) {
					closure.Insert(uint32(t.Target))
					stack = append(stack, t.Target)
				}
			}
		}

		role := a.States[i].Role & automaton.RoleStart
		behaviour := automaton.None
		var transitions []automaton.Transition

		for _, v := range closure.Values() {
			member := a.States[automaton.StateID(v)]
			if member.Role.IsEnd() {
				role |= automaton.RoleEnd
			}
			// Behaviour is aggregated regardless of the member's current
			// Role: Chain demotes a former accepting state's Role when it
			// splices a continuation after it (clearing RoleEnd), but
			// leaves Behaviour untouched, so a state that was tagged
			// greedy/lazy by MakeGreedy/MakeLazy before being chained into
			// a longer sequence still carries that tag here even though it
			// no longer accepts on its own. Non-accepting, never-tagged
			// members default to None, which combineBehaviour never lets
			// win over a real tag.
			behaviour = combineBehaviour(behaviour, member.Behaviour)
			for _, t := range member.Transitions {
				switch {
				case t.Status == automaton.Active:
					transitions = append(transitions, t)
				case t.Status == automaton.Epsilon && v == uint32(i):
					// The state's own epsilon edges stay in place as Dead;
					// it is the first closure member, so its original
					// transition indices are unchanged.
					t.Status = automaton.Dead
					transitions = append(transitions, t)
				}
			}
		}

		out.States[i] = automaton.State{
			Role:        role,
			Behaviour:   behaviour,
			Transitions: transitions,
		}
	}

	return out
}

// combineBehaviour resolves two behaviour tags reached through the same
// closure: greedy outranks lazy, which outranks none (the
// tie-break when a closure merges both a greedy and a lazy accepting
// state, e.g. `a*|b*?` sharing a target).
func combineBehaviour(a, b automaton.Behaviour) automaton.Behaviour {
	if a == automaton.Greedy || b == automaton.Greedy {
		return automaton.Greedy
	}
	if a == automaton.Lazy || b == automaton.Lazy {
		return automaton.Lazy
	}
	return automaton.None
}
