package automaton

// This file implements the four structural composition primitives plus
// greedy/lazy tagging described below. Chain and Alternative consume
// their right-hand operand: after either call returns, the caller must not
// reference the *Automaton passed as the second argument again. Encoding
// that as "takes ownership, mutates and returns the first operand" instead
// of leaving two live pointers around is what turns the source material's
// ownership discipline into something the compiler can't let you get wrong
// by accident.

// shiftState returns a copy of s with every transition target increased by
// offset. Used when splicing one automaton's states into another at a new
// base index.
func shiftState(s State, offset StateID) State {
	cp := State{Role: s.Role, Behaviour: s.Behaviour}
	if len(s.Transitions) > 0 {
		cp.Transitions = make([]Transition, len(s.Transitions))
		for i, t := range s.Transitions {
			t.Target += offset
			cp.Transitions[i] = t
		}
	}
	return cp
}

// Chain appends b after a: b's states are shifted by len(a) and spliced in.
// b's former start state becomes middle (or end, if it was start_end).
// Every former accepting state of a gains an epsilon transition to b's
// relocated start state and is demoted to middle (or start, if start_end).
// a owns all states afterward; b must not be reused.
func Chain(a, b *Automaton) {
	offset := StateID(len(a.States))

	for i, s := range b.States {
		cp := shiftState(s, offset)
		if i == 0 {
			cp.Role &^= RoleStart
		}
		a.States = append(a.States, cp)
	}

	bStart := offset
	for i := 0; i < int(offset); i++ {
		s := &a.States[i]
		if s.Role.IsEnd() {
			s.Transitions = append(s.Transitions, Transition{Status: Epsilon, Target: bStart})
			s.Role &^= RoleEnd
		}
	}
}

// Alternative prepends a fresh start state with two epsilon transitions,
// one to a's former start (shifted by 1) and one to b's former start
// (shifted by len(a)+1). Former start states are demoted to middle (or
// end, if they were start_end). a owns all states afterward; b must not be
// reused. Returns a (same pointer) for call-site convenience.
func Alternative(a, b *Automaton) *Automaton {
	na := len(a.States)
	nb := len(b.States)
	bOffset := StateID(1 + na)

	total := make([]State, 1+na+nb)
	total[0] = State{
		Role: RoleStart,
		Transitions: []Transition{
			{Status: Epsilon, Target: 1},
			{Status: Epsilon, Target: bOffset},
		},
	}

	for i, s := range a.States {
		cp := shiftState(s, 1)
		if i == 0 {
			cp.Role &^= RoleStart
		}
		total[1+i] = cp
	}
	for i, s := range b.States {
		cp := shiftState(s, bOffset)
		if i == 0 {
			cp.Role &^= RoleStart
		}
		total[int(bOffset)+i] = cp
	}

	a.States = total
	return a
}

// Optional marks the start state as start_end: a now also accepts the
// empty string, in addition to whatever it accepted before.
func Optional(a *Automaton) {
	a.States[0].Role |= RoleEnd
}

// Repeat applies Optional, then adds an epsilon transition from every end
// (but not start_end) state back to the start state. Models zero-or-more
// repetition.
func Repeat(a *Automaton) {
	Optional(a)
	for i := range a.States {
		s := &a.States[i]
		if s.Role.IsEnd() && !s.Role.IsStart() {
			s.Transitions = append(s.Transitions, Transition{Status: Epsilon, Target: 0})
		}
	}
}

// MakeGreedy sets the behaviour of every accepting state (Role includes
// RoleEnd) to Greedy.
func MakeGreedy(a *Automaton) { setBehaviour(a, Greedy) }

// MakeLazy sets the behaviour of every accepting state (Role includes
// RoleEnd) to Lazy.
func MakeLazy(a *Automaton) { setBehaviour(a, Lazy) }

func setBehaviour(a *Automaton, b Behaviour) {
	for i := range a.States {
		if a.States[i].Role.IsEnd() {
			a.States[i].Behaviour = b
		}
	}
}
