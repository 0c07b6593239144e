// Package automaton provides the state/transition model for a Thompson-style
// NFA-with-epsilon and the structural composition primitives used to build
// one from a surface pattern. States reference each other by index into the
// enclosing Automaton's state slice rather than by pointer, which keeps the
// graph free of cycles-by-pointer (common once `*` introduces a loop) and
// makes deep copy and slice growth straightforward.
package automaton

import "github.com/retix/retix/internal/conv"

// StateID indexes a state within an Automaton's state slice.
type StateID uint32

// InvalidState marks the absence of a target state.
const InvalidState StateID = 0xFFFFFFFF

// Reserved sentinel bytes for anchor transitions. Neither collides with a
// printable ASCII byte, and callers must never supply them as input bytes.
const (
	LineStart byte = 0x02
	LineEnd   byte = 0x03
)

// TransitionStatus distinguishes active, epsilon, and retired transitions.
type TransitionStatus uint8

const (
	// Dead marks a transition that epsilon-elimination has retired. Kept
	// (rather than physically removed) so transition-array indices stay
	// stable during the rewrite; compaction is optional and not performed.
	Dead TransitionStatus = iota
	// Active transitions consume Symbol and move to Target.
	Active
	// Epsilon transitions consume no input.
	Epsilon
)

// Transition is a single outgoing edge of a State.
type Transition struct {
	Status TransitionStatus
	Symbol byte // meaningful only when Status == Active
	Target StateID
}

// StateRole is a bitmask: a state may be a start state, an accepting
// ("end") state, or both (start_end, e.g. after Optional).
type StateRole uint8

const (
	RoleStart StateRole = 1 << iota
	RoleEnd
)

// IsStart reports whether r includes the start role.
func (r StateRole) IsStart() bool { return r&RoleStart != 0 }

// IsEnd reports whether r includes the end (accepting) role.
func (r StateRole) IsEnd() bool { return r&RoleEnd != 0 }

// Behaviour tags a state with its quantifier semantics. MakeGreedy/MakeLazy
// set it on accepting states; a state that Chain later demotes keeps its
// tag, and epsilon elimination and subset construction combine the tags of
// every member state they merge.
type Behaviour uint8

const (
	// None is the default: a lazy-or-greedy choice has not been made.
	None Behaviour = iota
	Greedy
	Lazy
)

// State is an ordered sequence of outgoing transitions plus its role and
// quantifier behaviour.
type State struct {
	Transitions []Transition
	Role        StateRole
	Behaviour   Behaviour
}

// Automaton is a contiguous indexed sequence of states. State 0 is always
// the start state. LineStartAnchored/LineEndAnchored are retained from the
// surface pattern for diagnostics; once the parser attaches explicit
// LineStart/LineEnd transitions they are advisory only (the matcher drives
// off the transitions, not these flags).
type Automaton struct {
	States            []State
	LineStartAnchored bool
	LineEndAnchored   bool
}

// NewEmpty returns a single-state automaton accepting only the empty
// string.
func NewEmpty() *Automaton {
	return &Automaton{
		States: []State{{Role: RoleStart | RoleEnd}},
	}
}

// NewSingleSymbol returns a two-state automaton: state 0 (start) has one
// active transition on c to state 1 (end). Accepts exactly the one-byte
// string c.
func NewSingleSymbol(c byte) *Automaton {
	return &Automaton{
		States: []State{
			{
				Role:        RoleStart,
				Transitions: []Transition{{Status: Active, Symbol: c, Target: 1}},
			},
			{Role: RoleEnd},
		},
	}
}

// NewSymbolSet returns a two-state automaton whose start state has one
// active transition per byte in symbols, all targeting the single end
// state. Used for `.` and character classes, which the parser expands to
// O(|alphabet|) transitions on a single state rather than a chain of
// alternatives.
func NewSymbolSet(symbols []byte) *Automaton {
	a := &Automaton{
		States: []State{{Role: RoleStart}, {Role: RoleEnd}},
	}
	a.States[0].Transitions = make([]Transition, len(symbols))
	for i, s := range symbols {
		a.States[0].Transitions[i] = Transition{Status: Active, Symbol: s, Target: 1}
	}
	return a
}

// AddState appends a fresh, role-less state and returns its index.
func (a *Automaton) AddState() StateID {
	a.States = append(a.States, State{})
	return StateID(conv.IntToUint32(len(a.States) - 1))
}

// AddTransition appends a transition to the state at id.
func (a *Automaton) AddTransition(id StateID, t Transition) {
	a.States[id].Transitions = append(a.States[id].Transitions, t)
}

// Start returns the index of the start state, always 0.
func (a *Automaton) Start() StateID { return 0 }

// Len returns the number of states in the automaton.
func (a *Automaton) Len() int { return len(a.States) }

// DeepCopy returns a structurally identical automaton whose state and
// transition slices are independent of the source. Behaviour tags and
// roles are preserved exactly. Required by counted-repetition unrolling,
// which chains several independent copies of the same fragment.
func DeepCopy(a *Automaton) *Automaton {
	out := &Automaton{
		States:            make([]State, len(a.States)),
		LineStartAnchored: a.LineStartAnchored,
		LineEndAnchored:   a.LineEndAnchored,
	}
	for i, s := range a.States {
		cp := State{Role: s.Role, Behaviour: s.Behaviour}
		if len(s.Transitions) > 0 {
			cp.Transitions = make([]Transition, len(s.Transitions))
			copy(cp.Transitions, s.Transitions)
		}
		out.States[i] = cp
	}
	return out
}
