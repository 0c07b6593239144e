package automaton

import "fmt"

// ValidationError reports a broken automaton invariant: a dangling
// transition target, a missing or duplicated start state, and so on. These
// are programmer errors, not user-facing compile failures: they
// indicate a bug in a composition primitive, not a malformed pattern.
type ValidationError struct {
	Message string
	State   StateID
}

func (e *ValidationError) Error() string {
	if e.State != InvalidState {
		return fmt.Sprintf("automaton: invalid state %d: %s", e.State, e.Message)
	}
	return fmt.Sprintf("automaton: %s", e.Message)
}

// Validate checks the invariants required of every automaton:
// exactly one start state at index 0, and every transition target inside
// the state slice. It exists mainly for tests that exercise the
// composition primitives directly.
func (a *Automaton) Validate() error {
	if len(a.States) == 0 {
		return &ValidationError{Message: "automaton has no states"}
	}
	if !a.States[0].Role.IsStart() {
		return &ValidationError{Message: "state 0 is not marked as start", State: 0}
	}
	for i := 1; i < len(a.States); i++ {
		if a.States[i].Role.IsStart() {
			return &ValidationError{Message: "start role on non-zero state", State: StateID(i)}
		}
	}
	for i, s := range a.States {
		for _, t := range s.Transitions {
			if t.Status == Dead {
				continue
			}
			if int(t.Target) >= len(a.States) {
				return &ValidationError{
					Message: fmt.Sprintf("transition target %d out of bounds", t.Target),
					State:   StateID(i),
				}
			}
		}
	}
	return nil
}
