// Package workflow holds the submission life cycle of an abstract and decides
// which state changes a client may request.
package workflow

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned by ValidateTransition.
var ErrIllegalTransition = errors.New("illegal state transition")

// ErrUnknownState is returned by ParseState.
var ErrUnknownState = errors.New("unknown state")

// State is the life cycle stage of an abstract.
type State string

const (
	InPreparation State = "InPreparation"
	Submitted     State = "Submitted"
	InReview      State = "InReview"
	InRevision    State = "InRevision"
	Withdrawn     State = "Withdrawn"
)

// States lists every state in display order.
var States = []State{InPreparation, Submitted, InReview, InRevision, Withdrawn}

// Outgoing client transitions of persisted abstracts. InReview is set by the
// server only and has no entry.
var transitions = map[State][]State{
	InPreparation: {InPreparation, Submitted},
	Submitted:     {Withdrawn},
	Withdrawn:     {InPreparation},
	InRevision:    {InRevision, Submitted},
}

var unpersisted = []State{InPreparation, Submitted}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	for _, st := range States {
		if s == st {
			return true
		}
	}
	return false
}

func (s State) String() string { return string(s) }

// ParseState converts a wire value into a State.
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
	}
	return st, nil
}

// Legal returns the states a client may move to. An abstract that was never
// saved may start in InPreparation or Submitted; a saved one follows the
// transition table from its prior state. The result is a fresh slice.
func Legal(isPersisted bool, prior State) []State {
	src := unpersisted
	if isPersisted {
		src = transitions[prior]
	}
	out := make([]State, len(src))
	copy(out, src)
	return out
}

// IsTransitionLegal reports whether candidate may be requested given the
// persisted state of the abstract.
func IsTransitionLegal(isPersisted bool, prior, candidate State) bool {
	src := unpersisted
	if isPersisted {
		src = transitions[prior]
	}
	for _, s := range src {
		if s == candidate {
			return true
		}
	}
	return false
}

// ValidateTransition is IsTransitionLegal returning a descriptive error.
func ValidateTransition(isPersisted bool, prior, candidate State) error {
	if IsTransitionLegal(isPersisted, prior, candidate) {
		return nil
	}
	if !isPersisted {
		return fmt.Errorf("%w: new abstract cannot be %s", ErrIllegalTransition, candidate)
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, prior, candidate)
}
