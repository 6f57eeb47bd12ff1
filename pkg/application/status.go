package application

import (
	"fmt"
	"strings"
)

// Status of an application in the hiring pipeline.
type Status string

const (
	StatusApplied  Status = "applied"
	StatusRejected Status = "rejected"
	StatusInvited  Status = "invited"
	StatusHired    Status = "hired"
)

// transitions is the full table of legal moves. Absent keys and absent
// targets are both illegal, including self-transitions.
var transitions = map[Status][]Status{
	StatusApplied:  {StatusRejected, StatusInvited, StatusHired},
	StatusInvited:  {StatusRejected, StatusHired},
	StatusRejected: {},
	StatusHired:    {},
}

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApplied:
		return StatusApplied, true
	case StatusRejected:
		return StatusRejected, true
	case StatusInvited:
		return StatusInvited, true
	case StatusHired:
		return StatusHired, true
	}
	return "", false
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is legal from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionError names the persisted and the attempted status of a rejected
// move. It renders as a 400 validation error at the boundary.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}
