package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// SchedulingState is a set of scheduling states. A single instance holds one
// state; listeners use a union of states as a filter, e.g. Waiting|Scheduled.
//
// Transitions are not validated here. The conventional progression is
// Waiting -> Scheduled -> Running -> Done.
type SchedulingState uint32

const (
	// Waiting is the initial state of an admitted task.
	Waiting SchedulingState = 1 << iota
	// Scheduled means the task has been assigned to a node.
	Scheduled
	// Running means the task is executing on its node.
	Running
	// Done is the terminal state.
	Done
)

// AnyState matches every scheduling state.
const AnyState = Waiting | Scheduled | Running | Done

var stateNames = []struct {
	state SchedulingState
	name  string
}{
	{Waiting, "WAITING"},
	{Scheduled, "SCHEDULED"},
	{Running, "RUNNING"},
	{Done, "DONE"},
}

// Has reports whether every state in other is also in s.
func (s SchedulingState) Has(other SchedulingState) bool {
	return other != 0 && s&other == other
}

// Matches reports whether s and filter share at least one state.
func (s SchedulingState) Matches(filter SchedulingState) bool {
	return s&filter != 0
}

// States returns the individual states in s, in progression order.
func (s SchedulingState) States() []SchedulingState {
	var out []SchedulingState
	for _, sn := range stateNames {
		if s&sn.state != 0 {
			out = append(out, sn.state)
		}
	}
	return out
}

// String renders the set as names joined by "|", e.g. "WAITING|SCHEDULED".
func (s SchedulingState) String() string {
	if s == 0 {
		return "NONE"
	}
	names := make([]string, 0, len(stateNames))
	for _, sn := range stateNames {
		if s&sn.state != 0 {
			names = append(names, sn.name)
		}
	}
	if rest := s &^ AnyState; rest != 0 {
		names = append(names, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(names, "|")
}

// ParseSchedulingState parses a case-insensitive list of state names joined by "|".
func ParseSchedulingState(s string) (SchedulingState, error) {
	var out SchedulingState
	for part := range strings.SplitSeq(s, "|") {
		name := strings.ToUpper(strings.TrimSpace(part))
		found := false
		for _, sn := range stateNames {
			if sn.name == name {
				out |= sn.state
				found = true
				break
			}
		}
		if !found {
			return 0, zerr.With(ErrInvalidState, "state", part)
		}
	}
	return out, nil
}
