package pet

import (
	"fmt"
	"strings"
)

// State is the pet's behavioral state.
type State int

const (
	StateNormal State = iota
	StateAngry
	StateHungry
	StateSleep
	StateDead
)

var stateNames = [...]string{
	StateNormal: "NORMAL",
	StateAngry:  "ANGRY",
	StateHungry: "HUNGRY",
	StateSleep:  "SLEEP",
	StateDead:   "DEAD",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseState accepts any casing of a state name.
func ParseState(v string) (State, error) {
	for i, name := range stateNames {
		if strings.EqualFold(v, name) {
			return State(i), nil
		}
	}
	return StateNormal, fmt.Errorf("unknown pet state %q", v)
}

// Visual is what the pet looks like, which can differ from State: a pet whose
// fullness just hit zero looks hungry before the next tick marks it HUNGRY.
type Visual string

const (
	VisualNormal Visual = "normal"
	VisualHungry Visual = "hungry"
	VisualAngry  Visual = "angry"
	VisualSleep  Visual = "sleep"
	VisualDead   Visual = "dead"
)

// DeriveVisual picks the display state: dead, then asleep, then starving,
// then miserable, otherwise normal.
func DeriveVisual(s *Stats, state State) Visual {
	switch {
	case !s.Alive():
		return VisualDead
	case state == StateSleep:
		return VisualSleep
	case s.fullness == 0:
		return VisualHungry
	case s.happiness == 0:
		return VisualAngry
	default:
		return VisualNormal
	}
}

// DeriveState recomputes the cached state after a batch of action mutations
// without running a tick. It never mutates stats.
//
// SLEEP, HUNGRY and ANGRY are only cleared by Tick, which applies their
// per-tick costs first, so they carry over here. A living pet whose cached
// state is DEAD has been revived and is re-derived from NORMAL.
func DeriveState(s *Stats, prior State) State {
	if !s.Alive() {
		return StateDead
	}
	switch prior {
	case StateSleep, StateHungry, StateAngry:
		return prior
	}
	switch {
	case s.happiness <= 0:
		return StateAngry
	case s.fullness <= 0:
		return StateHungry
	default:
		return StateNormal
	}
}
