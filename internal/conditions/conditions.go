package conditions

import (
	"strings"

	"github.com/sethgrid/petkeeper/internal/pet"
)

type Condition string

const (
	CondDead   Condition = "dead"
	CondAsleep Condition = "asleep"
	CondWeak   Condition = "weak"
	CondHungry Condition = "hungry"
	CondTired  Condition = "tired"
	CondSad    Condition = "sad"
	CondHappy  Condition = "happy"
)

// LowThreshold is the level below which a stat is reported as low.
const LowThreshold = 25

type DerivedStatus struct {
	Conditions map[Condition]bool
	Primary    Condition
	AllOrdered []Condition
}

func DeriveStatus(p *pet.Pet) DerivedStatus {
	conds := make(map[Condition]bool)
	var allOrdered []Condition
	add := func(c Condition) {
		if !conds[c] {
			conds[c] = true
			allOrdered = append(allOrdered, c)
		}
	}

	// Priority 1: dead
	if !p.Alive() || p.State() == pet.StateDead {
		add(CondDead)
	}

	// Priority 2: asleep
	if p.State() == pet.StateSleep {
		add(CondAsleep)
	}

	// Priority 3: weak
	if p.Stats.Health() < LowThreshold {
		add(CondWeak)
	}

	// Priority 4: hungry
	if p.Stats.Fullness() < LowThreshold || p.State() == pet.StateHungry {
		add(CondHungry)
	}

	// Priority 5: tired
	if p.Stats.Energy() < LowThreshold {
		add(CondTired)
	}

	// Priority 6: sad
	if p.Stats.Happiness() < LowThreshold || p.State() == pet.StateAngry {
		add(CondSad)
	}

	// Priority 7: happy (default if nothing else applies)
	if len(allOrdered) == 0 {
		add(CondHappy)
	}

	return DerivedStatus{
		Conditions: conds,
		Primary:    allOrdered[0],
		AllOrdered: allOrdered,
	}
}

// FormatConditions formats a slice of conditions into a comma-separated string.
// Returns "happy" if the slice is empty. A dead pet is only ever "dead".
func FormatConditions(conds []Condition) string {
	if len(conds) == 0 {
		return "happy"
	}
	for _, c := range conds {
		if c == CondDead {
			return string(CondDead)
		}
	}

	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Warning is a one-off alert about a stat that dropped below LowThreshold.
type Warning struct {
	Condition Condition
	Message   string
}

type watched struct {
	cond    Condition
	message string
	value   func(*pet.Stats) int
}

var watchList = []watched{
	{CondWeak, "Your pet's health is dangerously low!", (*pet.Stats).Health},
	{CondTired, "Your pet is very tired!", (*pet.Stats).Energy},
	{CondHungry, "Your pet is very hungry!", (*pet.Stats).Fullness},
	{CondSad, "Your pet is very unhappy!", (*pet.Stats).Happiness},
}

// Watcher raises each low-stat warning once, then stays quiet until the stat
// recovers to LowThreshold or above. The zero value is ready to use.
type Watcher struct {
	shown map[Condition]bool
}

// Check returns the warnings newly raised by s.
func (w *Watcher) Check(s *pet.Stats) []Warning {
	if w.shown == nil {
		w.shown = make(map[Condition]bool)
	}
	var out []Warning
	for _, wl := range watchList {
		if wl.value(s) < LowThreshold {
			if !w.shown[wl.cond] {
				w.shown[wl.cond] = true
				out = append(out, Warning{Condition: wl.cond, Message: wl.message})
			}
		} else {
			w.shown[wl.cond] = false
		}
	}
	return out
}

// Reset forgets which warnings were already raised.
func (w *Watcher) Reset() {
	clear(w.shown)
}
