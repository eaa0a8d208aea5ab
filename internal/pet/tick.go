package pet

const (
	SleepEnergyGain   = 10
	AwakeEnergyCost   = 1
	HungryHealthCost  = 1
	HungryHappyCost   = 3
	IdleHappinessCost = 1
	IdleFullnessCost  = 1
	CalmHappiness     = 50
	ExhaustionPenalty = 10
)

// Tick advances stats by one simulation step and returns the new state.
//
// The checks run in a fixed order and later ones overwrite earlier ones. In
// particular the happiness check at the end runs unconditionally, so a pet
// that dies in the same tick its happiness reaches zero reports ANGRY, not
// DEAD. Alive() still reports false for such a pet.
func Tick(s *Stats, prior State) State {
	state := prior

	if state == StateSleep {
		s.SetEnergy(s.energy + SleepEnergyGain)
		if s.energy >= MaxStat {
			state = StateNormal
		}
	} else {
		s.SetEnergy(s.energy - AwakeEnergyCost)
	}

	if state == StateHungry {
		s.SetHealth(s.health - HungryHealthCost)
		s.SetHappiness(s.happiness - HungryHappyCost)
		if s.fullness > 0 {
			state = StateNormal
		}
	} else {
		s.SetHappiness(s.happiness - IdleHappinessCost)
		s.SetFullness(s.fullness - IdleFullnessCost)
	}

	if state == StateAngry && s.happiness >= CalmHappiness {
		state = StateNormal
	}

	if s.health <= 0 {
		state = StateDead
	} else if s.energy <= 0 {
		// Collapsing from exhaustion costs health.
		s.SetHealth(s.health - ExhaustionPenalty)
		state = StateSleep
	} else if s.fullness <= 0 {
		state = StateHungry
	}
	if s.happiness <= 0 {
		state = StateAngry
	}

	return state
}
