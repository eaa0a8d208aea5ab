package pet

const (
	DefaultMaxHealth = 100
	MaxStat          = 100
	MinStat          = 0
	StartingCurrency = 100
)

// Stats holds a pet's vitals plus score and currency. Every setter clamps its
// argument into the field's range, so no out-of-range value is ever stored.
//
// Health is clamped against the current maxHealth, but lowering maxHealth
// does not pull health down with it; callers that change maxHealth are
// responsible for keeping the two consistent.
type Stats struct {
	health    int
	maxHealth int
	happiness int
	fullness  int
	energy    int
	score     int
	currency  int
}

// NewStats returns a full-health block with the starting purse.
func NewStats() Stats {
	return Stats{
		health:    DefaultMaxHealth,
		maxHealth: DefaultMaxHealth,
		happiness: MaxStat,
		fullness:  MaxStat,
		energy:    MaxStat,
		score:     0,
		currency:  StartingCurrency,
	}
}

func (s *Stats) Health() int    { return s.health }
func (s *Stats) MaxHealth() int { return s.maxHealth }
func (s *Stats) Happiness() int { return s.happiness }
func (s *Stats) Fullness() int  { return s.fullness }
func (s *Stats) Energy() int    { return s.energy }
func (s *Stats) Score() int     { return s.score }
func (s *Stats) Currency() int  { return s.currency }

func (s *Stats) SetHealth(v int) { s.health = clamp(v, MinStat, s.maxHealth) }

// SetMaxHealth has no upper bound; it only refuses to go below 1.
func (s *Stats) SetMaxHealth(v int) {
	if v < 1 {
		v = 1
	}
	s.maxHealth = v
}

func (s *Stats) SetHappiness(v int) { s.happiness = clamp(v, MinStat, MaxStat) }
func (s *Stats) SetFullness(v int)  { s.fullness = clamp(v, MinStat, MaxStat) }
func (s *Stats) SetEnergy(v int)    { s.energy = clamp(v, MinStat, MaxStat) }

func (s *Stats) SetScore(v int) {
	if v < 0 {
		v = 0
	}
	s.score = v
}

func (s *Stats) SetCurrency(v int) {
	if v < 0 {
		v = 0
	}
	s.currency = v
}

func (s *Stats) AddScore(n int)    { s.SetScore(s.score + n) }
func (s *Stats) AddCurrency(n int) { s.SetCurrency(s.currency + n) }

// SpendCurrency deducts amount only if the purse covers it.
func (s *Stats) SpendCurrency(amount int) bool {
	if s.currency < amount {
		return false
	}
	s.currency -= amount
	return true
}

// Alive reports whether health is above zero.
func (s *Stats) Alive() bool { return s.health > 0 }

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
