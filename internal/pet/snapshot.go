package pet

// Snapshot is a read-only copy of a pet for display and export.
type Snapshot struct {
	Name      string      `json:"name" yaml:"name"`
	Species   Species     `json:"species" yaml:"species"`
	State     State       `json:"state" yaml:"state"`
	Visual    Visual      `json:"visual" yaml:"visual"`
	Alive     bool        `json:"alive" yaml:"alive"`
	Health    int         `json:"health" yaml:"health"`
	MaxHealth int         `json:"maxHealth" yaml:"maxHealth"`
	Happiness int         `json:"happiness" yaml:"happiness"`
	Fullness  int         `json:"fullness" yaml:"fullness"`
	Energy    int         `json:"energy" yaml:"energy"`
	Score     int         `json:"score" yaml:"score"`
	Currency  int         `json:"currency" yaml:"currency"`
	CreatedOn string      `json:"createdOn" yaml:"createdOn"`
	Inventory []ItemCount `json:"inventory" yaml:"inventory"`
}

func (p *Pet) Snapshot() Snapshot {
	return Snapshot{
		Name:      p.Name,
		Species:   p.Species,
		State:     p.state,
		Visual:    p.Visual(),
		Alive:     p.Alive(),
		Health:    p.Stats.health,
		MaxHealth: p.Stats.maxHealth,
		Happiness: p.Stats.happiness,
		Fullness:  p.Stats.fullness,
		Energy:    p.Stats.energy,
		Score:     p.Stats.score,
		Currency:  p.Stats.currency,
		CreatedOn: p.CreatedOn.Format("2006-01-02"),
		Inventory: p.Inventory.Items(),
	}
}
