package pet

import (
	"fmt"
	"strings"
	"time"
)

// Pet is the aggregate root: identity, stats, inventory and the cached
// behavioral state. A Pet is not safe for concurrent use; callers serialize
// ticks and actions.
type Pet struct {
	Name      string
	Species   Species
	CreatedOn time.Time

	Stats     Stats
	Inventory *Inventory

	state State
	rng   Rand
}

// New creates a fresh pet with full stats and the starter inventory.
func New(name string, species Species, now time.Time) *Pet {
	p := &Pet{
		Name:      name,
		Species:   species,
		CreatedOn: dateOf(now),
		Stats:     NewStats(),
		Inventory: NewInventory(),
		state:     StateNormal,
	}
	for _, item := range StarterInventory {
		p.Inventory.Add(item.Name, item.Count)
	}
	return p
}

// Restore rebuilds a pet from persisted parts and re-derives its state.
func Restore(name string, species Species, createdOn time.Time, stats Stats, inv *Inventory) *Pet {
	if inv == nil {
		inv = NewInventory()
	}
	p := &Pet{
		Name:      name,
		Species:   species,
		CreatedOn: dateOf(createdOn),
		Stats:     stats,
		Inventory: inv,
	}
	p.state = DeriveState(&p.Stats, StateNormal)
	return p
}

func (p *Pet) State() State { return p.state }

// OverrideState forces the cached state. It exists for loaders and tests;
// gameplay goes through Update and the actions.
func (p *Pet) OverrideState(s State) { p.state = s }

func (p *Pet) Visual() Visual { return DeriveVisual(&p.Stats, p.state) }

func (p *Pet) Alive() bool { return p.Stats.Alive() }

// SetRand replaces the reward source.
func (p *Pet) SetRand(r Rand) { p.rng = r }

func (p *Pet) random() Rand {
	if p.rng == nil {
		p.rng = NewRand(0)
	}
	return p.rng
}

// Update runs exactly one tick. A pet whose cached state is DEAD stays dead;
// only Revive brings it back.
func (p *Pet) Update() State {
	if p.state == StateDead {
		return p.state
	}
	p.state = Tick(&p.Stats, p.state)
	return p.state
}

func (p *Pet) rederive() {
	p.state = DeriveState(&p.Stats, p.state)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateName rejects names that could not be written to a single save
// file line.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidName, name)
	}
	return nil
}
