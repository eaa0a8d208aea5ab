package pet

import (
	"fmt"
)

// Action names, as reported in Result and recorded in the journal.
const (
	ActionFeed     = "feed"
	ActionPlay     = "play"
	ActionSleep    = "sleep"
	ActionExercise = "exercise"
	ActionVet      = "vet"
	ActionUseItem  = "use-item"
	ActionPurchase = "purchase"
	ActionRevive   = "revive"
)

const (
	PlayHappiness = 15
	PlayEnergy    = 10
	PlayScore     = 15
	PlayRewardMin = 5
	PlayRewardMax = 9

	SleepHealthCost = 10
	SleepScore      = 10
	SleepRewardMin  = 3
	SleepRewardMax  = 5

	ExerciseHealth      = 15
	ExerciseEnergy      = 15
	ExerciseFullness    = 10
	ExerciseMinEnergy   = 15
	ExerciseMinFullness = 10
	ExerciseScore       = 20
	ExerciseRewardMin   = 5
	ExerciseRewardMax   = 9

	VetCost  = 50
	VetScore = 20

	// InventoryCap is the most of one item the shop will sell to a pet.
	InventoryCap = 3
)

// Result reports what an action did. Stat fields are the deltas actually
// applied after clamping.
type Result struct {
	Action string `json:"action"`
	Item   string `json:"item,omitempty"`

	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
	Happiness int `json:"happiness"`
	Fullness  int `json:"fullness"`
	Energy    int `json:"energy"`

	Score  int `json:"score"`
	Earned int `json:"earned"`
	Spent  int `json:"spent"`

	// Wasted is set when an item was consumed without effect.
	Wasted bool  `json:"wasted,omitempty"`
	State  State `json:"state"`
}

func (p *Pet) finish(action, item string, before Stats) Result {
	p.rederive()
	after := p.Stats
	r := Result{
		Action:    action,
		Item:      item,
		Health:    after.health - before.health,
		MaxHealth: after.maxHealth - before.maxHealth,
		Happiness: after.happiness - before.happiness,
		Fullness:  after.fullness - before.fullness,
		Energy:    after.energy - before.energy,
		Score:     after.score - before.score,
		State:     p.state,
	}
	if d := after.currency - before.currency; d > 0 {
		r.Earned = d
	} else {
		r.Spent = -d
	}
	return r
}

func (p *Pet) apply(e Effect) {
	// maxHealth first so a gift that raises it does not get clamped away.
	p.Stats.SetMaxHealth(p.Stats.maxHealth + e.MaxHealth)
	p.Stats.SetFullness(p.Stats.fullness + e.Fullness)
	p.Stats.SetHappiness(p.Stats.happiness + e.Happiness)
	p.Stats.SetEnergy(p.Stats.energy + e.Energy)
}

// Feed consumes one unit of a food item. Species-exclusive food fed to the
// wrong species is still consumed but changes nothing.
func (p *Pet) Feed(item string) (Result, error) {
	food, ok := LookupFood(item)
	if !ok {
		return Result{}, UnknownItemError(item, foodNames())
	}
	if p.Inventory.Count(item) <= 0 {
		return Result{}, fmt.Errorf("cannot feed %s: %w", item, ErrOutOfStock)
	}

	before := p.Stats
	wasted := food.Exclusive && food.For != p.Species
	if !wasted {
		p.apply(food.Effect)
	}
	p.Inventory.Remove(item, 1)

	r := p.finish(ActionFeed, item, before)
	r.Wasted = wasted
	return r, nil
}

func (p *Pet) Play() (Result, error) {
	before := p.Stats
	p.Stats.SetHappiness(p.Stats.happiness + PlayHappiness)
	p.Stats.SetEnergy(p.Stats.energy - PlayEnergy)
	p.Stats.AddScore(PlayScore)
	p.Stats.AddCurrency(between(p.random(), PlayRewardMin, PlayRewardMax))
	return p.finish(ActionPlay, "", before), nil
}

// Sleep puts the pet to bed immediately. Going to sleep costs health.
func (p *Pet) Sleep() (Result, error) {
	before := p.Stats
	p.Stats.SetHealth(p.Stats.health - SleepHealthCost)
	p.state = StateSleep
	p.Stats.AddScore(SleepScore)
	p.Stats.AddCurrency(between(p.random(), SleepRewardMin, SleepRewardMax))
	return p.finish(ActionSleep, "", before), nil
}

func (p *Pet) Exercise() (Result, error) {
	if p.Stats.energy < ExerciseMinEnergy {
		return Result{}, fmt.Errorf("too tired to exercise (energy %d, need %d): %w",
			p.Stats.energy, ExerciseMinEnergy, ErrInsufficientResource)
	}
	if p.Stats.fullness < ExerciseMinFullness {
		return Result{}, fmt.Errorf("too hungry to exercise (fullness %d, need %d): %w",
			p.Stats.fullness, ExerciseMinFullness, ErrInsufficientResource)
	}

	before := p.Stats
	p.Stats.SetHealth(p.Stats.health + ExerciseHealth)
	p.Stats.SetEnergy(p.Stats.energy - ExerciseEnergy)
	p.Stats.SetFullness(p.Stats.fullness - ExerciseFullness)
	p.Stats.AddScore(ExerciseScore)
	p.Stats.AddCurrency(between(p.random(), ExerciseRewardMin, ExerciseRewardMax))
	return p.finish(ActionExercise, "", before), nil
}

// VisitVet restores health to maxHealth for a fee.
func (p *Pet) VisitVet() (Result, error) {
	before := p.Stats
	if !p.Stats.SpendCurrency(VetCost) {
		return Result{}, fmt.Errorf("vet costs %d, have %d: %w", VetCost, p.Stats.currency, ErrInsufficientFunds)
	}
	p.Stats.SetHealth(p.Stats.maxHealth)
	p.Stats.AddScore(VetScore)
	return p.finish(ActionVet, "", before), nil
}

// UseItem gives the pet a gift.
func (p *Pet) UseItem(name string) (Result, error) {
	gift, ok := LookupGift(name)
	if !ok {
		return Result{}, UnknownItemError(name, giftNames())
	}
	if p.Inventory.Count(name) <= 0 {
		return Result{}, fmt.Errorf("cannot use %s: %w", name, ErrOutOfStock)
	}

	before := p.Stats
	p.apply(gift.Effect)
	p.Inventory.Remove(name, 1)
	return p.finish(ActionUseItem, name, before), nil
}

// Purchase buys one unit of item at price. Vaccines are not subject to the
// per-item cap.
func (p *Pet) Purchase(item string, price int) (Result, error) {
	if p.Stats.currency < price {
		return Result{}, fmt.Errorf("%s costs %d, have %d: %w", item, price, p.Stats.currency, ErrInsufficientFunds)
	}
	if item != Vaccine && p.Inventory.Count(item) >= InventoryCap {
		return Result{}, fmt.Errorf("already holding %d %s: %w", InventoryCap, item, ErrInventoryFull)
	}

	before := p.Stats
	p.Stats.SpendCurrency(price)
	p.Inventory.Add(item, 1)
	return p.finish(ActionPurchase, item, before), nil
}

// Revive resets vitals to their maximum and re-derives state.
func (p *Pet) Revive() Result {
	before := p.Stats
	p.Stats.SetHealth(p.Stats.maxHealth)
	p.Stats.SetHappiness(MaxStat)
	p.Stats.SetFullness(MaxStat)
	p.Stats.SetEnergy(MaxStat)
	p.state = StateNormal
	return p.finish(ActionRevive, "", before)
}

func foodNames() []string {
	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	return names
}

func giftNames() []string {
	names := make([]string, len(gifts))
	for i, g := range gifts {
		names[i] = g.Name
	}
	return names
}
