package pet

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Species is the kind of animal. It is fixed when the pet is created.
type Species int

const (
	Dog Species = iota
	Cat
	Bunny
)

var speciesNames = [...]string{Dog: "DOG", Cat: "CAT", Bunny: "BUNNY"}

// AllSpecies lists every species in save-slot order.
var AllSpecies = []Species{Dog, Cat, Bunny}

func (s Species) String() string {
	if s < 0 || int(s) >= len(speciesNames) {
		return fmt.Sprintf("Species(%d)", int(s))
	}
	return speciesNames[s]
}

func (s Species) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Species) UnmarshalText(b []byte) error {
	v, err := ParseSpecies(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSpecies accepts any casing of dog, cat or bunny.
func ParseSpecies(v string) (Species, error) {
	for i, name := range speciesNames {
		if strings.EqualFold(strings.TrimSpace(v), name) {
			return Species(i), nil
		}
	}
	return Dog, fmt.Errorf("%w: %q", ErrUnknownSpecies, v)
}

const (
	Kibble         = "Kibble"
	Treats         = "Treats"
	PremiumFood    = "Premium Food"
	Tuna           = "Tuna"
	Carrots        = "Carrots"
	DogTreats      = "Dog Treats"
	ToyBall        = "Toy Ball"
	ComfortBlanket = "Comfort Blanket"
	HealthTreat    = "Health Treat"
	Vaccine        = "Vaccine"
)

// Effect is a set of stat deltas an item applies.
type Effect struct {
	Fullness  int
	Happiness int
	Energy    int
	MaxHealth int
}

// Food describes an item that can be fed. Species-exclusive food only has
// an effect on its own species; other species eat it for nothing.
type Food struct {
	Name      string
	Effect    Effect
	Exclusive bool
	For       Species
}

// Gift describes an item that can be given through UseItem.
type Gift struct {
	Name   string
	Effect Effect
}

var foods = []Food{
	{Name: Kibble, Effect: Effect{Fullness: 10}},
	{Name: Treats, Effect: Effect{Fullness: 15, Happiness: 5}},
	{Name: PremiumFood, Effect: Effect{Fullness: 25, Happiness: 10}},
	{Name: Tuna, Effect: Effect{Fullness: 20, Happiness: 20}, Exclusive: true, For: Cat},
	{Name: Carrots, Effect: Effect{Fullness: 20, Energy: 15}, Exclusive: true, For: Bunny},
	{Name: DogTreats, Effect: Effect{Fullness: 20, Happiness: 15}, Exclusive: true, For: Dog},
}

var gifts = []Gift{
	{Name: ToyBall, Effect: Effect{Happiness: 15}},
	{Name: ComfortBlanket, Effect: Effect{Happiness: 20, MaxHealth: 5}},
	{Name: HealthTreat, Effect: Effect{MaxHealth: 10, Happiness: 15}},
}

// StarterInventory is what every new pet starts with, in order.
var StarterInventory = []ItemCount{
	{Name: Kibble, Count: 5},
	{Name: Treats, Count: 2},
	{Name: PremiumFood, Count: 1},
	{Name: Vaccine, Count: 1},
}

func LookupFood(name string) (Food, bool) {
	for _, f := range foods {
		if f.Name == name {
			return f, true
		}
	}
	return Food{}, false
}

func LookupGift(name string) (Gift, bool) {
	for _, g := range gifts {
		if g.Name == name {
			return g, true
		}
	}
	return Gift{}, false
}

// Foods returns the food table.
func Foods() []Food { return append([]Food(nil), foods...) }

// Gifts returns the gift table.
func Gifts() []Gift { return append([]Gift(nil), gifts...) }

// SpeciesFood returns the exclusive food for s.
func SpeciesFood(s Species) Food {
	for _, f := range foods {
		if f.Exclusive && f.For == s {
			return f
		}
	}
	return Food{}
}

// KnownItems lists every item name the engine understands.
func KnownItems() []string {
	names := make([]string, 0, len(foods)+len(gifts)+1)
	for _, f := range foods {
		names = append(names, f.Name)
	}
	for _, g := range gifts {
		names = append(names, g.Name)
	}
	return append(names, Vaccine)
}

// maxSuggestDistance bounds how different a typo may be and still get a
// suggestion.
const maxSuggestDistance = 3

// Suggest returns the closest name in candidates to input, ignoring case.
func Suggest(input string, candidates []string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	in := strings.ToLower(input)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(in, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// UnknownItemError builds an ErrUnknownItem that suggests the closest of
// candidates when one is near enough.
func UnknownItemError(name string, candidates []string) error {
	if s, ok := Suggest(name, candidates); ok {
		return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownItem, name, s)
	}
	return fmt.Errorf("%w: %q", ErrUnknownItem, name)
}

// CanonicalItem resolves a case-insensitive item name to its catalogue
// spelling.
func CanonicalItem(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, known := range KnownItems() {
		if strings.EqualFold(name, known) {
			return known, true
		}
	}
	return name, false
}
