// Package shop holds the price list and sells items to a pet.
package shop

import (
	"fmt"

	"github.com/sethgrid/petkeeper/internal/pet"
)

type Category string

const (
	CategoryFood        Category = "food"
	CategorySpeciesFood Category = "species food"
	CategoryGift        Category = "gift"
)

// Listing is one line of the price list.
type Listing struct {
	Item     string
	Price    int
	Category Category
	// For is only meaningful for species food.
	For pet.Species
}

// Catalog is an immutable price list.
type Catalog struct {
	listings []Listing
}

// Default returns the standard price list.
func Default() *Catalog {
	return &Catalog{listings: []Listing{
		{Item: pet.Kibble, Price: 5, Category: CategoryFood},
		{Item: pet.Treats, Price: 10, Category: CategoryFood},
		{Item: pet.PremiumFood, Price: 15, Category: CategoryFood},
		{Item: pet.Tuna, Price: 12, Category: CategorySpeciesFood, For: pet.Cat},
		{Item: pet.Carrots, Price: 12, Category: CategorySpeciesFood, For: pet.Bunny},
		{Item: pet.DogTreats, Price: 12, Category: CategorySpeciesFood, For: pet.Dog},
		{Item: pet.ToyBall, Price: 10, Category: CategoryGift},
		{Item: pet.ComfortBlanket, Price: 12, Category: CategoryGift},
		{Item: pet.HealthTreat, Price: 15, Category: CategoryGift},
	}}
}

func (c *Catalog) Price(item string) (int, bool) {
	for _, l := range c.listings {
		if l.Item == item {
			return l.Price, true
		}
	}
	return 0, false
}

// Items returns every listing: food, then species food, then gifts.
func (c *Catalog) Items() []Listing {
	return append([]Listing(nil), c.listings...)
}

// ForSpecies lists what s can make use of. Other species' food is left out.
func (c *Catalog) ForSpecies(s pet.Species) []Listing {
	var out []Listing
	for _, l := range c.listings {
		if l.Category == CategorySpeciesFood && l.For != s {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (c *Catalog) names() []string {
	names := make([]string, len(c.listings))
	for i, l := range c.listings {
		names[i] = l.Item
	}
	return names
}

// Buy sells one unit of item to p at the listed price.
func (c *Catalog) Buy(p *pet.Pet, item string) (pet.Result, error) {
	price, ok := c.Price(item)
	if !ok {
		return pet.Result{}, pet.UnknownItemError(item, c.names())
	}
	r, err := p.Purchase(item, price)
	if err != nil {
		return pet.Result{}, fmt.Errorf("failed to buy %s: %w", item, err)
	}
	return r, nil
}
