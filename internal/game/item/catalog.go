package item

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/arena/internal/game/dice"
)

// Catalog is the read-only item database. Safe for unsynchronized concurrent
// reads after construction.
type Catalog struct {
	items []Item
}

// NewCatalog builds a Catalog from the given items.
//
// Precondition: items must be non-empty and every entry valid.
// Postcondition: Returns a Catalog holding a private copy of items, or an error
// on the first invalid entry.
func NewCatalog(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one item")
	}
	owned := make([]Item, len(items))
	copy(owned, items)
	for i := range owned {
		if err := owned[i].Validate(); err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", i, err)
		}
	}
	return &Catalog{items: owned}, nil
}

// DefaultCatalog returns the built-in catalog.
//
// Postcondition: Returns a non-nil Catalog; panics if the built-in table is
// invalid (a programming error, caught by the package tests).
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems())
	if err != nil {
		panic("item: built-in catalog invalid: " + err.Error())
	}
	return c
}

// All returns a copy of every catalog entry.
func (c *Catalog) All() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ByType returns all items of the given type.
func (c *Catalog) ByType(itemType string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Type == itemType {
			out = append(out, it)
		}
	}
	return out
}

// ByRarity returns all items of the given rarity.
func (c *Catalog) ByRarity(rarity string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Rarity == rarity {
			out = append(out, it)
		}
	}
	return out
}

// ByName finds an item by case-insensitive name match.
//
// Postcondition: Returns (item, true) if found, or (zero, false) otherwise.
func (c *Catalog) ByName(name string) (Item, bool) {
	for _, it := range c.items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return Item{}, false
}

// RandomItem picks a uniform random item of the given rarity. An empty rarity
// draws from the full catalog. If the rarity has no entries, the pick falls
// back to common.
//
// Precondition: src must be non-nil.
// Postcondition: Returns an item from the catalog.
func (c *Catalog) RandomItem(rarity string, src dice.Source) Item {
	pool := c.items
	if rarity != "" {
		pool = c.ByRarity(rarity)
	}
	if len(pool) == 0 {
		pool = c.ByRarity(RarityCommon)
	}
	return pool[src.Intn(len(pool))]
}

// ShopItems returns the current shop selection: one random item per rarity
// tier that has entries.
//
// Precondition: src must be non-nil.
func (c *Catalog) ShopItems(src dice.Source) []Item {
	var shop []Item
	for _, rarity := range Rarities {
		pool := c.ByRarity(rarity)
		if len(pool) == 0 {
			continue
		}
		shop = append(shop, pool[src.Intn(len(pool))])
	}
	return shop
}

// LocationDrops generates 1-3 items for a location type, with drop rarity
// scaled by player level and the location's rarity modifiers.
//
// Precondition: playerLevel >= 1; src must be non-nil.
// Postcondition: Returns between 1 and 3 items.
func (c *Catalog) LocationDrops(locationType string, playerLevel int, src dice.Source) []Item {
	count := dice.Between(src, 1, 3)
	drops := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		rarity := rollRarity(playerLevel, locationType, src)
		drops = append(drops, c.RandomItem(rarity, src))
	}
	return drops
}

// locationRarityMods shifts drop chances per location type; every point added
// to a higher tier is taken from common.
var locationRarityMods = map[string]map[string]int{
	"city_center":     {RarityRare: 5, RarityEpic: 3, RarityLegendary: 1},
	"industrial_zone": {RarityCommon: 10, RarityRare: 5},
	"underground":     {RarityRare: 8, RarityEpic: 5, RarityLegendary: 2},
	"cyber_market":    {RarityRare: 10, RarityEpic: 8, RarityLegendary: 3},
	"wasteland":       {RarityCommon: 15, RarityRare: 10, RarityEpic: 5},
}

// rollRarity picks a drop rarity from the base 60/30/8/2 distribution adjusted
// by player level (up to +3 on each non-common tier) and location modifiers,
// renormalized before the roll.
func rollRarity(playerLevel int, locationType string, src dice.Source) string {
	chances := map[string]float64{
		RarityCommon:    60,
		RarityRare:      30,
		RarityEpic:      8,
		RarityLegendary: 2,
	}

	levelMod := playerLevel / 5
	if levelMod > 3 {
		levelMod = 3
	}
	for _, rarity := range []string{RarityRare, RarityEpic, RarityLegendary} {
		chances[rarity] += float64(levelMod)
	}

	if mods, ok := locationRarityMods[locationType]; ok {
		for rarity, mod := range mods {
			chances[rarity] += float64(mod)
			chances[RarityCommon] -= float64(mod)
		}
	}

	var total float64
	for _, v := range chances {
		total += v
	}
	roll := dice.Fraction(src) * 100
	var cumulative float64
	for _, rarity := range Rarities {
		cumulative += chances[rarity] / total * 100
		if roll <= cumulative {
			return rarity
		}
	}
	return RarityCommon
}
