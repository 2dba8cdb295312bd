// Package item defines the item domain model and the static catalog that
// backs drops, the shop, and player stat bonuses.
package item

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Type constants for Item.Type.
const (
	TypeWeapon  = "weapon"
	TypeArmor   = "armor"
	TypeImplant = "implant"
	TypeUtility = "utility"
)

// validTypes is the set of valid item types.
var validTypes = map[string]bool{
	TypeWeapon:  true,
	TypeArmor:   true,
	TypeImplant: true,
	TypeUtility: true,
}

// Rarity constants for Item.Rarity, from most to least common.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Rarities lists all rarities in ascending order of scarcity.
var Rarities = []string{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

var validRarities = map[string]bool{
	RarityCommon:    true,
	RarityRare:      true,
	RarityEpic:      true,
	RarityLegendary: true,
}

// Item is a catalog entry. Instances in player inventories are value copies;
// the catalog itself is read-only after construction.
//
// Bonus fields feed the aggregated combat profile: weapons contribute
// AttackBonus, armor DefenseBonus, implants SpeedBonus and CriticalBonus.
// Utility items carry no passive bonuses.
type Item struct {
	Name          string `yaml:"name" json:"name"`
	Type          string `yaml:"type" json:"type"`
	Rarity        string `yaml:"rarity" json:"rarity"`
	Description   string `yaml:"description" json:"description"`
	Cost          int    `yaml:"cost" json:"cost"`
	AttackBonus   int    `yaml:"attack_bonus" json:"attack_bonus"`
	DefenseBonus  int    `yaml:"defense_bonus" json:"defense_bonus"`
	SpeedBonus    int    `yaml:"speed_bonus" json:"speed_bonus"`
	CriticalBonus int    `yaml:"critical_bonus" json:"critical_bonus"`
}

// Validate checks that the Item satisfies its invariants.
//
// Postcondition: Returns nil iff Name is non-empty, Type and Rarity are valid,
// Cost >= 0, and all bonuses are >= 0.
func (i *Item) Validate() error {
	var errs []error
	if i.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validTypes[i.Type] {
		errs = append(errs, fmt.Errorf("type must be one of weapon, armor, implant, utility; got %q", i.Type))
	}
	if !validRarities[i.Rarity] {
		errs = append(errs, fmt.Errorf("rarity must be one of common, rare, epic, legendary; got %q", i.Rarity))
	}
	if i.Cost < 0 {
		errs = append(errs, errors.New("cost must be >= 0"))
	}
	if i.AttackBonus < 0 || i.DefenseBonus < 0 || i.SpeedBonus < 0 || i.CriticalBonus < 0 {
		errs = append(errs, errors.New("stat bonuses must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// RarityLabel returns the display label for a rarity, or "Unknown".
func RarityLabel(rarity string) string {
	switch rarity {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as a list
// of Items, validates every entry, and returns the collected slice.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all valid Items or the first encountered error.
func LoadItems(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
	}

	var items []Item
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var batch []Item
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		for idx := range batch {
			if err := batch[idx].Validate(); err != nil {
				return nil, fmt.Errorf("invalid item in %q: %w", path, err)
			}
		}
		items = append(items, batch...)
	}
	return items, nil
}
