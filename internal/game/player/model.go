// Package player defines the persistent player progression state: level,
// experience, combat stats, cooldowns, and inventory.
package player

import (
	"errors"
	"time"

	"github.com/cory-johannsen/arena/internal/game/item"
)

// ErrNotFound is returned by player stores when no record exists for an ID.
var ErrNotFound = errors.New("player not found")

// Starting values for a freshly created player.
const (
	StartingLevel          = 1
	StartingExperienceGoal = 100
	StartingCredits        = 1000
	StartingHealth         = 100
	StartingAttack         = 10
	StartingDefense        = 5
	StartingSpeed          = 8
	StartingCritical       = 15
)

// Default cooldown durations between repeated player actions.
const (
	DefaultCombatCooldown = 300 * time.Second
	DefaultSearchCooldown = 600 * time.Second
)

// Player is a player's full persistent progression record.
//
// Invariant outside an in-progress battle: 0 <= Health <= MaxHealth and
// Experience >= 0. Base stats never include item bonuses; those are aggregated
// on demand by Profile.
//
// A Player is not safe for concurrent mutation; callers must serialize access
// per player (the engine holds one in-flight action per player ID).
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	Level            int `json:"level"`
	Experience       int `json:"experience"`
	ExperienceToNext int `json:"experience_to_next"`
	Credits          int `json:"credits"`

	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`

	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	Speed          int `json:"speed"`
	CriticalDamage int `json:"critical_damage"` // percent chance of a critical hit

	CombatWins   int `json:"combat_wins"`
	CombatLosses int `json:"combat_losses"`
	ItemsFound   int `json:"items_found"`

	CreatedAt time.Time `json:"created_at"`
	// LastCombat and LastSearch are the most recent action start timestamps.
	// Zero means the action has never been taken.
	LastCombat time.Time `json:"last_combat"`
	LastSearch time.Time `json:"last_search"`

	Inventory []item.Item `json:"inventory"`

	CombatCooldown time.Duration `json:"combat_cooldown"`
	SearchCooldown time.Duration `json:"search_cooldown"`
}

// New creates a level-1 player with starting stats.
//
// Precondition: id and username must be non-empty; now must not be zero.
// Postcondition: Returns a Player satisfying all progression invariants.
func New(id, username string, now time.Time) *Player {
	return &Player{
		ID:               id,
		Username:         username,
		Level:            StartingLevel,
		Experience:       0,
		ExperienceToNext: StartingExperienceGoal,
		Credits:          StartingCredits,
		Health:           StartingHealth,
		MaxHealth:        StartingHealth,
		Attack:           StartingAttack,
		Defense:          StartingDefense,
		Speed:            StartingSpeed,
		CriticalDamage:   StartingCritical,
		CreatedAt:        now,
		CombatCooldown:   DefaultCombatCooldown,
		SearchCooldown:   DefaultSearchCooldown,
	}
}

// Clone returns a deep copy of the player, including the inventory slice.
//
// Postcondition: Mutations of the clone never affect the original.
func (p *Player) Clone() *Player {
	out := *p
	out.Inventory = make([]item.Item, len(p.Inventory))
	copy(out.Inventory, p.Inventory)
	return &out
}

// AddItem appends an item to the inventory. Stat bonuses are never folded into
// base stats; Profile aggregates them on demand.
func (p *Player) AddItem(it item.Item) {
	p.Inventory = append(p.Inventory, it)
}

// RemoveItem removes the first inventory entry with the given name.
//
// Postcondition: Returns true iff an item was removed.
func (p *Player) RemoveItem(name string) bool {
	for i := range p.Inventory {
		if p.Inventory[i].Name == name {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Heal restores health, capped at MaxHealth.
//
// Precondition: amount >= 0.
// Postcondition: Health <= MaxHealth.
func (p *Player) Heal(amount int) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// TakeDamage applies direct (non-battle) damage, mitigated by base defense,
// and returns the actual amount dealt. Used by location hazards.
//
// Precondition: damage >= 0.
// Postcondition: Health >= 0; returns the mitigated damage, minimum 1.
func (p *Player) TakeDamage(damage int) int {
	actual := damage - p.Defense
	if actual < 1 {
		actual = 1
	}
	p.Health -= actual
	if p.Health < 0 {
		p.Health = 0
	}
	return actual
}

// Playtime formats the elapsed time since account creation as "2d 3h 4m".
//
// Precondition: now must not be before CreatedAt.
func (p *Player) Playtime(now time.Time) string {
	return formatDuration(now.Sub(p.CreatedAt))
}
