package player

import (
	"fmt"
	"time"
)

// Per-level stat growth applied by LevelUp.
const (
	levelUpHealthGain   = 20
	levelUpAttackGain   = 3
	levelUpDefenseGain  = 2
	levelUpSpeedGain    = 1
	levelUpCriticalGain = 1
	levelUpCreditBonus  = 100
)

// AddExperience grants experience and performs at most one level-up.
//
// A single call never levels more than once even when the amount crosses two
// thresholds; the surplus stays banked toward the next level and is only
// re-checked on the next grant. This matches the established reward economy
// and is covered by exact-value tests.
//
// Precondition: amount >= 0.
// Postcondition: Experience >= 0; returns true iff a level-up fired.
func (p *Player) AddExperience(amount int) bool {
	p.Experience += amount
	if p.Experience >= p.ExperienceToNext {
		p.LevelUp()
		return true
	}
	return false
}

// LevelUp advances the player by exactly one level: the current threshold is
// consumed, the next threshold grows by half (floored), max health rises with
// a full heal, base stats grow, and a flat credit bonus is paid.
//
// Postcondition: Level is incremented by 1; Health == MaxHealth.
func (p *Player) LevelUp() {
	p.Level++
	p.Experience -= p.ExperienceToNext
	p.ExperienceToNext = p.ExperienceToNext * 3 / 2

	p.MaxHealth += levelUpHealthGain
	p.Health = p.MaxHealth
	p.Attack += levelUpAttackGain
	p.Defense += levelUpDefenseGain
	p.Speed += levelUpSpeedGain
	p.CriticalDamage += levelUpCriticalGain

	p.Credits += levelUpCreditBonus
}

// AddCredits grants credits.
//
// Precondition: amount >= 0.
func (p *Player) AddCredits(amount int) {
	p.Credits += amount
}

// SpendCredits deducts amount if the balance covers it.
//
// Postcondition: Returns true iff the balance was sufficient and deducted.
func (p *Player) SpendCredits(amount int) bool {
	if p.Credits < amount {
		return false
	}
	p.Credits -= amount
	return true
}

// formatDuration renders a duration as "2d 3h 4m", omitting zero leading units.
func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
