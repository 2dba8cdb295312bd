package player

import "time"

// CanCombat reports whether the combat cooldown has elapsed.
//
// Precondition: now must not be zero.
// Postcondition: Returns true when LastCombat is zero or at least
// CombatCooldown has passed since it.
func (p *Player) CanCombat(now time.Time) bool {
	if p.LastCombat.IsZero() {
		return true
	}
	return now.Sub(p.LastCombat) >= p.CombatCooldown
}

// CanSearch reports whether the search cooldown has elapsed.
//
// Precondition: now must not be zero.
func (p *Player) CanSearch(now time.Time) bool {
	if p.LastSearch.IsZero() {
		return true
	}
	return now.Sub(p.LastSearch) >= p.SearchCooldown
}

// CombatCooldownRemaining returns whole seconds until combat is allowed again.
//
// Postcondition: Returns >= 0; 0 when combat is currently allowed.
func (p *Player) CombatCooldownRemaining(now time.Time) int {
	return remainingSeconds(p.LastCombat, p.CombatCooldown, now)
}

// SearchCooldownRemaining returns whole seconds until search is allowed again.
//
// Postcondition: Returns >= 0; 0 when search is currently allowed.
func (p *Player) SearchCooldownRemaining(now time.Time) int {
	return remainingSeconds(p.LastSearch, p.SearchCooldown, now)
}

// StartCombat stamps the combat cooldown. Called at the start of a battle,
// before any simulation, regardless of outcome.
func (p *Player) StartCombat(now time.Time) {
	p.LastCombat = now
}

// StartSearch stamps the search cooldown.
func (p *Player) StartSearch(now time.Time) {
	p.LastSearch = now
}

// ClearCooldowns resets both action timestamps, re-enabling combat and search
// immediately. Used by the daily reset.
func (p *Player) ClearCooldowns() {
	p.LastCombat = time.Time{}
	p.LastSearch = time.Time{}
}

func remainingSeconds(last time.Time, cooldown time.Duration, now time.Time) int {
	if last.IsZero() {
		return 0
	}
	remaining := cooldown - now.Sub(last)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds())
}
