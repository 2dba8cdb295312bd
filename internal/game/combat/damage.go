package combat

import "github.com/cory-johannsen/arena/internal/game/dice"

// Damage jitter bounds applied after the crit check, inclusive.
const (
	damageJitterLo = -2
	damageJitterHi = 2
)

// Damage computes the damage of a single strike.
//
// The base is attack minus half the defender's defense (integer division),
// floored at 1. A percentile roll at or under critChance multiplies the base
// by 1.5, floored. A uniform jitter in [-2, 2] is added last, and the final
// value is floored at 1 again.
//
// Draw order on src is fixed: one crit roll, then one jitter roll. Callers
// relying on scripted sources depend on it.
//
// Precondition: src must not be nil; critChance is a percentage in [0, 100].
// Postcondition: Returns >= 1.
func Damage(attack, defense, critChance int, src dice.Source) int {
	base := attack - defense/2
	if base < 1 {
		base = 1
	}

	// Always consumes exactly one percentile roll, even at 0 or 100, so the
	// draw order stays fixed.
	if dice.Percent(src) <= critChance {
		base = base * 3 / 2
	}

	final := base + dice.Between(src, damageJitterLo, damageJitterHi)
	if final < 1 {
		final = 1
	}
	return final
}
