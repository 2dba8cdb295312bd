package combat

import (
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/dice"
)

// Initiative jitter bounds, inclusive.
const (
	initiativeJitterLo = -2
	initiativeJitterHi = 2
)

// Combatant is the minimal per-battle view of one side: the aggregated stats
// feeding the formulas and the remaining health.
type Combatant struct {
	Attack         int
	Defense        int
	Speed          int
	CriticalDamage int
	Health         int
}

// SimulateRound resolves one round between the player and the opponent and
// returns the round record with both sides' post-round health.
//
// Each side rolls initiative as speed plus a jitter in [-2, 2]; the higher
// roll strikes first, with ties going to the player. When the first strike
// drops the defender to 0 the round ends immediately and the defender's
// counterattack never happens, leaving its damage at 0.
//
// Precondition: both combatants have Health > 0; src must not be nil.
// Postcondition: At least one event is recorded; health fields are >= 0.
func SimulateRound(player, opponent *Combatant, roundNum int, src dice.Source) BattleRound {
	result := BattleRound{
		Round:          roundNum,
		PlayerHealth:   player.Health,
		OpponentHealth: opponent.Health,
	}

	playerInitiative := player.Speed + dice.Between(src, initiativeJitterLo, initiativeJitterHi)
	opponentInitiative := opponent.Speed + dice.Between(src, initiativeJitterLo, initiativeJitterHi)

	if playerInitiative >= opponentInitiative {
		dmg := Damage(player.Attack, opponent.Defense, player.CriticalDamage, src)
		opponent.Health = clampHealth(opponent.Health - dmg)
		result.OpponentDamage = dmg
		result.Events = append(result.Events, fmt.Sprintf("Ты наносишь %d урона!", dmg))

		if opponent.Health <= 0 {
			result.OpponentHealth = 0
			return result
		}

		dmg = Damage(opponent.Attack, player.Defense, opponent.CriticalDamage, src)
		player.Health = clampHealth(player.Health - dmg)
		result.PlayerDamage = dmg
		result.Events = append(result.Events, fmt.Sprintf("Противник наносит %d урона!", dmg))
	} else {
		dmg := Damage(opponent.Attack, player.Defense, opponent.CriticalDamage, src)
		player.Health = clampHealth(player.Health - dmg)
		result.PlayerDamage = dmg
		result.Events = append(result.Events, fmt.Sprintf("Противник наносит %d урона!", dmg))

		if player.Health <= 0 {
			result.PlayerHealth = 0
			return result
		}

		dmg = Damage(player.Attack, opponent.Defense, player.CriticalDamage, src)
		opponent.Health = clampHealth(opponent.Health - dmg)
		result.OpponentDamage = dmg
		result.Events = append(result.Events, fmt.Sprintf("Ты наносишь %d урона!", dmg))
	}

	result.PlayerHealth = player.Health
	result.OpponentHealth = opponent.Health
	return result
}

func clampHealth(h int) int {
	if h < 0 {
		return 0
	}
	return h
}
