// Package combat implements the turn-based battle engine: damage and reward
// formulas, the per-round simulation, the battle loop, and the battle history.
package combat

// DefaultRoundCap is the number of rounds a battle may run before it is called
// a draw.
const DefaultRoundCap = 20

// Outcome is the terminal state of a battle from the player's perspective.
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeDraw    Outcome = "draw"
)

// String returns the wire label of the outcome.
func (o Outcome) String() string { return string(o) }

// BattleRound records one simulated round. It is immutable once produced.
//
// PlayerDamage and OpponentDamage are the amounts TAKEN by each side this
// round; a side that never acted because the round ended early contributes 0.
type BattleRound struct {
	Round          int      `json:"round"`
	PlayerHealth   int      `json:"player_health"`
	OpponentHealth int      `json:"opponent_health"`
	PlayerDamage   int      `json:"player_damage"`
	OpponentDamage int      `json:"opponent_damage"`
	Events         []string `json:"events"`
}

// BattleResult is the full report of one resolved battle.
//
// PlayerDamage and OpponentDamage are totals over the whole battle.
// Description is a formatted multi-line human-readable summary; callers must
// treat it as opaque text.
type BattleResult struct {
	Outcome          Outcome `json:"outcome"`
	Description      string  `json:"description"`
	PlayerDamage     int     `json:"player_damage"`
	OpponentDamage   int     `json:"opponent_damage"`
	ExperienceGained int     `json:"experience_gained"`
	CreditsGained    int     `json:"credits_gained"`
	Message          string  `json:"message"`
	Rounds           int     `json:"rounds"`
	OpponentName     string  `json:"opponent_name"`
	OpponentLevel    int     `json:"opponent_level"`
}
