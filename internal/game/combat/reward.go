package combat

// Reward curve constants.
const (
	expPerOpponentLevel     = 10
	creditsPerOpponentLevel = 5
	expUpsetBonusPerLevel   = 5
	creditUpsetBonusPerLevel = 3
)

// ExperienceReward computes the experience granted for a battle.
//
// The base is the opponent's level times 10. A victory multiplies it by 1.5
// (floored) and, when the opponent outleveled the player, adds 5 per level of
// difference. Any non-victory outcome pays 30% of the base, floored.
//
// Postcondition: Returns >= 1.
func ExperienceReward(playerLevel, opponentLevel int, victory bool) int {
	exp := opponentLevel * expPerOpponentLevel

	if victory {
		exp = exp * 3 / 2
		if opponentLevel > playerLevel {
			exp += (opponentLevel - playerLevel) * expUpsetBonusPerLevel
		}
	} else {
		exp = exp * 3 / 10
	}

	if exp < 1 {
		exp = 1
	}
	return exp
}

// CreditsReward computes the credits granted for a battle.
//
// The base is the opponent's level times 5. A victory multiplies it by 1.5
// (floored) and, when the opponent outleveled the player, adds 3 per level of
// difference. Any non-victory outcome pays 20% of the base, floored.
//
// Postcondition: Returns >= 0.
func CreditsReward(playerLevel, opponentLevel int, victory bool) int {
	credits := opponentLevel * creditsPerOpponentLevel

	if victory {
		credits = credits * 3 / 2
		if opponentLevel > playerLevel {
			credits += (opponentLevel - playerLevel) * creditUpsetBonusPerLevel
		}
	} else {
		credits = credits / 5
	}

	if credits < 0 {
		credits = 0
	}
	return credits
}
