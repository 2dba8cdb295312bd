package combat

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/opponent"
	"github.com/cory-johannsen/arena/internal/game/player"
)

// System drives battles end to end: matchmaking against the roster, the round
// loop, outcome determination, reward application, and history recording.
//
// A System assumes exclusive access to a player record for the duration of one
// ExecuteBattle call; callers must serialize per player. The roster is
// read-only and the history synchronizes itself, so distinct players may
// battle concurrently.
type System struct {
	roster   *opponent.Roster
	history  *History
	src      dice.Source
	roundCap int
	logger   *zap.Logger

	// onRecord, when set, receives every appended battle record. Used to
	// mirror records into external storage and metrics.
	onRecord func(BattleRecord)
}

// SystemOption configures a System.
type SystemOption func(*System)

// WithRoundCap overrides the default 20-round battle cap.
func WithRoundCap(limit int) SystemOption {
	return func(s *System) {
		if limit > 0 {
			s.roundCap = limit
		}
	}
}

// WithRecordHook registers a callback invoked after each battle record is
// appended to history. The callback runs on the battle goroutine and must not
// block for long.
func WithRecordHook(fn func(BattleRecord)) SystemOption {
	return func(s *System) { s.onRecord = fn }
}

// NewSystem constructs a battle system over a roster, a bounded history, and a
// randomness source.
//
// Precondition: roster, history, src, and logger must not be nil.
func NewSystem(roster *opponent.Roster, history *History, src dice.Source, logger *zap.Logger, opts ...SystemOption) *System {
	s := &System{
		roster:   roster,
		history:  history,
		src:      src,
		roundCap: DefaultRoundCap,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindOpponent picks a uniformly random opponent within the level bracket of
// the player, or reports none available. Not finding one is an expected empty
// result, not an error.
func (s *System) FindOpponent(p *player.Player) (*opponent.Template, bool) {
	return s.roster.FindOpponent(p.Level, s.src)
}

// ExecuteBattle resolves a full battle between the player and the opponent.
//
// The combat cooldown is stamped at battle start, before any simulation. The
// player's aggregated profile is computed once and used for every round. The
// loop runs until one side drops to 0 health or the round cap is reached;
// hitting the cap is a draw. Rewards are applied through the leveling-aware
// experience grant, win/loss counters update on victory/defeat only, and the
// player's health is floored to 1 afterwards. A battle record is appended to
// history after all player mutations.
//
// ExecuteBattle performs no cooldown check; callers gate on CanCombat first.
//
// Precondition: p and opp must not be nil; p must be fully hydrated.
// Postcondition: p.Health >= 1; result.Rounds <= the configured round cap.
func (s *System) ExecuteBattle(p *player.Player, opp *opponent.Template, now time.Time) *BattleResult {
	p.StartCombat(now)

	profile := p.Profile()
	playerSide := &Combatant{
		Attack:         profile.Attack,
		Defense:        profile.Defense,
		Speed:          profile.Speed,
		CriticalDamage: profile.CriticalDamage,
		Health:         p.Health,
	}
	opponentSide := &Combatant{
		Attack:         opp.Attack,
		Defense:        opp.Defense,
		Speed:          opp.Speed,
		CriticalDamage: opp.CriticalDamage,
		Health:         opp.MaxHP,
	}

	var rounds []BattleRound
	for roundNum := 1; playerSide.Health > 0 && opponentSide.Health > 0 && roundNum <= s.roundCap; roundNum++ {
		rounds = append(rounds, SimulateRound(playerSide, opponentSide, roundNum, s.src))
	}

	var outcome Outcome
	var message string
	switch {
	case playerSide.Health > 0 && opponentSide.Health <= 0:
		outcome = OutcomeVictory
		message = "Победа! Ты одолел противника!"
	case opponentSide.Health > 0 && playerSide.Health <= 0:
		outcome = OutcomeDefeat
		message = "Поражение! Противник оказался сильнее..."
	default:
		outcome = OutcomeDraw
		message = "Ничья! Бой затянулся слишком долго..."
	}

	victory := outcome == OutcomeVictory
	expGained := ExperienceReward(p.Level, opp.Level, victory)
	creditsGained := CreditsReward(p.Level, opp.Level, victory)

	switch outcome {
	case OutcomeVictory:
		p.CombatWins++
	case OutcomeDefeat:
		p.CombatLosses++
	}
	p.AddExperience(expGained)
	p.AddCredits(creditsGained)

	// The simulated health wins out even over a level-up's full heal, floored
	// at 1 so a defeated player is never left at 0.
	p.Health = playerSide.Health
	if p.Health < 1 {
		p.Health = 1
	}

	rec := BattleRecord{
		ID:               uuid.New(),
		Timestamp:        now,
		PlayerID:         p.ID,
		OpponentName:     opp.Name,
		Outcome:          outcome,
		Rounds:           len(rounds),
		ExperienceGained: expGained,
		CreditsGained:    creditsGained,
	}
	s.history.Append(rec)
	if s.onRecord != nil {
		s.onRecord(rec)
	}

	s.logger.Info("battle resolved",
		zap.String("player_id", p.ID),
		zap.String("opponent", opp.Name),
		zap.String("outcome", outcome.String()),
		zap.Int("rounds", len(rounds)),
		zap.Int("experience", expGained),
		zap.Int("credits", creditsGained),
	)

	return &BattleResult{
		Outcome:          outcome,
		Description:      describeBattle(rounds, outcome),
		PlayerDamage:     p.MaxHealth - playerSide.Health,
		OpponentDamage:   opp.MaxHP - opponentSide.Health,
		ExperienceGained: expGained,
		CreditsGained:    creditsGained,
		Message:          message,
		Rounds:           len(rounds),
		OpponentName:     opp.Name,
		OpponentLevel:    opp.Level,
	}
}

// Stats returns the player's aggregate battle statistics over the retained
// history window.
func (s *System) Stats(playerID string) Stats {
	return s.history.StatsFor(playerID)
}

// RecentBattles returns up to limit of the player's most recent battle
// records, newest first.
func (s *System) RecentBattles(playerID string, limit int) []BattleRecord {
	return s.history.Recent(playerID, limit)
}

// describeBattle renders the multi-paragraph human-readable battle summary:
// the duration line, the last three rounds with their events and health, and
// a closing banner per outcome.
func describeBattle(rounds []BattleRound, outcome Outcome) string {
	if len(rounds) == 0 {
		return "Бой не состоялся."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Бой длился %d раундов.\n\n", len(rounds))

	start := len(rounds) - 3
	if start < 0 {
		start = 0
	}
	for _, round := range rounds[start:] {
		fmt.Fprintf(&b, "Раунд %d:\n", round.Round)
		for _, event := range round.Events {
			fmt.Fprintf(&b, "• %s\n", event)
		}
		fmt.Fprintf(&b, "Здоровье: Ты %d, Противник %d\n\n", round.PlayerHealth, round.OpponentHealth)
	}

	switch outcome {
	case OutcomeVictory:
		b.WriteString("🏆 Ты одержал победу в этом бою!")
	case OutcomeDefeat:
		b.WriteString("💀 Противник оказался сильнее...")
	default:
		b.WriteString("🤝 Бой завершился вничью.")
	}
	return b.String()
}
