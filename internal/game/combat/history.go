package combat

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit is the number of battle records the in-memory history
// retains before discarding the oldest.
const DefaultHistoryLimit = 1000

// BattleRecord is the persisted summary of one resolved battle. Created once
// per battle; never mutated.
type BattleRecord struct {
	ID               uuid.UUID `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	PlayerID         string    `json:"player_id"`
	OpponentName     string    `json:"opponent_name"`
	Outcome          Outcome   `json:"outcome"`
	Rounds           int       `json:"rounds"`
	ExperienceGained int       `json:"experience_gained"`
	CreditsGained    int       `json:"credits_gained"`
}

// Stats summarizes a player's battle history.
type Stats struct {
	TotalBattles  int     `json:"total_battles"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`       // percent, rounded to 0.1
	AverageRounds float64 `json:"average_rounds"` // rounded to 0.1
}

// History is a bounded, append-only log of battle records. Once the limit is
// reached the oldest record is dropped for each append. Safe for concurrent
// use.
type History struct {
	mu      sync.RWMutex
	records []BattleRecord
	limit   int
}

// NewHistory creates a history retaining at most limit records. A limit <= 0
// falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append adds a record, evicting the oldest when the history is full.
func (h *History) Append(rec BattleRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) >= h.limit {
		h.records = h.records[1:]
	}
	h.records = append(h.records, rec)
}

// Len returns the number of retained records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// ForPlayer returns all retained records for a player, oldest first.
func (h *History) ForPlayer(playerID string) []BattleRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []BattleRecord
	for _, rec := range h.records {
		if rec.PlayerID == playerID {
			out = append(out, rec)
		}
	}
	return out
}

// Recent returns up to limit of the player's most recent records, newest
// first.
func (h *History) Recent(playerID string, limit int) []BattleRecord {
	records := h.ForPlayer(playerID)
	if limit < 0 {
		limit = 0
	}

	out := make([]BattleRecord, 0, limit)
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out
}

// StatsFor computes aggregate battle statistics for a player over the
// retained window. An empty history yields the zero Stats.
func (h *History) StatsFor(playerID string) Stats {
	records := h.ForPlayer(playerID)
	if len(records) == 0 {
		return Stats{}
	}

	var stats Stats
	var totalRounds int
	for _, rec := range records {
		stats.TotalBattles++
		totalRounds += rec.Rounds
		switch rec.Outcome {
		case OutcomeVictory:
			stats.Wins++
		case OutcomeDefeat:
			stats.Losses++
		}
	}

	stats.WinRate = roundTenth(float64(stats.Wins) / float64(stats.TotalBattles) * 100)
	stats.AverageRounds = roundTenth(float64(totalRounds) / float64(stats.TotalBattles))
	return stats
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
