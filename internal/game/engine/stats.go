package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/location"
	"github.com/cory-johannsen/arena/internal/game/player"
)

// Leaderboard categories.
const (
	CategoryLevel      = "level"
	CategoryExperience = "experience"
	CategoryCredits    = "credits"
	CategoryCombatWins = "combat_wins"
	CategoryItemsFound = "items_found"
)

// LeaderboardEntry is one row of a leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	Value    int    `json:"value"`
}

// GameStats aggregates the whole player base.
type GameStats struct {
	TotalPlayers    int     `json:"total_players"`
	AverageLevel    float64 `json:"average_level"` // rounded to 0.1
	TotalExperience int     `json:"total_experience"`
	TotalCredits    int     `json:"total_credits"`
	TotalCombats    int     `json:"total_combats"`
	TotalItemsFound int     `json:"total_items_found"`
}

// Progress is a player's progression report.
type Progress struct {
	Level            int                  `json:"level"`
	Experience       int                  `json:"experience"`
	ExperienceToNext int                  `json:"experience_to_next_level"`
	ProgressPercent  float64              `json:"progress_percent"` // rounded to 0.1
	Rank             string               `json:"rank"`
	CombatStats      combat.Stats         `json:"combat_stats"`
	SearchStats      location.SearchStats `json:"search_stats"`
	Playtime         string               `json:"total_playtime"`
}

// Leaderboard returns the top players for a category, descending. An unknown
// category falls back to level.
func (e *Engine) Leaderboard(ctx context.Context, category string, limit int) ([]LeaderboardEntry, error) {
	players, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}

	value := func(p *player.Player) int {
		switch category {
		case CategoryExperience:
			return p.Experience
		case CategoryCredits:
			return p.Credits
		case CategoryCombatWins:
			return p.CombatWins
		case CategoryItemsFound:
			return p.ItemsFound
		default:
			return p.Level
		}
	}

	sort.Slice(players, func(i, j int) bool {
		return value(players[i]) > value(players[j])
	})

	if limit <= 0 || limit > len(players) {
		limit = len(players)
	}
	entries := make([]LeaderboardEntry, 0, limit)
	for i, p := range players[:limit] {
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			Username: p.Username,
			Level:    p.Level,
			Value:    value(p),
		})
	}
	return entries, nil
}

// Stats aggregates totals over the whole player base. An empty base yields
// the zero value.
func (e *Engine) Stats(ctx context.Context) (GameStats, error) {
	players, err := e.store.All(ctx)
	if err != nil {
		return GameStats{}, fmt.Errorf("loading players: %w", err)
	}
	if len(players) == 0 {
		return GameStats{}, nil
	}

	var stats GameStats
	var totalLevel int
	for _, p := range players {
		stats.TotalPlayers++
		totalLevel += p.Level
		stats.TotalExperience += p.Experience
		stats.TotalCredits += p.Credits
		stats.TotalCombats += p.CombatWins + p.CombatLosses
		stats.TotalItemsFound += p.ItemsFound
	}
	stats.AverageLevel = math.Round(float64(totalLevel)/float64(stats.TotalPlayers)*10) / 10
	return stats, nil
}

// Progress builds a player's progression report: level progress, rank, and
// the combat and search statistics.
func (e *Engine) Progress(ctx context.Context, playerID string) (*Progress, error) {
	p, err := e.store.Load(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading player %q: %w", playerID, err)
	}

	percent := float64(p.Experience) / float64(p.ExperienceToNext) * 100
	return &Progress{
		Level:            p.Level,
		Experience:       p.Experience,
		ExperienceToNext: p.ExperienceToNext,
		ProgressPercent:  math.Round(percent*10) / 10,
		Rank:             rankFor(p.Level),
		CombatStats:      e.battles.Stats(p.ID),
		SearchStats:      e.locations.Stats(p.ID),
		Playtime:         p.Playtime(e.clock()),
	}, nil
}

// rankFor maps a level to its display rank.
func rankFor(level int) string {
	switch {
	case level >= 30:
		return "Легенда"
	case level >= 20:
		return "Мастер"
	case level >= 15:
		return "Эксперт"
	case level >= 10:
		return "Ветеран"
	case level >= 5:
		return "Опытный"
	default:
		return "Новичок"
	}
}

// Recommendations suggests next steps based on the player's current state.
func (e *Engine) Recommendations(ctx context.Context, playerID string) ([]string, error) {
	p, err := e.store.Load(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading player %q: %w", playerID, err)
	}

	now := e.clock()
	var recs []string

	if p.Health < p.MaxHealth/2 {
		recs = append(recs, "Твое здоровье низкое! Используй меди-гель или отдохни.")
	}
	if p.Level < 5 {
		recs = append(recs, "Сражайся с противниками, чтобы получить опыт и повысить уровень!")
	}
	if len(p.Inventory) < 3 {
		recs = append(recs, "Исследуй локации, чтобы найти полезные предметы!")
	}
	if p.Credits < 100 {
		recs = append(recs, "Участвуй в боях, чтобы заработать кредиты!")
	}
	if !p.CanCombat(now) {
		recs = append(recs, fmt.Sprintf("Подожди %d секунд перед следующим боем.", p.CombatCooldownRemaining(now)))
	}
	if !p.CanSearch(now) {
		recs = append(recs, fmt.Sprintf("Подожди %d секунд перед следующим поиском.", p.SearchCooldownRemaining(now)))
	}
	if len(recs) == 0 {
		recs = append(recs, "Ты на правильном пути! Продолжай развивать персонажа.")
	}
	return recs, nil
}
