package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Daily reset and cleanup tuning.
const (
	dailyBonusBase            = 50
	dailyBonusPerLevel        = 5
	defaultInactiveCutoffDays = 30
)

// DailyReset applies the daily bonus to every player who has not received one
// today: a full heal, 50 + 5 per level credits, and cleared action cooldowns.
// Intended to run on a schedule; re-running within the same calendar day is a
// no-op per player.
//
// The listing is only used to enumerate IDs; each record is re-loaded under
// its per-player lock so a concurrent action's save is never overwritten.
func (e *Engine) DailyReset(ctx context.Context) error {
	players, err := e.store.All(ctx)
	if err != nil {
		return fmt.Errorf("loading players: %w", err)
	}

	now := e.clock()
	today := now.Truncate(24 * time.Hour)

	var reset int
	for _, listed := range players {
		e.mu.Lock()
		last, ok := e.lastReset[listed.ID]
		e.mu.Unlock()
		if ok && !last.Truncate(24*time.Hour).Before(today) {
			continue
		}

		unlock := e.lockPlayer(listed.ID)
		p, err := e.store.Load(ctx, listed.ID)
		if err != nil {
			unlock()
			if isNotFound(err) {
				continue
			}
			return fmt.Errorf("loading player %q: %w", listed.ID, err)
		}

		p.Heal(p.MaxHealth)
		bonus := dailyBonusBase + p.Level*dailyBonusPerLevel
		p.AddCredits(bonus)
		p.ClearCooldowns()

		err = e.store.Save(ctx, p)
		unlock()
		if err != nil {
			return fmt.Errorf("saving player %q: %w", p.ID, err)
		}

		e.mu.Lock()
		e.lastReset[p.ID] = now
		e.mu.Unlock()

		e.addEvent(fmt.Sprintf("Игрок %s получил ежедневный бонус: %d кредитов", p.Username, bonus))
		reset++
	}

	if reset > 0 {
		e.logger.Info("daily reset applied", zap.Int("players", reset))
	}
	return nil
}

// CleanupInactive removes players whose last combat AND last search are both
// older than the cutoff. Players who never fought or never searched are kept.
// days <= 0 falls back to 30.
//
// Staleness is re-checked on a fresh load under the per-player lock, so a
// player who acts between the listing and the delete survives. The lock map
// entry is kept; another goroutine may still hold that mutex.
func (e *Engine) CleanupInactive(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		days = defaultInactiveCutoffDays
	}
	cutoff := e.clock().AddDate(0, 0, -days)

	players, err := e.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading players: %w", err)
	}

	var removed int
	for _, listed := range players {
		unlock := e.lockPlayer(listed.ID)
		p, err := e.store.Load(ctx, listed.ID)
		if err != nil {
			unlock()
			if isNotFound(err) {
				continue
			}
			return removed, fmt.Errorf("loading player %q: %w", listed.ID, err)
		}

		if !isInactive(p.LastCombat, cutoff) || !isInactive(p.LastSearch, cutoff) {
			unlock()
			continue
		}

		err = e.store.Delete(ctx, p.ID)
		unlock()
		if err != nil {
			return removed, fmt.Errorf("deleting player %q: %w", p.ID, err)
		}

		e.mu.Lock()
		delete(e.lastReset, p.ID)
		e.mu.Unlock()
		removed++
	}

	if removed > 0 {
		e.addEvent(fmt.Sprintf("Удалено %d неактивных игроков", removed))
		e.logger.Info("inactive players removed", zap.Int("count", removed))
	}
	return removed, nil
}

// isInactive reports whether a last-action stamp is set and older than cutoff.
func isInactive(last, cutoff time.Time) bool {
	return !last.IsZero() && last.Before(cutoff)
}
