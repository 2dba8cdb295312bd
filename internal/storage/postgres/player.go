package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/item"
	"github.com/cory-johannsen/arena/internal/game/player"
)

// PlayerRepository provides player persistence operations. It satisfies the
// engine's PlayerStore interface.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Save upserts the full player record. Cooldowns are stored in whole seconds,
// the inventory as a JSONB document, and zero action timestamps as NULL.
//
// Precondition: p.ID must be non-empty.
func (r *PlayerRepository) Save(ctx context.Context, p *player.Player) error {
	inventory, err := json.Marshal(p.Inventory)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO players
			(id, username, level, experience, experience_to_next, credits,
			 health, max_health, attack, defense, speed, critical_damage,
			 combat_wins, combat_losses, items_found,
			 created_at, last_combat, last_search, inventory,
			 combat_cooldown_seconds, search_cooldown_seconds)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			level = EXCLUDED.level,
			experience = EXCLUDED.experience,
			experience_to_next = EXCLUDED.experience_to_next,
			credits = EXCLUDED.credits,
			health = EXCLUDED.health,
			max_health = EXCLUDED.max_health,
			attack = EXCLUDED.attack,
			defense = EXCLUDED.defense,
			speed = EXCLUDED.speed,
			critical_damage = EXCLUDED.critical_damage,
			combat_wins = EXCLUDED.combat_wins,
			combat_losses = EXCLUDED.combat_losses,
			items_found = EXCLUDED.items_found,
			last_combat = EXCLUDED.last_combat,
			last_search = EXCLUDED.last_search,
			inventory = EXCLUDED.inventory,
			combat_cooldown_seconds = EXCLUDED.combat_cooldown_seconds,
			search_cooldown_seconds = EXCLUDED.search_cooldown_seconds,
			updated_at = NOW()`,
		p.ID, p.Username, p.Level, p.Experience, p.ExperienceToNext, p.Credits,
		p.Health, p.MaxHealth, p.Attack, p.Defense, p.Speed, p.CriticalDamage,
		p.CombatWins, p.CombatLosses, p.ItemsFound,
		p.CreatedAt, nullableTime(p.LastCombat), nullableTime(p.LastSearch), inventory,
		int(p.CombatCooldown/time.Second), int(p.SearchCooldown/time.Second),
	)
	if err != nil {
		return fmt.Errorf("upserting player: %w", err)
	}
	return nil
}

// Load retrieves a player by ID.
//
// Postcondition: Returns the player or an error wrapping player.ErrNotFound.
func (r *PlayerRepository) Load(ctx context.Context, id string) (*player.Player, error) {
	row := r.db.QueryRow(ctx, playerSelect+` WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("player %q: %w", id, player.ErrNotFound)
		}
		return nil, fmt.Errorf("querying player: %w", err)
	}
	return p, nil
}

// All returns every stored player, ordered by creation time.
func (r *PlayerRepository) All(ctx context.Context) ([]*player.Player, error) {
	rows, err := r.db.Query(ctx, playerSelect+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	players := make([]*player.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Delete removes a player record. Deleting an unknown ID is not an error.
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	return nil
}

const playerSelect = `
	SELECT id, username, level, experience, experience_to_next, credits,
	       health, max_health, attack, defense, speed, critical_damage,
	       combat_wins, combat_losses, items_found,
	       created_at, last_combat, last_search, inventory,
	       combat_cooldown_seconds, search_cooldown_seconds
	FROM players`

func scanPlayer(row pgx.Row) (*player.Player, error) {
	var (
		p                      player.Player
		lastCombat, lastSearch *time.Time
		inventory              []byte
		combatCD, searchCD     int
	)
	err := row.Scan(
		&p.ID, &p.Username, &p.Level, &p.Experience, &p.ExperienceToNext, &p.Credits,
		&p.Health, &p.MaxHealth, &p.Attack, &p.Defense, &p.Speed, &p.CriticalDamage,
		&p.CombatWins, &p.CombatLosses, &p.ItemsFound,
		&p.CreatedAt, &lastCombat, &lastSearch, &inventory,
		&combatCD, &searchCD,
	)
	if err != nil {
		return nil, err
	}
	if lastCombat != nil {
		p.LastCombat = *lastCombat
	}
	if lastSearch != nil {
		p.LastSearch = *lastSearch
	}
	if len(inventory) > 0 {
		if err := json.Unmarshal(inventory, &p.Inventory); err != nil {
			return nil, fmt.Errorf("decoding inventory: %w", err)
		}
	}
	if p.Inventory == nil {
		p.Inventory = []item.Item{}
	}
	p.CombatCooldown = time.Duration(combatCD) * time.Second
	p.SearchCooldown = time.Duration(searchCD) * time.Second
	return &p, nil
}

// nullableTime maps the zero time to NULL so "never acted" survives a
// round trip.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
