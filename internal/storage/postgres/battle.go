package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/combat"
)

// BattleRecordRepository persists finished battle records. The in-memory
// battle history stays the hot path; this repository is the durable log
// behind it, fed by the combat system's record hook.
type BattleRecordRepository struct {
	db *pgxpool.Pool
}

// NewBattleRecordRepository creates a BattleRecordRepository backed by the
// given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRecordRepository(db *pgxpool.Pool) *BattleRecordRepository {
	return &BattleRecordRepository{db: db}
}

// Insert appends one battle record.
//
// Precondition: rec.ID must be unique; rec.PlayerID must be non-empty.
func (r *BattleRecordRepository) Insert(ctx context.Context, rec combat.BattleRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO battle_records
			(id, occurred_at, player_id, opponent_name, outcome, rounds,
			 experience_gained, credits_gained)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rec.ID, rec.Timestamp, rec.PlayerID, rec.OpponentName, rec.Outcome.String(),
		rec.Rounds, rec.ExperienceGained, rec.CreditsGained,
	)
	if err != nil {
		return fmt.Errorf("inserting battle record: %w", err)
	}
	return nil
}

// ListRecent returns a player's most recent battles, newest first.
//
// Precondition: limit must be > 0.
func (r *BattleRecordRepository) ListRecent(ctx context.Context, playerID string, limit int) ([]combat.BattleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, occurred_at, player_id, opponent_name, outcome, rounds,
		       experience_gained, credits_gained
		FROM battle_records
		WHERE player_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing battle records: %w", err)
	}
	defer rows.Close()

	records := make([]combat.BattleRecord, 0, limit)
	for rows.Next() {
		var (
			rec     combat.BattleRecord
			outcome string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.PlayerID, &rec.OpponentName, &outcome,
			&rec.Rounds, &rec.ExperienceGained, &rec.CreditsGained,
		); err != nil {
			return nil, fmt.Errorf("scanning battle record row: %w", err)
		}
		rec.Outcome = combat.Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}
