package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
	"github.com/cory-johannsen/arena/internal/testutil"
)

func makeRecord(playerID string, at time.Time, outcome combat.Outcome) combat.BattleRecord {
	return combat.BattleRecord{
		ID:               uuid.New(),
		Timestamp:        at,
		PlayerID:         playerID,
		OpponentName:     "Кибер-гангстер",
		Outcome:          outcome,
		Rounds:           7,
		ExperienceGained: 15,
		CreditsGained:    7,
	}
}

func TestBattleRecordRepository_InsertAndList(t *testing.T) {
	repo := postgres.NewBattleRecordRepository(testutil.NewPool(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := makeRecord("p1", base, combat.OutcomeVictory)
	require.NoError(t, repo.Insert(ctx, rec))
	require.NoError(t, repo.Insert(ctx, makeRecord("p1", base.Add(time.Minute), combat.OutcomeDefeat)))
	require.NoError(t, repo.Insert(ctx, makeRecord("p2", base, combat.OutcomeVictory)))

	records, err := repo.ListRecent(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first, scoped to the player.
	assert.Equal(t, combat.OutcomeDefeat, records[0].Outcome)
	assert.Equal(t, rec.ID, records[1].ID)
	assert.Equal(t, "Кибер-гангстер", records[1].OpponentName)
	assert.Equal(t, 15, records[1].ExperienceGained)
	assert.True(t, records[1].Timestamp.Equal(base))
}

func TestBattleRecordRepository_ListRespectsLimit(t *testing.T) {
	repo := postgres.NewBattleRecordRepository(testutil.NewPool(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, makeRecord("p1", base.Add(time.Duration(i)*time.Minute), combat.OutcomeVictory)))
	}

	records, err := repo.ListRecent(ctx, "p1", 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].Timestamp.After(records[2].Timestamp))
}

func TestBattleRecordRepository_EmptyHistory(t *testing.T) {
	repo := postgres.NewBattleRecordRepository(testutil.NewPool(t))

	records, err := repo.ListRecent(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
