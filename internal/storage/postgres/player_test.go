package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/item"
	"github.com/cory-johannsen/arena/internal/game/player"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
	"github.com/cory-johannsen/arena/internal/testutil"
)

var repoNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func setupPlayerRepo(t *testing.T) *postgres.PlayerRepository {
	t.Helper()
	return postgres.NewPlayerRepository(testutil.NewPool(t))
}

func TestPlayerRepository_SaveAndLoad(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	p := player.New("p1", "alice", repoNow)
	p.Inventory = append(p.Inventory, item.Item{
		Name:        "Меди-гель",
		Type:        item.TypeUtility,
		Rarity:      item.RarityCommon,
		Description: "Восстанавливает здоровье",
		Cost:        50,
	})
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.Load(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", loaded.ID)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, p.Level, loaded.Level)
	assert.Equal(t, p.Credits, loaded.Credits)
	assert.Equal(t, p.Health, loaded.Health)
	assert.Equal(t, p.CombatCooldown, loaded.CombatCooldown)
	assert.Equal(t, p.SearchCooldown, loaded.SearchCooldown)
	assert.True(t, loaded.CreatedAt.Equal(repoNow))
	require.Len(t, loaded.Inventory, 1)
	assert.Equal(t, "Меди-гель", loaded.Inventory[0].Name)

	// Never-acted timestamps survive as zero values.
	assert.True(t, loaded.LastCombat.IsZero())
	assert.True(t, loaded.LastSearch.IsZero())
}

func TestPlayerRepository_SaveIsUpsert(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	p := player.New("p1", "alice", repoNow)
	require.NoError(t, repo.Save(ctx, p))

	p.Credits = 1500
	p.CombatWins = 3
	p.LastCombat = repoNow.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1500, loaded.Credits)
	assert.Equal(t, 3, loaded.CombatWins)
	assert.True(t, loaded.LastCombat.Equal(repoNow.Add(time.Hour)))
}

func TestPlayerRepository_LoadUnknownID(t *testing.T) {
	repo := setupPlayerRepo(t)

	_, err := repo.Load(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, player.ErrNotFound)
}

func TestPlayerRepository_AllAndDelete(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, player.New("p1", "alice", repoNow)))
	require.NoError(t, repo.Save(ctx, player.New("p2", "bob", repoNow.Add(time.Minute))))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p2", all[1].ID)

	require.NoError(t, repo.Delete(ctx, "p1"))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "p2", all[0].ID)

	// Deleting an unknown ID is not an error.
	assert.NoError(t, repo.Delete(ctx, "p1"))
}
