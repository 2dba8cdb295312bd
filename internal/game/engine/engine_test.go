package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/engine"
	"github.com/cory-johannsen/arena/internal/game/item"
	"github.com/cory-johannsen/arena/internal/game/location"
	"github.com/cory-johannsen/arena/internal/game/opponent"
	"github.com/cory-johannsen/arena/internal/game/player"
	"github.com/cory-johannsen/arena/internal/storage/memory"
)

var engineNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

// midpointSrc fixes every roll to its range midpoint: no jitter, no crits,
// spawn checks succeed.
type midpointSrc struct{}

func (midpointSrc) Intn(n int) int { return (n - 1) / 2 }

type recordingMetrics struct {
	battles  int
	levelUps int
	items    int
}

func (m *recordingMetrics) ObserveBattle(string, int) { m.battles++ }
func (m *recordingMetrics) ObserveLevelUp()           { m.levelUps++ }
func (m *recordingMetrics) ObserveItemsFound(n int)   { m.items += n }

type fixture struct {
	engine  *engine.Engine
	store   *memory.PlayerStore
	metrics *recordingMetrics
	now     time.Time
}

func newFixture(t *testing.T, src dice.Source) *fixture {
	t.Helper()

	roster, err := opponent.NewRoster(opponent.DefaultTemplates())
	require.NoError(t, err)

	logger := zap.NewNop()
	battles := combat.NewSystem(roster, combat.NewHistory(100), src, logger)
	locations := location.NewManager(location.DefaultLocations(), item.DefaultCatalog(), src, logger)
	store := memory.NewPlayerStore()
	metrics := &recordingMetrics{}

	f := &fixture{store: store, metrics: metrics, now: engineNow}
	f.engine = engine.New(store, battles, locations, logger,
		engine.WithClock(func() time.Time { return f.now }),
		engine.WithMetrics(metrics),
	)
	return f
}

func (f *fixture) createPlayer(t *testing.T, id, username string) *player.Player {
	t.Helper()
	p, err := f.engine.CreatePlayer(context.Background(), id, username)
	require.NoError(t, err)
	return p
}

func TestCreatePlayer_NewAndExisting(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	p := f.createPlayer(t, "p1", "alice")
	assert.Equal(t, 1, p.Level)

	// Creating again returns the stored record instead of resetting it.
	stored, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	stored.Credits = 42
	require.NoError(t, f.store.Save(ctx, stored))

	again, err := f.engine.CreatePlayer(ctx, "p1", "alice")
	require.NoError(t, err)
	assert.Equal(t, 42, again.Credits)

	events := f.engine.Events(10)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Description, "alice")
}

func TestFight_FullFlow(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()
	f.createPlayer(t, "p1", "alice")

	result, err := f.engine.Fight(ctx, "p1")
	require.NoError(t, err)

	// Midpoint rolls against the level-1 bracket resolve as a defeat.
	assert.True(t, result.Success)
	require.NotNil(t, result.Battle)
	assert.Equal(t, combat.OutcomeDefeat, result.Battle.Outcome)
	assert.Equal(t, result.Battle.ExperienceGained, result.Rewards.Experience)

	// Side effects persisted.
	p, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.CombatLosses)
	assert.Equal(t, 1, p.Health)
	assert.Equal(t, engineNow, p.LastCombat)

	assert.Equal(t, 1, f.metrics.battles)
}

func TestFight_CooldownGate(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()
	f.createPlayer(t, "p1", "alice")

	_, err := f.engine.Fight(ctx, "p1")
	require.NoError(t, err)

	blocked, err := f.engine.Fight(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, blocked.Success)
	assert.Contains(t, blocked.Message, "Подожди")
	assert.Equal(t, 1, f.metrics.battles, "gated action must not fight")

	// After the cooldown the action is allowed again.
	f.now = engineNow.Add(301 * time.Second)
	allowed, err := f.engine.Fight(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, allowed.Success)
}

func TestFight_NoOpponentInBracket(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()
	f.createPlayer(t, "p1", "alice")

	p, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	p.Level = 50
	require.NoError(t, f.store.Save(ctx, p))

	result, err := f.engine.Fight(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Не удалось найти противника")
}

func TestFight_UnknownPlayer(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	_, err := f.engine.Fight(context.Background(), "ghost")
	assert.ErrorIs(t, err, player.ErrNotFound)
}

func TestSearch_FindsItemsAndPersists(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()
	f.createPlayer(t, "p1", "alice")

	pos := location.Coordinate{Latitude: 55.7558, Longitude: 37.6176}
	result, err := f.engine.Search(ctx, "p1", pos)
	require.NoError(t, err)

	require.True(t, result.Success)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, len(result.Items)*5, result.Rewards.Experience)

	p, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p.Inventory, len(result.Items))
	assert.Equal(t, len(result.Items), p.ItemsFound)
	assert.Equal(t, engineNow, p.LastSearch)
	assert.Equal(t, len(result.Items), f.metrics.items)

	// Second search inside the cooldown window is gated.
	blocked, err := f.engine.Search(ctx, "p1", pos)
	require.NoError(t, err)
	assert.False(t, blocked.Success)
	assert.Contains(t, blocked.Message, "Подожди")
}

func TestSearch_EmptyAreaStillStampsCooldown(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()
	f.createPlayer(t, "p1", "alice")

	result, err := f.engine.Search(ctx, "p1", location.Coordinate{Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Предметы не найдены")

	p, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, engineNow, p.LastSearch)
}

func TestLeaderboard_Categories(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	a := f.createPlayer(t, "p1", "alice")
	a.Level = 5
	a.CombatWins = 1
	require.NoError(t, f.store.Save(ctx, a))

	b := f.createPlayer(t, "p2", "bob")
	b.Level = 3
	b.CombatWins = 9
	require.NoError(t, f.store.Save(ctx, b))

	byLevel, err := f.engine.Leaderboard(ctx, engine.CategoryLevel, 10)
	require.NoError(t, err)
	require.Len(t, byLevel, 2)
	assert.Equal(t, "alice", byLevel[0].Username)
	assert.Equal(t, 1, byLevel[0].Rank)

	byWins, err := f.engine.Leaderboard(ctx, engine.CategoryCombatWins, 1)
	require.NoError(t, err)
	require.Len(t, byWins, 1)
	assert.Equal(t, "bob", byWins[0].Username)
	assert.Equal(t, 9, byWins[0].Value)
}

func TestStats_Aggregates(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	empty, err := f.engine.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.GameStats{}, empty)

	a := f.createPlayer(t, "p1", "alice")
	a.Level = 4
	require.NoError(t, f.store.Save(ctx, a))
	f.createPlayer(t, "p2", "bob")

	stats, err := f.engine.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPlayers)
	assert.Equal(t, 2.5, stats.AverageLevel)
	assert.Equal(t, 2000, stats.TotalCredits)
}

func TestProgress_RankAndPercent(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	p := f.createPlayer(t, "p1", "alice")
	p.Level = 15
	p.Experience = 33
	require.NoError(t, f.store.Save(ctx, p))

	progress, err := f.engine.Progress(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Эксперт", progress.Rank)
	assert.Equal(t, 33.0, progress.ProgressPercent)
}

func TestRecommendations(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	p := f.createPlayer(t, "p1", "alice")
	p.Health = 10
	p.Credits = 50
	require.NoError(t, f.store.Save(ctx, p))

	recs, err := f.engine.Recommendations(ctx, "p1")
	require.NoError(t, err)
	assert.Contains(t, recs, "Твое здоровье низкое! Используй меди-гель или отдохни.")
	assert.Contains(t, recs, "Участвуй в боях, чтобы заработать кредиты!")

	// A healthy, settled player gets the keep-going message.
	p.Health = p.MaxHealth
	p.Level = 10
	p.Credits = 5000
	for i := 0; i < 3; i++ {
		p.AddItem(item.Item{Name: "chip", Type: item.TypeImplant, Rarity: item.RarityCommon})
	}
	require.NoError(t, f.store.Save(ctx, p))

	recs, err = f.engine.Recommendations(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ты на правильном пути! Продолжай развивать персонажа."}, recs)
}

func TestDailyReset_OncePerDay(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	p := f.createPlayer(t, "p1", "alice")
	p.Health = 1
	p.StartCombat(engineNow)
	require.NoError(t, f.store.Save(ctx, p))

	require.NoError(t, f.engine.DailyReset(ctx))

	reset, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, reset.MaxHealth, reset.Health)
	assert.Equal(t, 1000+55, reset.Credits) // 50 + 5 per level
	assert.True(t, reset.LastCombat.IsZero(), "cooldowns cleared")

	// Running again the same day is a no-op.
	require.NoError(t, f.engine.DailyReset(ctx))
	same, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1055, same.Credits)

	// The next day pays again.
	f.now = engineNow.Add(24 * time.Hour)
	require.NoError(t, f.engine.DailyReset(ctx))
	next, err := f.engine.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1110, next.Credits)
}

func TestCleanupInactive(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()

	stale := f.createPlayer(t, "p1", "alice")
	stale.StartCombat(engineNow.AddDate(0, 0, -60))
	stale.StartSearch(engineNow.AddDate(0, 0, -60))
	require.NoError(t, f.store.Save(ctx, stale))

	// Recently active and never-active players are kept.
	active := f.createPlayer(t, "p2", "bob")
	active.StartCombat(engineNow)
	active.StartSearch(engineNow)
	require.NoError(t, f.store.Save(ctx, active))
	f.createPlayer(t, "p3", "carol")

	removed, err := f.engine.CleanupInactive(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = f.engine.GetPlayer(ctx, "p1")
	assert.ErrorIs(t, err, player.ErrNotFound)
	remaining, err := f.store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestEvents_Bounded(t *testing.T) {
	f := newFixture(t, midpointSrc{})

	for i := 0; i < 120; i++ {
		f.createPlayer(t, string(rune('a'+i%26))+string(rune('0'+i%10)), "user")
	}

	events := f.engine.Events(0)
	assert.LessOrEqual(t, len(events), 100)

	latest := f.engine.Events(5)
	assert.Len(t, latest, 5)
}

func TestCreatePlayer_ConfiguredCooldowns(t *testing.T) {
	roster, err := opponent.NewRoster(opponent.DefaultTemplates())
	require.NoError(t, err)

	logger := zap.NewNop()
	battles := combat.NewSystem(roster, combat.NewHistory(100), midpointSrc{}, logger)
	locations := location.NewManager(location.DefaultLocations(), item.DefaultCatalog(), midpointSrc{}, logger)
	eng := engine.New(memory.NewPlayerStore(), battles, locations, logger,
		engine.WithCooldowns(60*time.Second, 120*time.Second),
	)

	p, err := eng.CreatePlayer(context.Background(), "p1", "alice")
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, p.CombatCooldown)
	assert.Equal(t, 120*time.Second, p.SearchCooldown)
}

func TestProcessAction_Dispatch(t *testing.T) {
	f := newFixture(t, midpointSrc{})
	ctx := context.Background()
	f.createPlayer(t, "p1", "alice")

	pos := location.Coordinate{Latitude: 55.7558, Longitude: 37.6176}

	res, err := f.engine.ProcessAction(ctx, "p1", engine.ActionCombat, pos)
	require.NoError(t, err)
	require.NotNil(t, res.Battle)

	res, err = f.engine.ProcessAction(ctx, "p1", engine.ActionSearch, pos)
	require.NoError(t, err)
	assert.Nil(t, res.Battle)

	_, err = f.engine.ProcessAction(ctx, "p1", "dance", pos)
	assert.ErrorIs(t, err, engine.ErrUnknownAction)
}

// staleListingStore serves a fixed listing while delegating loads and saves,
// standing in for a job that enumerated players before later writes landed.
type staleListingStore struct {
	*memory.PlayerStore
	listing []*player.Player
}

func (s *staleListingStore) All(context.Context) ([]*player.Player, error) {
	return s.listing, nil
}

func newStaleFixture(t *testing.T) (*engine.Engine, *staleListingStore) {
	t.Helper()

	roster, err := opponent.NewRoster(opponent.DefaultTemplates())
	require.NoError(t, err)

	logger := zap.NewNop()
	battles := combat.NewSystem(roster, combat.NewHistory(100), midpointSrc{}, logger)
	locations := location.NewManager(location.DefaultLocations(), item.DefaultCatalog(), midpointSrc{}, logger)
	store := &staleListingStore{PlayerStore: memory.NewPlayerStore()}
	eng := engine.New(store, battles, locations, logger,
		engine.WithClock(func() time.Time { return engineNow }),
	)
	return eng, store
}

func TestDailyReset_KeepsBattleEffectsNewerThanListing(t *testing.T) {
	eng, store := newStaleFixture(t)
	ctx := context.Background()

	p, err := eng.CreatePlayer(ctx, "p1", "alice")
	require.NoError(t, err)

	// The reset's listing predates the battle below.
	store.listing = []*player.Player{p.Clone()}

	result, err := eng.Fight(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, result.Battle)
	assert.Equal(t, combat.OutcomeDefeat, result.Battle.Outcome)

	require.NoError(t, eng.DailyReset(ctx))

	// The bonus lands on top of the battle's record, not on the stale copy.
	got, err := eng.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Experience)
	assert.Equal(t, 1, got.CombatLosses)
	assert.Equal(t, 1001+55, got.Credits)
	assert.Equal(t, got.MaxHealth, got.Health)
}

func TestCleanupInactive_RechecksFreshRecord(t *testing.T) {
	eng, store := newStaleFixture(t)
	ctx := context.Background()

	p, err := eng.CreatePlayer(ctx, "p1", "alice")
	require.NoError(t, err)

	// The listing still shows the player as long inactive.
	old := p.Clone()
	old.LastCombat = engineNow.AddDate(0, 0, -60)
	old.LastSearch = engineNow.AddDate(0, 0, -60)
	store.listing = []*player.Player{old}

	// The stored record has acted since.
	cur, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	cur.StartCombat(engineNow.Add(-time.Hour))
	cur.StartSearch(engineNow.Add(-time.Hour))
	require.NoError(t, store.Save(ctx, cur))

	removed, err := eng.CleanupInactive(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	_, err = eng.GetPlayer(ctx, "p1")
	assert.NoError(t, err)
}
