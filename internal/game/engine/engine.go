// Package engine ties the game together: the player registry, action
// dispatch with cooldown gating, leaderboards, daily resets, and the game
// event feed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/location"
	"github.com/cory-johannsen/arena/internal/game/player"
)

// eventLimit caps the game event feed.
const eventLimit = 100

// PlayerStore is the persistence boundary for player records.
//
// Load returns player.ErrNotFound (possibly wrapped) when no record exists.
type PlayerStore interface {
	Load(ctx context.Context, id string) (*player.Player, error)
	Save(ctx context.Context, p *player.Player) error
	All(ctx context.Context) ([]*player.Player, error)
	Delete(ctx context.Context, id string) error
}

// Metrics receives game observations. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ObserveBattle(outcome string, rounds int)
	ObserveLevelUp()
	ObserveItemsFound(count int)
}

// GameEvent is one entry of the global activity feed.
type GameEvent struct {
	ID          uuid.UUID `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Engine orchestrates all player-facing game actions. Each action holds a
// per-player lock for its duration, so no two actions mutate the same player
// concurrently; actions for distinct players proceed in parallel.
type Engine struct {
	store     PlayerStore
	battles   *combat.System
	locations *location.Manager
	logger    *zap.Logger
	clock     func() time.Time
	metrics   Metrics

	combatCooldown time.Duration
	searchCooldown time.Duration

	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	lastReset map[string]time.Time

	eventsMu sync.Mutex
	events   []GameEvent
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used in tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithMetrics wires a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithCooldowns overrides the action cooldowns stamped onto newly created
// players. Zero durations keep the player defaults.
func WithCooldowns(combat, search time.Duration) Option {
	return func(e *Engine) {
		e.combatCooldown = combat
		e.searchCooldown = search
	}
}

// New constructs an engine over a player store, a battle system, and a
// location manager.
//
// Precondition: store, battles, locations, and logger must not be nil.
func New(store PlayerStore, battles *combat.System, locations *location.Manager, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		battles:   battles,
		locations: locations,
		logger:    logger,
		clock:     time.Now,
		locks:     make(map[string]*sync.Mutex),
		lastReset: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lockPlayer acquires the per-player mutex and returns its unlock.
func (e *Engine) lockPlayer(id string) func() {
	e.mu.Lock()
	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// CreatePlayer registers a new player, or returns the existing record when
// the ID is already taken.
func (e *Engine) CreatePlayer(ctx context.Context, id, username string) (*player.Player, error) {
	defer e.lockPlayer(id)()

	existing, err := e.store.Load(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("loading player %q: %w", id, err)
	}

	p := player.New(id, username, e.clock())
	if e.combatCooldown > 0 {
		p.CombatCooldown = e.combatCooldown
	}
	if e.searchCooldown > 0 {
		p.SearchCooldown = e.searchCooldown
	}
	if err := e.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving player %q: %w", id, err)
	}

	e.addEvent(fmt.Sprintf("Игрок %s вошел в игру", username))
	e.logger.Info("player created", zap.String("player_id", id), zap.String("username", username))
	return p, nil
}

// GetPlayer loads a player record.
func (e *Engine) GetPlayer(ctx context.Context, id string) (*player.Player, error) {
	return e.store.Load(ctx, id)
}

// addEvent appends to the bounded activity feed.
func (e *Engine) addEvent(description string) {
	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	e.events = append(e.events, GameEvent{
		ID:          uuid.New(),
		Timestamp:   e.clock(),
		Description: description,
	})
	if len(e.events) > eventLimit {
		e.events = e.events[len(e.events)-eventLimit:]
	}
}

// Events returns up to limit of the most recent game events, oldest first.
func (e *Engine) Events(limit int) []GameEvent {
	e.eventsMu.Lock()
	defer e.eventsMu.Unlock()

	if limit <= 0 || limit > len(e.events) {
		limit = len(e.events)
	}
	out := make([]GameEvent, limit)
	copy(out, e.events[len(e.events)-limit:])
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, player.ErrNotFound)
}
