// Package memory provides in-memory store implementations used by tests and
// the standalone server mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cory-johannsen/arena/internal/game/player"
)

// PlayerStore keeps player records in a map. Records are deep-copied on the
// way in and out, so callers never share mutable state with the store. Safe
// for concurrent use.
type PlayerStore struct {
	mu      sync.RWMutex
	players map[string]*player.Player
}

// NewPlayerStore creates an empty store.
func NewPlayerStore() *PlayerStore {
	return &PlayerStore{players: make(map[string]*player.Player)}
}

// Load returns a copy of the stored record.
//
// Postcondition: Returns an error wrapping player.ErrNotFound when the ID is
// unknown.
func (s *PlayerStore) Load(_ context.Context, id string) (*player.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("player %q: %w", id, player.ErrNotFound)
	}
	return p.Clone(), nil
}

// Save stores a copy of the record, inserting or replacing.
func (s *PlayerStore) Save(_ context.Context, p *player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p.Clone()
	return nil
}

// All returns copies of every stored record in unspecified order.
func (s *PlayerStore) All(_ context.Context) ([]*player.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*player.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p.Clone())
	}
	return out, nil
}

// Delete removes a record. Deleting an unknown ID is a no-op.
func (s *PlayerStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}
