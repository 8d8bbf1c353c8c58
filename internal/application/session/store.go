package session

import (
	"errors"
	"sync"

	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// ErrNoActiveGame is returned when a command arrives before a game is loaded or created
var ErrNoActiveGame = errors.New("no active game")

// Store is the single owner of the live game state. Ticks and commands run one at a time.
type Store struct {
	mu    sync.Mutex
	state *game.State
}

// NewStore creates a store holding state, which may be nil until a game is created or loaded
func NewStore(state *game.State) *Store {
	return &Store{state: state}
}

// Update runs fn with exclusive access to the state
func (s *Store) Update(fn func(state *game.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return ErrNoActiveGame
	}
	return fn(s.state)
}

// View runs fn with exclusive access. fn must not mutate or retain state.
func (s *Store) View(fn func(state *game.State) error) error {
	return s.Update(fn)
}

// Replace swaps in a new state wholesale
func (s *Store) Replace(state *game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Active reports whether a game is loaded
func (s *Store) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil
}

// Snapshot copies the current state
func (s *Store) Snapshot() (game.Snapshot, error) {
	var snap game.Snapshot
	err := s.View(func(state *game.State) error {
		snap = state.Snapshot()
		return nil
	})
	return snap, err
}
