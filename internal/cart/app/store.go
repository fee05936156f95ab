package app

import (
	"sync"

	"github.com/nvaldebenito/storefront/internal/cart/domain"
)

// Store owns the cart state for the session. All writes go through the
// reducer under a single lock, so overlapping operations serialize; the last
// action applied wins, matching last-write-wins on the server side.
type Store struct {
	mu    sync.Mutex
	state domain.State
}

func NewStore() *Store {
	return &Store{state: domain.State{Items: []domain.LineItem{}}}
}

func (s *Store) Dispatch(action domain.Action) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.Reduce(s.state, action)
	return snapshot(s.state)
}

// State returns a copy; callers can never mutate store-owned items.
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems()
}

func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalPrice()
}

func snapshot(state domain.State) domain.State {
	items := make([]domain.LineItem, len(state.Items))
	copy(items, state.Items)
	state.Items = items
	return state
}
