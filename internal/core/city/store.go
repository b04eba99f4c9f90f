package city

import (
	"sync"

	"weatherdash.app/internal/core/reactive"
)

// State is a snapshot of the city store.
type State struct {
	CurrentCity City
}

// Store holds the selected city. No history of prior selections is kept.
type Store struct {
	mu        sync.RWMutex
	state     State
	version   uint64
	observers reactive.Observers[State]
}

func NewStore(defaultCity City) *Store {
	return &Store{state: State{CurrentCity: defaultCity}}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// CurrentCity returns the selected city.
func (s *Store) CurrentCity() City {
	return s.State().CurrentCity
}

// SetCurrentCity replaces the selected city.
func (s *Store) SetCurrentCity(c City) {
	s.mu.Lock()
	s.state.CurrentCity = copyCity(c)
	s.version++
	ver, snap := s.version, s.snapshot()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
}

func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.observers.Subscribe(fn)
}

func (s *Store) Close() {
	s.observers.Close()
}

func (s *Store) snapshot() State {
	return State{CurrentCity: copyCity(s.state.CurrentCity)}
}

func copyCity(c City) City {
	if c.State != nil {
		state := *c.State
		c.State = &state
	}
	return c
}
