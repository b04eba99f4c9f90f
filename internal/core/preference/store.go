package preference

import (
	"sync"

	"weatherdash.app/internal/core/reactive"
)

type State struct {
	Preferences Preference
	Loading     bool
	Error       string
}

// Store is the local source of the feature toggles until the backend copy is applied.
type Store struct {
	mu        sync.RWMutex
	state     State
	version   uint64
	observers reactive.Observers[State]
}

func NewStore() *Store {
	return &Store{state: State{Preferences: Defaults()}}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) Preferences() Preference {
	return s.State().Preferences
}

// SetPreferences replaces every field.
func (s *Store) SetPreferences(p Preference) {
	s.update(func(st *State) { st.Preferences = p.clone() })
}

func (s *Store) SetLoading(loading bool) {
	s.update(func(st *State) { st.Loading = loading })
}

func (s *Store) SetError(msg string) {
	s.update(func(st *State) { st.Error = msg })
}

func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.observers.Subscribe(fn)
}

func (s *Store) Close() {
	s.observers.Close()
}

func (s *Store) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.version++
	ver, snap := s.version, s.snapshot()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
}

func (s *Store) snapshot() State {
	out := s.state
	out.Preferences = s.state.Preferences.clone()
	return out
}
