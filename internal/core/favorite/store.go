package favorite

import (
	"sync"

	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/reactive"
)

type State struct {
	Favorites []city.City
	Loading   bool
	Error     string
}

// Store holds the locally known favorites. The backend list is authoritative;
// Remove prunes the local copy only after the backend confirmed it.
type Store struct {
	mu        sync.RWMutex
	state     State
	version   uint64
	observers reactive.Observers[State]
}

func NewStore() *Store {
	return &Store{state: State{Favorites: []city.City{}}}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Favorites() []city.City {
	return s.State().Favorites
}

func (s *Store) SetFavorites(list []city.City) {
	s.update(func(st *State) { st.Favorites = list })
}

// Append adds c at the front, where the backend lists the newest favorite.
func (s *Store) Append(c city.City) {
	s.update(func(st *State) { st.Favorites = append([]city.City{c}, st.Favorites...) })
}

func (s *Store) RemoveByKey(key city.Key) {
	s.update(func(st *State) { st.Favorites = city.RemoveByKey(st.Favorites, key) })
}

func (s *Store) SetLoading(loading bool) {
	s.update(func(st *State) { st.Loading = loading })
}

func (s *Store) SetError(msg string) {
	s.update(func(st *State) { st.Error = msg })
}

func (s *Store) ClearError() {
	s.update(func(st *State) { st.Error = "" })
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
	s.state = s.state.clone()
	s.version++
	ver, snap := s.version, s.state.clone()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
}

func (st State) clone() State {
	out := st
	out.Favorites = make([]city.City, 0, len(st.Favorites))
	for _, c := range st.Favorites {
		if c.State != nil {
			state := *c.State
			c.State = &state
		}
		out.Favorites = append(out.Favorites, c)
	}
	return out
}
