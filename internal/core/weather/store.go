package weather

import (
	"sync"

	"weatherdash.app/internal/core/reactive"
)

// State is a snapshot of the weather store. An empty Error means no error.
type State struct {
	CurrentWeather *CurrentWeather
	HourlyForecast []HourlyForecast
	DailyForecast  []DailyForecast
	Alerts         []Alert
	Loading        bool
	Error          string
}

// HasError reports whether an error is recorded.
func (s State) HasError() bool {
	return s.Error != ""
}

// Store holds the weather of the current city. Every setter replaces its slot whole.
type Store struct {
	mu         sync.RWMutex
	state      State
	generation uint64
	version    uint64
	observers  reactive.Observers[State]
}

func NewStore() *Store {
	return &Store{state: State{
		HourlyForecast: []HourlyForecast{},
		DailyForecast:  []DailyForecast{},
		Alerts:         []Alert{},
	}}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) SetCurrentWeather(w *CurrentWeather) {
	s.Update(0, func(st *State) { st.CurrentWeather = w })
}

func (s *Store) SetHourlyForecast(list []HourlyForecast) {
	s.Update(0, func(st *State) { st.HourlyForecast = list })
}

func (s *Store) SetDailyForecast(list []DailyForecast) {
	s.Update(0, func(st *State) { st.DailyForecast = list })
}

func (s *Store) SetAlerts(list []Alert) {
	s.Update(0, func(st *State) { st.Alerts = list })
}

func (s *Store) SetLoading(loading bool) {
	s.Update(0, func(st *State) { st.Loading = loading })
}

// SetError records msg. An empty msg clears the error.
func (s *Store) SetError(msg string) {
	s.Update(0, func(st *State) { st.Error = msg })
}

// ClearError touches nothing but the error slot.
func (s *Store) ClearError() {
	s.Update(0, func(st *State) { st.Error = "" })
}

// NextGeneration issues a new request generation. Updates tagged with an
// older generation are dropped from then on.
func (s *Store) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Update applies mutate when gen is zero or the latest issued generation,
// then notifies subscribers. It reports whether mutate ran.
func (s *Store) Update(gen uint64, mutate func(*State)) bool {
	s.mu.Lock()
	if gen != 0 && gen != s.generation {
		s.mu.Unlock()
		return false
	}
	mutate(&s.state)
	s.state = s.state.clone()
	s.version++
	ver, snap := s.version, s.state.clone()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
	return true
}

func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.observers.Subscribe(fn)
}

func (s *Store) Close() {
	s.observers.Close()
}

// clone copies the slots so no caller shares a slice or pointer with the store.
func (st State) clone() State {
	out := st
	if st.CurrentWeather != nil {
		cw := *st.CurrentWeather
		out.CurrentWeather = &cw
	}
	out.HourlyForecast = append(make([]HourlyForecast, 0, len(st.HourlyForecast)), st.HourlyForecast...)
	out.DailyForecast = append(make([]DailyForecast, 0, len(st.DailyForecast)), st.DailyForecast...)
	out.Alerts = append(make([]Alert, 0, len(st.Alerts)), st.Alerts...)
	return out
}
