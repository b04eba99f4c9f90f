package weather

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_InitialState(t *testing.T) {
	state := NewStore().State()

	assert.Nil(t, state.CurrentWeather)
	assert.Empty(t, state.HourlyForecast)
	assert.Empty(t, state.DailyForecast)
	assert.Empty(t, state.Alerts)
	assert.False(t, state.Loading)
	assert.False(t, state.HasError())
}

func TestStore_SettersReplaceWholeSlot(t *testing.T) {
	store := NewStore()

	store.SetHourlyForecast([]HourlyForecast{{City: "Beijing", Time: "10:00"}, {City: "Beijing", Time: "11:00"}})
	store.SetHourlyForecast([]HourlyForecast{{City: "Beijing", Time: "12:00"}})

	assert.Equal(t, []HourlyForecast{{City: "Beijing", Time: "12:00"}}, store.State().HourlyForecast)
}

func TestStore_ClearErrorOnlyTouchesError(t *testing.T) {
	store := NewStore()
	current := validCurrent()
	store.SetCurrentWeather(&current)
	store.SetAlerts([]Alert{{City: "Beijing", Event: "Storm"}})
	store.SetLoading(true)
	store.SetError("city not found")

	before := store.State()
	store.ClearError()
	after := store.State()

	assert.False(t, after.HasError())
	before.Error = ""
	assert.Equal(t, before, after)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	store := NewStore()
	alerts := []Alert{{City: "Beijing", Event: "Storm"}}
	store.SetAlerts(alerts)

	alerts[0].Event = "mutated by caller"
	snap := store.State()
	snap.Alerts[0].Event = "mutated by reader"

	assert.Equal(t, "Storm", store.State().Alerts[0].Event)
}

func TestStore_SubscribersSeeEveryMutation(t *testing.T) {
	store := NewStore()
	defer store.Close()

	var loading []bool
	unsubscribe := store.Subscribe(func(s State) { loading = append(loading, s.Loading) })

	store.SetLoading(true)
	store.SetLoading(false)
	unsubscribe()
	store.SetLoading(true)

	assert.Equal(t, []bool{true, false}, loading)
}

func TestStore_UpdateDropsSupersededGeneration(t *testing.T) {
	store := NewStore()

	first := store.NextGeneration()
	second := store.NextGeneration()

	assert.False(t, store.Update(first, func(s *State) { s.Error = "stale" }))
	assert.True(t, store.Update(second, func(s *State) { s.Error = "fresh" }))
	assert.True(t, store.Update(0, func(s *State) { s.Loading = true }))

	state := store.State()
	assert.Equal(t, "fresh", state.Error)
	assert.True(t, state.Loading)
}

func TestStore_LastSnapshotMatchesStateUnderConcurrentSetters(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		store := NewStore()

		var (
			mu   sync.Mutex
			last State
			wg   sync.WaitGroup
		)
		store.Subscribe(func(s State) {
			if len(s.HourlyForecast)+len(s.Alerts) == 1 {
				time.Sleep(200 * time.Microsecond)
			}
			mu.Lock()
			last = s
			mu.Unlock()
		})

		wg.Add(2)
		go func() {
			defer wg.Done()
			store.SetHourlyForecast([]HourlyForecast{{City: "Beijing", Time: "10:00", Temp: 12}})
		}()
		go func() {
			defer wg.Done()
			store.SetAlerts([]Alert{{City: "Beijing", Event: "Wind", Level: "yellow"}})
		}()
		wg.Wait()

		mu.Lock()
		got := last
		mu.Unlock()

		assert.Len(t, got.HourlyForecast, 1)
		assert.Len(t, got.Alerts, 1)
		assert.Equal(t, store.State(), got)
	}
}
