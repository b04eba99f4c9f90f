package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_StartsWithDefaults(t *testing.T) {
	assert.Equal(t, Defaults(), NewStore().Preferences())
}

func TestStore_SetPreferencesRoundTrip(t *testing.T) {
	store := NewStore()
	id := int64(7)
	want := Preference{
		ID:              &id,
		DefaultCity:     "Shanghai",
		TemperatureUnit: "F",
		WindSpeedUnit:   "km/h",
		ShowCurrentCard: true,
		ShowLineChart:   false,
		ShowBarChart:    true,
		ShowGaugeCard:   false,
		ShowAlertsCard:  true,
		ShowAiAssistant: false,
	}

	store.SetPreferences(want)

	assert.Equal(t, want, store.Preferences())
}

func TestStore_SetPreferencesIsFullReplace(t *testing.T) {
	store := NewStore()
	store.SetPreferences(Preference{DefaultCity: "Paris", TemperatureUnit: "C", WindSpeedUnit: "m/s"})

	got := store.Preferences()
	assert.False(t, got.ShowCurrentCard)
	assert.False(t, got.ShowAiAssistant)
}

func TestStore_OwnsItsCopy(t *testing.T) {
	store := NewStore()
	id := int64(1)
	p := Defaults()
	p.ID = &id
	store.SetPreferences(p)

	id = 99
	snap := store.Preferences()
	*snap.ID = 42

	assert.Equal(t, int64(1), *store.Preferences().ID)
}
