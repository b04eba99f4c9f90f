package preference

// Preference is the single preference row of a user context.
// A nil ID means the backend has not created the row yet.
type Preference struct {
	ID              *int64 `json:"id,omitempty"`
	DefaultCity     string `json:"defaultCity" validate:"required"`
	TemperatureUnit string `json:"temperatureUnit" validate:"required,oneof=C F K"`
	WindSpeedUnit   string `json:"windSpeedUnit" validate:"required,oneof=m/s km/h mph"`
	ShowCurrentCard bool   `json:"showCurrentCard"`
	ShowLineChart   bool   `json:"showLineChart"`
	ShowBarChart    bool   `json:"showBarChart"`
	ShowGaugeCard   bool   `json:"showGaugeCard"`
	ShowAlertsCard  bool   `json:"showAlertsCard"`
	ShowAiAssistant bool   `json:"showAiAssistant"`
}

// Defaults returns the built-in preferences: metric units, every card visible.
func Defaults() Preference {
	return Preference{
		DefaultCity:     "Beijing",
		TemperatureUnit: "C",
		WindSpeedUnit:   "m/s",
		ShowCurrentCard: true,
		ShowLineChart:   true,
		ShowBarChart:    true,
		ShowGaugeCard:   true,
		ShowAlertsCard:  true,
		ShowAiAssistant: true,
	}
}

// Exists reports whether the backend has created the row.
func (p Preference) Exists() bool {
	return p.ID != nil
}

func (p Preference) clone() Preference {
	if p.ID != nil {
		id := *p.ID
		p.ID = &id
	}
	return p
}
