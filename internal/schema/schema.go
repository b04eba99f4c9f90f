// Package schema exports the wire types of the dashboard backend as JSON Schema.
package schema

import (
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"weatherdash.app/internal/core/chat"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/favorite"
	"weatherdash.app/internal/core/health"
	"weatherdash.app/internal/core/preference"
	"weatherdash.app/internal/core/weather"
	"weatherdash.app/pkg/errors"
)

// types maps an exported schema name to a zero value of its Go type.
var types = map[string]interface{}{
	"CityDTO":           city.City{},
	"CityKey":           city.Key{},
	"CurrentWeatherDTO": weather.CurrentWeather{},
	"HourlyForecastDTO": weather.HourlyForecast{},
	"DailyForecastDTO":  weather.DailyForecast{},
	"AlertDTO":          weather.Alert{},
	"PreferenceDTO":     preference.Preference{},
	"FavoriteCreateDTO": favorite.Create{},
	"ChatMessage":       chat.Message{},
	"ChatRequest":       chat.Request{},
	"ChatResponse":      chat.Response{},
	"HealthStatus":      health.Status{},
}

// Names returns every exported schema name in sorted order.
func Names() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate reflects the schema registered as name. Fields without omitempty
// are required, so the extended weather tier comes out optional.
func Generate(name string) (*jsonschema.Schema, error) {
	v, ok := types[name]
	if !ok {
		return nil, errors.NewNotFoundError("unknown schema: " + name)
	}

	ref := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := ref.Reflect(v)
	s.Title = name
	return s, nil
}

// Write encodes the named schemas, or all of them when names is empty, as one
// indented JSON object keyed by name.
func Write(w io.Writer, names ...string) error {
	if len(names) == 0 {
		names = Names()
	}

	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		s, err := Generate(name)
		if err != nil {
			return err
		}
		out[name] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
