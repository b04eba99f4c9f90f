// Package backend holds one API client per backend resource group. Clients add
// no error semantics of their own: every failure comes from the transport.
package backend

import (
	"net/url"
	"strconv"

	"weatherdash.app/internal/core/chat"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/favorite"
	"weatherdash.app/internal/core/preference"
	"weatherdash.app/internal/core/weather"
	"weatherdash.app/internal/ports"
)

const (
	pathCurrentWeather = "/api/weather/current"
	pathHourly         = "/api/weather/forecast/hourly"
	pathDaily          = "/api/weather/forecast/daily"
	pathAlerts         = "/api/weather/alerts"
	pathCitySearch     = "/api/cities/search"
	pathPreferences    = "/api/preferences"
	pathFavorites      = "/api/favorites"
	pathChat           = "/api/ai/chat"
	pathHealth         = "/api/health"
)

// Clients groups every API client built on one transport.
type Clients struct {
	Weather    *WeatherClient
	City       *CityClient
	Preference *PreferenceClient
	Favorite   *FavoriteClient
	Chat       *ChatClient
	Health     *HealthClient
}

// NewClients builds every client on transport.
func NewClients(transport ports.Transport) *Clients {
	return &Clients{
		Weather:    NewWeatherClient(transport),
		City:       NewCityClient(transport),
		Preference: NewPreferenceClient(transport),
		Favorite:   NewFavoriteClient(transport),
		Chat:       NewChatClient(transport),
		Health:     NewHealthClient(transport),
	}
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func locationParams(lat, lon float64, city string) url.Values {
	return url.Values{
		"lat":  {formatCoordinate(lat)},
		"lon":  {formatCoordinate(lon)},
		"city": {city},
	}
}

var (
	_ weather.Client    = (*WeatherClient)(nil)
	_ city.Searcher     = (*CityClient)(nil)
	_ preference.Client = (*PreferenceClient)(nil)
	_ favorite.Client   = (*FavoriteClient)(nil)
	_ chat.Client       = (*ChatClient)(nil)
)
