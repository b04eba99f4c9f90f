package backend

import (
	"context"
	"net/http"

	"weatherdash.app/internal/core/weather"
	"weatherdash.app/internal/ports"
)

// WeatherClient reads weather for a location. It neither caches nor
// de-duplicates: concurrent identical calls each reach the backend.
type WeatherClient struct {
	transport ports.Transport
}

func NewWeatherClient(transport ports.Transport) *WeatherClient {
	return &WeatherClient{transport: transport}
}

func (c *WeatherClient) GetCurrentWeather(ctx context.Context, lat, lon float64, city string) (*weather.CurrentWeather, error) {
	var out weather.CurrentWeather
	if err := c.get(ctx, pathCurrentWeather, lat, lon, city, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *WeatherClient) GetHourlyForecast(ctx context.Context, lat, lon float64, city string) ([]weather.HourlyForecast, error) {
	out := []weather.HourlyForecast{}
	if err := c.get(ctx, pathHourly, lat, lon, city, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *WeatherClient) GetDailyForecast(ctx context.Context, lat, lon float64, city string) ([]weather.DailyForecast, error) {
	out := []weather.DailyForecast{}
	if err := c.get(ctx, pathDaily, lat, lon, city, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *WeatherClient) GetAlerts(ctx context.Context, lat, lon float64, city string) ([]weather.Alert, error) {
	out := []weather.Alert{}
	if err := c.get(ctx, pathAlerts, lat, lon, city, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *WeatherClient) get(ctx context.Context, path string, lat, lon float64, city string, out interface{}) error {
	return c.transport.Send(ctx, ports.Request{
		Method: http.MethodGet,
		Path:   path,
		Params: locationParams(lat, lon, city),
	}, out)
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
