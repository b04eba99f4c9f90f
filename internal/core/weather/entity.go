package weather

import (
	"fmt"
	"strings"
)

// Weather DTOs carry a base tier that every provider fills and an extended tier
// of pointer fields that any provider may omit. Read extended fields with Value.

// CurrentWeather is the current conditions at a location.
type CurrentWeather struct {
	City        string  `json:"city" validate:"required"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon         float64 `json:"lon" validate:"gte=-180,lte=180"`
	Temp        float64 `json:"temp" validate:"gte=-273.15"`
	FeelsLike   float64 `json:"feelsLike" validate:"gte=-273.15"`
	Description string  `json:"description" validate:"required"`
	Icon        string  `json:"icon" validate:"required"`
	WindSpeed   float64 `json:"windSpeed" validate:"gte=0"`
	Humidity    int     `json:"humidity" validate:"gte=0,lte=100"`
	Timestamp   int64   `json:"timestamp"`
	CurrentExtended
}

type CurrentExtended struct {
	WindDeg    *int     `json:"windDeg,omitempty" validate:"omitempty,gte=0,lte=360"`
	WindDir    *string  `json:"windDir,omitempty"`
	WindScale  *string  `json:"windScale,omitempty"`
	Pressure   *float64 `json:"pressure,omitempty" validate:"omitempty,gt=0"`
	Visibility *float64 `json:"visibility,omitempty" validate:"omitempty,gte=0"`
	Precip     *float64 `json:"precip,omitempty" validate:"omitempty,gte=0"`
	Cloud      *int     `json:"cloud,omitempty" validate:"omitempty,gte=0,lte=100"`
	Dew        *float64 `json:"dew,omitempty" validate:"omitempty,gte=-273.15"`
	Country    *string  `json:"country,omitempty"`
	AQI        *int     `json:"aqi,omitempty" validate:"omitempty,gte=0"`
}

// HourlyForecast is one hour of a forecast. Time is the backend's local date-time.
type HourlyForecast struct {
	City        string  `json:"city" validate:"required"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon         float64 `json:"lon" validate:"gte=-180,lte=180"`
	Time        string  `json:"time" validate:"required"`
	Temp        float64 `json:"temp" validate:"gte=-273.15"`
	FeelsLike   float64 `json:"feelsLike" validate:"gte=-273.15"`
	Description string  `json:"description" validate:"required"`
	Icon        string  `json:"icon" validate:"required"`
	WindSpeed   float64 `json:"windSpeed" validate:"gte=0"`
	Humidity    int     `json:"humidity" validate:"gte=0,lte=100"`
	HourlyExtended
}

type HourlyExtended struct {
	WindDeg    *int     `json:"windDeg,omitempty" validate:"omitempty,gte=0,lte=360"`
	WindDir    *string  `json:"windDir,omitempty"`
	WindScale  *string  `json:"windScale,omitempty"`
	Pressure   *float64 `json:"pressure,omitempty" validate:"omitempty,gt=0"`
	Visibility *float64 `json:"visibility,omitempty" validate:"omitempty,gte=0"`
	Precip     *float64 `json:"precip,omitempty" validate:"omitempty,gte=0"`
	Cloud      *int     `json:"cloud,omitempty" validate:"omitempty,gte=0,lte=100"`
	Dew        *float64 `json:"dew,omitempty" validate:"omitempty,gte=-273.15"`
	Pop        *float64 `json:"pop,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// DailyForecast is one day of a forecast. Date is formatted YYYY-MM-DD.
type DailyForecast struct {
	City        string  `json:"city" validate:"required"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon         float64 `json:"lon" validate:"gte=-180,lte=180"`
	Date        string  `json:"date" validate:"required"`
	TempMin     float64 `json:"tempMin" validate:"gte=-273.15"`
	TempMax     float64 `json:"tempMax" validate:"gte=-273.15,gtefield=TempMin"`
	Description string  `json:"description" validate:"required"`
	Icon        string  `json:"icon" validate:"required"`
	WindSpeed   float64 `json:"windSpeed" validate:"gte=0"`
	Humidity    int     `json:"humidity" validate:"gte=0,lte=100"`
	DailyExtended
}

type DailyExtended struct {
	IconDay        *string  `json:"iconDay,omitempty"`
	TextDay        *string  `json:"textDay,omitempty"`
	IconNight      *string  `json:"iconNight,omitempty"`
	TextNight      *string  `json:"textNight,omitempty"`
	Wind360Day     *int     `json:"wind360Day,omitempty" validate:"omitempty,gte=0,lte=360"`
	WindDirDay     *string  `json:"windDirDay,omitempty"`
	WindScaleDay   *string  `json:"windScaleDay,omitempty"`
	WindSpeedDay   *float64 `json:"windSpeedDay,omitempty" validate:"omitempty,gte=0"`
	Wind360Night   *int     `json:"wind360Night,omitempty" validate:"omitempty,gte=0,lte=360"`
	WindDirNight   *string  `json:"windDirNight,omitempty"`
	WindScaleNight *string  `json:"windScaleNight,omitempty"`
	WindSpeedNight *float64 `json:"windSpeedNight,omitempty" validate:"omitempty,gte=0"`
	Pressure       *float64 `json:"pressure,omitempty" validate:"omitempty,gt=0"`
	Visibility     *float64 `json:"visibility,omitempty" validate:"omitempty,gte=0"`
	Precip         *float64 `json:"precip,omitempty" validate:"omitempty,gte=0"`
	Cloud          *int     `json:"cloud,omitempty" validate:"omitempty,gte=0,lte=100"`
	UVIndex        *int     `json:"uvIndex,omitempty" validate:"omitempty,gte=0"`
	Sunrise        *string  `json:"sunrise,omitempty"`
	Sunset         *string  `json:"sunset,omitempty"`
	Moonrise       *string  `json:"moonrise,omitempty"`
	Moonset        *string  `json:"moonset,omitempty"`
	MoonPhase      *string  `json:"moonPhase,omitempty"`
	MoonPhaseIcon  *string  `json:"moonPhaseIcon,omitempty"`
	Pop            *float64 `json:"pop,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Alert is a point-in-time warning. The backend owns alert identity.
type Alert struct {
	City        string  `json:"city" validate:"required"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon         float64 `json:"lon" validate:"gte=-180,lte=180"`
	Event       string  `json:"event" validate:"required"`
	Description string  `json:"description"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Level       string  `json:"level"`
	Tags        string  `json:"tags"`
}

// Value returns the extended field behind p and whether it was present.
func Value[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Ptr returns a pointer to v, for filling extended fields.
func Ptr[T any](v T) *T {
	return &v
}

// ConvertTemperature converts a Celsius value to unit "C", "F" or "K".
// Unknown units return the Celsius value.
func ConvertTemperature(celsius float64, unit string) float64 {
	switch strings.ToUpper(unit) {
	case "F":
		return celsius*9/5 + 32
	case "K":
		return celsius + 273.15
	default:
		return celsius
	}
}

// ConvertWindSpeed converts a m/s value to unit "m/s", "km/h" or "mph".
func ConvertWindSpeed(metersPerSecond float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "km/h":
		return metersPerSecond * 3.6
	case "mph":
		return metersPerSecond * 2.236936
	default:
		return metersPerSecond
	}
}

// HumidityDescription provides a human-readable description of humidity level
func HumidityDescription(humidity int) string {
	switch {
	case humidity < 30:
		if humidity < 20 {
			return "Very dry"
		}
		return "Dry"
	case humidity < 60:
		return "Comfortable"
	case humidity < 80:
		return "Humid"
	default:
		return "Very humid"
	}
}

// IsComfortable determines if the weather conditions are comfortable
func (w *CurrentWeather) IsComfortable() bool {
	return w.Temp >= 18 && w.Temp <= 28 &&
		w.Humidity >= 30 && w.Humidity <= 70
}

// Format renders w in the given units.
func (w *CurrentWeather) Format(temperatureUnit, windSpeedUnit string) string {
	return fmt.Sprintf("%s: %.1f°%s (feels %.1f), %s, wind %.1f %s, %d%% humidity (%s)",
		w.City,
		ConvertTemperature(w.Temp, temperatureUnit), strings.ToUpper(temperatureUnit),
		ConvertTemperature(w.FeelsLike, temperatureUnit),
		w.Description,
		ConvertWindSpeed(w.WindSpeed, windSpeedUnit), windSpeedUnit,
		w.Humidity, HumidityDescription(w.Humidity))
}
