package mockbackend

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/weather"
)

const (
	hourlyPoints = 24
	dailyPoints  = 7

	dateTimeLayout = "2006-01-02T15:04:05"
	dateLayout     = "2006-01-02"
)

var (
	windDirs         = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	currentDescs     = []string{"Clear", "Cloudy", "Overcast", "Light rain", "Moderate rain", "Heavy rain", "Thunderstorm", "Snow"}
	hourlyDescs      = []string{"Clear", "Cloudy", "Overcast", "Light rain"}
	dailyDescs       = []string{"Clear", "Cloudy", "Overcast", "Light rain", "Moderate rain"}
	moonPhases       = []string{"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous", "Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent"}
	alertEvents      = []string{"Rainstorm warning", "Gale warning", "Heat warning", "Cold wave warning", "Typhoon warning"}
	alertLevels      = []string{"Blue", "Yellow", "Orange", "Red"}
	answerConditions = []string{"clear", "cloudy", "overcast", "lightly rainy", "rainy", "stormy"}
	answerAdvice     = []string{"dress in layers", "wear sunscreen", "bring an umbrella", "keep warm", "enjoy some time outdoors", "drive carefully"}
)

// ChatReferences lists the sources every canned answer cites.
var ChatReferences = []string{"Current weather", "Forecast data"}

// knownCities is the fixed search catalogue.
var knownCities = []city.City{
	withState(city.City{Name: "Beijing", Country: "CN", Lat: 39.9042, Lon: 116.4074}, "Beijing"),
	withState(city.City{Name: "Shanghai", Country: "CN", Lat: 31.2304, Lon: 121.4737}, "Shanghai"),
	withState(city.City{Name: "Guangzhou", Country: "CN", Lat: 23.1291, Lon: 113.2644}, "Guangdong"),
	withState(city.City{Name: "Shenzhen", Country: "CN", Lat: 22.5431, Lon: 114.0579}, "Guangdong"),
	withState(city.City{Name: "Chengdu", Country: "CN", Lat: 30.5728, Lon: 104.0668}, "Sichuan"),
	withState(city.City{Name: "Hangzhou", Country: "CN", Lat: 30.2741, Lon: 120.1551}, "Zhejiang"),
	withState(city.City{Name: "Wuhan", Country: "CN", Lat: 30.5928, Lon: 114.3055}, "Hubei"),
	withState(city.City{Name: "Xi'an", Country: "CN", Lat: 34.3416, Lon: 108.9398}, "Shaanxi"),
	withState(city.City{Name: "Nanjing", Country: "CN", Lat: 32.0603, Lon: 118.7969}, "Jiangsu"),
	withState(city.City{Name: "Tianjin", Country: "CN", Lat: 39.3434, Lon: 117.3616}, "Tianjin"),
	withState(city.City{Name: "Chongqing", Country: "CN", Lat: 29.4316, Lon: 106.9123}, "Chongqing"),
	withState(city.City{Name: "Suzhou", Country: "CN", Lat: 31.2989, Lon: 120.5853}, "Jiangsu"),
	withState(city.City{Name: "Fuzhou", Country: "CN", Lat: 27.9492, Lon: 116.3581}, "Jiangxi"),
}

func withState(c city.City, state string) city.City {
	c.State = &state
	return c
}

// DataFactory produces deterministic weather for a city: the same city name
// always yields the same numbers, only the timestamps move with the clock.
type DataFactory struct {
	now func() time.Time
}

func NewDataFactory(now func() time.Time) *DataFactory {
	if now == nil {
		now = time.Now
	}
	return &DataFactory{now: now}
}

type seeded struct {
	*rand.Rand
}

func seedFor(key string) seeded {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return seeded{rand.New(rand.NewSource(int64(h.Sum64())))}
}

func (s seeded) between(lo, span float64) float64 {
	return round1(lo + s.Float64()*span)
}

func (s seeded) pick(options []string) string {
	return options[s.Intn(len(options))]
}

func (s seeded) windScale() string {
	return fmt.Sprintf("%d-%d", 1+s.Intn(4), 1+s.Intn(4))
}

func (s seeded) clock(minHour, hourSpan int) string {
	return fmt.Sprintf("%02d:%02d", minHour+s.Intn(hourSpan), s.Intn(60))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (f *DataFactory) CurrentWeather(name string, lat, lon float64) *weather.CurrentWeather {
	r := seedFor(name)

	w := &weather.CurrentWeather{
		City:        name,
		Lat:         lat,
		Lon:         lon,
		Temp:        r.between(15, 15),
		FeelsLike:   r.between(14, 15),
		Description: r.pick(currentDescs),
		Icon:        "01d",
		WindSpeed:   r.between(2, 8),
		Timestamp:   f.now().Unix(),
	}
	w.WindDeg = weather.Ptr(r.Intn(360))
	w.WindDir = weather.Ptr(r.pick(windDirs))
	w.WindScale = weather.Ptr(r.windScale())
	w.Humidity = 40 + r.Intn(50)
	w.Pressure = weather.Ptr(float64(1000 + r.Intn(30)))
	w.Visibility = weather.Ptr(r.between(5, 15))
	w.Precip = weather.Ptr(r.between(0, 10))
	w.Cloud = weather.Ptr(r.Intn(100))
	w.Dew = weather.Ptr(r.between(10, 10))
	return w
}

func (f *DataFactory) HourlyForecast(name string, lat, lon float64) []weather.HourlyForecast {
	r := seedFor(name)
	start := f.now().Truncate(time.Hour)

	out := make([]weather.HourlyForecast, 0, hourlyPoints)
	for i := 0; i < hourlyPoints; i++ {
		h := weather.HourlyForecast{
			City:        name,
			Lat:         lat,
			Lon:         lon,
			Time:        start.Add(time.Duration(i) * time.Hour).Format(dateTimeLayout),
			Temp:        r.between(15, 10),
			FeelsLike:   r.between(14, 10),
			Description: r.pick(hourlyDescs),
			Icon:        "01d",
			WindSpeed:   r.between(2, 8),
		}
		h.WindDeg = weather.Ptr(r.Intn(360))
		h.WindDir = weather.Ptr(r.pick(windDirs))
		h.WindScale = weather.Ptr(r.windScale())
		h.Humidity = 40 + r.Intn(40)
		h.Pressure = weather.Ptr(float64(1000 + r.Intn(30)))
		h.Visibility = weather.Ptr(r.between(5, 15))
		h.Precip = weather.Ptr(r.between(0, 10))
		h.Cloud = weather.Ptr(r.Intn(100))
		h.Dew = weather.Ptr(r.between(10, 10))
		h.Pop = weather.Ptr(r.between(0, 50))
		out = append(out, h)
	}
	return out
}

func (f *DataFactory) DailyForecast(name string, lat, lon float64) []weather.DailyForecast {
	r := seedFor(name)
	today := f.now()

	out := make([]weather.DailyForecast, 0, dailyPoints)
	for i := 0; i < dailyPoints; i++ {
		d := weather.DailyForecast{
			City:    name,
			Lat:     lat,
			Lon:     lon,
			Date:    today.AddDate(0, 0, i).Format(dateLayout),
			TempMin: r.between(10, 8),
			TempMax: r.between(20, 10),
			Icon:    "100",
		}
		d.Description = r.pick(dailyDescs)
		d.IconDay = weather.Ptr("100")
		d.TextDay = weather.Ptr(d.Description)
		d.IconNight = weather.Ptr("150")
		d.TextNight = weather.Ptr(r.pick(dailyDescs))
		d.Wind360Day = weather.Ptr(r.Intn(360))
		d.WindDirDay = weather.Ptr(r.pick(windDirs))
		d.WindScaleDay = weather.Ptr(r.windScale())
		d.WindSpeedDay = weather.Ptr(r.between(2, 8))
		d.WindSpeed = *d.WindSpeedDay
		d.Wind360Night = weather.Ptr(r.Intn(360))
		d.WindDirNight = weather.Ptr(r.pick(windDirs))
		d.WindScaleNight = weather.Ptr(r.windScale())
		d.WindSpeedNight = weather.Ptr(r.between(1, 6))
		d.Humidity = 40 + r.Intn(40)
		d.Pressure = weather.Ptr(float64(1000 + r.Intn(30)))
		d.Visibility = weather.Ptr(r.between(5, 15))
		d.Precip = weather.Ptr(r.between(0, 10))
		d.Cloud = weather.Ptr(r.Intn(100))
		d.UVIndex = weather.Ptr(r.Intn(11))
		d.Sunrise = weather.Ptr(r.clock(5, 2))
		d.Sunset = weather.Ptr(r.clock(17, 2))
		d.Moonrise = weather.Ptr(r.clock(0, 24))
		d.Moonset = weather.Ptr(r.clock(0, 24))
		d.MoonPhase = weather.Ptr(r.pick(moonPhases))
		d.MoonPhaseIcon = weather.Ptr(fmt.Sprintf("80%d", 1+r.Intn(8)))
		out = append(out, d)
	}
	return out
}

func (f *DataFactory) Alerts(name string, lat, lon float64) []weather.Alert {
	r := seedFor(name)
	now := f.now().Truncate(time.Hour)

	count := 1 + r.Intn(2)
	out := make([]weather.Alert, 0, count)
	for i := 0; i < count; i++ {
		event := r.pick(alertEvents)
		level := r.pick(alertLevels)
		start := now.Add(time.Duration(r.Intn(6)) * time.Hour)
		end := start.Add(time.Duration(6+r.Intn(18)) * time.Hour)

		out = append(out, weather.Alert{
			City:  name,
			Lat:   lat,
			Lon:   lon,
			Event: event,
			Description: fmt.Sprintf("%s %s: %s is expected to see %s conditions within the next 24 hours. Please take precautions.",
				level, strings.ToLower(event), name, strings.TrimSuffix(strings.ToLower(event), " warning")),
			Start: start.Format(dateTimeLayout),
			End:   end.Format(dateTimeLayout),
			Level: level,
			Tags:  level,
		})
	}
	return out
}

// SearchCities matches keyword against the catalogue, case-insensitively and
// in both directions, so "bei" and "Beijing Municipality" both find Beijing.
func (f *DataFactory) SearchCities(keyword string) []city.City {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	out := []city.City{}
	if needle == "" {
		return out
	}
	for _, c := range knownCities {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			out = append(out, withState(c, c.StateName()))
		}
	}
	return out
}

// Answer returns a canned reply chosen by question and city.
func (f *DataFactory) Answer(question, cityName string) string {
	r := seedFor(question + cityName)
	condition := r.pick(answerConditions)
	advice := r.pick(answerAdvice)

	templates := []string{
		"Based on the weather data for %s, it is %s today. We suggest you %s.",
		"In %s it is currently %s, so %s.",
		"The forecast for %s looks %s. A good day to %s.",
		"Current data shows %s is %s. Remember to %s.",
	}
	return fmt.Sprintf(templates[r.Intn(len(templates))], cityName, condition, advice)
}
