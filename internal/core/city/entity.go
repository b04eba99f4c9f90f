package city

import "fmt"

// City is a location candidate or selection. It has no synthetic id:
// identity is (Name, Country, Lat, Lon), see Key.
type City struct {
	Name    string  `json:"name" validate:"required"`
	Country string  `json:"country" validate:"required"`
	State   *string `json:"state,omitempty"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon     float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Key identifies a city for favorites and current-city comparison.
type Key struct {
	Name    string  `json:"name" validate:"required"`
	Country string  `json:"country" validate:"required"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon     float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// SearchQuery is the input of a city search.
type SearchQuery struct {
	Keyword string `json:"keyword" validate:"required"`
}

// Key returns the identity key of c
func (c City) Key() Key {
	return Key{Name: c.Name, Country: c.Country, Lat: c.Lat, Lon: c.Lon}
}

// Matches reports whether c has this identity.
func (k Key) Matches(c City) bool {
	return k == c.Key()
}

// StateName returns the state or an empty string.
func (c City) StateName() string {
	if c.State == nil {
		return ""
	}
	return *c.State
}

func (c City) String() string {
	return fmt.Sprintf("%s, %s (%.4f, %.4f)", c.Name, c.Country, c.Lat, c.Lon)
}

// RemoveByKey returns a new list without the cities matching key.
func RemoveByKey(list []City, key Key) []City {
	out := make([]City, 0, len(list))
	for _, c := range list {
		if !key.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Beijing is the built-in default city.
func Beijing() City {
	return City{Name: "Beijing", Country: "CN", Lat: 39.9042, Lon: 116.4074}
}
