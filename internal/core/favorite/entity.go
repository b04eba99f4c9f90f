package favorite

import "weatherdash.app/internal/core/city"

// Create is the write-only shape used to add a favorite.
type Create struct {
	Name    string  `json:"name" validate:"required"`
	Country string  `json:"country" validate:"required"`
	State   *string `json:"state,omitempty"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon     float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// FromCity builds the create request for c.
func FromCity(c city.City) Create {
	create := Create{Name: c.Name, Country: c.Country, Lat: c.Lat, Lon: c.Lon}
	if c.State != nil {
		state := *c.State
		create.State = &state
	}
	return create
}

// Key returns the identity the favorite will have once created.
func (c Create) Key() city.Key {
	return city.Key{Name: c.Name, Country: c.Country, Lat: c.Lat, Lon: c.Lon}
}
