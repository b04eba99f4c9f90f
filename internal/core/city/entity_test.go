package city

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_Matches(t *testing.T) {
	state := "Beijing Municipality"
	beijing := City{Name: "Beijing", Country: "CN", State: &state, Lat: 39.9042, Lon: 116.4074}

	tests := []struct {
		name string
		key  Key
		want bool
	}{
		{name: "SameIdentityIgnoresState", key: Key{Name: "Beijing", Country: "CN", Lat: 39.9042, Lon: 116.4074}, want: true},
		{name: "DifferentCountry", key: Key{Name: "Beijing", Country: "US", Lat: 39.9042, Lon: 116.4074}, want: false},
		{name: "DifferentCoordinates", key: Key{Name: "Beijing", Country: "CN", Lat: 39.9, Lon: 116.4074}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Matches(beijing))
		})
	}
}

func TestRemoveByKey(t *testing.T) {
	london := City{Name: "London", Country: "GB", Lat: 51.5074, Lon: -0.1278}
	list := []City{Beijing(), london, Beijing()}

	result := RemoveByKey(list, Beijing().Key())

	assert.Equal(t, []City{london}, result)
	assert.Len(t, list, 3, "input list must not be modified")
}

func TestCity_StateName(t *testing.T) {
	state := "Ontario"
	assert.Equal(t, "Ontario", City{State: &state}.StateName())
	assert.Equal(t, "", City{}.StateName())
}
