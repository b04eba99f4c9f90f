package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	Name     string  `json:"name" validate:"required"`
	Lat      float64 `json:"lat,omitempty" validate:"gte=-90,lte=90"`
	Internal string  `json:"-" validate:"required"`
	Untagged string  `validate:"required"`
}

func TestNew_ReportsJSONNames(t *testing.T) {
	err := New().Struct(probe{Lat: 91, Internal: "x", Untagged: "x"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"probe.name": "required",
		"probe.lat":  "lte",
	}, Fields(err))
}

func TestNew_FallsBackToFieldName(t *testing.T) {
	err := New().Struct(probe{Name: "Beijing", Internal: "x"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{"probe.Untagged": "required"}, Fields(err))
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(fmt.Errorf("boom")))
	assert.Nil(t, Fields(nil))
}

func TestTrimAndValidate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "  Beijing ", want: "Beijing", ok: true},
		{in: "   ", want: "", ok: false},
		{in: "", want: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := TrimAndValidate(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.ok, IsNotEmpty(tt.in))
	}
}
