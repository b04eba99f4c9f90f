package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Schema(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "schema", []string{"CityDTO"}, &out))

	var schemas map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Bytes(), &schemas))
	assert.Contains(t, schemas, "CityDTO")
}

func TestRun_Config(t *testing.T) {
	t.Setenv("WEATHERDASH_API_BASE_URL", "http://backend.test")
	t.Setenv("REDIS_PASSWORD", "secret")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "config", nil, &out))

	assert.Contains(t, out.String(), "http://backend.test")
	assert.NotContains(t, out.String(), "secret")
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "forecast-everything", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "help", nil, &out))
	assert.Contains(t, out.String(), "mock-backend")
}

func TestParseCity(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "Valid", args: []string{"Beijing", "CN", "39.9042", "116.4074"}},
		{name: "MissingCoordinates", args: []string{"Beijing", "CN"}, wantErr: true},
		{name: "BadLatitude", args: []string{"Beijing", "CN", "north", "116.4074"}, wantErr: true},
		{name: "BadLongitude", args: []string{"Beijing", "CN", "39.9042", "east"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := parseCity(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Beijing", c.Name)
			assert.InDelta(t, 116.4074, c.Lon, 1e-9)
		})
	}
}
