package backend

import (
	"context"
	"net/http"

	"weatherdash.app/internal/core/preference"
	"weatherdash.app/internal/ports"
)

// PreferenceClient reads and fully replaces the preference row.
type PreferenceClient struct {
	transport ports.Transport
}

func NewPreferenceClient(transport ports.Transport) *PreferenceClient {
	return &PreferenceClient{transport: transport}
}

// GetPreferences returns the stored row; the backend creates defaults on first use.
func (c *PreferenceClient) GetPreferences(ctx context.Context) (*preference.Preference, error) {
	var out preference.Preference
	if err := c.transport.Send(ctx, ports.Request{Method: http.MethodGet, Path: pathPreferences}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePreferences replaces every field. Partial updates are not supported.
func (c *PreferenceClient) UpdatePreferences(ctx context.Context, p preference.Preference) (*preference.Preference, error) {
	var out preference.Preference
	err := c.transport.Send(ctx, ports.Request{Method: http.MethodPut, Path: pathPreferences, Body: p}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
