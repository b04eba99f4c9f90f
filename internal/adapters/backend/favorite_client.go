package backend

import (
	"context"
	"net/http"
	"net/url"

	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/favorite"
	"weatherdash.app/internal/ports"
)

// FavoriteClient manages favorites. Favorites are addressed by identity key, never by id.
type FavoriteClient struct {
	transport ports.Transport
}

func NewFavoriteClient(transport ports.Transport) *FavoriteClient {
	return &FavoriteClient{transport: transport}
}

func (c *FavoriteClient) GetAllFavorites(ctx context.Context) ([]city.City, error) {
	out := []city.City{}
	if err := c.transport.Send(ctx, ports.Request{Method: http.MethodGet, Path: pathFavorites}, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// AddFavorite creates a favorite. Duplicate handling is left to the backend.
func (c *FavoriteClient) AddFavorite(ctx context.Context, create favorite.Create) (*city.City, error) {
	var out city.City
	err := c.transport.Send(ctx, ports.Request{Method: http.MethodPost, Path: pathFavorites, Body: create}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFavorite deletes the favorite with key. It does not touch any store.
func (c *FavoriteClient) RemoveFavorite(ctx context.Context, key city.Key) error {
	return c.transport.Send(ctx, ports.Request{
		Method: http.MethodDelete,
		Path:   pathFavorites,
		Params: url.Values{
			"name":    {key.Name},
			"country": {key.Country},
			"lat":     {formatCoordinate(key.Lat)},
			"lon":     {formatCoordinate(key.Lon)},
		},
		Input: key,
	}, nil)
}
