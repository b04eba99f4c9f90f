package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/ports"
)

// CityClient searches cities. Ranking is owned by the backend.
type CityClient struct {
	transport ports.Transport
}

func NewCityClient(transport ports.Transport) *CityClient {
	return &CityClient{transport: transport}
}

// SearchCities returns the candidates for keyword. A blank keyword is
// rejected by the transport before dispatch.
func (c *CityClient) SearchCities(ctx context.Context, keyword string) ([]city.City, error) {
	keyword = strings.TrimSpace(keyword)

	out := []city.City{}
	err := c.transport.Send(ctx, ports.Request{
		Method: http.MethodGet,
		Path:   pathCitySearch,
		Params: url.Values{"keyword": {keyword}},
		Input:  city.SearchQuery{Keyword: keyword},
	}, &out)
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}
