// Package geo resolves free-text locations into coordinates. Resolution is
// best effort: callers fall back to keyword-only searches when it fails.
package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Place is a geocoded address.
type Place struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

type Resolver interface {
	Resolve(ctx context.Context, address string) (*Place, error)
}

// Cache stores geocode results between runs; resolution of the same address
// is stable enough that a hit never needs revalidation.
type Cache interface {
	LoadPlace(address string) (*Place, bool)
	SavePlace(address string, p Place) error
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type Config struct {
	APIKey  string
	BaseURL string
	Client  *resty.Client
	Cache   Cache
}

type geocoder struct {
	key   string
	base  string
	http  *resty.Client
	cache Cache
}

func New(c Config) *geocoder {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Client == nil {
		c.Client = resty.New()
	}
	return &geocoder{
		key:   c.APIKey,
		base:  c.BaseURL,
		http:  c.Client,
		cache: c.Cache,
	}
}

func (g *geocoder) Resolve(ctx context.Context, address string) (*Place, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}
	key := strings.ToLower(address)
	if g.cache != nil {
		if p, ok := g.cache.LoadPlace(key); ok {
			return p, nil
		}
	}

	res := geocodeResponse{}
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": address,
			"key":     g.key,
		}).
		SetResult(&res).
		Get(g.base)
	if err != nil {
		return nil, fmt.Errorf("unable to geocode %q: %w", address, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unable to geocode %q: status %d", address, resp.StatusCode())
	}
	if len(res.Results) == 0 {
		return nil, fmt.Errorf("no results for %q", address)
	}

	first := res.Results[0]
	p := Place{
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
		Name:      first.FormattedAddress,
	}
	if p.Name == "" {
		p.Name = address
	}
	if g.cache != nil {
		_ = g.cache.SavePlace(key, p)
	}
	return &p, nil
}
