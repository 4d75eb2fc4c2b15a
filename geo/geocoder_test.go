package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	places map[string]Place
	saves  int
}

func newMemCache() *memCache {
	return &memCache{places: map[string]Place{}}
}

func (m *memCache) LoadPlace(address string) (*Place, bool) {
	p, ok := m.places[address]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (m *memCache) SavePlace(address string, p Place) error {
	m.places[address] = p
	m.saves++
	return nil
}

const geocodePayload = `{
  "status": "OK",
  "results": [
    {
      "formatted_address": "Cape Town, South Africa",
      "geometry": {"location": {"lat": -33.9249, "lng": 18.4241}}
    }
  ]
}`

func TestResolve(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "Cape Town", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodePayload))
	}))
	defer srv.Close()

	g := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	p, err := g.Resolve(context.Background(), "Cape Town")

	require.NoError(t, err)
	assert.InDelta(t, -33.9249, p.Latitude, 0.0001)
	assert.InDelta(t, 18.4241, p.Longitude, 0.0001)
	assert.Equal(t, "Cape Town, South Africa", p.Name)
	assert.Equal(t, 1, hits)
}

func TestResolveCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodePayload))
	}))
	defer srv.Close()

	cache := newMemCache()
	g := New(Config{APIKey: "k", BaseURL: srv.URL, Cache: cache})

	_, err := g.Resolve(context.Background(), "Cape Town")
	require.NoError(t, err)
	// lookups are case insensitive once cached
	p, err := g.Resolve(context.Background(), "cape town")
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, cache.saves)
	assert.Equal(t, "Cape Town, South Africa", p.Name)
}

func TestResolveNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	g := New(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := g.Resolve(context.Background(), "Atlantis")

	require.Error(t, err)
}

func TestResolveEmptyAddress(t *testing.T) {
	g := New(Config{APIKey: "k"})
	_, err := g.Resolve(context.Background(), "   ")
	require.Error(t, err)
}
