package ticketmaster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventia/eventia/events"
)

const discoveryPayload = `{
  "_embedded": {
    "events": [
      {
        "id": "tm123",
        "name": "Jazz Night",
        "url": "https://tickets.example/tm123",
        "dates": {"start": {"localDate": "2025-06-01"}},
        "classifications": [{"segment": {"name": "Music"}, "genre": {"name": "Jazz"}}],
        "priceRanges": [{"min": 150, "currency": "ZAR"}],
        "_embedded": {
          "venues": [
            {
              "name": "Blue Note",
              "city": {"name": "Cape Town"},
              "location": {"latitude": "-33.92", "longitude": "18.42"}
            }
          ],
          "attractions": [{"name": "Miles Revival"}]
        }
      },
      {
        "name": "no id, gets dropped"
      }
    ]
  }
}`

func TestFetchMapsDiscoveryRecords(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events.json", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(discoveryPayload))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	got, err := c.Fetch(context.Background(), events.Query{
		Latitude:       -33.9,
		Longitude:      18.4,
		HasCoords:      true,
		RadiusKm:       25,
		Classification: "Music",
	})

	require.NoError(t, err)
	require.Len(t, got, 1, "the record without an id is dropped")

	ev := got[0]
	assert.Equal(t, "tm123", ev.ID)
	assert.Equal(t, "Jazz Night", ev.Title)
	assert.Equal(t, "Music", ev.Type)
	assert.Equal(t, "2025-06-01", ev.StartDate)
	assert.Equal(t, "Blue Note, Cape Town", ev.Location)
	assert.Equal(t, "Miles Revival • Music Jazz • From 150ZAR", ev.Description)
	assert.Equal(t, events.SourceTicketmaster, ev.Source)
	require.NotNil(t, ev.Latitude)
	assert.InDelta(t, -33.92, *ev.Latitude, 0.001)

	assert.Equal(t, "test-key", gotQuery["apikey"])
	assert.Equal(t, "-33.9,18.4", gotQuery["latlong"])
	assert.Equal(t, "25", gotQuery["radius"])
	assert.Equal(t, "km", gotQuery["unit"])
	assert.Equal(t, "Music", gotQuery["classificationName"])
	assert.Equal(t, "date,asc", gotQuery["sort"])
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), events.Query{})

	var fe *events.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, events.ErrHTTP, fe.Kind)
	assert.Equal(t, http.StatusInternalServerError, fe.Status)
	assert.Equal(t, events.SourceTicketmaster, fe.Source)
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": {"totalElements": 0}}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	got, err := c.Fetch(context.Background(), events.Query{Keyword: "nothing"})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{APIKey: "k"})
	assert.Equal(t, DefaultBaseURL, c.base)
	assert.Equal(t, DefaultPageSize, c.size)
	assert.NotNil(t, c.http)
}
