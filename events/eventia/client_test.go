package eventia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventia/eventia/events"
)

func TestFetchMapsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/events", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "42",
				"title": "Team braai",
				"type": "Party",
				"startDate": "2025-06-07",
				"location": "Kirstenbosch",
				"createdAt": "2025-05-01T10:00:00Z"
			},
			{
				"id": "43",
				"title": "  ",
				"type": "",
				"startDate": "",
				"location": ""
			}
		]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	got, err := c.Fetch(context.Background(), events.Query{})

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "42", got[0].ID)
	assert.Equal(t, "Team braai", got[0].Title)
	assert.Equal(t, "Party", got[0].Type)
	assert.Equal(t, "Kirstenbosch", got[0].Location)
	assert.Equal(t, events.SourceUser, got[0].Source)
	assert.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), got[0].Created)

	// blank fields come back as sentinels, never empty
	assert.Equal(t, events.UntitledEvent, got[1].Title)
	assert.Equal(t, events.DefaultCategory, got[1].Type)
	assert.Equal(t, events.DateTBD, got[1].StartDate)
	assert.Equal(t, events.LocationTBD, got[1].Location)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), events.Query{})

	var fe *events.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, events.ErrHTTP, fe.Kind)
	assert.Equal(t, http.StatusBadGateway, fe.Status)
}

func TestCreateReturnsServerRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/events", r.URL.Path)

		var draft events.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Team braai", draft.Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(record{
			ID:        "srv-7",
			Title:     draft.Title,
			Type:      draft.Type,
			StartDate: draft.StartDate,
			Location:  draft.Location,
			CreatedAt: "2025-05-01T10:00:00Z",
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	created, err := c.Create(context.Background(), events.Draft{
		Title:     "Team braai",
		Type:      "Party",
		StartDate: "2025-06-07",
		Location:  "Kirstenbosch",
	})

	require.NoError(t, err)
	assert.Equal(t, "srv-7", created.ID)
	assert.Equal(t, "Team braai", created.Title)
	assert.Equal(t, events.SourceUser, created.Source)
}

func TestCreateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Create(context.Background(), events.Draft{Title: "x", StartDate: "2025-06-07"})

	var fe *events.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, events.ErrHTTP, fe.Kind)
}
