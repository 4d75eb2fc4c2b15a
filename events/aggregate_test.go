package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userEvent(id, title string, created time.Time) UnifiedEvent {
	return UnifiedEvent{
		ID:        id,
		Title:     title,
		Type:      DefaultCategory,
		StartDate: "2025-06-01",
		Location:  LocationTBD,
		Source:    SourceUser,
		Created:   created,
	}
}

func tmEvent(id, title string) UnifiedEvent {
	return UnifiedEvent{
		ID:        id,
		Title:     title,
		Type:      "Music",
		StartDate: "2025-06-01",
		Location:  "Blue Note, Cape Town",
		Source:    SourceTicketmaster,
	}
}

func TestAggregateDeduplicatesLastWriteWins(t *testing.T) {
	res := Aggregate(SourceResult{
		Source: SourceUser,
		Events: Events{
			userEvent("u1", "original", time.Time{}),
			userEvent("u1", "updated", time.Time{}),
		},
	})

	require.Len(t, res, 1)
	assert.Equal(t, "updated", res[0].Title)
}

func TestAggregateUserEventsFirst(t *testing.T) {
	res := Aggregate(
		SourceResult{Source: SourceTicketmaster, Events: Events{tmEvent("t1", "gig one"), tmEvent("t2", "gig two")}},
		SourceResult{Source: SourceUser, Events: Events{userEvent("u1", "my party", time.Time{})}},
	)

	require.Len(t, res, 3)
	assert.Equal(t, SourceUser, res[0].Source)
	// upstream ordering of the remaining source is preserved
	assert.Equal(t, "t1", res[1].ID)
	assert.Equal(t, "t2", res[2].ID)
}

func TestAggregateUserEventsMostRecentFirst(t *testing.T) {
	older := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	res := Aggregate(SourceResult{
		Source: SourceUser,
		Events: Events{
			userEvent("u1", "older", older),
			userEvent("u2", "newer", newer),
		},
	})

	require.Len(t, res, 2)
	assert.Equal(t, "newer", res[0].Title)
	assert.Equal(t, "older", res[1].Title)
}

func TestAggregateIsIdempotent(t *testing.T) {
	inputs := []SourceResult{
		{Source: SourceUser, Events: Events{userEvent("u1", "mine", time.Time{})}},
		{Source: SourceTicketmaster, Events: Events{tmEvent("t1", "gig"), tmEvent("t2", "concert")}},
	}

	first := Aggregate(inputs...)
	second := Aggregate(inputs...)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equals(second[i]), "position %d differs", i)
	}
}

func TestAggregateSkipsInvalidRecords(t *testing.T) {
	res := Aggregate(SourceResult{
		Source: SourceTicketmaster,
		Events: Events{{Title: "no id"}, tmEvent("t1", "valid")},
	})

	require.Len(t, res, 1)
	assert.Equal(t, "t1", res[0].ID)
}

func TestAggregateBackfillsSourceTag(t *testing.T) {
	untagged := tmEvent("t1", "gig")
	untagged.Source = ""

	res := Aggregate(SourceResult{Source: SourceTicketmaster, Events: Events{untagged}})

	require.Len(t, res, 1)
	assert.Equal(t, SourceTicketmaster, res[0].Source)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate())
	assert.Empty(t, Aggregate(SourceResult{Source: SourceTicketmaster}))
}

func TestQueryEquality(t *testing.T) {
	base := Query{Latitude: -33.9, Longitude: 18.4, HasCoords: true, RadiusKm: 25, Classification: "Music", Keyword: "jazz"}

	assert.True(t, base.Equals(base))

	changed := base
	changed.RadiusKm = 10
	assert.False(t, base.Equals(changed))

	changed = base
	changed.Keyword = "Jazz"
	assert.False(t, base.Equals(changed), "keyword comparison is case sensitive")

	keywordOnly := Query{Keyword: "jazz", RadiusKm: 25}
	assert.Equal(t, "", keywordOnly.LatLong())
	assert.Equal(t, "-33.9,18.4", base.LatLong())
}
