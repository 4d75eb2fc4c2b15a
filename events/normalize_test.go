package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "passthrough", raw: "Jazz Night", want: "Jazz Night"},
		{name: "trimmed", raw: "  Jazz Night  ", want: "Jazz Night"},
		{name: "empty", raw: "", want: UntitledEvent},
		{name: "whitespace only", raw: "   ", want: UntitledEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTitle(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		name                string
		venue, city, region string
		want                string
	}{
		{name: "all parts", venue: "Blue Note", city: "Cape Town", region: "Western Cape", want: "Blue Note, Cape Town, Western Cape"},
		{name: "venue and city", venue: "Blue Note", city: "Cape Town", want: "Blue Note, Cape Town"},
		{name: "venue only", venue: "Blue Note", want: "Blue Note"},
		{name: "missing venue hides the rest", city: "Cape Town", region: "Western Cape", want: LocationTBD},
		{name: "nothing", want: LocationTBD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLocation(tt.venue, tt.city, tt.region)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestResolveStartDate(t *testing.T) {
	tests := []struct {
		name                           string
		dateTime, localDate, localTime string
		want                           string
	}{
		{name: "full timestamp wins", dateTime: "2025-06-01T19:00:00Z", localDate: "2025-06-01", localTime: "19:00", want: "2025-06-01T19:00:00Z"},
		{name: "date and time joined", localDate: "2025-06-01", localTime: "19:00", want: "2025-06-01 19:00"},
		{name: "date only", localDate: "2025-06-01", want: "2025-06-01"},
		{name: "time only", localTime: "19:00", want: "19:00"},
		{name: "nothing", want: DateTBD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStartDate(tt.dateTime, tt.localDate, tt.localTime)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestResolveDescription(t *testing.T) {
	price := 150.0

	tests := []struct {
		name                       string
		attraction, segment, genre string
		priceMin                   *float64
		currency                   string
		want                       string
	}{
		{name: "all parts", attraction: "Miles Revival", segment: "Music", genre: "Jazz", priceMin: &price, currency: "ZAR", want: "Miles Revival • Music Jazz • From 150ZAR"},
		{name: "classification only", segment: "Music", genre: "Jazz", want: "Music Jazz"},
		{name: "segment only", segment: "Music", want: "Music"},
		{name: "price without currency", priceMin: &price, want: "From 150$"},
		{name: "nothing", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDescription(tt.attraction, tt.segment, tt.genre, tt.priceMin, tt.currency))
		})
	}
}

func TestClassification(t *testing.T) {
	assert.Equal(t, "Music", Classification("Music"))
	assert.Equal(t, DefaultCategory, Classification(""))
	assert.Equal(t, DefaultCategory, Classification("  "))
}
