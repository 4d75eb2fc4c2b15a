package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Source identifies the upstream provider an event came from.
type Source string

const (
	SourceUser         Source = "user"
	SourceTicketmaster Source = "ticketmaster"
)

var DefaultSources = []Source{SourceUser, SourceTicketmaster}

func ValidSource(s string) bool {
	for _, src := range DefaultSources {
		if strings.EqualFold(s, string(src)) {
			return true
		}
	}
	return false
}

// UnifiedEvent is the canonical representation of an event regardless of
// which provider supplied it. Title, Type, StartDate and Location are never
// empty once an event has passed through a source adapter: absent values are
// resolved to the sentinels produced by the normalizer functions.
type UnifiedEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	URL         string   `json:"url,omitempty"`
	Source      Source   `json:"source"`
	// Created is the local creation time for user authored events, used to
	// order them most recent first. Zero for third party events.
	Created time.Time `json:"created"`
}

// MarshalJSON drops the created timestamp for events that never had one.
func (e UnifiedEvent) MarshalJSON() ([]byte, error) {
	type raw UnifiedEvent
	if !e.Created.IsZero() {
		return json.Marshal(raw(e))
	}
	return json.Marshal(struct {
		raw
		Created *time.Time `json:"created,omitempty"`
	}{raw: raw(e)})
}

type Events []UnifiedEvent

func (e UnifiedEvent) IsValid() bool {
	return e.ID != "" && e.Source != ""
}

// Key is the de-duplication identity of an event inside one aggregated set.
func (e UnifiedEvent) Key() string {
	return fmt.Sprintf("%s/%s", e.Source, e.ID)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (e UnifiedEvent) Equals(other UnifiedEvent) bool {
	return e.ID == other.ID &&
		e.Source == other.Source &&
		e.Title == other.Title &&
		e.Description == other.Description &&
		e.Type == other.Type &&
		e.StartDate == other.StartDate &&
		e.EndDate == other.EndDate &&
		e.Location == other.Location &&
		e.URL == other.URL &&
		floatPtrEqual(e.Latitude, other.Latitude) &&
		floatPtrEqual(e.Longitude, other.Longitude)
}

func (e UnifiedEvent) String() string {
	return e.GoString()
}

func (e UnifiedEvent) GoString() string {
	return fmt.Sprintf("<[%s:%s] %s: %s @ %s>", e.Source, e.ID, e.Type, e.Title, e.StartDate)
}

func (e Events) String() string {
	return e.GoString()
}

func (e Events) GoString() string {
	ss := make([]string, len(e))
	for i, ev := range e {
		ss[i] = ev.GoString()
	}
	return fmt.Sprintf("Events[%d]:\n\t%s\n", len(e), strings.Join(ss, "\n\t"))
}

func (e Events) Contains(inc UnifiedEvent) bool {
	for _, ev := range e {
		if ev.Equals(inc) {
			return true
		}
	}
	return false
}

// Draft is a locally authored event before it has been accepted upstream.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}
