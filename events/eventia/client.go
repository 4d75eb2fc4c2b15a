// Package eventia talks to the user-events backend: the REST service that
// owns events authored inside the application.
package eventia

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eventia/eventia/events"
)

const DefaultBaseURL = "http://localhost:5000"

// record is the wire shape of one server-owned event.
type record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CreatedAt   string   `json:"createdAt"`
}

type Config struct {
	BaseURL string
	Client  *resty.Client
}

type client struct {
	base string
	http *resty.Client
}

// New returns the user-events source adapter.
func New(c Config) *client {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Client == nil {
		c.Client = resty.New()
	}
	return &client{base: c.BaseURL, http: c.Client}
}

func (c *client) Source() events.Source {
	return events.SourceUser
}

// Fetch loads every server-owned event. The backend does not filter on
// location, so the query only rides along for interface symmetry.
func (c *client) Fetch(ctx context.Context, _ events.Query) (events.Events, error) {
	recs := make([]record, 0)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&recs).
		Get(c.base + "/api/events")
	if err != nil {
		return nil, events.ClassifyErr(events.SourceUser, err)
	}
	if resp.StatusCode() != 200 {
		return nil, events.HTTPErr(events.SourceUser, resp.StatusCode())
	}

	unified := make(events.Events, 0, len(recs))
	for _, r := range recs {
		if r.ID == "" {
			continue
		}
		unified = append(unified, toUnified(r))
	}
	return unified, nil
}

// Create pushes a locally authored draft upstream and returns the
// authoritative record with its server assigned id.
func (c *client) Create(ctx context.Context, draft events.Draft) (events.UnifiedEvent, error) {
	created := record{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(draft).
		SetResult(&created).
		Post(c.base + "/api/events")
	if err != nil {
		return events.UnifiedEvent{}, events.ClassifyErr(events.SourceUser, err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return events.UnifiedEvent{}, events.HTTPErr(events.SourceUser, resp.StatusCode())
	}
	return toUnified(created), nil
}

func toUnified(r record) events.UnifiedEvent {
	created := time.Time{}
	if r.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			created = t
		}
	}
	return events.UnifiedEvent{
		ID:          r.ID,
		Title:       events.ResolveTitle(r.Title),
		Description: r.Description,
		Type:        events.Classification(r.Type),
		StartDate:   events.ResolveStartDate("", r.StartDate, ""),
		EndDate:     r.EndDate,
		Location:    events.ResolveLocation(r.Location, "", ""),
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Source:      events.SourceUser,
		Created:     created,
	}
}
