package ticketmaster

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/eventia/eventia/events"
)

const (
	DefaultBaseURL  = "https://app.ticketmaster.com/discovery/v2"
	DefaultPageSize = 20
)

type Config struct {
	APIKey   string
	BaseURL  string
	PageSize int
	// Client lets callers share one HTTP client between adapters; a default
	// one is built when nil.
	Client *resty.Client
}

type client struct {
	key  string
	base string
	size int
	http *resty.Client
}

// New returns the Discovery API source adapter.
func New(c Config) *client {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Client == nil {
		c.Client = resty.New()
	}
	return &client{
		key:  c.APIKey,
		base: c.BaseURL,
		size: c.PageSize,
		http: c.Client,
	}
}

func (c *client) Source() events.Source {
	return events.SourceTicketmaster
}

func (c *client) Fetch(ctx context.Context, q events.Query) (events.Events, error) {
	params := map[string]string{
		"apikey": c.key,
		"size":   strconv.Itoa(c.size),
		"sort":   "date,asc",
	}
	if q.HasCoords {
		params["latlong"] = q.LatLong()
		params["radius"] = strconv.Itoa(q.RadiusKm)
		params["unit"] = "km"
	}
	if q.Keyword != "" {
		params["keyword"] = q.Keyword
	}
	if q.Classification != "" {
		params["classificationName"] = q.Classification
	}

	res := response{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&res).
		Get(c.base + "/events.json")
	if err != nil {
		return nil, events.ClassifyErr(events.SourceTicketmaster, err)
	}
	if resp.StatusCode() != 200 {
		return nil, events.HTTPErr(events.SourceTicketmaster, resp.StatusCode())
	}

	if res.Embedded == nil {
		return make(events.Events, 0), nil
	}
	unified := make(events.Events, 0, len(res.Embedded.Events))
	for _, ev := range res.Embedded.Events {
		if ev.ID == "" {
			// unusable record, skip it rather than failing the fetch
			continue
		}
		unified = append(unified, toUnified(ev))
	}
	return unified, nil
}

func toUnified(ev event) events.UnifiedEvent {
	var (
		ven   *venue
		attr  string
		class classification
		price *priceRange
	)
	if ev.Embedded != nil {
		if len(ev.Embedded.Venues) > 0 {
			ven = &ev.Embedded.Venues[0]
		}
		if len(ev.Embedded.Attractions) > 0 {
			attr = ev.Embedded.Attractions[0].Name
		}
	}
	if len(ev.Classifications) > 0 {
		class = ev.Classifications[0]
	}
	if len(ev.PriceRanges) > 0 {
		price = &ev.PriceRanges[0]
	}

	var dateTime, localDate, localTime string
	if ev.Dates != nil && ev.Dates.Start != nil {
		dateTime = ev.Dates.Start.DateTime
		localDate = ev.Dates.Start.LocalDate
		localTime = ev.Dates.Start.LocalTime
	}

	var venueName, city, region string
	var lat, lng *float64
	if ven != nil {
		venueName = ven.Name
		if ven.City != nil {
			city = ven.City.Name
		}
		if ven.State != nil {
			region = ven.State.Name
		}
		if ven.Location != nil {
			lat = parseCoord(ven.Location.Latitude)
			lng = parseCoord(ven.Location.Longitude)
		}
	}

	var segment, genre string
	if class.Segment != nil {
		segment = class.Segment.Name
	}
	if class.Genre != nil {
		genre = class.Genre.Name
	}
	var priceMin *float64
	var currency string
	if price != nil {
		priceMin = price.Min
		currency = price.Currency
	}

	return events.UnifiedEvent{
		ID:          ev.ID,
		Title:       events.ResolveTitle(ev.Name),
		Description: events.ResolveDescription(attr, segment, genre, priceMin, currency),
		Type:        events.Classification(segment),
		StartDate:   events.ResolveStartDate(dateTime, localDate, localTime),
		Location:    events.ResolveLocation(venueName, city, region),
		Latitude:    lat,
		Longitude:   lng,
		URL:         ev.URL,
		Source:      events.SourceTicketmaster,
	}
}

func parseCoord(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
