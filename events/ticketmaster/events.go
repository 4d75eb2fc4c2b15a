package ticketmaster

// Discovery API response shapes, limited to the fields the adapter consumes.
// Everything here is optional upstream; the normalizer owns the fallbacks.

type response struct {
	Embedded *embeddedEvents `json:"_embedded"`
	Page     *page           `json:"page"`
}

type page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type embeddedEvents struct {
	Events []event `json:"events"`
}

type event struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	Dates           *dates           `json:"dates"`
	Classifications []classification `json:"classifications"`
	PriceRanges     []priceRange     `json:"priceRanges"`
	Embedded        *embeddedDetails `json:"_embedded"`
}

type dates struct {
	Start *startDate `json:"start"`
}

type startDate struct {
	DateTime  string `json:"dateTime"`
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
}

type classification struct {
	Segment *named `json:"segment"`
	Genre   *named `json:"genre"`
}

type named struct {
	Name string `json:"name"`
}

type priceRange struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
}

type embeddedDetails struct {
	Venues      []venue `json:"venues"`
	Attractions []named `json:"attractions"`
}

type venue struct {
	Name     string    `json:"name"`
	City     *named    `json:"city"`
	State    *named    `json:"state"`
	Location *geoPoint `json:"location"`
}

type geoPoint struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
