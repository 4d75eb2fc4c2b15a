package events

import "fmt"

// DefaultRadiusKm matches the search radius used when no setting is stored.
const DefaultRadiusKm = 25

// Query describes one fetch: where to look, how far, and what to filter on.
// It is an immutable value; two queries are the same fetch iff all fields
// compare equal.
type Query struct {
	Latitude       float64
	Longitude      float64
	HasCoords      bool
	RadiusKm       int
	Classification string
	Keyword        string
}

func (q Query) Equals(other Query) bool {
	return q == other
}

// LatLong renders the coordinates in the "lat,long" form the providers take.
func (q Query) LatLong() string {
	if !q.HasCoords {
		return ""
	}
	return fmt.Sprintf("%g,%g", q.Latitude, q.Longitude)
}

func (q Query) String() string {
	where := "anywhere"
	if q.HasCoords {
		where = fmt.Sprintf("%gkm around %s", float64(q.RadiusKm), q.LatLong())
	}
	filters := ""
	if q.Classification != "" {
		filters += " class=" + q.Classification
	}
	if q.Keyword != "" {
		filters += " keyword=" + q.Keyword
	}
	return fmt.Sprintf("<query %s%s>", where, filters)
}
