package storage

import (
	"github.com/eventia/eventia/events"
)

// Settings is the persisted search context: the default location and radius
// the caller uses to build the initial query.
type Settings struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"locationName"`
	RadiusKm     int     `json:"radiusKm"`
}

func DefaultSettings() Settings {
	return Settings{RadiusKm: events.DefaultRadiusKm}
}

// HasLocation reports whether a default location has been stored.
func (s Settings) HasLocation() bool {
	return s.LocationName != "" && (s.Latitude != 0 || s.Longitude != 0)
}

// Query builds the fetch context for these settings.
func (s Settings) Query(classification, keyword string) events.Query {
	return events.Query{
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		HasCoords:      s.HasLocation(),
		RadiusKm:       s.RadiusKm,
		Classification: classification,
		Keyword:        keyword,
	}
}

type Saver interface {
	SaveEvents(events.Events) error
}

type Loader interface {
	LoadEvents(sources ...events.Source) (events.Events, error)
	LoadEvent(src events.Source, id string) events.UnifiedEvent
}

type SettingsStore interface {
	LoadSettings() (Settings, error)
	SaveSettings(Settings) error
}
