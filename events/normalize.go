package events

import (
	"fmt"
	"strings"
)

// Sentinels substituted by the normalizer when a provider leaves a required
// field blank. These functions are the only place defaults are produced;
// source adapters must not invent their own.
const (
	UntitledEvent   = "Untitled Event"
	LocationTBD     = "Location TBD"
	DateTBD         = "Date TBD"
	DefaultCategory = "Event"
)

// ResolveTitle trims the raw title and falls back to the untitled sentinel.
func ResolveTitle(raw string) string {
	if t := strings.TrimSpace(raw); t != "" {
		return t
	}
	return UntitledEvent
}

// ResolveLocation joins the present parts with ", ". The venue name carries
// the location: when absent the whole location is considered unknown.
func ResolveLocation(venue, city, region string) string {
	if strings.TrimSpace(venue) == "" {
		return LocationTBD
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{venue, city, region} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ResolveStartDate prefers a full timestamp, then a date/time concatenation.
func ResolveStartDate(dateTime, localDate, localTime string) string {
	if dateTime != "" {
		return dateTime
	}
	if d := strings.TrimSpace(localDate + " " + localTime); d != "" {
		return d
	}
	return DateTBD
}

// ResolveDescription builds a "•"-joined summary from whichever parts are
// present. It returns the empty string when nothing is known, which source
// adapters map to an absent description.
func ResolveDescription(attraction, segment, genre string, priceMin *float64, currency string) string {
	parts := make([]string, 0, 3)
	if attraction = strings.TrimSpace(attraction); attraction != "" {
		parts = append(parts, attraction)
	}
	if class := strings.TrimSpace(strings.TrimSpace(segment) + " " + strings.TrimSpace(genre)); class != "" {
		parts = append(parts, class)
	}
	if priceMin != nil {
		if currency == "" {
			currency = "$"
		}
		parts = append(parts, fmt.Sprintf("From %d%s", int(*priceMin), currency))
	}
	return strings.Join(parts, " • ")
}

// Classification maps a provider segment name onto the event type label.
func Classification(segment string) string {
	if s := strings.TrimSpace(segment); s != "" {
		return s
	}
	return DefaultCategory
}
