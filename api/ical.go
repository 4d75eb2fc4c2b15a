package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/soh335/ical"

	"github.com/eventia/eventia/events"
)

const defaultEventDuration = 2 * time.Hour

var startDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseStartDate(raw string) (time.Time, error) {
	for _, f := range startDateFormats {
		if t, err := time.Parse(f, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// serveCalendar renders the currently published events as an iCal feed.
// Events whose start date never resolved past the sentinel are skipped.
func (h handler) serveCalendar(w http.ResponseWriter, r *http.Request) {
	evs := h.ctl.Events()

	cal := ical.NewBasicVCalendar()
	cal.PRODID = fmt.Sprintf("-//EVENTIA//AGGREGATOR//EN/%s", h.version)
	cal.VERSION = "2.0"

	name := "Eventia"
	cal.NAME = name
	cal.X_WR_CALNAME = name
	description := "Eventia, aggregated events"
	cal.DESCRIPTION = description
	cal.X_WR_CALDESC = description

	now := time.Now()
	tz := now.Location().String()
	cal.TIMEZONE_ID = tz
	cal.X_WR_TIMEZONE = tz

	cal.REFRESH_INTERVAL = "PT1H"
	cal.X_PUBLISHED_TTL = "PT1H"
	cal.CALSCALE = "GREGORIAN"
	cal.METHOD = "PUBLISH"

	for _, ev := range evs {
		start, err := parseStartDate(ev.StartDate)
		if err != nil {
			continue
		}
		end := start.Add(defaultEventDuration)
		if ev.EndDate != "" {
			if e, err := parseStartDate(ev.EndDate); err == nil {
				end = e
			}
		}
		summary := ev.Title
		if ev.Type != "" {
			summary = fmt.Sprintf("[%s] %s", ev.Type, ev.Title)
		}

		e := &ical.VEvent{
			UID:         ev.Key(),
			DTSTAMP:     now,
			DTSTART:     start,
			DTEND:       end,
			SUMMARY:     summary,
			DESCRIPTION: describe(ev),
			TZID:        tz,
			AllDay:      len(ev.StartDate) == len("2006-01-02"),
		}
		cal.VComponent = append(cal.VComponent, e)
	}

	b := &bytes.Buffer{}
	if err := cal.Encode(b); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Write(b.Bytes())
}

func describe(ev events.UnifiedEvent) string {
	desc := ev.Description
	if ev.Location != events.LocationTBD {
		if desc != "" {
			desc += "\n"
		}
		desc += ev.Location
	}
	if ev.URL != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += ev.URL
	}
	return desc
}
