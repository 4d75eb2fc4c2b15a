package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eventia/eventia/refresh"
	"github.com/eventia/eventia/storage"
)

// Routes wires the aggregation API: JSON refresh and create endpoints, the
// iCal feed, health and Prometheus metrics.
func Routes(ctl *refresh.Controller, settings storage.SettingsStore, m *Metrics, version string) http.Handler {
	h := handler{ctl: ctl, settings: settings, metrics: m, version: version}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/events", h.getEvents)
	r.Post("/events", h.createEvent)
	r.Get("/calendar.ics", h.serveCalendar)
	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
