package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eventia/eventia/events"
	"github.com/eventia/eventia/refresh"
	"github.com/eventia/eventia/storage"
)

type handler struct {
	ctl      *refresh.Controller
	settings storage.SettingsStore
	metrics  *Metrics
	version  string
}

type warning struct {
	Source  events.Source  `json:"source"`
	Kind    events.ErrKind `json:"kind"`
	Status  int            `json:"status,omitempty"`
	Message string         `json:"message"`
}

type refreshResponse struct {
	Events   events.Events `json:"events"`
	Warnings []warning     `json:"warnings"`
}

func toWarnings(errs []*events.FetchError) []warning {
	ws := make([]warning, len(errs))
	for i, e := range errs {
		ws[i] = warning{Source: e.Source, Kind: e.Kind, Status: e.Status, Message: e.Error()}
	}
	return ws
}

// query builds the fetch context from request parameters, falling back to
// the persisted settings for anything the caller left out.
func (h handler) query(r *http.Request) events.Query {
	q := events.Query{RadiusKm: events.DefaultRadiusKm}
	if h.settings != nil {
		if s, err := h.settings.LoadSettings(); err == nil {
			q = s.Query("", "")
		}
	}

	params := r.URL.Query()
	lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(params.Get("lng"), 64)
	if latErr == nil && lngErr == nil {
		q.Latitude, q.Longitude, q.HasCoords = lat, lng, true
	}
	if radius, err := strconv.Atoi(params.Get("radius")); err == nil && radius > 0 {
		q.RadiusKm = radius
	}
	if c := params.Get("classification"); c != "" {
		q.Classification = c
	}
	if k := params.Get("keyword"); k != "" {
		q.Keyword = k
	}
	return q
}

func (h handler) getEvents(w http.ResponseWriter, r *http.Request) {
	q := h.query(r)
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	var res refresh.Result
	if address := r.URL.Query().Get("location"); address != "" {
		var err error
		res, err = h.ctl.RefreshAddress(r.Context(), address, q, force)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		res = h.ctl.Refresh(r.Context(), q, force)
	}

	if h.metrics != nil {
		h.metrics.EventsServed.Set(float64(len(res.Events)))
	}
	jsonOK(w, http.StatusOK, refreshResponse{
		Events:   res.Events,
		Warnings: toWarnings(res.Warnings),
	})
}

func (h handler) createEvent(w http.ResponseWriter, r *http.Request) {
	draft := events.Draft{}
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		jsonError(w, http.StatusBadRequest, err)
		return
	}
	if draft.Title == "" || draft.StartDate == "" {
		jsonError(w, http.StatusUnprocessableEntity, errMissingFields)
		return
	}
	created, err := h.ctl.CreateUserEvent(r.Context(), draft)
	if err != nil {
		jsonError(w, http.StatusBadGateway, err)
		return
	}
	jsonOK(w, http.StatusCreated, created)
}

func (h handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, http.StatusOK, map[string]string{"status": "ok", "version": h.version})
}

var errMissingFields = &fieldError{"title and startDate are required"}

type fieldError struct{ msg string }

func (e *fieldError) Error() string { return e.msg }

func jsonOK(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func jsonError(w http.ResponseWriter, status int, err error) {
	jsonOK(w, status, map[string]string{"error": err.Error()})
}
