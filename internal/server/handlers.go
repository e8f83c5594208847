package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"gigcal/internal/services"
	"gigcal/internal/shared"
	"gigcal/internal/tasks"
)

// SearchHandler performs the event lookup and issues the authorization redirect.
// Implements the Handler interface for registration with a Router.
type SearchHandler struct {
	events   services.EventSearcher
	pipeline *tasks.Pipeline
	logger   *log.Logger
}

// NewSearchHandler creates a search handler backed by the given discovery
// client and pipeline.
func NewSearchHandler(events services.EventSearcher, pipeline *tasks.Pipeline, logger *log.Logger) *SearchHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SearchHandler{events: events, pipeline: pipeline, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/search"}
}

// ServeHTTP handles GET /search?Event=keyword.
//
// Only the first matching event enters the pipeline. An empty keyword or an
// empty result set serves the wrong-input page; upstream failures map to 502
// instead of crashing the request.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("Event")
	if keyword == "" {
		writePage(w, PageWrongInput, http.StatusOK)
		return
	}

	events, err := h.events.Search(r.Context(), keyword)
	switch {
	case errors.Is(err, shared.ErrNoEvents):
		h.logger.Info("no events matched", "keyword", keyword)
		writePage(w, PageWrongInput, http.StatusOK)
		return
	case err != nil:
		h.logger.Error("event lookup failed", "keyword", keyword, "error", err)
		writePage(w, PageFailure, http.StatusBadGateway)
		return
	}

	_, authURL := h.pipeline.Begin(events[0])
	http.Redirect(w, r, authURL, http.StatusFound)
}

// CallbackHandler consumes the OAuth2 authorization callback: token exchange
// followed by the awaited calendar insertion.
// Implements the Handler interface for registration with a Router.
type CallbackHandler struct {
	pipeline *tasks.Pipeline
	logger   *log.Logger
}

// NewCallbackHandler creates a callback handler driving the given pipeline.
func NewCallbackHandler(pipeline *tasks.Pipeline, logger *log.Logger) *CallbackHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CallbackHandler{pipeline: pipeline, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/authorized"}
}

// ServeHTTP handles GET /authorized?state=...&code=...
//
// Consent denials and unknown or replayed state tokens produce a user-visible
// failure page; upstream faults during exchange or insertion map to 502. On
// success the body is exactly "Done".
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		h.logger.Warn("authorization denied", "error", errParam, "description", query.Get("error_description"))
		writePage(w, PageFailure, http.StatusBadRequest)
		return
	}

	state := query.Get("state")
	code := query.Get("code")

	insertion, err := h.pipeline.Finish(r.Context(), state, code)
	switch {
	case errors.Is(err, shared.ErrUnknownFlow), errors.Is(err, shared.ErrFlowConsumed), errors.Is(err, shared.ErrAuthFailed):
		h.logger.Warn("callback rejected", "state", state, "error", err)
		writePage(w, PageFailure, http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("pipeline failed", "state", state, "error", err)
		writePage(w, PageFailure, http.StatusBadGateway)
		return
	}

	h.logger.Info("calendar entry created", "event", insertion.EventName, "calendar_event", insertion.CalendarEventID)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Done"))
}
