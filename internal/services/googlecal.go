// Google Calendar API implementation of [CalendarWriter]
//
// Request/response shapes based on https://developers.google.com/calendar/api/v3/reference/events/insert
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"gigcal/internal/models"
	"gigcal/internal/shared"
)

const defaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"

// calendarDate is an all-day date boundary of a calendar entry.
type calendarDate struct {
	Date string `json:"date"`
}

// calendarEntry is the insert request body: an all-day entry spanning the
// event's start and end dates.
type calendarEntry struct {
	End     calendarDate `json:"end"`
	Start   calendarDate `json:"start"`
	Summary string       `json:"summary"`
}

// calendarCreated is the subset of the insert response the service reads.
type calendarCreated struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// GoogleCalendarService implements [CalendarWriter] against the Calendar v3 API.
//
// Writes target the authenticated user's primary calendar.
type GoogleCalendarService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleCalendarService creates a calendar client with the given API key.
// An empty baseURL selects the production endpoint.
func NewGoogleCalendarService(apiKey, baseURL string, client *http.Client) *GoogleCalendarService {
	if baseURL == "" {
		baseURL = defaultCalendarBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &GoogleCalendarService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

func (s *GoogleCalendarService) Name() string {
	return "Google Calendar"
}

// Insert creates an all-day entry on the primary calendar and returns its ID.
//
// The request carries the bearer token in the Authorization header and the
// API key as a `key` query parameter. The response is awaited and inspected:
// a non-2xx status or unparseable body surfaces as shared.ErrUpstream instead
// of being silently dropped.
func (s *GoogleCalendarService) Insert(ctx context.Context, accessToken string, event models.Event) (string, error) {
	if accessToken == "" {
		return "", fmt.Errorf("%w: empty access token", shared.ErrAuthFailed)
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	fullURL := s.baseURL + "/calendars/primary/events?" + params.Encode()

	body := calendarEntry{
		End:     calendarDate{Date: event.EndDate},
		Start:   calendarDate{Date: event.StartDate},
		Summary: event.Name,
	}

	headers := map[string]string{"Authorization": "Bearer " + accessToken}
	resp, err := postJSON(ctx, s.httpClient, fullURL, body, headers)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}

	if !resp.OK() {
		return "", fmt.Errorf("%w: calendar status %d", shared.ErrUpstream, resp.StatusCode)
	}

	var created calendarCreated
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return "", fmt.Errorf("%w: malformed calendar payload: %v", shared.ErrUpstream, err)
	}

	return created.ID, nil
}
