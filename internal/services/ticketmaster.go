// Ticketmaster Discovery API implementation of [EventSearcher]
//
// Response types based on https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/
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

const defaultDiscoveryBaseURL = "https://app.ticketmaster.com/discovery/v2"

// discoveryDate represents a single date boundary within an event.
type discoveryDate struct {
	LocalDate string `json:"localDate"`
}

type discoveryDates struct {
	Start discoveryDate `json:"start"`
	End   discoveryDate `json:"end"`
}

type discoveryVenue struct {
	Name string `json:"name"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

// DiscoveryEvent represents an event record within the Discovery response envelope.
type DiscoveryEvent struct {
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Dates    discoveryDates `json:"dates"`
	Embedded struct {
		Venues []discoveryVenue `json:"venues"`
	} `json:"_embedded"`
}

// discoveryEnvelope is the top-level Discovery search response.
type discoveryEnvelope struct {
	Embedded struct {
		Events []DiscoveryEvent `json:"events"`
	} `json:"_embedded"`
}

// TicketmasterService implements [EventSearcher] against the Discovery API.
type TicketmasterService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTicketmasterService creates a Discovery client with the given API key.
// An empty baseURL selects the production endpoint.
func NewTicketmasterService(apiKey, baseURL string, client *http.Client) *TicketmasterService {
	if baseURL == "" {
		baseURL = defaultDiscoveryBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TicketmasterService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

func (s *TicketmasterService) Name() string {
	return "Ticketmaster"
}

// Search queries the Discovery events endpoint by keyword.
//
// The query carries the fixed parameters the service expects: spellcheck
// enabled, country pinned to US, and the caller's API key. The full body is
// buffered before parsing. Zero embedded events map to shared.ErrNoEvents;
// non-2xx statuses and unparseable payloads map to shared.ErrUpstream.
func (s *TicketmasterService) Search(ctx context.Context, keyword string) ([]models.Event, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("includeSpellcheck", "yes")
	params.Set("apikey", s.apiKey)
	params.Set("countryCode", "US")

	resp, err := getBuffered(ctx, s.httpClient, s.baseURL+"/events?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: discovery status %d", shared.ErrUpstream, resp.StatusCode)
	}

	var envelope discoveryEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed discovery payload: %v", shared.ErrUpstream, err)
	}

	if len(envelope.Embedded.Events) == 0 {
		return nil, shared.ErrNoEvents
	}

	events := make([]models.Event, 0, len(envelope.Embedded.Events))
	for _, de := range envelope.Embedded.Events {
		event := models.Event{
			Name:      de.Name,
			StartDate: de.Dates.Start.LocalDate,
			EndDate:   de.Dates.End.LocalDate,
			URL:       de.URL,
		}
		if len(de.Embedded.Venues) > 0 {
			event.Venue = de.Embedded.Venues[0].Name
			event.City = de.Embedded.Venues[0].City.Name
		}
		events = append(events, event)
	}

	return events, nil
}
