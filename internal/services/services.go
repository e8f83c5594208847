// package services defines interfaces for the upstream HTTP APIs
//
// Ticketmaster Discovery (event search), Google Calendar (event insertion)
package services

import (
	"context"

	"gigcal/internal/models"
)

// EventSearcher is implemented by clients of the event discovery service.
type EventSearcher interface {
	// Search queries the discovery service by keyword and returns matching
	// events in upstream order. Returns shared.ErrNoEvents when the result
	// set is empty and shared.ErrUpstream on protocol failures.
	Search(ctx context.Context, keyword string) ([]models.Event, error)

	// Name returns the name of the service (e.g. "Ticketmaster")
	Name() string
}

// CalendarWriter is implemented by clients that can insert events into a
// remote calendar.
type CalendarWriter interface {
	// Insert creates a calendar entry for the event using the bearer token
	// and returns the created entry's ID. The call is awaited: the result
	// reflects the upstream response, never a fire-and-forget dispatch.
	Insert(ctx context.Context, accessToken string, event models.Event) (string, error)

	// Name returns the name of the service (e.g. "Google Calendar")
	Name() string
}
