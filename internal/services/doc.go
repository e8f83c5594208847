// Package services implements clients for the two upstream HTTP APIs the
// pipeline chains together.
//
// # Buffered responses
//
// Both clients accumulate the full response body before parsing ([UpstreamResponse]).
// There is no streaming decode; memory use is bounded by upstream response size.
//
// # Error contract
//
// Protocol failures (non-2xx statuses, malformed JSON) are classified as
// shared.ErrUpstream so callers can map them to a local 502 instead of a
// crash. An empty discovery result set is shared.ErrNoEvents, which callers
// treat as an input error.
//
// # Clients
//
//   - [TicketmasterService]: keyword search against the Discovery v2 events
//     endpoint with fixed query parameters (spellcheck, US country code, API key).
//   - [GoogleCalendarService]: awaited insert of an all-day entry on the
//     primary calendar, bearer-authorized with an additional API-key query
//     parameter.
package services
