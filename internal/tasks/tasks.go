// package tasks implements the search-to-calendar pipeline.
//
// The core abstraction is Pipeline, which orchestrates the linear chain of
// upstream calls: event lookup, authorization redirect, token exchange, and
// calendar insertion. Each browser round-trip is tracked as a Flow keyed by
// the OAuth state token, replacing any process-wide mutable event record so
// concurrent users cannot corrupt each other's in-flight event.
package tasks

import (
	"fmt"
	"sync"
	"time"

	"gigcal/internal/models"
	"gigcal/internal/shared"
)

// FlowState identifies where a flow sits in the pipeline.
type FlowState int

const (
	StateIdle FlowState = iota
	StateSearched
	StateRedirected
	StateExchanged
	StateCompleted
)

// String returns the state name for logging.
func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearched:
		return "searched"
	case StateRedirected:
		return "redirected"
	case StateExchanged:
		return "exchanged"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Flow is one user's in-flight authorization round-trip.
//
// The ID doubles as the OAuth state parameter; the event captured at search
// time travels with the flow instead of through shared globals.
type Flow struct {
	ID        string
	Event     models.Event
	State     FlowState
	StartedAt time.Time
}

// FlowStore tracks pending flows between the search redirect and the
// authorization callback.
//
// Claims are one-shot: a replayed callback (browser back button) finds no
// flow and cannot produce a duplicate calendar entry.
type FlowStore struct {
	mu      sync.Mutex
	flows   map[string]*Flow
	claimed map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

// DefaultFlowTTL bounds how long a user can sit on the consent screen.
const DefaultFlowTTL = 10 * time.Minute

// NewFlowStore creates a FlowStore. A non-positive ttl selects [DefaultFlowTTL].
func NewFlowStore(ttl time.Duration) *FlowStore {
	if ttl <= 0 {
		ttl = DefaultFlowTTL
	}
	return &FlowStore{
		flows:   make(map[string]*Flow),
		claimed: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Begin registers a new flow for the event and returns it with a generated
// state token. Expired flows are swept opportunistically.
func (s *FlowStore) Begin(event models.Event) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()

	flow := &Flow{
		ID:        shared.GenerateID(),
		Event:     event,
		State:     StateSearched,
		StartedAt: s.now(),
	}
	s.flows[flow.ID] = flow
	return flow
}

// MarkRedirected records that the authorization redirect was issued.
func (s *FlowStore) MarkRedirected(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if flow, ok := s.flows[id]; ok {
		flow.State = StateRedirected
	}
}

// Claim removes and returns the flow for the given state token.
//
// Returns shared.ErrFlowConsumed when the token was already claimed (a
// replayed callback), and shared.ErrUnknownFlow when it was never issued or
// the flow expired before the callback arrived.
func (s *FlowStore) Claim(id string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[id]
	if !ok {
		if _, done := s.claimed[id]; done {
			return nil, shared.ErrFlowConsumed
		}
		return nil, shared.ErrUnknownFlow
	}
	delete(s.flows, id)

	if s.now().Sub(flow.StartedAt) > s.ttl {
		return nil, shared.ErrUnknownFlow
	}

	s.claimed[id] = s.now()
	return flow, nil
}

// Len reports the number of pending flows.
func (s *FlowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

// sweep drops expired flows and stale claim markers. Caller must hold the lock.
func (s *FlowStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	for id, flow := range s.flows {
		if flow.StartedAt.Before(cutoff) {
			delete(s.flows, id)
		}
	}
	for id, claimedAt := range s.claimed {
		if claimedAt.Before(cutoff) {
			delete(s.claimed, id)
		}
	}
}
