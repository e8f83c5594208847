package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"gigcal/internal/models"
	"gigcal/internal/services"
	"gigcal/internal/shared"
)

// Pipeline orchestrates the sequential search-to-calendar chain.
//
// Begin captures the searched event and hands back the authorization URL;
// Finish consumes the callback by exchanging the code and inserting the
// calendar entry. Both halves are correlated by the flow's state token.
type Pipeline struct {
	oauth    *oauth2.Config
	calendar services.CalendarWriter
	history  models.Repository[*models.Insertion]
	flows    *FlowStore
	logger   *log.Logger
}

// PipelineOpts contains dependencies for creating a Pipeline.
type PipelineOpts struct {
	OAuth    *oauth2.Config
	Calendar services.CalendarWriter
	History  models.Repository[*models.Insertion] // optional; nil disables history
	Flows    *FlowStore
	Logger   *log.Logger
}

// NewPipeline creates a Pipeline with the provided dependencies.
func NewPipeline(opts PipelineOpts) *Pipeline {
	if opts.Flows == nil {
		opts.Flows = NewFlowStore(0)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Pipeline{
		oauth:    opts.OAuth,
		calendar: opts.Calendar,
		history:  opts.History,
		flows:    opts.Flows,
		logger:   opts.Logger,
	}
}

// Begin registers a flow for the event and returns the authorization URL the
// browser should be redirected to. The URL carries client_id,
// response_type=code, redirect_uri, the calendar scope, and the flow's state
// token.
func (p *Pipeline) Begin(event models.Event) (*Flow, string) {
	flow := p.flows.Begin(event)
	authURL := p.oauth.AuthCodeURL(flow.ID)
	p.flows.MarkRedirected(flow.ID)

	p.logger.Info("authorization redirect issued", "event", event.Name, "flow", flow.ID)
	return flow, authURL
}

// Finish completes the pipeline for a callback: claims the flow, exchanges
// the authorization code for an access token, inserts the calendar entry, and
// records the insertion.
//
// Token responses carrying an `error` field instead of `access_token` surface
// through the exchange as shared.ErrExchangeFailed rather than propagating an
// undefined token downstream.
func (p *Pipeline) Finish(ctx context.Context, state, code string) (*models.Insertion, error) {
	flow, err := p.flows.Claim(state)
	if err != nil {
		return nil, err
	}

	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", shared.ErrAuthFailed)
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrExchangeFailed, err)
	}
	flow.State = StateExchanged

	calendarEventID, err := p.calendar.Insert(ctx, token.AccessToken, flow.Event)
	if err != nil {
		return nil, err
	}
	flow.State = StateCompleted

	insertion := models.NewInsertion(flow.Event, calendarEventID)
	if p.history != nil {
		if err := p.history.Create(insertion); err != nil {
			// The calendar entry exists; a failed audit row is not a
			// pipeline failure.
			p.logger.Warn("failed to record insertion", "error", err)
		}
	}

	p.logger.Info("pipeline completed", "event", flow.Event.Name, "calendar_event", calendarEventID)
	return insertion, nil
}
