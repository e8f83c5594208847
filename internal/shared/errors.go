package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authorization errors
	ErrAuthFailed     = fmt.Errorf("authorization failed")
	ErrExchangeFailed = fmt.Errorf("token exchange failed")
	ErrUnknownFlow    = fmt.Errorf("unknown or expired authorization flow")
	ErrFlowConsumed   = fmt.Errorf("authorization flow already completed")

	// Upstream service errors
	ErrUpstream = fmt.Errorf("upstream request failed")
	ErrNoEvents = fmt.Errorf("no events found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
