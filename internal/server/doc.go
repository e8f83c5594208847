// Package server provides HTTP routing, middleware, and the local surface of
// the search-to-calendar pipeline.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method
// filtering and a fallback handler for unmatched paths.
//
// # Local surface
//
//	GET /            → static search form
//	GET /search      → event lookup (param "Event"), 302 to the authorization endpoint
//	GET /authorized  → OAuth2 callback: token exchange + calendar insertion, body "Done"
//	GET <other>      → static not-found page, status 200 (preserved behavior)
//
// # Callback handling
//
// The callback is correlated with the originating search through the OAuth2
// state parameter, which keys a pending flow in tasks.FlowStore. Claims are
// one-shot, so a replayed callback cannot insert a duplicate calendar entry.
// Consent denials (an `error` query parameter) short-circuit to the failure
// page instead of attempting an exchange with an empty code.
package server
