// Package identity resolves visitor and session identifiers for inbound HTTP
// requests and keeps them in first-party cookies.
//
// For every tracked request the middleware:
//
//  1. Passes through untouched when tracking is disabled or the path is
//     filtered (health checks, static assets, the tracking API itself).
//  2. Reads the visitor id from the _mbuzz_vid cookie, or generates one.
//  3. Reads the session id from the _mbuzz_sid cookie, or derives one: from
//     the visitor id when it came from a cookie, otherwise from a fingerprint
//     of client IP and User-Agent, otherwise at random.
//  4. Attaches an Identity and a reqcontext.RequestContext to the request
//     context and refreshes both cookies.
//  5. When the session id is new, schedules a session-creation call on the
//     async dispatcher without waiting for it.
//
// Cookie values that are not 64 lowercase hex characters are treated as
// absent.
//
// Usage:
//
//	mw := identity.New(cfg, eventsService,
//	    identity.WithLogger(log),
//	    identity.WithDispatcher(dispatcher),
//	)
//	r.Use(mw.Handler)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    id, ok := identity.FromRequest(r)
//	    ...
//	}
package identity
