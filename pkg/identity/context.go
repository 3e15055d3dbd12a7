package identity

import (
	"context"
	"net/http"
)

// Identity is what the middleware resolved for one request.
type Identity struct {
	VisitorID string
	SessionID string
	UserID    string

	// Fingerprint is the connection fingerprint of client IP and User-Agent.
	Fingerprint string

	// NewVisitor and NewSession report identifiers created in this request.
	NewVisitor bool
	NewSession bool
}

type identityContextKey struct{}

// WithContext returns a copy of ctx carrying id.
func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// FromContext returns the Identity attached by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// FromRequest is FromContext on r's context.
func FromRequest(r *http.Request) (Identity, bool) {
	return FromContext(r.Context())
}
