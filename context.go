package mbuzz

import (
	"context"

	"github.com/mbuzz/mbuzz-go/pkg/identifier"
	"github.com/mbuzz/mbuzz-go/pkg/reqcontext"
)

type (
	RequestContext        = reqcontext.RequestContext
	RequestContextOptions = reqcontext.Options
)

// NewRequestContext creates an identity scope for use with Run or WithContext.
func NewRequestContext(opts RequestContextOptions) *RequestContext {
	return reqcontext.New(opts)
}

// WithContext returns a copy of ctx carrying rc.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return reqcontext.WithContext(ctx, rc)
}

// Run calls fn with a context in which rc is the current request context.
func Run(ctx context.Context, rc *RequestContext, fn func(context.Context) error) error {
	return reqcontext.Run(ctx, rc, fn)
}

// VisitorID returns the current visitor id, or "" outside a request context.
func VisitorID(ctx context.Context) string { return reqcontext.VisitorID(ctx) }

// SessionID returns the current session id, or "" outside a request context.
func SessionID(ctx context.Context) string { return reqcontext.SessionID(ctx) }

// UserID returns the current user id, or "" when none was set.
func UserID(ctx context.Context) string { return reqcontext.UserID(ctx) }

// WithUserID returns a copy of ctx whose request context carries userID.
// Events tracked with the returned context are attributed to the user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return reqcontext.WithUserID(ctx, userID)
}

// GenerateID returns a new random 64-character hex identifier.
func GenerateID() string { return identifier.Generate() }
