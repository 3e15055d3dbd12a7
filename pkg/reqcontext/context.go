package reqcontext

import (
	"context"
	"log/slog"
)

type requestContextKey struct{}

// WithContext returns a child of ctx in which rc is the current request context.
// A nil rc makes the child report absence even if ctx carries a value.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the current request context, if any.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	if ctx == nil {
		return nil, false
	}
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	if !ok || rc == nil {
		return nil, false
	}
	return rc, true
}

// Run calls fn with a context in which rc is current and returns fn's error
// unchanged. Panics in fn propagate to the caller.
func Run(ctx context.Context, rc *RequestContext, fn func(context.Context) error) error {
	return fn(WithContext(ctx, rc))
}

// RunValue is Run for callbacks that produce a result.
func RunValue[T any](ctx context.Context, rc *RequestContext, fn func(context.Context) (T, error)) (T, error) {
	return fn(WithContext(ctx, rc))
}

// VisitorID returns the current visitor identifier or "".
func VisitorID(ctx context.Context) string {
	if rc, ok := FromContext(ctx); ok {
		return rc.visitorID
	}
	return ""
}

// SessionID returns the current session identifier or "".
func SessionID(ctx context.Context) string {
	if rc, ok := FromContext(ctx); ok {
		return rc.sessionID
	}
	return ""
}

// UserID returns the current user identifier or "".
func UserID(ctx context.Context) string {
	if rc, ok := FromContext(ctx); ok {
		return rc.userID
	}
	return ""
}

// WithUserID returns a child of ctx whose request context carries userID.
// Without a current request context ctx is returned unchanged.
func WithUserID(ctx context.Context, userID string) context.Context {
	rc, ok := FromContext(ctx)
	if !ok {
		return ctx
	}
	return WithContext(ctx, rc.WithUserID(userID))
}

// Enrich applies the current request context to custom properties.
func Enrich(ctx context.Context, custom map[string]any) map[string]any {
	rc, _ := FromContext(ctx)
	return rc.Enrich(custom)
}

// LoggerExtractor returns a logger.ContextExtractor adding the current
// visitor and session identifiers to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		rc, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("mbuzz",
			slog.String("visitor_id", rc.visitorID),
			slog.String("session_id", rc.sessionID),
		), true
	}
}
