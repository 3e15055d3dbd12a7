package identity

import (
	"log/slog"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/async"
	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/cookie"
	"github.com/mbuzz/mbuzz-go/pkg/pathfilter"
)

// Option configures a Middleware.
type Option func(*Middleware)

// WithDispatcher sets where session-creation calls run.
// Share one dispatcher with the rest of the client so Close drains everything.
func WithDispatcher(d *async.Dispatcher) Option {
	return func(m *Middleware) {
		if d != nil {
			m.dispatcher = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Middleware) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides the time used for session bucket derivation.
func WithClock(now func() time.Time) Option {
	return func(m *Middleware) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCookieManager replaces the cookie manager. Per-cookie max age and the
// secure flag are still set by the middleware.
func WithCookieManager(cm *cookie.Manager) Option {
	return func(m *Middleware) {
		if cm != nil {
			m.cookies = cm
		}
	}
}

// WithClientIP sets the resolver used for the connection fingerprint.
func WithClientIP(res *clientip.Resolver) Option {
	return func(m *Middleware) {
		if res != nil {
			m.clientIP = res
		}
	}
}

// WithForwardedProto makes the middleware trust X-Forwarded-Proto for the
// Secure cookie flag and the reconstructed URL scheme. Enable it only behind a
// proxy that overwrites the header.
func WithForwardedProto(trust bool) Option {
	return func(m *Middleware) {
		m.trustForwardedProto = trust
	}
}

// WithFilter replaces the path filter built from the configuration.
func WithFilter(f *pathfilter.Filter) Option {
	return func(m *Middleware) {
		if f != nil {
			m.filter = f
		}
	}
}
