package delivery

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Result describes a finished call. It is handed to the WithOnResult hook.
type Result struct {
	Path       string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Success reports whether the call produced a positive outcome.
func (r Result) Success() bool { return r.Err == nil }

// ResultHook observes finished calls. It must not block.
type ResultHook func(Result)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records every call on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracing wraps the transport with otelhttp so each call emits a client span.
func WithTracing() Option {
	return func(c *Client) {
		c.tracing = true
	}
}

// WithCircuitBreaker guards the network call with a breaker built from settings.
// A nil settings.ReadyToTrip keeps the gobreaker default of more than five consecutive failures.
func WithCircuitBreaker(settings gobreaker.Settings) Option {
	return func(c *Client) {
		if settings.Name == "" {
			settings.Name = "mbuzz-delivery"
		}
		c.breaker = gobreaker.NewCircuitBreaker[*response](settings)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithOnResult registers a hook called after every call, including short-circuited ones.
func WithOnResult(hook ResultHook) Option {
	return func(c *Client) {
		c.onResult = hook
	}
}
