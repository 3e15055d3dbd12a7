package mbuzz

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/mbuzz/mbuzz-go/pkg/clientip"
)

type options struct {
	log        *slog.Logger
	httpClient *http.Client
	registerer prometheus.Registerer
	tracing    bool
	breaker    *gobreaker.Settings
	clock      func() time.Time
	clientIP   *clientip.Resolver

	forwardedProto bool
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger shared by every component.
// Without it, a debug configuration logs text to stderr and any other
// configuration logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithHTTPClient sets the client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithMetrics registers delivery metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithTracing emits an OpenTelemetry client span per API call.
func WithTracing() Option {
	return func(o *options) {
		o.tracing = true
	}
}

// WithCircuitBreaker stops API calls while the API keeps failing.
func WithCircuitBreaker(settings gobreaker.Settings) Option {
	return func(o *options) {
		o.breaker = &settings
	}
}

// WithClock overrides the time source for session derivation and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithClientIP sets how the client address is read from requests.
func WithClientIP(res *clientip.Resolver) Option {
	return func(o *options) {
		o.clientIP = res
	}
}

// WithForwardedProto trusts X-Forwarded-Proto when deciding the Secure cookie
// flag and the tracked URL scheme. Use it only behind a proxy that sets the
// header itself.
func WithForwardedProto(trust bool) Option {
	return func(o *options) {
		o.forwardedProto = trust
	}
}
