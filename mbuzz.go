package mbuzz

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/mbuzz/mbuzz-go/pkg/async"
	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/delivery"
	"github.com/mbuzz/mbuzz-go/pkg/events"
	"github.com/mbuzz/mbuzz-go/pkg/identity"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/reqcontext"
)

// Version is the library version.
const Version = delivery.Version

type (
	TrackResult      = events.TrackResult
	ConversionResult = events.ConversionResult
	Identity         = identity.Identity
)

// ConversionOptions are the optional fields of a conversion. Identifiers left
// empty are taken from the current request context.
type ConversionOptions struct {
	EventID            string
	VisitorID          string
	UserID             string
	Revenue            *float64
	Currency           string
	IsAcquisition      *bool
	InheritAcquisition *bool
	Properties         map[string]any
}

// IdentifyOptions are the optional fields of an identify call.
type IdentifyOptions struct {
	VisitorID string
	Traits    map[string]any
}

// Client is the entry point for instrumenting a service.
// Safe for concurrent use.
type Client struct {
	cfg        config.Config
	log        *slog.Logger
	delivery   *delivery.Client
	events     *events.Service
	identity   *identity.Middleware
	dispatcher *async.Dispatcher
}

// New validates cfg and wires the tracking components.
// A configuration error is the only error a Client ever returns.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log
	if log == nil {
		log = defaultLogger(cfg)
	}
	log = log.With(logger.Component("mbuzz"))

	deliveryOpts := []delivery.Option{delivery.WithLogger(log)}
	if o.httpClient != nil {
		deliveryOpts = append(deliveryOpts, delivery.WithHTTPClient(o.httpClient))
	}
	if o.registerer != nil {
		deliveryOpts = append(deliveryOpts, delivery.WithMetrics(delivery.NewMetrics(o.registerer)))
	}
	if o.tracing {
		deliveryOpts = append(deliveryOpts, delivery.WithTracing())
	}
	if o.breaker != nil {
		deliveryOpts = append(deliveryOpts, delivery.WithCircuitBreaker(*o.breaker))
	}

	eventOpts := []events.ServiceOption{events.WithLogger(log)}
	identityOpts := []identity.Option{
		identity.WithLogger(log),
		identity.WithForwardedProto(o.forwardedProto),
	}
	if o.clock != nil {
		eventOpts = append(eventOpts, events.WithClock(o.clock))
		identityOpts = append(identityOpts, identity.WithClock(o.clock))
	}
	if o.clientIP != nil {
		identityOpts = append(identityOpts, identity.WithClientIP(o.clientIP))
	}

	dispatcher := async.NewDispatcher(async.WithLogger(log))
	identityOpts = append(identityOpts, identity.WithDispatcher(dispatcher))

	dc := delivery.New(cfg, deliveryOpts...)
	svc := events.NewService(dc, eventOpts...)

	return &Client{
		cfg:        cfg,
		log:        log,
		delivery:   dc,
		events:     svc,
		identity:   identity.New(cfg, svc, identityOpts...),
		dispatcher: dispatcher,
	}, nil
}

func defaultLogger(cfg config.Config) *slog.Logger {
	if !cfg.Debug {
		return logger.Discard()
	}
	return logger.New(
		logger.WithTextFormatter(),
		logger.WithDebug(true),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(reqcontext.LoggerExtractor()),
	)
}

// Config returns the configuration the client was built with.
func (c *Client) Config() config.Config { return c.cfg }

// Enabled reports whether tracking calls reach the network.
func (c *Client) Enabled() bool { return c.delivery.Enabled() }

// Middleware resolves visitor and session identity for every tracked request.
func (c *Client) Middleware(next http.Handler) http.Handler {
	return c.identity.Handler(next)
}

// Event tracks eventType for the identity in ctx. Properties are enriched
// with the request URL and referrer; explicit properties win.
func (c *Client) Event(ctx context.Context, eventType string, properties map[string]any) (TrackResult, bool) {
	return c.events.Track(ctx, events.TrackOptions{
		VisitorID:  reqcontext.VisitorID(ctx),
		SessionID:  reqcontext.SessionID(ctx),
		UserID:     reqcontext.UserID(ctx),
		EventType:  eventType,
		Properties: reqcontext.Enrich(ctx, properties),
	})
}

// Conversion records conversionType. Identifiers missing from opts are
// filled from ctx.
func (c *Client) Conversion(ctx context.Context, conversionType string, opts ConversionOptions) (ConversionResult, bool) {
	return c.events.Conversion(ctx, events.ConversionOptions{
		EventID:            opts.EventID,
		VisitorID:          firstNonEmpty(opts.VisitorID, reqcontext.VisitorID(ctx)),
		UserID:             firstNonEmpty(opts.UserID, reqcontext.UserID(ctx)),
		ConversionType:     conversionType,
		Revenue:            opts.Revenue,
		Currency:           opts.Currency,
		IsAcquisition:      opts.IsAcquisition,
		InheritAcquisition: opts.InheritAcquisition,
		Properties:         opts.Properties,
	})
}

// Identify links userID to the visitor in opts or, failing that, in ctx.
func (c *Client) Identify(ctx context.Context, userID string, opts IdentifyOptions) bool {
	return c.events.Identify(ctx, events.IdentifyOptions{
		UserID:    userID,
		VisitorID: firstNonEmpty(opts.VisitorID, reqcontext.VisitorID(ctx)),
		Traits:    opts.Traits,
	})
}

// Close waits for pending session-creation calls, bounded by ctx.
func (c *Client) Close(ctx context.Context) error {
	return c.dispatcher.Close(ctx)
}

// IdentityFromRequest returns the identity the middleware attached to r.
func IdentityFromRequest(r *http.Request) (Identity, bool) {
	return identity.FromRequest(r)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
