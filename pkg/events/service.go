package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/delivery"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// API paths relative to the configured base URL.
const (
	PathEvents      = "/events"
	PathConversions = "/conversions"
	PathIdentify    = "/identify"
	PathSessions    = "/sessions"
)

type eventsResponse struct {
	Events []struct {
		ID string `json:"id"`
	} `json:"events"`
}

type conversionResponse struct {
	Conversion struct {
		ID string `json:"id"`
	} `json:"conversion"`
	Attribution map[string]any `json:"attribution"`
}

// Service sends tracking calls through a delivery client.
// Every method reports failure as a negative outcome and never returns an error.
type Service struct {
	client *delivery.Client
	log    *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for rejected input.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source for payload timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service over client.
func NewService(client *delivery.Client, opts ...ServiceOption) *Service {
	s := &Service{
		client: client,
		log:    logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track records an event. The result carries the id assigned by the API.
func (s *Service) Track(ctx context.Context, o TrackOptions) (TrackResult, bool) {
	if err := ValidateTrack(o); err != nil {
		s.rejected(ctx, PathEvents, err)
		return TrackResult{}, false
	}

	resp, ok := delivery.PostWithResponse[eventsResponse](ctx, s.client, PathEvents, BuildTrack(o, s.now()))
	if !ok || len(resp.Events) == 0 || resp.Events[0].ID == "" {
		return TrackResult{}, false
	}

	return TrackResult{
		EventID:   resp.Events[0].ID,
		EventType: o.EventType,
		VisitorID: o.VisitorID,
		SessionID: o.SessionID,
	}, true
}

// Conversion records a conversion and returns the API's attribution data.
func (s *Service) Conversion(ctx context.Context, o ConversionOptions) (ConversionResult, bool) {
	if err := ValidateConversion(o); err != nil {
		s.rejected(ctx, PathConversions, err)
		return ConversionResult{}, false
	}

	resp, ok := delivery.PostWithResponse[conversionResponse](ctx, s.client, PathConversions, BuildConversion(o, s.now()))
	if !ok || resp.Conversion.ID == "" {
		return ConversionResult{}, false
	}

	return ConversionResult{
		ConversionID: resp.Conversion.ID,
		Attribution:  resp.Attribution,
	}, true
}

// Identify links a user id and traits to a visitor.
func (s *Service) Identify(ctx context.Context, o IdentifyOptions) bool {
	if err := ValidateIdentify(o); err != nil {
		s.rejected(ctx, PathIdentify, err)
		return false
	}
	return s.client.Post(ctx, PathIdentify, BuildIdentify(o, s.now()))
}

// CreateSession announces a new session.
func (s *Service) CreateSession(ctx context.Context, o SessionOptions) bool {
	if err := ValidateSession(o); err != nil {
		s.rejected(ctx, PathSessions, err)
		return false
	}
	return s.client.Post(ctx, PathSessions, BuildSession(o, s.now()))
}

func (s *Service) rejected(ctx context.Context, path string, err error) {
	s.log.DebugContext(ctx, "mbuzz call rejected",
		slog.String("path", path),
		logger.Error(err),
	)
}
