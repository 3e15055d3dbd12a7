package events

import "time"

// TimestampLayout is the wire format for timestamps: UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DefaultCurrency is used when a conversion names no currency.
const DefaultCurrency = "USD"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type (
	// TrackPayload is the body of POST /events.
	TrackPayload struct {
		Events []TrackEvent `json:"events"`
	}

	TrackEvent struct {
		VisitorID  string         `json:"visitor_id,omitempty"`
		SessionID  string         `json:"session_id,omitempty"`
		UserID     string         `json:"user_id,omitempty"`
		EventType  string         `json:"event_type"`
		Properties map[string]any `json:"properties"`
		Timestamp  string         `json:"timestamp"`
	}

	// ConversionPayload is the body of POST /conversions.
	ConversionPayload struct {
		Conversion Conversion `json:"conversion"`
	}

	Conversion struct {
		EventID            string         `json:"event_id,omitempty"`
		VisitorID          string         `json:"visitor_id,omitempty"`
		UserID             string         `json:"user_id,omitempty"`
		ConversionType     string         `json:"conversion_type"`
		Revenue            *float64       `json:"revenue,omitempty"`
		Currency           string         `json:"currency"`
		IsAcquisition      *bool          `json:"is_acquisition,omitempty"`
		InheritAcquisition *bool          `json:"inherit_acquisition,omitempty"`
		Properties         map[string]any `json:"properties"`
		Timestamp          string         `json:"timestamp"`
	}

	// IdentifyPayload is the body of POST /identify.
	IdentifyPayload struct {
		UserID    string         `json:"user_id"`
		VisitorID string         `json:"visitor_id,omitempty"`
		Traits    map[string]any `json:"traits"`
		Timestamp string         `json:"timestamp"`
	}

	// SessionPayload is the body of POST /sessions.
	SessionPayload struct {
		Session Session `json:"session"`
	}

	Session struct {
		VisitorID string `json:"visitor_id"`
		SessionID string `json:"session_id"`
		URL       string `json:"url"`
		Referrer  string `json:"referrer,omitempty"`
		StartedAt string `json:"started_at"`
	}
)

// BuildTrack wraps a single event in the events envelope.
func BuildTrack(o TrackOptions, now time.Time) TrackPayload {
	return TrackPayload{Events: []TrackEvent{{
		VisitorID:  o.VisitorID,
		SessionID:  o.SessionID,
		UserID:     o.UserID,
		EventType:  o.EventType,
		Properties: orEmpty(o.Properties),
		Timestamp:  FormatTimestamp(now),
	}}}
}

// BuildConversion fills in the default currency.
func BuildConversion(o ConversionOptions, now time.Time) ConversionPayload {
	currency := o.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return ConversionPayload{Conversion: Conversion{
		EventID:            o.EventID,
		VisitorID:          o.VisitorID,
		UserID:             o.UserID,
		ConversionType:     o.ConversionType,
		Revenue:            o.Revenue,
		Currency:           currency,
		IsAcquisition:      o.IsAcquisition,
		InheritAcquisition: o.InheritAcquisition,
		Properties:         orEmpty(o.Properties),
		Timestamp:          FormatTimestamp(now),
	}}
}

func BuildIdentify(o IdentifyOptions, now time.Time) IdentifyPayload {
	return IdentifyPayload{
		UserID:    o.UserID,
		VisitorID: o.VisitorID,
		Traits:    orEmpty(o.Traits),
		Timestamp: FormatTimestamp(now),
	}
}

// BuildSession uses o.StartedAt when set and now otherwise.
func BuildSession(o SessionOptions, now time.Time) SessionPayload {
	started := o.StartedAt
	if started.IsZero() {
		started = now
	}
	return SessionPayload{Session: Session{
		VisitorID: o.VisitorID,
		SessionID: o.SessionID,
		URL:       o.URL,
		Referrer:  o.Referrer,
		StartedAt: FormatTimestamp(started),
	}}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
