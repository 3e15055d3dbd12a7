package events

import "time"

// TrackOptions describes a named event.
// EventType and at least one of VisitorID or UserID are required.
type TrackOptions struct {
	VisitorID  string
	SessionID  string
	UserID     string
	EventType  string `validate:"present"`
	Properties map[string]any
}

// TrackResult is returned for an accepted event.
type TrackResult struct {
	EventID   string
	EventType string
	VisitorID string
	SessionID string
}

// ConversionOptions describes a conversion.
// ConversionType and at least one of EventID, VisitorID or UserID are required.
type ConversionOptions struct {
	EventID            string
	VisitorID          string
	UserID             string
	ConversionType     string `validate:"present"`
	Revenue            *float64
	Currency           string
	IsAcquisition      *bool
	InheritAcquisition *bool
	Properties         map[string]any
}

// ConversionResult is returned for an accepted conversion.
type ConversionResult struct {
	ConversionID string
	Attribution  map[string]any
}

// IdentifyOptions links a user to a visitor.
type IdentifyOptions struct {
	UserID    string `validate:"present"`
	VisitorID string
	Traits    map[string]any
}

// SessionOptions announces a new session.
type SessionOptions struct {
	VisitorID string `validate:"present"`
	SessionID string `validate:"present"`
	URL       string `validate:"present"`
	Referrer  string
	StartedAt time.Time
}

// Float returns a pointer to v, for ConversionOptions.Revenue.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for the acquisition flags.
func Bool(v bool) *bool { return &v }
