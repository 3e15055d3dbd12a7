// Package events builds, validates and sends the four tracking calls:
// events (Track), conversions (Conversion), identify (Identify) and
// sessions (CreateSession).
//
// Input is described by option structs. Validation uses go-playground/validator
// with a custom "present" rule (non-blank after trimming) and struct-level
// rules for the "at least one identifier" requirements. Invalid input yields a
// negative outcome without a network call.
//
// Builders produce the snake_case wire bodies expected by the API. Timestamps
// are UTC with millisecond precision, currency defaults to USD and absent
// optional fields are omitted.
//
// Usage:
//
//	svc := events.NewService(deliveryClient, events.WithLogger(log))
//
//	res, ok := svc.Track(ctx, events.TrackOptions{
//	    VisitorID: vid,
//	    EventType: "signup",
//	})
package events
