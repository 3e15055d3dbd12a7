package events

import "errors"

var (
	ErrInvalidTrack      = errors.New("events.invalid_track")
	ErrInvalidConversion = errors.New("events.invalid_conversion")
	ErrInvalidIdentify   = errors.New("events.invalid_identify")
	ErrInvalidSession    = errors.New("events.invalid_session")
)
