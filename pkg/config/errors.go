package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrMissingAPIKey is returned when no credential is configured.
	ErrMissingAPIKey = errors.New("config.api_key_required")

	// ErrInvalidAPIURL is returned when the base endpoint is not an absolute http(s) URL.
	ErrInvalidAPIURL = errors.New("config.invalid_api_url")

	// ErrInvalidTimeout is returned for non-positive request timeouts.
	ErrInvalidTimeout = errors.New("config.invalid_timeout")
)
