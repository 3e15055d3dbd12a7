package logger

import (
	"log/slog"
	"time"
)

// Error creates an "error" attribute, or an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting package under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Path records an API or request path under "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// StatusCode records an HTTP status under "status".
func StatusCode(code int) slog.Attr {
	return slog.Int("status", code)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID records the request correlation identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
