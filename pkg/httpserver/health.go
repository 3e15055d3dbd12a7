package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Health returns a probe handler. Without checks it answers 200 "ALIVE".
// With checks it answers 200 "READY" when all pass and 503 "NOT_READY" otherwise.
func Health(log *slog.Logger, checks ...Check) http.HandlerFunc {
	log = logger.OrDiscard(log)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}
