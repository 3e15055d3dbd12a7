package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Generator produces new request ids.
type Generator func() string

// Option configures the middleware built by New.
type Option func(*config)

type config struct {
	header   string
	generate Generator
}

// WithHeader reads and writes the id under a different header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = name
		}
	}
}

// WithGenerator replaces the UUID generator.
func WithGenerator(g Generator) Option {
	return func(c *config) {
		if g != nil {
			c.generate = g
		}
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

// New builds the request id middleware.
func New(opts ...Option) func(http.Handler) http.Handler {
	c := &config{header: Header, generate: newUUID}
	for _, opt := range opts {
		opt(c)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(c.header)
			if !IsValid(id) {
				id = c.generate()
			}
			w.Header().Set(c.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// IsValid reports whether a client supplied id may be reused.
func IsValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}

func newUUID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
