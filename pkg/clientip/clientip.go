package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders is the header priority used by GetIP.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Resolver extracts client addresses using an ordered list of trusted headers.
// Safe for concurrent use.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders replaces the trusted header list. Passing no headers makes the
// resolver rely on RemoteAddr only.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = make([]string, 0, len(headers))
		for _, h := range headers {
			if h = strings.TrimSpace(h); h != "" {
				r.headers = append(r.headers, http.CanonicalHeaderKey(h))
			}
		}
	}
}

// New returns a Resolver using DefaultHeaders unless overridden.
func New(opts ...Option) *Resolver {
	r := &Resolver{headers: append([]string(nil), DefaultHeaders...)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = New()

// GetIP returns the client address using the default header priority.
func GetIP(r *http.Request) string {
	return defaultResolver.Resolve(r)
}

// Resolve returns the normalized client address or "" when none is valid.
func (res *Resolver) Resolve(r *http.Request) string {
	for _, name := range res.headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		// Forwarded-for style headers may carry a chain of hops.
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an address, returning "" if invalid.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
