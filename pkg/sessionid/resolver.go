package sessionid

import "time"

// Mode tells which derivation produced a session identifier.
type Mode int

const (
	ModeRandom Mode = iota
	ModeDeterministic
	ModeFingerprint
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeDeterministic:
		return "deterministic"
	case ModeFingerprint:
		return "fingerprint"
	default:
		return "unknown"
	}
}

// Input is what is known about the client when a session must be derived.
type Input struct {
	// VisitorID is the visitor identifier resolved for this request.
	VisitorID string
	// VisitorKnown is true when VisitorID came from a previous request's
	// cookie rather than being generated just now.
	VisitorKnown bool
	ClientIP     string
	UserAgent    string
}

// Resolver picks a derivation mode and applies it at the current time.
// The zero value uses time.Now.
type Resolver struct {
	now func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve derives a session identifier for in.
// A visitor identifier known from a prior request takes precedence over the
// connection fingerprint; a request with neither IP nor User-Agent gets a
// random identifier.
func (r *Resolver) Resolve(in Input) (string, Mode) {
	now := time.Now
	if r != nil && r.now != nil {
		now = r.now
	}
	ts := now().Unix()

	switch {
	case in.VisitorKnown && in.VisitorID != "":
		return Deterministic(in.VisitorID, ts), ModeDeterministic
	case in.ClientIP != "" || in.UserAgent != "":
		return FromFingerprint(in.ClientIP, in.UserAgent, ts), ModeFingerprint
	default:
		return Random(), ModeRandom
	}
}
