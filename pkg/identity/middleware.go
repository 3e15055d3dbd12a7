package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/async"
	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/cookie"
	"github.com/mbuzz/mbuzz-go/pkg/events"
	"github.com/mbuzz/mbuzz-go/pkg/fingerprint"
	"github.com/mbuzz/mbuzz-go/pkg/identifier"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/pathfilter"
	"github.com/mbuzz/mbuzz-go/pkg/reqcontext"
	"github.com/mbuzz/mbuzz-go/pkg/sessionid"
)

// Cookie names and lifetimes in seconds.
const (
	VisitorCookie = "_mbuzz_vid"
	SessionCookie = "_mbuzz_sid"
	VisitorMaxAge = 63072000
	SessionMaxAge = 1800
)

// SessionCreator announces new sessions to the API.
// events.Service implements it.
type SessionCreator interface {
	CreateSession(ctx context.Context, opts events.SessionOptions) bool
}

// Middleware resolves identity for inbound requests.
type Middleware struct {
	enabled    bool
	filter     *pathfilter.Filter
	sessions   SessionCreator
	dispatcher *async.Dispatcher
	cookies    *cookie.Manager
	clientIP   *clientip.Resolver
	sessionIDs *sessionid.Resolver

	trustForwardedProto bool
	now        func() time.Time
	log        *slog.Logger
}

// New creates a Middleware. A nil sessions skips session-creation calls but
// still resolves identifiers and sets cookies.
func New(cfg config.Config, sessions SessionCreator, opts ...Option) *Middleware {
	m := &Middleware{
		enabled:  cfg.Enabled,
		filter:   pathfilter.NewFromConfig(cfg),
		sessions: sessions,
		cookies:  cookie.New(),
		clientIP: clientip.New(),
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dispatcher == nil {
		m.dispatcher = async.NewDispatcher(async.WithLogger(m.log))
	}
	m.sessionIDs = sessionid.NewResolver(sessionid.WithClock(m.now))
	return m
}

// Dispatcher returns the dispatcher running session-creation calls.
func (m *Middleware) Dispatcher() *async.Dispatcher {
	return m.dispatcher
}

// Handler wraps next with identity resolution.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled || m.filter.ShouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, m.resolve(w, r))
	})
}

// resolve computes identity, sets cookies, schedules session creation and
// returns r with the identity attached.
func (m *Middleware) resolve(w http.ResponseWriter, r *http.Request) *http.Request {
	ip, ok := clientip.FromContext(r.Context())
	if !ok {
		ip = m.clientIP.Resolve(r)
	}
	ua := r.UserAgent()

	id := Identity{Fingerprint: fingerprint.Connection(ip, ua)}
	visitorKnown := false
	if v := m.readCookie(r, VisitorCookie); v != "" {
		id.VisitorID, visitorKnown = v, true
	} else {
		id.VisitorID, id.NewVisitor = identifier.Generate(), true
	}

	if s := m.readCookie(r, SessionCookie); s != "" {
		id.SessionID = s
	} else {
		sid, mode := m.sessionIDs.Resolve(sessionid.Input{
			VisitorID:    id.VisitorID,
			VisitorKnown: visitorKnown,
			ClientIP:     ip,
			UserAgent:    ua,
		})
		id.SessionID, id.NewSession = sid, true
		m.log.DebugContext(r.Context(), "mbuzz session derived",
			slog.String("mode", mode.String()),
			slog.String("fingerprint", id.Fingerprint),
		)
	}

	secure := m.IsSecure(r)
	m.setCookie(w, r, VisitorCookie, id.VisitorID, VisitorMaxAge, secure)
	m.setCookie(w, r, SessionCookie, id.SessionID, SessionMaxAge, secure)

	url := m.RequestURL(r)
	referrer := r.Referer()

	ctx := WithContext(r.Context(), id)
	ctx = reqcontext.WithContext(ctx, reqcontext.New(reqcontext.Options{
		VisitorID: id.VisitorID,
		SessionID: id.SessionID,
		URL:       url,
		Referrer:  referrer,
	}))

	if id.NewSession && m.sessions != nil {
		opts := events.SessionOptions{
			VisitorID: id.VisitorID,
			SessionID: id.SessionID,
			URL:       url,
			Referrer:  referrer,
			StartedAt: m.now(),
		}
		m.dispatcher.Go(ctx, "mbuzz.create_session", func(ctx context.Context) error {
			if !m.sessions.CreateSession(ctx, opts) {
				return ErrSessionNotCreated
			}
			return nil
		})
	}

	return r.WithContext(ctx)
}

func (m *Middleware) readCookie(r *http.Request, name string) string {
	v, err := m.cookies.Get(r, name)
	if err != nil || !identifier.IsValid(v) {
		return ""
	}
	return v
}

func (m *Middleware) setCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int, secure bool) {
	err := m.cookies.Set(w, name, value,
		cookie.WithMaxAge(maxAge),
		cookie.WithSecure(secure),
	)
	if err != nil {
		m.log.WarnContext(r.Context(), "mbuzz cookie not set",
			slog.String("cookie", name),
			logger.Error(err),
		)
	}
}

// IsSecure reports whether r arrived over HTTPS. X-Forwarded-Proto is only
// consulted when the middleware was built with WithForwardedProto.
func (m *Middleware) IsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if !m.trustForwardedProto {
		return false
	}
	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}

// RequestURL reconstructs the absolute URL the client requested.
func (m *Middleware) RequestURL(r *http.Request) string {
	scheme := "http"
	if m.IsSecure(r) {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host + r.URL.RequestURI()
}
