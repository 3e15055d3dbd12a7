package reqcontext

import "maps"

// Options are the fields of a RequestContext. Empty optional fields are
// treated as absent.
type Options struct {
	VisitorID string
	SessionID string
	UserID    string
	URL       string
	Referrer  string
}

// RequestContext is the identity and request metadata of one request.
// It has no setters; derive modified copies with the With* methods.
type RequestContext struct {
	visitorID string
	sessionID string
	userID    string
	url       string
	referrer  string
}

func New(opts Options) *RequestContext {
	return &RequestContext{
		visitorID: opts.VisitorID,
		sessionID: opts.SessionID,
		userID:    opts.UserID,
		url:       opts.URL,
		referrer:  opts.Referrer,
	}
}

func (rc *RequestContext) VisitorID() string { return rc.visitorID }
func (rc *RequestContext) SessionID() string { return rc.sessionID }
func (rc *RequestContext) UserID() string    { return rc.userID }
func (rc *RequestContext) URL() string       { return rc.url }
func (rc *RequestContext) Referrer() string  { return rc.referrer }

// Options returns the fields of rc.
func (rc *RequestContext) Options() Options {
	return Options{
		VisitorID: rc.visitorID,
		SessionID: rc.sessionID,
		UserID:    rc.userID,
		URL:       rc.url,
		Referrer:  rc.referrer,
	}
}

// WithUserID returns a copy of rc carrying userID.
func (rc *RequestContext) WithUserID(userID string) *RequestContext {
	cp := *rc
	cp.userID = userID
	return &cp
}

// Enrich merges request metadata into event properties.
// The result starts with "url" and "referrer" when present, then custom is
// overlaid so caller keys always win. custom is not modified. Calling Enrich
// on a nil RequestContext returns a copy of custom.
func (rc *RequestContext) Enrich(custom map[string]any) map[string]any {
	out := make(map[string]any, len(custom)+2)
	if rc != nil {
		if rc.url != "" {
			out["url"] = rc.url
		}
		if rc.referrer != "" {
			out["referrer"] = rc.referrer
		}
	}
	maps.Copy(out, custom)
	return out
}
