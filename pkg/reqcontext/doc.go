// Package reqcontext carries the resolved tracking identity of one inbound
// request to arbitrarily deep and concurrent call chains.
//
// A RequestContext is an immutable value holding the visitor identifier, the
// session identifier and optionally a user identifier, the request URL and
// the referrer. It is propagated through context.Context: a value stored with
// WithContext or Run is visible to every read performed on the derived
// context, including in goroutines that receive it, and to nothing else.
// Sibling scopes never observe each other's value and reads on a context
// without a value report absence instead of a default.
//
// # Usage
//
//	rc := reqcontext.New(reqcontext.Options{
//	    VisitorID: vid,
//	    SessionID: sid,
//	    URL:       "https://example.com/pricing",
//	})
//
//	err := reqcontext.Run(ctx, rc, func(ctx context.Context) error {
//	    props := reqcontext.Enrich(ctx, map[string]any{"plan": "pro"})
//	    return track(ctx, reqcontext.VisitorID(ctx), props)
//	})
//
// Nested Run calls shadow the outer value for their own extent only. Because
// the parent context is never modified, the outer value (or its absence) is
// what callers observe once Run returns, whether fn returned an error or
// panicked.
package reqcontext
