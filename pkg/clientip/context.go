package clientip

import (
	"context"
	"net/http"
)

type clientIPContextKey struct{}

// WithContext stores the resolved address in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// FromContext returns the address stored by WithContext or Middleware.
// The address may be empty when resolution found nothing valid.
func FromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}

// Middleware resolves the client address once per request and stores it in
// the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithContext(r.Context(), res.Resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
