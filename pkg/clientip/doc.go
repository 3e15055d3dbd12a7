// Package clientip resolves the originating client address of an
// *http.Request when the application sits behind reverse proxies.
//
// The tracking middleware uses the address, together with the User-Agent
// header, as the stable input for connection fingerprints of visitors that
// have not yet received a visitor cookie.
//
// A Resolver inspects an ordered list of proxy headers and returns the first
// valid address it finds, falling back to RemoteAddr. The default order is:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (first valid entry of the comma-separated list)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Deployments that are not fronted by those proxies should restrict the list
// with WithHeaders, because any client can send the headers itself.
//
// # Usage
//
//	ip := clientip.GetIP(r)
//
//	resolver := clientip.New(clientip.WithHeaders("X-Real-IP"))
//	ip = resolver.Resolve(r)
//
//	// Resolve once per request; the tracking middleware reads it back.
//	r.Use(resolver.Middleware)
//	ip, ok := clientip.FromContext(r.Context())
//
// Resolution never fails; an empty string means no valid address was found.
package clientip
