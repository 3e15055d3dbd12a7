// Package cookie writes and reads the plain-value cookies that carry the
// visitor and session identifiers.
//
// A Manager holds default attributes (path "/", HttpOnly, SameSite=Lax) that
// every Set call starts from; per-call Option values override them without
// changing the defaults.
//
//	m := cookie.New(cookie.WithSecure(true))
//	m.Set(w, "_mbuzz_vid", vid, cookie.WithMaxAge(63072000))
//	vid, err := m.Get(r, "_mbuzz_vid") // ErrCookieNotFound when absent
package cookie
