// Package fingerprint derives a connection fingerprint from a client address and
// User-Agent.
//
// A connection fingerprint is the SHA-256 hash of the client IP address and
// the User-Agent string joined by "|", truncated to its first 16 bytes and
// hex encoded (32 characters). It is never persisted; the session resolver
// uses it as a stand-in stable input for anonymous visitors that do not yet
// carry a visitor cookie.
//
// # Usage
//
//	fp := fingerprint.Connection(clientip.GetIP(r), r.UserAgent())
//
// Connection is pure and never fails.
package fingerprint
