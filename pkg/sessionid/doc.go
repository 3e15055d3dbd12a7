// Package sessionid derives session identifiers.
//
// Three modes exist:
//
//   - Random: a fresh identifier from the identifier package, used when
//     nothing stable is known about the client.
//   - Deterministic: SHA-256 of visitorID + "_" + bucket, used when a visitor
//     identifier was already known from a previous request.
//   - Fingerprint: SHA-256 of fingerprint + "_" + bucket where fingerprint is
//     the 32-character connection fingerprint of client IP and User-Agent.
//
// The bucket is floor(unixSeconds / 1800). Within one bucket a stable input
// always maps to the same identifier, in every process, with no shared store;
// crossing a bucket boundary yields an unrelated identifier. This gives
// concurrent first requests from one client a common session and expires
// sessions without storage.
//
// The fingerprint mode hashes twice (fingerprint first, then bucket). Keep it
// that way: the differing intermediate construction is what keeps the two
// deterministic modes from producing the same identifier for coinciding
// literal inputs.
package sessionid
