package sessionid

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/fingerprint"
	"github.com/mbuzz/mbuzz-go/pkg/identifier"
)

// BucketSeconds is the width of one session time bucket.
const BucketSeconds int64 = 1800

// Length is the number of hex characters in a session identifier.
const Length = 64

// TimeBucket returns floor(ts / BucketSeconds). Negative timestamps are
// accepted as-is and still floored.
func TimeBucket(ts int64) int64 {
	b := ts / BucketSeconds
	if ts%BucketSeconds != 0 && ts < 0 {
		b--
	}
	return b
}

// Random returns a fresh random session identifier.
func Random() string {
	return identifier.Generate()
}

// Deterministic derives the session identifier of visitorID for the bucket
// containing ts (unix seconds).
func Deterministic(visitorID string, ts int64) string {
	return hashWithBucket(visitorID, ts)
}

// DeterministicNow is Deterministic at the current wall-clock time.
func DeterministicNow(visitorID string) string {
	return Deterministic(visitorID, time.Now().Unix())
}

// FromFingerprint derives the session identifier of an anonymous client from
// its IP address and User-Agent for the bucket containing ts.
func FromFingerprint(clientIP, userAgent string, ts int64) string {
	return hashWithBucket(fingerprint.Connection(clientIP, userAgent), ts)
}

// FromFingerprintNow is FromFingerprint at the current wall-clock time.
func FromFingerprintNow(clientIP, userAgent string) string {
	return FromFingerprint(clientIP, userAgent, time.Now().Unix())
}

func hashWithBucket(input string, ts int64) string {
	raw := input + "_" + strconv.FormatInt(TimeBucket(ts), 10)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:Length]
}
