package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Length is the number of hex characters in a fingerprint.
const Length = 32

// Connection hashes the client IP and user agent into a 32-character hex string.
func Connection(clientIP, userAgent string) string {
	sum := sha256.Sum256([]byte(clientIP + "|" + userAgent))
	return hex.EncodeToString(sum[:Length/2])
}
