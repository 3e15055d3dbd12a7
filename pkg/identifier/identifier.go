// Package identifier generates the opaque visitor and session identifiers
// used by the tracking middleware.
//
// An identifier is 32 bytes read from crypto/rand and encoded as 64 lowercase
// hexadecimal characters. Generation has no failure mode a caller can act on:
// if the operating system entropy source is unavailable the process panics.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	// ByteLength is the amount of entropy in a fresh identifier.
	ByteLength = 32
	// Length is the encoded length of every identifier.
	Length = ByteLength * 2
)

// Generate returns a new random identifier.
func Generate() string {
	b := make([]byte, ByteLength)
	if _, err := rand.Read(b); err != nil {
		panic("identifier: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// IsValid reports whether id has the shape produced by Generate.
func IsValid(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
