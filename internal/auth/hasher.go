// Package auth provides credential hashing, session tokens and the
// session-resolving HTTP middleware.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex-encoded SHA-256 digest of the
// plaintext. The digest is deterministic: it is written at signup and
// recomputed at login for the exact-match credential lookup.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
