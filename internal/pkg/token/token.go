package token

import (
	"crypto/rand"
	"encoding/hex"
)

// New generates a cryptographically random 64-character hex token
// (256 bits of entropy). Used for password-reset, email-verification
// and magic-link tokens. Panics if the system entropy source fails,
// which is not a recoverable condition.
func New() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("token: entropy source unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
