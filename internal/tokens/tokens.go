// Package tokens issues the one-time tokens mailed for account verification
// and password resets.
package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Size is the number of random bytes in a token.
const Size = 20

// Lifetime is how long an issued token stays valid.
const Lifetime = time.Hour

// New returns a hex-encoded token read from the system CSPRNG.
func New() (string, error) {
	buf := make([]byte, Size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ExpiresAt returns the expiry of a token issued at now.
func ExpiresAt(now time.Time) time.Time {
	return now.Add(Lifetime)
}

