package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomToken returns n random bytes hex encoded, so 2*n characters. It backs
// opaque refresh tokens.
func RandomToken(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("random token: negative size %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Wipe zeroes a password buffer once it has been sent.
func Wipe(b []byte) {
	clear(b)
}
