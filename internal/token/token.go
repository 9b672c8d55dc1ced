// internal/token/token.go
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	// defaultBytes gives 128 bits of entropy for normal issuance.
	defaultBytes = 16
	// retryBytes gives 192 bits for the single retry after a collision.
	retryBytes = 24
)

// Issuer produces opaque tracking tokens.
type Issuer interface {
	Issue() (string, error)
	IssueLong() (string, error)
}

// Generator issues cryptographically random, URL-safe tokens.
type Generator struct{}

func (Generator) Issue() (string, error) {
	return random(defaultBytes)
}

// IssueLong issues a longer token, used once when Issue collided.
func (Generator) IssueLong() (string, error) {
	return random(retryBytes)
}

func random(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

var _ Issuer = Generator{}
