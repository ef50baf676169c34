package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DefaultByteLength is the number of random bytes per token. Six bytes give
// roughly 48 bits of entropy, which makes accidental collisions negligible
// at any realistic record volume while keeping the encoded token at eight
// URL-safe characters.
const DefaultByteLength = 6

// Generator defines the interface for producing short identifiers
type Generator interface {
	// NewShortID generates a new URL-safe short identifier
	NewShortID() (string, error)
}

// RandomGenerator produces short identifiers from a cryptographically
// secure random source. Tokens carry no issuance-order information, so
// identifiers cannot be guessed from earlier ones.
type RandomGenerator struct {
	byteLength int
}

// NewRandomGenerator creates a generator emitting tokens of the default length
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{byteLength: DefaultByteLength}
}

// NewRandomGeneratorWithLength creates a generator emitting tokens of the
// given raw byte length
func NewRandomGeneratorWithLength(byteLength int) (*RandomGenerator, error) {
	if byteLength <= 0 {
		return nil, fmt.Errorf("token byte length must be positive, got: %d", byteLength)
	}
	return &RandomGenerator{byteLength: byteLength}, nil
}

// NewShortID generates a new URL-safe short identifier
func (g *RandomGenerator) NewShortID() (string, error) {
	buf := make([]byte, g.byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Ensure RandomGenerator implements the interface
var _ Generator = (*RandomGenerator)(nil)
