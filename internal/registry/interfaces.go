package registry

import (
	"context"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
)

// LinkRegistry defines the interface for short SMS link operations
type LinkRegistry interface {
	// Create builds and persists a new link record for the given phone and
	// message, with a short URL rooted at the caller-supplied base URL
	Create(ctx context.Context, phone, message, baseURL string) (*domain.LinkRecord, error)

	// Resolve looks up a short ID, atomically records the click, and
	// returns the sms: deep link
	Resolve(ctx context.Context, shortID string) (string, error)

	// GetAnalytics returns a read-only snapshot of a link record without
	// mutating any tracking fields
	GetAnalytics(ctx context.Context, shortID string) (*domain.LinkRecord, error)
}

// Config holds registry policy values
type Config struct {
	// MinPhoneDigits is the minimum number of digits a normalized phone
	// number must contain
	MinPhoneDigits int `json:"min_phone_digits"`

	// MaxGenerateAttempts caps the generate-check-insert loop before
	// giving up with ErrGenerationExhausted
	MaxGenerateAttempts int `json:"max_generate_attempts"`
}

// DefaultConfig returns the default registry configuration
func DefaultConfig() Config {
	return Config{
		MinPhoneDigits:      10,
		MaxGenerateAttempts: 10,
	}
}
