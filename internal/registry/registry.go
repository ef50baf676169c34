package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
	"github.com/joshdurbin/sms-link-shortener/internal/token"
)

// linkRegistry implements LinkRegistry interface
type linkRegistry struct {
	store     store.LinkStore
	generator token.Generator
	config    Config
}

// NewLinkRegistry creates a new link registry backed by the given store and
// identifier generator
func NewLinkRegistry(linkStore store.LinkStore, generator token.Generator, config Config) LinkRegistry {
	return &linkRegistry{
		store:     linkStore,
		generator: generator,
		config:    config,
	}
}

// Create builds and persists a new link record
func (r *linkRegistry) Create(ctx context.Context, phone, message, baseURL string) (*domain.LinkRecord, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, &ValidationError{Field: "phone", Reason: "must not be empty"}
	}

	trimmedMessage := strings.TrimSpace(message)
	if trimmedMessage == "" {
		return nil, &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	if strings.TrimSpace(baseURL) == "" {
		return nil, &ValidationError{Field: "baseUrl", Reason: "must not be empty"}
	}

	recipient := NormalizePhone(phone)
	if digitCount(recipient) < r.config.MinPhoneDigits {
		return nil, &ValidationError{
			Field:  "phone",
			Reason: fmt.Sprintf("must contain at least %d digits", r.config.MinPhoneDigits),
		}
	}

	for attempt := 0; attempt < r.config.MaxGenerateAttempts; attempt++ {
		shortID, err := r.generator.NewShortID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate short id: %w", err)
		}

		exists, err := r.store.Exists(ctx, shortID)
		if err != nil {
			return nil, &StoreError{Op: "exists", Err: err}
		}
		if exists {
			continue
		}

		now := time.Now().UTC()
		record := &domain.LinkRecord{
			ShortID:    shortID,
			Recipient:  recipient,
			Message:    trimmedMessage,
			DeepLink:   BuildDeepLink(recipient, trimmedMessage),
			ShortURL:   BuildShortURL(baseURL, shortID),
			ClickCount: 0,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err = r.store.Insert(ctx, record)
		if err == nil {
			return record, nil
		}

		// Lost the race between the existence check and the insert.
		// Regenerate rather than fail; the caller never sees the collision.
		if errors.Is(err, store.ErrDuplicateShortID) {
			continue
		}

		return nil, &StoreError{Op: "insert", Err: err}
	}

	return nil, ErrGenerationExhausted
}

// Resolve atomically records a click and returns the sms: deep link
func (r *linkRegistry) Resolve(ctx context.Context, shortID string) (string, error) {
	record, err := r.store.IncrementClick(ctx, shortID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("short id %q: %w", shortID, store.ErrNotFound)
		}
		return "", &StoreError{Op: "increment", Err: err}
	}

	return record.DeepLink, nil
}

// GetAnalytics returns a read-only snapshot of a link record
func (r *linkRegistry) GetAnalytics(ctx context.Context, shortID string) (*domain.LinkRecord, error) {
	record, err := r.store.FindByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("short id %q: %w", shortID, store.ErrNotFound)
		}
		return nil, &StoreError{Op: "find", Err: err}
	}

	return record, nil
}

// Ensure linkRegistry implements LinkRegistry interface
var _ LinkRegistry = (*linkRegistry)(nil)
