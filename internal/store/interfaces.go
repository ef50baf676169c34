package store

import (
	"context"
	"errors"
	"time"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record exists for the given short ID.
	ErrNotFound = errors.New("link not found")

	// ErrDuplicateShortID is returned when an insert collides with an
	// existing short ID.
	ErrDuplicateShortID = errors.New("short id already exists")
)

// LinkStore defines the interface for link record persistence
type LinkStore interface {
	// Exists checks whether a record with the given short ID exists
	Exists(ctx context.Context, shortID string) (bool, error)

	// Insert atomically persists a new record, returning ErrDuplicateShortID
	// if the short ID is already taken
	Insert(ctx context.Context, record *domain.LinkRecord) error

	// FindByShortID retrieves a record by its short ID
	FindByShortID(ctx context.Context, shortID string) (*domain.LinkRecord, error)

	// IncrementClick atomically bumps the click count and sets the updated
	// and last-clicked timestamps, returning the updated record
	IncrementClick(ctx context.Context, shortID string, clickedAt time.Time) (*domain.LinkRecord, error)

	// CountAll returns the total number of stored records
	CountAll(ctx context.Context) (int64, error)

	// Close closes the store
	Close() error
}
