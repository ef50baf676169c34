package memory

import (
	"context"
	"sync"
	"time"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
)

// Store implements store.LinkStore using in-memory storage
type Store struct {
	records map[string]*domain.LinkRecord
	mutex   sync.RWMutex
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		records: make(map[string]*domain.LinkRecord),
	}
}

// Exists checks whether a record with the given short ID exists
func (s *Store) Exists(ctx context.Context, shortID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, exists := s.records[shortID]
	return exists, nil
}

// Insert atomically persists a new record. The duplicate check and the
// write happen under a single lock acquisition so two concurrent inserts
// of the same short ID cannot both succeed.
func (s *Store) Insert(ctx context.Context, record *domain.LinkRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.records[record.ShortID]; exists {
		return store.ErrDuplicateShortID
	}

	// Store a copy to prevent external modification
	s.records[record.ShortID] = record.Clone()
	return nil
}

// FindByShortID retrieves a record by its short ID
func (s *Store) FindByShortID(ctx context.Context, shortID string) (*domain.LinkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.records[shortID]
	if !exists {
		return nil, store.ErrNotFound
	}

	// Return a copy to prevent external modification
	return record.Clone(), nil
}

// IncrementClick atomically bumps the click count and sets the updated and
// last-clicked timestamps under a single lock acquisition
func (s *Store) IncrementClick(ctx context.Context, shortID string, clickedAt time.Time) (*domain.LinkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.records[shortID]
	if !exists {
		return nil, store.ErrNotFound
	}

	record.ClickCount++
	record.UpdatedAt = clickedAt
	record.LastClickedAt = &clickedAt

	return record.Clone(), nil
}

// CountAll returns the total number of stored records
func (s *Store) CountAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return int64(len(s.records)), nil
}

// Close closes the store
func (s *Store) Close() error {
	return nil
}

// Ensure Store implements the interface
var _ store.LinkStore = (*Store)(nil)
