package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
)

// LinkStore is a mock implementation of store.LinkStore
type LinkStore struct {
	mock.Mock
}

// Exists checks whether a record with the given short ID exists
func (m *LinkStore) Exists(ctx context.Context, shortID string) (bool, error) {
	args := m.Called(ctx, shortID)
	return args.Bool(0), args.Error(1)
}

// Insert atomically persists a new record
func (m *LinkStore) Insert(ctx context.Context, record *domain.LinkRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// FindByShortID retrieves a record by its short ID
func (m *LinkStore) FindByShortID(ctx context.Context, shortID string) (*domain.LinkRecord, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkRecord), args.Error(1)
}

// IncrementClick atomically bumps the click count and timestamps
func (m *LinkStore) IncrementClick(ctx context.Context, shortID string, clickedAt time.Time) (*domain.LinkRecord, error) {
	args := m.Called(ctx, shortID, clickedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkRecord), args.Error(1)
}

// CountAll returns the total number of stored records
func (m *LinkStore) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Close closes the store
func (m *LinkStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
