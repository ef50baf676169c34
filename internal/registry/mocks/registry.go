package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
)

// LinkRegistry is a mock implementation of registry.LinkRegistry
type LinkRegistry struct {
	mock.Mock
}

// Create builds and persists a new link record
func (m *LinkRegistry) Create(ctx context.Context, phone, message, baseURL string) (*domain.LinkRecord, error) {
	args := m.Called(ctx, phone, message, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkRecord), args.Error(1)
}

// Resolve atomically records a click and returns the sms: deep link
func (m *LinkRegistry) Resolve(ctx context.Context, shortID string) (string, error) {
	args := m.Called(ctx, shortID)
	return args.String(0), args.Error(1)
}

// GetAnalytics returns a read-only snapshot of a link record
func (m *LinkRegistry) GetAnalytics(ctx context.Context, shortID string) (*domain.LinkRecord, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkRecord), args.Error(1)
}
