package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
	storeMocks "github.com/joshdurbin/sms-link-shortener/internal/store/mocks"
)

func TestLinkRegistry_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		phone       string
		message     string
		baseURL     string
		setupMocks  func(*storeMocks.LinkStore)
		wantErr     bool
		wantValErr  bool
		errContains string
	}{
		{
			name:    "successful creation",
			phone:   "+1 (234) 567-8900",
			message: "Hi there!",
			baseURL: "https://x.test",
			setupMocks: func(linkStore *storeMocks.LinkStore) {
				linkStore.On("Exists", ctx, "test0001").Return(false, nil)
				linkStore.On("Insert", ctx, mock.AnythingOfType("*domain.LinkRecord")).Return(nil)
			},
			wantErr: false,
		},
		{
			name:       "empty phone",
			phone:      "",
			message:    "Hi there!",
			baseURL:    "https://x.test",
			setupMocks: func(linkStore *storeMocks.LinkStore) {},
			wantErr:    true,
			wantValErr: true,
		},
		{
			name:       "empty message",
			phone:      "+12345678900",
			message:    "",
			baseURL:    "https://x.test",
			setupMocks: func(linkStore *storeMocks.LinkStore) {},
			wantErr:    true,
			wantValErr: true,
		},
		{
			name:       "whitespace-only message",
			phone:      "+12345678900",
			message:    "   \t  ",
			baseURL:    "https://x.test",
			setupMocks: func(linkStore *storeMocks.LinkStore) {},
			wantErr:    true,
			wantValErr: true,
		},
		{
			name:        "too few digits",
			phone:       "+1 (23) 45",
			message:     "Hi there!",
			baseURL:     "https://x.test",
			setupMocks:  func(linkStore *storeMocks.LinkStore) {},
			wantErr:     true,
			wantValErr:  true,
			errContains: "at least 10 digits",
		},
		{
			name:       "empty base URL",
			phone:      "+12345678900",
			message:    "Hi there!",
			baseURL:    "",
			setupMocks: func(linkStore *storeMocks.LinkStore) {},
			wantErr:    true,
			wantValErr: true,
		},
		{
			name:    "store error on existence check",
			phone:   "+12345678900",
			message: "Hi there!",
			baseURL: "https://x.test",
			setupMocks: func(linkStore *storeMocks.LinkStore) {
				linkStore.On("Exists", ctx, "test0001").Return(false, assert.AnError)
			},
			wantErr:     true,
			errContains: "store exists failed",
		},
		{
			name:    "store error on insert",
			phone:   "+12345678900",
			message: "Hi there!",
			baseURL: "https://x.test",
			setupMocks: func(linkStore *storeMocks.LinkStore) {
				linkStore.On("Exists", ctx, "test0001").Return(false, nil)
				linkStore.On("Insert", ctx, mock.AnythingOfType("*domain.LinkRecord")).Return(assert.AnError)
			},
			wantErr:     true,
			errContains: "store insert failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linkStore := &storeMocks.LinkStore{}
			tt.setupMocks(linkStore)

			reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

			record, err := reg.Create(ctx, tt.phone, tt.message, tt.baseURL)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantValErr {
					var validationErr *ValidationError
					assert.True(t, errors.As(err, &validationErr), "expected a ValidationError, got %T", err)
				}
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				assert.Nil(t, record)
			} else {
				require.NoError(t, err)
				require.NotNil(t, record)
				assert.NotEmpty(t, record.ShortID)
				assert.Equal(t, int64(0), record.ClickCount)
				assert.Nil(t, record.LastClickedAt)
				assert.Equal(t, record.CreatedAt, record.UpdatedAt)
				assert.WithinDuration(t, time.Now().UTC(), record.CreatedAt, time.Second)
			}

			linkStore.AssertExpectations(t)
		})
	}
}

func TestLinkRegistry_Create_NormalizesInputs(t *testing.T) {
	ctx := context.Background()

	linkStore := &storeMocks.LinkStore{}
	linkStore.On("Exists", ctx, "test0001").Return(false, nil)
	linkStore.On("Insert", ctx, mock.AnythingOfType("*domain.LinkRecord")).Return(nil)

	reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

	record, err := reg.Create(ctx, "+1 (234) 567-8900", "  Hi there!  ", "https://x.test")
	require.NoError(t, err)

	assert.Equal(t, "+12345678900", record.Recipient)
	assert.Equal(t, "Hi there!", record.Message)
	assert.Equal(t, "sms:+12345678900?body=Hi%20there!", record.DeepLink)
	assert.Equal(t, "https://x.test/s/test0001", record.ShortURL)

	linkStore.AssertExpectations(t)
}

func TestLinkRegistry_Create_RetriesOnCollision(t *testing.T) {
	ctx := context.Background()

	linkStore := &storeMocks.LinkStore{}
	// First candidate already exists, second is free
	linkStore.On("Exists", ctx, "test0001").Return(true, nil)
	linkStore.On("Exists", ctx, "test0002").Return(false, nil)
	linkStore.On("Insert", ctx, mock.AnythingOfType("*domain.LinkRecord")).Return(nil)

	reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

	record, err := reg.Create(ctx, "+12345678900", "Hi there!", "https://x.test")
	require.NoError(t, err)
	assert.Equal(t, "test0002", record.ShortID)

	linkStore.AssertExpectations(t)
}

func TestLinkRegistry_Create_RetriesOnDuplicateInsert(t *testing.T) {
	ctx := context.Background()

	linkStore := &storeMocks.LinkStore{}
	// Existence check misses but the insert races with a concurrent
	// creation of the same short id; the registry regenerates
	linkStore.On("Exists", ctx, "test0001").Return(false, nil)
	linkStore.On("Exists", ctx, "test0002").Return(false, nil)
	linkStore.On("Insert", ctx, mock.MatchedBy(func(r *domain.LinkRecord) bool {
		return r.ShortID == "test0001"
	})).Return(store.ErrDuplicateShortID)
	linkStore.On("Insert", ctx, mock.MatchedBy(func(r *domain.LinkRecord) bool {
		return r.ShortID == "test0002"
	})).Return(nil)

	reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

	record, err := reg.Create(ctx, "+12345678900", "Hi there!", "https://x.test")
	require.NoError(t, err)
	assert.Equal(t, "test0002", record.ShortID)

	linkStore.AssertExpectations(t)
}

func TestLinkRegistry_Create_ExhaustsGenerationAttempts(t *testing.T) {
	ctx := context.Background()

	linkStore := &storeMocks.LinkStore{}
	linkStore.On("Exists", ctx, mock.AnythingOfType("string")).Return(true, nil)

	config := DefaultConfig()
	config.MaxGenerateAttempts = 3

	reg := NewLinkRegistry(linkStore, NewTestGenerator(), config)

	record, err := reg.Create(ctx, "+12345678900", "Hi there!", "https://x.test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.Nil(t, record)

	linkStore.AssertNumberOfCalls(t, "Exists", 3)
	linkStore.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLinkRegistry_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("existing link", func(t *testing.T) {
		clickedAt := time.Now().UTC()
		linkStore := &storeMocks.LinkStore{}
		linkStore.On("IncrementClick", ctx, "abc123", mock.AnythingOfType("time.Time")).
			Return(&domain.LinkRecord{
				ShortID:       "abc123",
				Recipient:     "+12345678900",
				DeepLink:      "sms:+12345678900?body=Hi%20there!",
				ClickCount:    1,
				LastClickedAt: &clickedAt,
			}, nil)

		reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

		deepLink, err := reg.Resolve(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "sms:+12345678900?body=Hi%20there!", deepLink)

		linkStore.AssertExpectations(t)
	})

	t.Run("unknown short id", func(t *testing.T) {
		linkStore := &storeMocks.LinkStore{}
		linkStore.On("IncrementClick", ctx, "doesnotexist", mock.AnythingOfType("time.Time")).
			Return(nil, store.ErrNotFound)

		reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

		deepLink, err := reg.Resolve(ctx, "doesnotexist")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Empty(t, deepLink)

		linkStore.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		linkStore := &storeMocks.LinkStore{}
		linkStore.On("IncrementClick", ctx, "abc123", mock.AnythingOfType("time.Time")).
			Return(nil, assert.AnError)

		reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

		_, err := reg.Resolve(ctx, "abc123")
		require.Error(t, err)

		var storeErr *StoreError
		assert.True(t, errors.As(err, &storeErr), "expected a StoreError, got %T", err)

		linkStore.AssertExpectations(t)
	})
}

func TestLinkRegistry_GetAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("existing link", func(t *testing.T) {
		lastClicked := time.Now().UTC()
		expected := &domain.LinkRecord{
			ShortID:       "abc123",
			Recipient:     "+12345678900",
			Message:       "Hi there!",
			DeepLink:      "sms:+12345678900?body=Hi%20there!",
			ShortURL:      "https://x.test/s/abc123",
			ClickCount:    7,
			LastClickedAt: &lastClicked,
		}

		linkStore := &storeMocks.LinkStore{}
		linkStore.On("FindByShortID", ctx, "abc123").Return(expected, nil)

		reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

		record, err := reg.GetAnalytics(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, expected, record)

		// Analytics is a pure read: the click counter must not move
		linkStore.AssertNotCalled(t, "IncrementClick", mock.Anything, mock.Anything, mock.Anything)
		linkStore.AssertExpectations(t)
	})

	t.Run("unknown short id", func(t *testing.T) {
		linkStore := &storeMocks.LinkStore{}
		linkStore.On("FindByShortID", ctx, "doesnotexist").Return(nil, store.ErrNotFound)

		reg := NewLinkRegistry(linkStore, NewTestGenerator(), DefaultConfig())

		record, err := reg.GetAnalytics(ctx, "doesnotexist")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Nil(t, record)

		linkStore.AssertExpectations(t)
	})
}
