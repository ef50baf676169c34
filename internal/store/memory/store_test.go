package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
)

func newTestRecord(shortID string) *domain.LinkRecord {
	now := time.Now().UTC()
	return &domain.LinkRecord{
		ShortID:    shortID,
		Recipient:  "+12345678900",
		Message:    "Hi there!",
		DeepLink:   "sms:+12345678900?body=Hi%20there!",
		ShortURL:   "https://x.test/s/" + shortID,
		ClickCount: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestStore_InsertAndFind(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	record := newTestRecord("abc123")
	require.NoError(t, s.Insert(ctx, record))

	found, err := s.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, record.ShortID, found.ShortID)
	assert.Equal(t, record.Recipient, found.Recipient)
	assert.Equal(t, record.DeepLink, found.DeepLink)
	assert.Equal(t, int64(0), found.ClickCount)
	assert.Nil(t, found.LastClickedAt)
}

func TestStore_Insert_Duplicate(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, newTestRecord("abc123")))

	err := s.Insert(ctx, newTestRecord("abc123"))
	assert.ErrorIs(t, err, store.ErrDuplicateShortID)

	// The original record is untouched
	count, err := s.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_Exists(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	exists, err := s.Exists(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Insert(ctx, newTestRecord("abc123")))

	exists, err = s.Exists(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_FindByShortID_NotFound(t *testing.T) {
	s := New()
	defer s.Close()

	found, err := s.FindByShortID(context.Background(), "doesnotexist")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, found)
}

func TestStore_FindByShortID_ReturnsCopy(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, newTestRecord("abc123")))

	first, err := s.FindByShortID(ctx, "abc123")
	require.NoError(t, err)

	// Mutating the returned record must not affect stored state
	first.ClickCount = 999
	first.Message = "tampered"

	second, err := s.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.ClickCount)
	assert.Equal(t, "Hi there!", second.Message)
}

func TestStore_IncrementClick(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	record := newTestRecord("abc123")
	require.NoError(t, s.Insert(ctx, record))

	clickedAt := time.Now().UTC()
	updated, err := s.IncrementClick(ctx, "abc123", clickedAt)
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.ClickCount)
	require.NotNil(t, updated.LastClickedAt)
	assert.Equal(t, clickedAt, *updated.LastClickedAt)
	assert.Equal(t, clickedAt, updated.UpdatedAt)
	assert.True(t, !updated.LastClickedAt.Before(updated.CreatedAt))
}

func TestStore_IncrementClick_NotFound(t *testing.T) {
	s := New()
	defer s.Close()

	updated, err := s.IncrementClick(context.Background(), "doesnotexist", time.Now().UTC())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, updated)

	// A missed resolve must not create state
	count, err := s.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStore_IncrementClick_Concurrent(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, newTestRecord("abc123")))

	const clicks = 100
	var wg sync.WaitGroup
	wg.Add(clicks)

	for i := 0; i < clicks; i++ {
		go func() {
			defer wg.Done()
			_, err := s.IncrementClick(ctx, "abc123", time.Now().UTC())
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	found, err := s.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(clicks), found.ClickCount)
}

func TestStore_Insert_Concurrent(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	const inserts = 50
	var wg sync.WaitGroup
	wg.Add(inserts)

	for i := 0; i < inserts; i++ {
		go func(i int) {
			defer wg.Done()
			err := s.Insert(ctx, newTestRecord(fmt.Sprintf("id%04d", i)))
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	count, err := s.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(inserts), count)
}

func TestStore_Insert_ConcurrentSameID(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	wg.Add(attempts)

	successes := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if err := s.Insert(ctx, newTestRecord("contended")); err == nil {
				successes <- struct{}{}
			}
		}()
	}

	wg.Wait()
	close(successes)

	// Exactly one concurrent insert of the same short id may win
	assert.Len(t, successes, 1)
}

func TestStore_CancelledContext(t *testing.T) {
	s := New()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Exists(ctx, "abc123")
	assert.ErrorIs(t, err, context.Canceled)

	err = s.Insert(ctx, newTestRecord("abc123"))
	assert.ErrorIs(t, err, context.Canceled)
}
