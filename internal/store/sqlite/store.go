package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
)

const recordColumns = "short_id, recipient, message, deep_link, short_url, click_count, created_at, updated_at, last_clicked_at"

// Store implements store.LinkStore using SQLite
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store
func New(databasePath string) (*Store, error) {
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better performance under concurrent access
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Wait briefly on contended writes instead of failing with SQLITE_BUSY
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{db: db}

	if err := s.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Exists checks whether a record with the given short ID exists
func (s *Store) Exists(ctx context.Context, shortID string) (bool, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM links WHERE short_id = ?", shortID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check link existence: %w", err)
	}
	return count > 0, nil
}

// Insert atomically persists a new record. The unique index on short_id
// rejects concurrent inserts of the same identifier.
func (s *Store) Insert(ctx context.Context, record *domain.LinkRecord) error {
	var lastClickedAt sql.NullTime
	if record.LastClickedAt != nil {
		lastClickedAt = sql.NullTime{Time: *record.LastClickedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO links ("+recordColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ShortID,
		record.Recipient,
		record.Message,
		record.DeepLink,
		record.ShortURL,
		record.ClickCount,
		record.CreatedAt,
		record.UpdatedAt,
		lastClickedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return store.ErrDuplicateShortID
		}
		return fmt.Errorf("failed to insert link: %w", err)
	}

	return nil
}

// FindByShortID retrieves a record by its short ID
func (s *Store) FindByShortID(ctx context.Context, shortID string) (*domain.LinkRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM links WHERE short_id = ?", shortID)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return record, nil
}

// IncrementClick bumps the click count and sets both timestamps in a single
// UPDATE statement so concurrent resolves never lose increments
func (s *Store) IncrementClick(ctx context.Context, shortID string, clickedAt time.Time) (*domain.LinkRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE links
		 SET click_count = click_count + 1, updated_at = ?, last_clicked_at = ?
		 WHERE short_id = ?
		 RETURNING `+recordColumns,
		clickedAt, clickedAt, shortID)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment click count: %w", err)
	}

	return record, nil
}

// CountAll returns the total number of stored records
func (s *Store) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}

// Close closes the store connection
func (s *Store) Close() error {
	return s.db.Close()
}

// scanRecord reads a full link row into a domain record
func scanRecord(row *sql.Row) (*domain.LinkRecord, error) {
	var record domain.LinkRecord
	var lastClickedAt sql.NullTime

	err := row.Scan(
		&record.ShortID,
		&record.Recipient,
		&record.Message,
		&record.DeepLink,
		&record.ShortURL,
		&record.ClickCount,
		&record.CreatedAt,
		&record.UpdatedAt,
		&lastClickedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastClickedAt.Valid {
		t := lastClickedAt.Time
		record.LastClickedAt = &t
	}

	return &record, nil
}

// Ensure Store implements the interface
var _ store.LinkStore = (*Store)(nil)
