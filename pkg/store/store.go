// Package store persists generated drafts and pipeline settings in SQLite.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"trendscribe/pkg/domain"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when the requested draft does not exist
var ErrNotFound = errors.New("draft not found")

// Store wraps the database connection for draft and setting access
type Store struct {
	db *sqlx.DB
}

// Config represents database configuration
type Config struct {
	DSN string
}

// New opens the database, applies pragmas and initializes the schema
func New(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:trendscribe.db?cache=shared&mode=rwc"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// draftSQL represents a draft for SQL operations
type draftSQL struct {
	ID              int64       `db:"id"`
	Topic           string      `db:"topic"`
	Title           string      `db:"title"`
	Body            string      `db:"body"`
	Category        string      `db:"category"`
	Keywords        keywordsSQL `db:"keywords"`
	MetaDescription string      `db:"meta_description"`
	AIGenerated     bool        `db:"ai_generated"`
	PostID          int64       `db:"post_id"`
	PostLink        string      `db:"post_link"`
	CreatedAt       time.Time   `db:"created_at"`
}

// keywordsSQL is a JSON array of keyword strings for SQL operations
type keywordsSQL []string

// Value implements driver.Valuer for database storage
func (k keywordsSQL) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	return json.Marshal(k)
}

// Scan implements sql.Scanner for database retrieval
func (k *keywordsSQL) Scan(value interface{}) error {
	if value == nil {
		*k = keywordsSQL{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*k = keywordsSQL{}
		return nil
	}
	return json.Unmarshal(data, k)
}

func toDomainDraft(d *draftSQL) *domain.Draft {
	return &domain.Draft{
		ID:              d.ID,
		Topic:           d.Topic,
		Title:           d.Title,
		Body:            d.Body,
		Category:        d.Category,
		Keywords:        d.Keywords,
		MetaDescription: d.MetaDescription,
		AIGenerated:     d.AIGenerated,
		PostID:          d.PostID,
		PostLink:        d.PostLink,
		CreatedAt:       d.CreatedAt,
	}
}

// CreateDraft inserts a new draft and sets its ID
func (s *Store) CreateDraft(ctx context.Context, draft *domain.Draft) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO drafts (
				topic, title, body, category, keywords,
				meta_description, ai_generated, post_id, post_link
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		result, err := s.db.ExecContext(ctx, query,
			draft.Topic, draft.Title, draft.Body, draft.Category, keywordsSQL(draft.Keywords),
			draft.MetaDescription, draft.AIGenerated, draft.PostID, draft.PostLink)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create draft: %w", err)}
		}

		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		draft.ID = id
		return nil
	})
}

// GetDraft retrieves a draft by ID
func (s *Store) GetDraft(ctx context.Context, id int64) (*domain.Draft, error) {
	var d draftSQL
	err := s.db.GetContext(ctx, &d, "SELECT * FROM drafts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return toDomainDraft(&d), nil
}

// ListDrafts returns the most recent drafts, newest first
func (s *Store) ListDrafts(ctx context.Context, limit int) ([]*domain.Draft, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []draftSQL
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM drafts ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	drafts := make([]*domain.Draft, len(rows))
	for i := range rows {
		drafts[i] = toDomainDraft(&rows[i])
	}
	return drafts, nil
}

// UpdateDraftPublished records the CMS post after a successful publish
func (s *Store) UpdateDraftPublished(ctx context.Context, id, postID int64, link string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		result, err := s.db.ExecContext(ctx,
			"UPDATE drafts SET post_id = ?, post_link = ? WHERE id = ?", postID, link, id)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update draft published: %w", err)}
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: ErrNotFound}
		}
		return nil
	})
}

// GetSetting retrieves a setting value, empty string if not set
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
