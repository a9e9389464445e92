package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
)

// draftStore implements driven.DraftStore.
type draftStore struct {
	store *Store
	now   func() time.Time
}

var _ driven.DraftStore = (*draftStore)(nil)

func newDraftStore(s *Store) *draftStore {
	return &draftStore{store: s, now: time.Now}
}

// CreateDraft inserts a new draft under a generated key.
func (s *draftStore) CreateDraft(ctx context.Context, cmd domain.DraftCommand) (*domain.Draft, error) {
	sections, err := marshalSections(cmd.Sections)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString()
	now := formatTime(s.now())
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO drafts (key, provider_key, title, subtitle, sections, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
	`, key, cmd.ProviderKey, cmd.Title, cmd.Subtitle, sections, now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting draft: %w", err)
	}

	return s.GetDraft(ctx, key)
}

// UpdateDraft replaces the content of an existing draft and bumps its version.
func (s *draftStore) UpdateDraft(ctx context.Context, key string, cmd domain.DraftCommand) (*domain.Draft, error) {
	sections, err := marshalSections(cmd.Sections)
	if err != nil {
		return nil, err
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE drafts SET
			provider_key = ?,
			title = ?,
			subtitle = ?,
			sections = ?,
			version = version + 1,
			updated_at = ?
		WHERE key = ?
	`, cmd.ProviderKey, cmd.Title, cmd.Subtitle, sections, formatTime(s.now()), key)
	if err != nil {
		return nil, fmt.Errorf("updating draft: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating draft: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}

	return s.GetDraft(ctx, key)
}

// GetDraft retrieves a draft by key.
func (s *draftStore) GetDraft(ctx context.Context, key string) (*domain.Draft, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT key, provider_key, title, subtitle, sections, version, created_at, updated_at
		FROM drafts WHERE key = ?
	`, key)
	return scanDraft(row)
}

// ListDrafts returns all drafts, most recently updated first.
func (s *draftStore) ListDrafts(ctx context.Context) ([]domain.Draft, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT key, provider_key, title, subtitle, sections, version, created_at, updated_at
		FROM drafts
		ORDER BY updated_at DESC, key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	drafts := []domain.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

// DeleteDraft removes a draft. Deleting a missing draft is not an error.
func (s *draftStore) DeleteDraft(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM drafts WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*domain.Draft, error) {
	var d domain.Draft
	var sections, createdAt, updatedAt string

	if err := row.Scan(&d.Key, &d.ProviderKey, &d.Title, &d.Subtitle,
		&sections, &d.Version, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}

	d.Sections = []domain.Section{}
	if sections != "" && sections != jsonNull {
		if err := json.Unmarshal([]byte(sections), &d.Sections); err != nil {
			return nil, fmt.Errorf("decoding sections of draft %s: %w", d.Key, err)
		}
	}
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)

	return &d, nil
}

func marshalSections(sections []domain.Section) (string, error) {
	if sections == nil {
		sections = []domain.Section{}
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("encoding sections: %w", err)
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime returns the zero time for unparsable values.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
