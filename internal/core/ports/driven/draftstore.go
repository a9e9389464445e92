package driven

import (
	"context"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// DraftStore is the Persistence API for contract drafts.
// Each call either fully applies or returns an error.
type DraftStore interface {
	// CreateDraft persists a new draft and assigns its key.
	// The command's ID is ignored.
	CreateDraft(ctx context.Context, cmd domain.DraftCommand) (*domain.Draft, error)

	// UpdateDraft replaces the content of an existing draft.
	// Returns domain.ErrNotFound if no draft has the key.
	UpdateDraft(ctx context.Context, key string, cmd domain.DraftCommand) (*domain.Draft, error)

	// GetDraft retrieves a draft by key.
	// Returns domain.ErrNotFound if no draft has the key.
	GetDraft(ctx context.Context, key string) (*domain.Draft, error)

	// ListDrafts returns all drafts, most recently updated first.
	ListDrafts(ctx context.Context) ([]domain.Draft, error)

	// DeleteDraft removes a draft.
	DeleteDraft(ctx context.Context, key string) error
}
