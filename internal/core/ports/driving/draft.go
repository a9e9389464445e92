package driving

import (
	"context"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// DraftService manages contract drafts.
type DraftService interface {
	// Create persists a new draft with an empty outline.
	Create(ctx context.Context, providerKey, title, subtitle string) (*domain.Draft, error)

	// Get retrieves a draft by key.
	Get(ctx context.Context, key string) (*domain.Draft, error)

	// List returns all drafts.
	List(ctx context.Context) ([]domain.Draft, error)

	// Delete removes a draft.
	Delete(ctx context.Context, key string) error

	// SetPolicy replaces the outline policy used by editors opened
	// afterwards.
	SetPolicy(policy domain.OutlinePolicy)

	// Policy returns the outline policy used by new editors.
	Policy() domain.OutlinePolicy

	// New starts an editor for a draft that has never been saved.
	New(providerKey, title, subtitle string) DraftEditor

	// Open loads a draft into an editor.
	Open(ctx context.Context, key string) (DraftEditor, error)

	// Save exports the editor and persists it, creating the draft on
	// first save and updating it afterwards.
	Save(ctx context.Context, editor DraftEditor) (*domain.Draft, error)
}

// Autosaver periodically persists open editors.
type Autosaver interface {
	// Track adds an editor to the autosave set.
	Track(editor DraftEditor)

	// Untrack removes an editor from the autosave set.
	Untrack(editor DraftEditor)

	// SaveDirty saves every tracked editor with unsaved changes and
	// returns how many were saved.
	SaveDirty(ctx context.Context) (int, error)
}
