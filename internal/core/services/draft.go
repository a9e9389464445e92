package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftService manages drafts through the Persistence API.
type DraftService struct {
	store    driven.DraftStore
	renderer driven.RichTextRenderer

	mu     sync.RWMutex
	policy domain.OutlinePolicy
}

// NewDraftService creates a new draft service. renderer may be nil.
func NewDraftService(
	store driven.DraftStore,
	policy domain.OutlinePolicy,
	renderer driven.RichTextRenderer,
) *DraftService {
	return &DraftService{
		store:    store,
		policy:   policy,
		renderer: renderer,
	}
}

// Create persists a new draft with an empty outline.
func (s *DraftService) Create(ctx context.Context, providerKey, title, subtitle string) (*domain.Draft, error) {
	if providerKey == "" {
		return nil, fmt.Errorf("%w: provider key is required", domain.ErrInvalidInput)
	}
	cmd := domain.CreateCommandFromModel(domain.DraftMeta{
		ProviderKey: providerKey,
		Title:       title,
		Subtitle:    subtitle,
	}, nil)
	draft, err := s.store.CreateDraft(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	logger.Info("created draft %s", draft.Key)
	return draft, nil
}

// Get retrieves a draft by key.
func (s *DraftService) Get(ctx context.Context, key string) (*domain.Draft, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: draft key is required", domain.ErrInvalidInput)
	}
	return s.store.GetDraft(ctx, key)
}

// List returns all drafts.
func (s *DraftService) List(ctx context.Context) ([]domain.Draft, error) {
	return s.store.ListDrafts(ctx)
}

// Delete removes a draft.
func (s *DraftService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: draft key is required", domain.ErrInvalidInput)
	}
	return s.store.DeleteDraft(ctx, key)
}

// SetPolicy replaces the outline policy. Editors opened earlier keep theirs.
func (s *DraftService) SetPolicy(policy domain.OutlinePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
}

// Policy returns the policy given to new editors.
func (s *DraftService) Policy() domain.OutlinePolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// New starts an editor for a draft that has never been saved.
func (s *DraftService) New(providerKey, title, subtitle string) driving.DraftEditor {
	meta := domain.DraftMeta{ProviderKey: providerKey, Title: title, Subtitle: subtitle}
	return NewEditor(meta, nil, s.Policy(), s.renderer)
}

// Open loads a draft into an editor.
func (s *DraftService) Open(ctx context.Context, key string) (driving.DraftEditor, error) {
	draft, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return NewEditor(draft.Meta(), draft.Sections, s.Policy(), s.renderer), nil
}

// Save exports the editor and persists it. Drafts without a key are
// created; all others are updated.
func (s *DraftService) Save(ctx context.Context, editor driving.DraftEditor) (*domain.Draft, error) {
	cmd, revision := editor.Snapshot()

	var (
		draft *domain.Draft
		err   error
	)
	if cmd.ID == "" {
		draft, err = s.store.CreateDraft(ctx, cmd)
	} else {
		draft, err = s.store.UpdateDraft(ctx, cmd.ID, cmd)
	}
	if err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	editor.MarkSaved(draft.Key, revision)
	logger.Debug("saved draft %s (version %d, %d sections)", draft.Key, draft.Version, len(cmd.Sections))
	return draft, nil
}
