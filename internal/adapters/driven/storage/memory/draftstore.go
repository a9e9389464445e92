package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
)

// Ensure DraftStore implements the interface.
var _ driven.DraftStore = (*DraftStore)(nil)

// DraftStore is an in-memory implementation of driven.DraftStore.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
	now    func() time.Time
}

// NewDraftStore creates a new in-memory draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[string]domain.Draft),
		now:    time.Now,
	}
}

// CreateDraft stores a new draft under a generated key.
func (s *DraftStore) CreateDraft(_ context.Context, cmd domain.DraftCommand) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	d := domain.Draft{
		Key:         uuid.NewString(),
		ProviderKey: cmd.ProviderKey,
		Title:       cmd.Title,
		Subtitle:    cmd.Subtitle,
		Sections:    cloneSections(cmd.Sections),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.drafts[d.Key] = d
	return copyDraft(d), nil
}

// UpdateDraft replaces the content of an existing draft.
func (s *DraftStore) UpdateDraft(_ context.Context, key string, cmd domain.DraftCommand) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d.ProviderKey = cmd.ProviderKey
	d.Title = cmd.Title
	d.Subtitle = cmd.Subtitle
	d.Sections = cloneSections(cmd.Sections)
	d.Version++
	d.UpdatedAt = s.now()
	s.drafts[key] = d
	return copyDraft(d), nil
}

// GetDraft retrieves a draft by key.
func (s *DraftStore) GetDraft(_ context.Context, key string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyDraft(d), nil
}

// ListDrafts returns all drafts, most recently updated first.
func (s *DraftStore) ListDrafts(_ context.Context) ([]domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		result = append(result, *copyDraft(d))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].Key < result[j].Key
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// DeleteDraft removes a draft. Deleting a missing draft is not an error.
func (s *DraftStore) DeleteDraft(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}

func cloneSections(sections []domain.Section) []domain.Section {
	out := make([]domain.Section, len(sections))
	for i := range sections {
		out[i] = sections[i].Clone()
	}
	return out
}

func copyDraft(d domain.Draft) *domain.Draft {
	d.Sections = cloneSections(d.Sections)
	return &d
}
