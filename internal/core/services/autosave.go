package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// Ensure Autosaver implements the interface.
var _ driving.Autosaver = (*Autosaver)(nil)

// maxConcurrentSaves bounds parallel requests to the Persistence API.
const maxConcurrentSaves = 4

// Autosaver saves the editors it tracks when they have unsaved changes.
type Autosaver struct {
	drafts driving.DraftService

	mu      sync.Mutex
	editors []driving.DraftEditor
}

// NewAutosaver creates an autosaver that saves through drafts.
func NewAutosaver(drafts driving.DraftService) *Autosaver {
	return &Autosaver{drafts: drafts}
}

// Track adds an editor to the autosave set. Tracking twice is a no-op.
func (a *Autosaver) Track(editor driving.DraftEditor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.editors {
		if e == editor {
			return
		}
	}
	a.editors = append(a.editors, editor)
}

// Untrack removes an editor from the autosave set.
func (a *Autosaver) Untrack(editor driving.DraftEditor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, e := range a.editors {
		if e == editor {
			a.editors = append(a.editors[:i], a.editors[i+1:]...)
			return
		}
	}
}

// Tracked returns the number of tracked editors.
func (a *Autosaver) Tracked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.editors)
}

// SaveDirty saves every tracked editor with unsaved changes.
// All saves are attempted; the first error is returned with the count
// of editors that were saved.
func (a *Autosaver) SaveDirty(ctx context.Context) (int, error) {
	a.mu.Lock()
	editors := make([]driving.DraftEditor, 0, len(a.editors))
	for _, e := range a.editors {
		if e.Dirty() {
			editors = append(editors, e)
		}
	}
	a.mu.Unlock()

	if len(editors) == 0 {
		return 0, nil
	}

	var (
		g     errgroup.Group
		mu    sync.Mutex
		saved int
	)
	g.SetLimit(maxConcurrentSaves)
	for _, e := range editors {
		g.Go(func() error {
			draft, err := a.drafts.Save(ctx, e)
			if err != nil {
				logger.Error("autosave %q: %v", e.Meta().Key, err)
				return fmt.Errorf("autosave %q: %w", e.Meta().Title, err)
			}
			mu.Lock()
			saved++
			mu.Unlock()
			logger.Debug("autosaved draft %s", draft.Key)
			return nil
		})
	}
	err := g.Wait()
	return saved, err
}
