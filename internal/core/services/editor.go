package services

import (
	"sync"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// Ensure Editor implements the interface.
var _ driving.DraftEditor = (*Editor)(nil)

// Editor is an editing session over one draft.
// A single mutex serialises commands and exports.
type Editor struct {
	renderer driven.RichTextRenderer

	mu        sync.Mutex
	meta      domain.DraftMeta
	tree      *domain.SectionTree
	revision  uint64
	savedRev  uint64
	savedOnce bool
}

// NewEditor creates an editor over sections. Stored indices are kept;
// call Renumber to recompute them. renderer may be nil.
func NewEditor(
	meta domain.DraftMeta,
	sections []domain.Section,
	policy domain.OutlinePolicy,
	renderer driven.RichTextRenderer,
) *Editor {
	return &Editor{
		renderer:  renderer,
		meta:      meta,
		tree:      domain.NewSectionTree(policy, sections),
		savedOnce: meta.Key != "",
	}
}

// Meta returns the draft's key, provider and titles.
func (e *Editor) Meta() domain.DraftMeta {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.meta
}

// SetTitles replaces the draft's title and subtitle.
func (e *Editor) SetTitles(title, subtitle string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.meta.Title = title
	e.meta.Subtitle = subtitle
	e.revision++
}

// Policy returns the outline policy the editor was opened with.
func (e *Editor) Policy() domain.OutlinePolicy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Policy()
}

// Sections returns a copy of the outline in document order.
func (e *Editor) Sections() []domain.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Sections()
}

// Section returns a copy of one section.
func (e *Editor) Section(id int) (domain.Section, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Section(id)
}

// apply runs fn under the lock and bumps the revision when it succeeds.
func (e *Editor) apply(command string, fn func(t *domain.SectionTree) error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.tree); err != nil {
		logger.Warn("%s ignored on draft %q: %v", command, e.meta.Key, err)
		return false
	}
	e.revision++
	logger.Debug("%s applied on draft %q (revision %d)", command, e.meta.Key, e.revision)
	return true
}

func (e *Editor) depth(level int) int {
	return e.tree.Policy().Depth(level)
}

// InsertEnd appends a placeholder section at level.
func (e *Editor) InsertEnd(level int) (domain.Section, bool) {
	var s domain.Section
	ok := e.apply("insert end", func(t *domain.SectionTree) error {
		var err error
		s, err = t.InsertEnd(e.depth(level))
		return err
	})
	return s, ok
}

// InsertAfter places a placeholder section at level after refID.
func (e *Editor) InsertAfter(refID, level int) (domain.Section, bool) {
	var s domain.Section
	ok := e.apply("insert after", func(t *domain.SectionTree) error {
		var err error
		s, err = t.InsertAfter(refID, e.depth(level))
		return err
	})
	return s, ok
}

// Remove deletes a section.
func (e *Editor) Remove(id int) bool {
	return e.apply("remove", func(t *domain.SectionTree) error {
		return t.Remove(id)
	})
}

// ChangeLevel moves a section to another outline level.
func (e *Editor) ChangeLevel(id, level int) bool {
	return e.apply("change depth", func(t *domain.SectionTree) error {
		return t.ChangeDepth(id, e.depth(level))
	})
}

// Move swaps a section with its neighbour.
func (e *Editor) Move(id int, dir domain.MoveDirection) bool {
	return e.apply("move "+dir.String(), func(t *domain.SectionTree) error {
		return t.SwapAdjacent(id, dir)
	})
}

// SetTitle replaces a section title.
func (e *Editor) SetTitle(id int, title string) bool {
	return e.apply("set title", func(t *domain.SectionTree) error {
		return t.SetTitle(id, title)
	})
}

// SetFlags replaces a section's display flags.
func (e *Editor) SetFlags(id int, flags domain.SectionFlags) bool {
	return e.apply("set flags", func(t *domain.SectionTree) error {
		return t.SetFlags(id, flags)
	})
}

// SetDescriptionOfChange records why a section was edited.
func (e *Editor) SetDescriptionOfChange(id int, description string) bool {
	return e.apply("set description of change", func(t *domain.SectionTree) error {
		return t.SetDescriptionOfChange(id, description)
	})
}

// UpdateOption patches an option's fields.
func (e *Editor) UpdateOption(id, optionIndex int, patch domain.OptionPatch) bool {
	return e.apply("update option", func(t *domain.SectionTree) error {
		return t.UpdateOption(id, optionIndex, patch)
	})
}

// SetOptionBody replaces an option body. The cached HTML is refreshed
// when a renderer is configured.
func (e *Editor) SetOptionBody(id, optionIndex int, body string) bool {
	patch := domain.OptionPatch{Body: &body}
	if html, ok := e.render(body); ok {
		patch.BodyHTML = &html
	}
	return e.UpdateOption(id, optionIndex, patch)
}

// SetSubOptionBody replaces a sub-option body. Without a renderer the
// cached HTML is kept.
func (e *Editor) SetSubOptionBody(id, optionIndex, subIndex int, body string) bool {
	html, rendered := e.render(body)
	return e.apply("set sub-option body", func(t *domain.SectionTree) error {
		if !rendered {
			s, ok := t.Section(id)
			if ok && optionIndex >= 0 && optionIndex < len(s.Options) &&
				subIndex >= 0 && subIndex < len(s.Options[optionIndex].SubOptions) {
				html = s.Options[optionIndex].SubOptions[subIndex].BodyHTML
			}
		}
		return t.UpdateSubOption(id, optionIndex, subIndex, body, html)
	})
}

func (e *Editor) render(body string) (string, bool) {
	if e.renderer == nil {
		return "", false
	}
	html, err := e.renderer.RenderHTML(body)
	if err != nil {
		logger.Warn("render body: %v", err)
		return "", false
	}
	return html, true
}

// SetOptionCount resizes a section's options.
func (e *Editor) SetOptionCount(id, count int) bool {
	return e.apply("set option count", func(t *domain.SectionTree) error {
		return t.SetOptionCount(id, count)
	})
}

// SetSubOptionCount resizes an option's sub-options.
func (e *Editor) SetSubOptionCount(id, optionIndex, count int) bool {
	return e.apply("set sub-option count", func(t *domain.SectionTree) error {
		return t.SetSubOptionCount(id, optionIndex, count)
	})
}

// Renumber recomputes every index.
func (e *Editor) Renumber() {
	e.apply("renumber", func(t *domain.SectionTree) error {
		t.Renumber()
		return nil
	})
}

// Check returns numbering invariant violations.
func (e *Editor) Check() []domain.OutlineViolation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Check()
}

// Export returns the save command for the current state.
func (e *Editor) Export() domain.DraftCommand {
	cmd, _ := e.Snapshot()
	return cmd
}

// Snapshot returns the save command and the revision it reflects.
func (e *Editor) Snapshot() (domain.DraftCommand, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.CreateCommandFromModel(e.meta, e.tree), e.revision
}

// Dirty reports whether there are changes since the last save.
// A draft that was never saved is always dirty.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.savedOnce || e.revision != e.savedRev
}

// MarkSaved records a successful save of revision under key.
func (e *Editor) MarkSaved(key string, revision uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.meta.Key == "" {
		e.meta.Key = key
	}
	e.savedOnce = true
	if revision > e.savedRev {
		e.savedRev = revision
	}
}
