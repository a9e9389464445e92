package driving

import "github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"

// DraftEditor is an open editing session over one draft.
//
// Levels are logical outline levels (0 for top-level sections); the
// editor converts them to stored depths using the outline depth unit.
// Commands that cannot apply leave the outline untouched and report
// false; the reason is logged. Every method is safe for concurrent use
// and no caller ever observes a half-applied command.
type DraftEditor interface {
	// Meta returns the draft's key, provider and titles.
	Meta() domain.DraftMeta

	// SetTitles replaces the draft's title and subtitle.
	SetTitles(title, subtitle string)

	// Policy returns the outline policy the editor was opened with.
	Policy() domain.OutlinePolicy

	// Sections returns a copy of the outline in document order.
	Sections() []domain.Section

	// Section returns a copy of one section.
	Section(id int) (domain.Section, bool)

	// InsertEnd appends a placeholder section at level.
	InsertEnd(level int) (domain.Section, bool)

	// InsertAfter places a placeholder section at level after refID.
	InsertAfter(refID, level int) (domain.Section, bool)

	// Remove deletes a section.
	Remove(id int) bool

	// ChangeLevel moves a section to another outline level.
	ChangeLevel(id, level int) bool

	// Move swaps a section with its neighbour.
	Move(id int, dir domain.MoveDirection) bool

	// SetTitle replaces a section title.
	SetTitle(id int, title string) bool

	// SetFlags replaces a section's display flags.
	SetFlags(id int, flags domain.SectionFlags) bool

	// SetDescriptionOfChange records why a section was edited.
	SetDescriptionOfChange(id int, description string) bool

	// UpdateOption patches an option's fields.
	UpdateOption(id, optionIndex int, patch domain.OptionPatch) bool

	// SetOptionBody replaces an option body and refreshes its HTML.
	SetOptionBody(id, optionIndex int, body string) bool

	// SetSubOptionBody replaces a sub-option body and refreshes its HTML.
	SetSubOptionBody(id, optionIndex, subIndex int, body string) bool

	// SetOptionCount resizes a section's options.
	SetOptionCount(id, count int) bool

	// SetSubOptionCount resizes an option's sub-options.
	SetSubOptionCount(id, optionIndex, count int) bool

	// Renumber recomputes every index.
	Renumber()

	// Check returns numbering invariant violations.
	Check() []domain.OutlineViolation

	// Export returns the save command for the current state.
	Export() domain.DraftCommand

	// Snapshot returns the save command together with the revision it
	// was taken at.
	Snapshot() (domain.DraftCommand, uint64)

	// Dirty reports whether there are changes since the last save.
	Dirty() bool

	// MarkSaved records a successful save of revision under key.
	// Later changes keep the editor dirty.
	MarkSaved(key string, revision uint64)
}
