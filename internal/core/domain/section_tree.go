package domain

import "fmt"

// MoveDirection selects the neighbour used by SwapAdjacent.
type MoveDirection int

// Move directions.
const (
	MoveUp   MoveDirection = -1
	MoveDown MoveDirection = 1
)

// String returns the string representation.
func (d MoveDirection) String() string {
	if d == MoveUp {
		return "up"
	}
	return "down"
}

// SectionTree owns the ordered sections of one draft.
//
// Every command either applies completely, leaving the numbering
// consistent, or returns an error and leaves the tree untouched.
// SectionTree is not safe for concurrent use; callers serialise access.
type SectionTree struct {
	policy   OutlinePolicy
	sections []Section
}

// NewSectionTree creates a tree over a copy of sections.
// Stored indices are kept as-is; call Renumber to recompute them.
func NewSectionTree(policy OutlinePolicy, sections []Section) *SectionTree {
	t := &SectionTree{policy: policy.normalised()}
	t.sections = make([]Section, len(sections))
	for i := range sections {
		t.sections[i] = sections[i].Clone()
	}
	return t
}

// Policy returns the tree's outline policy.
func (t *SectionTree) Policy() OutlinePolicy {
	return t.policy
}

// Len returns the number of sections.
func (t *SectionTree) Len() int {
	return len(t.sections)
}

// Sections returns a deep copy of the sections in document order.
func (t *SectionTree) Sections() []Section {
	out := make([]Section, len(t.sections))
	for i := range t.sections {
		out[i] = t.sections[i].Clone()
	}
	return out
}

// Section returns a copy of the section with the given ID.
func (t *SectionTree) Section(id int) (Section, bool) {
	pos := t.position(id)
	if pos < 0 {
		return Section{}, false
	}
	return t.sections[pos].Clone(), true
}

// Check verifies the numbering invariants of the tree.
func (t *SectionTree) Check() []OutlineViolation {
	return CheckOutline(t.sections, t.policy.DepthUnit)
}

// Renumber recomputes every index.
func (t *SectionTree) Renumber() {
	RenumberAll(t.sections)
}

func (t *SectionTree) position(id int) int {
	for i := range t.sections {
		if t.sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *SectionTree) nextID() int {
	if len(t.sections) == 0 {
		return 0
	}
	maxID := t.sections[0].ID
	for i := range t.sections {
		if t.sections[i].ID > maxID {
			maxID = t.sections[i].ID
		}
	}
	return maxID + 1
}

func (t *SectionTree) validDepth(depth int) error {
	if depth < 0 || depth%t.policy.DepthUnit != 0 {
		return fmt.Errorf("%w: depth %d is not a non-negative multiple of %d",
			ErrInvalidInput, depth, t.policy.DepthUnit)
	}
	return nil
}

func notFound(id int) error {
	return fmt.Errorf("section %d: %w", id, ErrNotFound)
}

// InsertEnd appends a placeholder section at depth.
// Appending never shifts earlier numbers, so the index comes from a single
// ComputeIndex call and no renumber is run.
func (t *SectionTree) InsertEnd(depth int) (Section, error) {
	if err := t.validDepth(depth); err != nil {
		return Section{}, err
	}
	s := NewPlaceholderSection(t.nextID(), depth)
	s.Index = ComputeIndex(t.sections, depth)
	t.sections = append(t.sections, s)
	return s.Clone(), nil
}

// InsertAfter places a placeholder section at depth right after the section
// refID and renumbers the whole tree.
func (t *SectionTree) InsertAfter(refID, depth int) (Section, error) {
	if err := t.validDepth(depth); err != nil {
		return Section{}, err
	}
	pos := t.position(refID)
	if pos < 0 {
		return Section{}, notFound(refID)
	}
	s := NewPlaceholderSection(t.nextID(), depth)
	s.Index = IncrementLastSegment(t.sections[pos].Index)

	t.sections = append(t.sections, Section{})
	copy(t.sections[pos+2:], t.sections[pos+1:])
	t.sections[pos+1] = s

	RenumberAll(t.sections)
	return t.sections[pos+1].Clone(), nil
}

// Remove deletes the section id and renumbers the whole tree.
func (t *SectionTree) Remove(id int) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	t.sections = append(t.sections[:pos], t.sections[pos+1:]...)
	RenumberAll(t.sections)
	return nil
}

// ChangeDepth moves section id to newDepth.
//
// The first section cannot change depth. Relative to the preceding
// section, newDepth may be one unit deeper, equal, or any amount
// shallower; larger jumps are rejected.
func (t *SectionTree) ChangeDepth(id, newDepth int) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	if pos == 0 {
		return fmt.Errorf("section %d: %w", id, ErrAnchorSection)
	}
	if err := t.validDepth(newDepth); err != nil {
		return err
	}
	prev := t.sections[pos-1].Depth
	if delta := newDepth - prev; delta > 0 && delta != t.policy.DepthUnit {
		return fmt.Errorf("section %d: %w: %d after %d", id, ErrDepthJump, newDepth, prev)
	}

	s := &t.sections[pos]
	s.Index = ComputeIndex(t.sections[:pos], newDepth)
	s.Depth = newDepth
	RenumberAll(t.sections)
	return nil
}

// SwapAdjacent exchanges section id with its neighbour in direction dir.
//
// The (index, depth) pair is exchanged between the two sections before
// their positions are swapped, so each position keeps its number and
// depth while the content moves. No renumber is run. Between sections of
// different depth this changes the nesting of the moved content; with
// StrictSwap such moves are rejected instead.
func (t *SectionTree) SwapAdjacent(id int, dir MoveDirection) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	other := pos + int(dir)
	if other < 0 || other >= len(t.sections) {
		return fmt.Errorf("section %d: move %s: %w", id, dir, ErrNoNeighbour)
	}
	a, b := &t.sections[pos], &t.sections[other]
	if t.policy.StrictSwap && a.Depth != b.Depth {
		return fmt.Errorf("section %d: move %s: %w", id, dir, ErrCrossDepthSwap)
	}
	a.Index, b.Index = b.Index, a.Index
	a.Depth, b.Depth = b.Depth, a.Depth
	t.sections[pos], t.sections[other] = t.sections[other], t.sections[pos]
	return nil
}

// MoveUp swaps section id with its predecessor.
func (t *SectionTree) MoveUp(id int) error {
	return t.SwapAdjacent(id, MoveUp)
}

// MoveDown swaps section id with its successor.
func (t *SectionTree) MoveDown(id int) error {
	return t.SwapAdjacent(id, MoveDown)
}

// SetTitle replaces the title of section id.
func (t *SectionTree) SetTitle(id int, title string) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	t.sections[pos].Title = title
	return nil
}

// SetFlags replaces the display flags of section id.
func (t *SectionTree) SetFlags(id int, flags SectionFlags) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	s := &t.sections[pos]
	s.Variable, s.Optional, s.Dynamic = flags.Variable, flags.Optional, flags.Dynamic
	return nil
}

// SetDescriptionOfChange records why section id was edited.
func (t *SectionTree) SetDescriptionOfChange(id int, description string) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	t.sections[pos].DescriptionOfChange = description
	return nil
}

// OptionPatch holds option fields to update. Nil fields are left unchanged.
type OptionPatch struct {
	Body             *string
	BodyHTML         *string
	Summary          *string
	Icon             *Icon
	ShortDescription *string
	MutexSuboptions  *bool
}

// UpdateOption applies patch to option optionIndex of section id.
func (t *SectionTree) UpdateOption(id, optionIndex int, patch OptionPatch) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	s := &t.sections[pos]
	if optionIndex < 0 || optionIndex >= len(s.Options) {
		return fmt.Errorf("section %d option %d: %w", id, optionIndex, ErrNotFound)
	}
	if patch.Icon != nil && !patch.Icon.IsValid() {
		return fmt.Errorf("%w: unknown icon %q", ErrInvalidInput, *patch.Icon)
	}
	o := &s.Options[optionIndex]
	if patch.Body != nil {
		o.Body = *patch.Body
	}
	if patch.BodyHTML != nil {
		o.BodyHTML = *patch.BodyHTML
	}
	if patch.Summary != nil {
		o.Summary = *patch.Summary
	}
	if patch.Icon != nil {
		o.Icon = *patch.Icon
	}
	if patch.ShortDescription != nil {
		o.ShortDescription = *patch.ShortDescription
	}
	if patch.MutexSuboptions != nil {
		o.MutexSuboptions = *patch.MutexSuboptions
	}
	return nil
}

// UpdateSubOption replaces the body of a sub-option.
func (t *SectionTree) UpdateSubOption(id, optionIndex, subIndex int, body, bodyHTML string) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	s := &t.sections[pos]
	if optionIndex < 0 || optionIndex >= len(s.Options) {
		return fmt.Errorf("section %d option %d: %w", id, optionIndex, ErrNotFound)
	}
	o := &s.Options[optionIndex]
	if subIndex < 0 || subIndex >= len(o.SubOptions) {
		return fmt.Errorf("section %d option %d sub-option %d: %w", id, optionIndex, subIndex, ErrNotFound)
	}
	o.SubOptions[subIndex] = SubOption{Body: body, BodyHTML: bodyHTML}
	return nil
}

// SetOptionCount resizes the options of section id.
func (t *SectionTree) SetOptionCount(id, desired int) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	SetOptionCount(&t.sections[pos], desired)
	return nil
}

// SetSubOptionCount resizes the sub-options of option optionIndex of
// section id, using the tree's growth policy.
func (t *SectionTree) SetSubOptionCount(id, optionIndex, desired int) error {
	pos := t.position(id)
	if pos < 0 {
		return notFound(id)
	}
	return SetSubOptionCount(&t.sections[pos], optionIndex, desired, t.policy.SubOptionGrowth)
}
