package domain

import "time"

// Draft is a provider's contract draft as persisted by the Persistence API.
type Draft struct {
	// Key is the unique identifier assigned by the persistence layer.
	Key string

	// ProviderKey identifies the provider that owns the draft.
	ProviderKey string

	// Title is the contract title.
	Title string

	// Subtitle is the contract subtitle.
	Subtitle string

	// Sections is the outline in document order.
	Sections []Section

	// Version increments on every update.
	Version int

	// CreatedAt is when the draft was first saved.
	CreatedAt time.Time

	// UpdatedAt is when the draft was last saved.
	UpdatedAt time.Time
}

// Meta returns the draft's identifying fields.
func (d *Draft) Meta() DraftMeta {
	return DraftMeta{
		Key:         d.Key,
		ProviderKey: d.ProviderKey,
		Title:       d.Title,
		Subtitle:    d.Subtitle,
	}
}

// DraftMeta holds the non-outline fields of a draft.
type DraftMeta struct {
	Key         string
	ProviderKey string
	Title       string
	Subtitle    string
}

// DraftCommand is the payload sent to createDraft and updateDraft.
// ID is empty for drafts that have never been saved.
type DraftCommand struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	ProviderKey string    `json:"providerKey" yaml:"providerKey"`
	Title       string    `json:"title" yaml:"title"`
	Subtitle    string    `json:"subtitle" yaml:"subtitle"`
	Sections    []Section `json:"sections" yaml:"sections"`
}

// CreateCommandFromModel exports a snapshot of meta and tree.
// The result shares no memory with the tree.
func CreateCommandFromModel(meta DraftMeta, tree *SectionTree) DraftCommand {
	sections := []Section{}
	if tree != nil {
		sections = tree.Sections()
	}
	return DraftCommand{
		ID:          meta.Key,
		ProviderKey: meta.ProviderKey,
		Title:       meta.Title,
		Subtitle:    meta.Subtitle,
		Sections:    sections,
	}
}
