package domain

import (
	"encoding/json"
	"fmt"
)

// Placeholder content used when sections, options and sub-options are created.
// Bodies are opaque to the core; the rich-text collaborator owns their format.
const (
	PlaceholderSectionTitle  = "New section"
	PlaceholderOptionBody    = "Option text"
	PlaceholderOptionHTML    = "<p>Option text</p>"
	PlaceholderSubOptionBody = "Sub-option text"
	PlaceholderSubOptionHTML = "<p>Sub-option text</p>"
)

// Icon is the pictogram attached to a contract option.
// The zero value IconNone is exported as null.
type Icon string

// Available option icons.
const (
	IconNone                  Icon = ""
	IconAlterationAllowed     Icon = "AlterationAllowed"
	IconAlterationNotAllowed  Icon = "AlterationNotAllowed"
	IconCommercialUse         Icon = "CommercialUse"
	IconNonCommercialUse      Icon = "NonCommercialUse"
	IconDeliveryDigital       Icon = "DeliveryDigital"
	IconDeliveryPhysical      Icon = "DeliveryPhysical"
	IconThirdPartyAllowed     Icon = "ThirdPartyAllowed"
	IconThirdPartyNotAllowed  Icon = "ThirdPartyNotAllowed"
	IconWarranty              Icon = "Warranty"
	IconTermination           Icon = "Termination"
	IconGeographicRestriction Icon = "GeographicRestriction"
)

// IsValid returns true if the icon is recognised. IconNone is valid.
func (i Icon) IsValid() bool {
	switch i {
	case IconNone, IconAlterationAllowed, IconAlterationNotAllowed,
		IconCommercialUse, IconNonCommercialUse,
		IconDeliveryDigital, IconDeliveryPhysical,
		IconThirdPartyAllowed, IconThirdPartyNotAllowed,
		IconWarranty, IconTermination, IconGeographicRestriction:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Icon) String() string {
	return string(i)
}

// ParseIcon converts a string into an Icon.
// The empty string and "null" map to IconNone.
func ParseIcon(s string) (Icon, error) {
	if s == "null" {
		return IconNone, nil
	}
	icon := Icon(s)
	if !icon.IsValid() {
		return IconNone, fmt.Errorf("%w: unknown icon %q", ErrInvalidInput, s)
	}
	return icon, nil
}

// MarshalJSON encodes IconNone as null.
func (i Icon) MarshalJSON() ([]byte, error) {
	if i == IconNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

// UnmarshalJSON decodes null or a known icon name.
func (i *Icon) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = IconNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	icon, err := ParseIcon(s)
	if err != nil {
		return err
	}
	*i = icon
	return nil
}

// MarshalYAML encodes IconNone as null.
func (i Icon) MarshalYAML() (any, error) {
	if i == IconNone {
		return nil, nil
	}
	return string(i), nil
}

// UnmarshalYAML decodes null or a known icon name.
func (i *Icon) UnmarshalYAML(unmarshal func(any) error) error {
	var s *string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == nil {
		*i = IconNone
		return nil
	}
	icon, err := ParseIcon(*s)
	if err != nil {
		return err
	}
	*i = icon
	return nil
}

// AllIcons returns every non-empty icon.
func AllIcons() []Icon {
	return []Icon{
		IconAlterationAllowed, IconAlterationNotAllowed,
		IconCommercialUse, IconNonCommercialUse,
		IconDeliveryDigital, IconDeliveryPhysical,
		IconThirdPartyAllowed, IconThirdPartyNotAllowed,
		IconWarranty, IconTermination, IconGeographicRestriction,
	}
}

// Section is one numbered clause of a contract draft.
type Section struct {
	// ID identifies the section within its draft.
	ID int `json:"id" yaml:"id"`

	// Index is the computed outline number, e.g. "2.3.1".
	Index string `json:"index" yaml:"index"`

	// Depth is the nesting depth as a multiple of the outline depth unit.
	Depth int `json:"depth" yaml:"depth"`

	// Title is the human-readable heading.
	Title string `json:"title" yaml:"title"`

	// Variable, Optional and Dynamic are display flags.
	Variable bool `json:"variable" yaml:"variable"`
	Optional bool `json:"optional" yaml:"optional"`
	Dynamic  bool `json:"dynamic" yaml:"dynamic"`

	// Options are the alternative wordings of the section.
	Options []Option `json:"options" yaml:"options"`

	// DescriptionOfChange records why the section was edited.
	DescriptionOfChange string `json:"descriptionOfChange" yaml:"descriptionOfChange"`
}

// Option is an alternative wording for a section.
type Option struct {
	Body             string      `json:"body" yaml:"body"`
	BodyHTML         string      `json:"bodyHtml" yaml:"bodyHtml"`
	Summary          string      `json:"summary" yaml:"summary"`
	Icon             Icon        `json:"icon" yaml:"icon"`
	ShortDescription string      `json:"shortDescription" yaml:"shortDescription"`
	MutexSuboptions  bool        `json:"mutexSuboptions" yaml:"mutexSuboptions"`
	SubOptions       []SubOption `json:"subOptions" yaml:"subOptions"`
}

// SubOption is a nested alternative inside an option.
type SubOption struct {
	Body     string `json:"body" yaml:"body"`
	BodyHTML string `json:"bodyHtml" yaml:"bodyHtml"`
}

// SectionFlags groups the independent display flags of a section.
type SectionFlags struct {
	Variable bool
	Optional bool
	Dynamic  bool
}

// Flags returns the section's display flags.
func (s *Section) Flags() SectionFlags {
	return SectionFlags{Variable: s.Variable, Optional: s.Optional, Dynamic: s.Dynamic}
}

// Clone returns a deep copy of the section including options and sub-options.
func (s *Section) Clone() Section {
	c := *s
	if s.Options != nil {
		c.Options = make([]Option, len(s.Options))
		for i := range s.Options {
			c.Options[i] = s.Options[i].Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the option.
func (o *Option) Clone() Option {
	c := *o
	if o.SubOptions != nil {
		c.SubOptions = make([]SubOption, len(o.SubOptions))
		copy(c.SubOptions, o.SubOptions)
	}
	return c
}

// NewPlaceholderSection returns a section with default content and one option.
func NewPlaceholderSection(id, depth int) Section {
	return Section{
		ID:      id,
		Depth:   depth,
		Title:   PlaceholderSectionTitle,
		Options: []Option{NewPlaceholderOption()},
	}
}

// NewPlaceholderOption returns an option with canned body text.
func NewPlaceholderOption() Option {
	return Option{
		Body:       PlaceholderOptionBody,
		BodyHTML:   PlaceholderOptionHTML,
		SubOptions: []SubOption{},
	}
}

// NewPlaceholderSubOption returns a sub-option with canned body text.
func NewPlaceholderSubOption() SubOption {
	return SubOption{
		Body:     PlaceholderSubOptionBody,
		BodyHTML: PlaceholderSubOptionHTML,
	}
}
