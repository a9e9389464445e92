package domain

import "fmt"

// SetOptionCount resizes the options of section to desired.
// Shrinking truncates from the end; growing appends placeholder options.
// A count of zero is accepted and leaves the section without options.
func SetOptionCount(section *Section, desired int) {
	if desired < 0 {
		desired = 0
	}
	if desired <= len(section.Options) {
		section.Options = section.Options[:desired]
		return
	}
	for len(section.Options) < desired {
		section.Options = append(section.Options, NewPlaceholderOption())
	}
}

// SetSubOptionCount resizes the sub-options of option optionIndex.
//
// A non-empty list is truncated or grown to desired. An empty list grown
// under SubOptionGrowthLegacy receives exactly one placeholder, whatever
// desired is; SubOptionGrowthCorrected grows it to desired.
func SetSubOptionCount(section *Section, optionIndex, desired int, growth SubOptionGrowth) error {
	if optionIndex < 0 || optionIndex >= len(section.Options) {
		return fmt.Errorf("section %d option %d: %w", section.ID, optionIndex, ErrNotFound)
	}
	if desired < 0 {
		desired = 0
	}
	o := &section.Options[optionIndex]
	n := len(o.SubOptions)

	switch {
	case n == 0 && desired > 0:
		o.SubOptions = append(o.SubOptions, NewPlaceholderSubOption())
		if growth != SubOptionGrowthCorrected {
			return nil
		}
		fallthrough
	case n > 0 && desired > n:
		for len(o.SubOptions) < desired {
			o.SubOptions = append(o.SubOptions, NewPlaceholderSubOption())
		}
	case n > 0 && desired < n:
		o.SubOptions = o.SubOptions[:desired]
	}
	return nil
}
