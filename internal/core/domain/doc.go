// Package domain defines the core business entities for drafter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A numbered clause of a contract draft
//   - Option: An alternative wording for a section
//   - SubOption: A nested alternative inside an option
//   - SectionTree: The ordered outline and its edit commands
//   - Draft: A persisted contract draft and its export command
//
// # Outline numbering
//
// Sections are stored as a flat list in document order, each carrying a
// depth. Legal-style numbers ("1", "1.1", "2") are derived from that list
// by ComputeIndex and RenumberAll and are never edited directly.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
