package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDepthUnit is the depth step between two outline levels.
const DefaultDepthUnit = 1

// indexPattern is the grammar every outline index must satisfy.
var indexPattern = regexp.MustCompile(`^[1-9]\d*(\.[1-9]\d*)*$`)

// SubOptionGrowth selects how sub-option lists grow from empty.
type SubOptionGrowth string

// Available growth modes.
const (
	// SubOptionGrowthLegacy creates exactly one sub-option when growing an
	// empty list, whatever count was requested.
	SubOptionGrowthLegacy SubOptionGrowth = "legacy"

	// SubOptionGrowthCorrected grows an empty list to the requested count.
	SubOptionGrowthCorrected SubOptionGrowth = "corrected"
)

// IsValid returns true if the growth mode is recognised.
func (g SubOptionGrowth) IsValid() bool {
	return g == SubOptionGrowthLegacy || g == SubOptionGrowthCorrected
}

// String returns the string representation.
func (g SubOptionGrowth) String() string {
	return string(g)
}

// OutlinePolicy configures the behaviour of a SectionTree.
type OutlinePolicy struct {
	// DepthUnit is the stored depth difference between adjacent levels.
	DepthUnit int

	// StrictSwap rejects moves between sections of different depth.
	// When false, such moves are applied and left uncorrected.
	StrictSwap bool

	// SubOptionGrowth selects the sub-option growth behaviour.
	SubOptionGrowth SubOptionGrowth
}

// DefaultOutlinePolicy returns the legacy-compatible policy.
func DefaultOutlinePolicy() OutlinePolicy {
	return OutlinePolicy{
		DepthUnit:       DefaultDepthUnit,
		StrictSwap:      false,
		SubOptionGrowth: SubOptionGrowthLegacy,
	}
}

// normalised fills zero or invalid fields with defaults.
func (p OutlinePolicy) normalised() OutlinePolicy {
	if p.DepthUnit <= 0 {
		p.DepthUnit = DefaultDepthUnit
	}
	if !p.SubOptionGrowth.IsValid() {
		p.SubOptionGrowth = SubOptionGrowthLegacy
	}
	return p
}

// Level converts a stored depth to a logical outline level.
func (p OutlinePolicy) Level(depth int) int {
	return depth / p.normalised().DepthUnit
}

// Depth converts a logical outline level to a stored depth.
func (p OutlinePolicy) Depth(level int) int {
	return level * p.normalised().DepthUnit
}

// ComputeIndex derives the index of a section at targetDepth placed right
// after prior. It scans prior backwards from the nearest predecessor:
//
//   - an entry of equal depth yields its index with the last segment
//     incremented (next sibling);
//   - the first shallower entry yields its index plus ".1" (first child);
//   - with no such entry, the trailing segment of the immediate predecessor
//     plus ".1" is returned;
//   - with no predecessor at all, "1" is returned.
//
// Only depths and document order decide which entry is used.
func ComputeIndex(prior []Section, targetDepth int) string {
	if len(prior) == 0 {
		return "1"
	}
	for i := len(prior) - 1; i >= 0; i-- {
		switch d := prior[i].Depth; {
		case d == targetDepth:
			return IncrementLastSegment(prior[i].Index)
		case d < targetDepth:
			return prior[i].Index + ".1"
		}
	}
	segs := strings.Split(prior[len(prior)-1].Index, ".")
	return segs[len(segs)-1] + ".1"
}

// RenumberAll recomputes every index of entries in place.
//
// The order and depths are frozen in a snapshot before the pass; each
// position only consults positions before it, which already carry the
// index written by this pass. The first entry is always "1".
func RenumberAll(entries []Section) {
	if len(entries) == 0 {
		return
	}
	snapshot := make([]Section, len(entries))
	copy(snapshot, entries)

	entries[0].Index = "1"
	snapshot[0].Index = "1"
	for i := 1; i < len(entries); i++ {
		idx := ComputeIndex(snapshot[:i], snapshot[i].Depth)
		entries[i].Index = idx
		snapshot[i].Index = idx
	}
}

// IncrementLastSegment returns index with its last dot segment increased by one.
// A malformed last segment is treated as 0.
func IncrementLastSegment(index string) string {
	segs := strings.Split(index, ".")
	last, err := strconv.Atoi(segs[len(segs)-1])
	if err != nil {
		last = 0
	}
	segs[len(segs)-1] = strconv.Itoa(last + 1)
	return strings.Join(segs, ".")
}

// IndexSegments returns the number of dot segments in index.
func IndexSegments(index string) int {
	if index == "" {
		return 0
	}
	return strings.Count(index, ".") + 1
}

// ValidIndex reports whether index is a dot-separated list of positive
// integers without leading zeros.
func ValidIndex(index string) bool {
	return indexPattern.MatchString(index)
}

// OutlineViolation describes one broken numbering invariant.
type OutlineViolation struct {
	// Position is the offending section's position in document order.
	Position int

	// SectionID is the offending section's ID.
	SectionID int

	// Reason explains the violation.
	Reason string
}

// String returns a human-readable description.
func (v OutlineViolation) String() string {
	return fmt.Sprintf("section %d at position %d: %s", v.SectionID, v.Position, v.Reason)
}

// CheckOutline verifies the numbering invariants of sections:
//
//   - every index matches the index grammar;
//   - every index after the first has depth/unit+1 segments (the first
//     section is pinned to "1" whatever its depth);
//   - consecutive sections of equal depth share a prefix and their last
//     segments differ by exactly one.
//
// An empty result means the outline is consistent.
func CheckOutline(sections []Section, depthUnit int) []OutlineViolation {
	if depthUnit <= 0 {
		depthUnit = DefaultDepthUnit
	}
	var out []OutlineViolation
	for i := range sections {
		s := &sections[i]
		if !ValidIndex(s.Index) {
			out = append(out, OutlineViolation{Position: i, SectionID: s.ID, Reason: fmt.Sprintf("index %q is malformed", s.Index)})
			continue
		}
		if i > 0 {
			want := s.Depth/depthUnit + 1
			if got := IndexSegments(s.Index); got != want {
				out = append(out, OutlineViolation{Position: i, SectionID: s.ID,
					Reason: fmt.Sprintf("index %q has %d segments, depth %d needs %d", s.Index, got, s.Depth, want)})
			}
		}
		if i == 0 || sections[i-1].Depth != s.Depth || !ValidIndex(sections[i-1].Index) {
			continue
		}
		if !consecutiveSiblings(sections[i-1].Index, s.Index) {
			out = append(out, OutlineViolation{Position: i, SectionID: s.ID,
				Reason: fmt.Sprintf("index %q does not follow sibling %q", s.Index, sections[i-1].Index)})
		}
	}
	return out
}

func consecutiveSiblings(prev, next string) bool {
	pi := strings.LastIndex(prev, ".")
	ni := strings.LastIndex(next, ".")
	if prev[:pi+1] != next[:ni+1] {
		return false
	}
	p, err1 := strconv.Atoi(prev[pi+1:])
	n, err2 := strconv.Atoi(next[ni+1:])
	return err1 == nil && err2 == nil && n == p+1
}
