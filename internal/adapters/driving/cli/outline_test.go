package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

func testOutline() []domain.Section {
	sections := []domain.Section{
		domain.NewPlaceholderSection(0, 0),
		domain.NewPlaceholderSection(1, 1),
		domain.NewPlaceholderSection(2, 2),
		domain.NewPlaceholderSection(3, 0),
	}
	sections[1].Optional = true
	sections[2].Options[0].SubOptions = []domain.SubOption{domain.NewPlaceholderSubOption()}
	domain.SetOptionCount(&sections[3], 2)
	domain.RenumberAll(sections)
	return sections
}

func TestSectionDetail(t *testing.T) {
	sections := testOutline()

	assert.Equal(t, "#0, 1 option", sectionDetail(&sections[0]))
	assert.Equal(t, "#1, optional, 1 option", sectionDetail(&sections[1]))
	assert.Equal(t, "#2, 1 option, 1 sub-option", sectionDetail(&sections[2]))
	assert.Equal(t, "#3, 2 options", sectionDetail(&sections[3]))

	s := domain.Section{ID: 9, Variable: true, Dynamic: true}
	assert.Equal(t, "#9, variable, dynamic, 0 options", sectionDetail(&s))
}

func TestDraftHeading(t *testing.T) {
	assert.Equal(t, "(untitled)", draftHeading(domain.DraftMeta{}))
	assert.Equal(t, "Licence [k1]", draftHeading(domain.DraftMeta{Key: "k1", Title: "Licence"}))
	assert.Equal(t, "Licence (v2)", draftHeading(domain.DraftMeta{Title: "Licence", Subtitle: "v2"}))
}

func TestRenderOutlinePlain(t *testing.T) {
	meta := domain.DraftMeta{Key: "k1", Title: "Licence"}

	got := renderOutlinePlain(meta, testOutline(), domain.DefaultOutlinePolicy().Level)
	want := strings.Join([]string{
		"Licence [k1]",
		"  1 New section  (#0, 1 option)",
		"    1.1 New section  (#1, optional, 1 option)",
		"      1.1.1 New section  (#2, 1 option, 1 sub-option)",
		"  2 New section  (#3, 2 options)",
		"",
	}, "\n")
	assert.Equal(t, want, got)

	empty := renderOutlinePlain(meta, nil, domain.DefaultOutlinePolicy().Level)
	assert.Equal(t, "Licence [k1]\n  (no sections)\n", empty)
}

func TestRenderOutlinePlain_DepthUnit(t *testing.T) {
	policy := domain.OutlinePolicy{DepthUnit: 2}
	sections := []domain.Section{
		{ID: 0, Index: "1", Depth: 0, Title: "A"},
		{ID: 1, Index: "1.1", Depth: 2, Title: "B"},
	}

	got := renderOutlinePlain(domain.DraftMeta{Title: "T"}, sections, policy.Level)
	assert.Contains(t, got, "\n    1.1 B  (#1, 0 options)\n")
}

func TestRenderOutlineTree(t *testing.T) {
	meta := domain.DraftMeta{Title: "Licence"}

	got := renderOutlineTree(meta, testOutline(), domain.DefaultOutlinePolicy().Level)
	var lines []string
	for _, l := range strings.Split(got, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	assert.Equal(t, "Licence", strings.TrimSpace(lines[0]))
	assert.Len(t, lines, 5)
	for i, idx := range []string{"1 ", "1.1 ", "1.1.1 ", "2 "} {
		assert.Contains(t, lines[i+1], idx)
	}
	// Nested sections are indented further than their parent.
	assert.Greater(t, strings.Index(lines[3], "1.1.1"), strings.Index(lines[2], "1.1"))

	empty := renderOutlineTree(meta, nil, domain.DefaultOutlinePolicy().Level)
	assert.Contains(t, empty, "(no sections)")
}
