package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

var (
	outlineRootStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	outlineEnumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	outlineIndexStyle  = lipgloss.NewStyle().Bold(true)
	outlineDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// levelFunc returns the depth-to-level conversion of the configured outline policy.
func levelFunc() func(depth int) int {
	policy := domain.DefaultOutlinePolicy()
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			policy = s.Outline.Policy()
		}
	}
	return policy.Level
}

func draftHeading(meta domain.DraftMeta) string {
	title := meta.Title
	if title == "" {
		title = "(untitled)"
	}
	if meta.Subtitle != "" {
		title += " (" + meta.Subtitle + ")"
	}
	if meta.Key != "" {
		title += " [" + meta.Key + "]"
	}
	return title
}

// sectionDetail summarises the id, flags and option counts of s.
func sectionDetail(s *domain.Section) string {
	parts := []string{fmt.Sprintf("#%d", s.ID)}
	if s.Variable {
		parts = append(parts, "variable")
	}
	if s.Optional {
		parts = append(parts, "optional")
	}
	if s.Dynamic {
		parts = append(parts, "dynamic")
	}
	subs := 0
	for i := range s.Options {
		subs += len(s.Options[i].SubOptions)
	}
	parts = append(parts, plural(len(s.Options), "option"))
	if subs > 0 {
		parts = append(parts, plural(subs, "sub-option"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// renderOutlinePlain prints one line per section, indented two spaces per level.
func renderOutlinePlain(meta domain.DraftMeta, sections []domain.Section, levelOf func(int) int) string {
	var b strings.Builder
	b.WriteString(draftHeading(meta))
	b.WriteByte('\n')
	if len(sections) == 0 {
		b.WriteString("  (no sections)\n")
		return b.String()
	}
	for i := range sections {
		s := &sections[i]
		indent := strings.Repeat("  ", levelOf(s.Depth)+1)
		fmt.Fprintf(&b, "%s%s %s  (%s)\n", indent, s.Index, s.Title, sectionDetail(s))
	}
	return b.String()
}

// renderOutlineTree nests sections under the nearest shallower predecessor.
// A section more than one level deeper than its predecessor hangs off the
// deepest open node.
func renderOutlineTree(meta domain.DraftMeta, sections []domain.Section, levelOf func(int) int) string {
	root := tree.Root(draftHeading(meta)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(outlineEnumStyle).
		RootStyle(outlineRootStyle)
	if len(sections) == 0 {
		root.Child(outlineDetailStyle.Render("(no sections)"))
		return root.String()
	}

	type open struct {
		node  *tree.Tree
		level int
	}
	stack := []open{{node: root, level: -1}}
	for i := range sections {
		s := &sections[i]
		level := levelOf(s.Depth)
		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		label := outlineIndexStyle.Render(s.Index) + " " + s.Title + " " +
			outlineDetailStyle.Render("("+sectionDetail(s)+")")
		node := tree.Root(label).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(outlineEnumStyle)
		stack[len(stack)-1].node.Child(node)
		stack = append(stack, open{node: node, level: level})
	}
	return root.String()
}
