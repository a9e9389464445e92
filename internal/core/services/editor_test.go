package services

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// stubRenderer wraps bodies in a paragraph.
type stubRenderer struct {
	err error
}

func (r *stubRenderer) RenderHTML(body string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<p>" + body + "</p>", nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})
	return &buf
}

func newTestEditor(unit int) *Editor {
	return NewEditor(domain.DraftMeta{ProviderKey: "provider-1", Title: "Licence"}, nil,
		domain.OutlinePolicy{DepthUnit: unit}, nil)
}

func TestEditor_LevelsUseDepthUnit(t *testing.T) {
	e := newTestEditor(20)

	root, ok := e.InsertEnd(0)
	require.True(t, ok)
	child, ok := e.InsertEnd(1)
	require.True(t, ok)

	assert.Equal(t, 20, child.Depth)
	assert.Equal(t, "1.1", child.Index)

	require.True(t, e.ChangeLevel(child.ID, 0))
	s, _ := e.Section(child.ID)
	assert.Equal(t, 0, s.Depth)
	assert.Equal(t, "2", s.Index)

	sibling, ok := e.InsertAfter(root.ID, 0)
	require.True(t, ok)
	assert.Equal(t, "2", sibling.Index)
	assert.Empty(t, e.Check())
}

func TestEditor_IgnoredCommandsAreLogged(t *testing.T) {
	buf := captureLogs(t)
	e := newTestEditor(1)
	_, _ = e.InsertEnd(0)
	before := e.Sections()

	assert.False(t, e.Remove(42))
	assert.False(t, e.ChangeLevel(0, 1))
	assert.False(t, e.Move(0, domain.MoveUp))

	_, ok := e.InsertEnd(3)
	assert.True(t, ok, "depth jumps through insertion are accepted")

	assert.Equal(t, before, e.Sections()[:1])
	out := buf.String()
	assert.Contains(t, out, "[WARN] remove ignored")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "first section anchors numbering")
	assert.Contains(t, out, "no adjacent section")
}

func TestEditor_StrictSwapPolicy(t *testing.T) {
	e := NewEditor(domain.DraftMeta{}, nil, domain.OutlinePolicy{StrictSwap: true}, nil)
	a, _ := e.InsertEnd(0)
	b, _ := e.InsertEnd(1)

	assert.False(t, e.Move(a.ID, domain.MoveDown))
	assert.False(t, e.Move(b.ID, domain.MoveUp))

	c, _ := e.InsertEnd(1)
	assert.True(t, e.Move(c.ID, domain.MoveUp))
	assert.Equal(t, []int{a.ID, c.ID, b.ID}, sectionIDs(e.Sections()))
}

func sectionIDs(sections []domain.Section) []int {
	out := make([]int, len(sections))
	for i := range sections {
		out[i] = sections[i].ID
	}
	return out
}

func TestEditor_DirtyTracking(t *testing.T) {
	e := newTestEditor(1)
	assert.True(t, e.Dirty(), "unsaved drafts are dirty")

	_, rev := e.Snapshot()
	e.MarkSaved("draft-1", rev)
	assert.False(t, e.Dirty())
	assert.Equal(t, "draft-1", e.Meta().Key)

	_, _ = e.InsertEnd(0)
	assert.True(t, e.Dirty())

	cmd, rev := e.Snapshot()
	assert.Equal(t, "draft-1", cmd.ID)
	_, _ = e.InsertEnd(0)
	e.MarkSaved("draft-1", rev)
	assert.True(t, e.Dirty(), "changes after the snapshot keep the editor dirty")

	_, rev = e.Snapshot()
	e.MarkSaved("other", rev)
	assert.False(t, e.Dirty())
	assert.Equal(t, "draft-1", e.Meta().Key, "key is assigned once")
}

func TestEditor_FailedCommandKeepsClean(t *testing.T) {
	e := NewEditor(domain.DraftMeta{Key: "k"}, []domain.Section{{ID: 0, Index: "1"}},
		domain.DefaultOutlinePolicy(), nil)
	assert.False(t, e.Dirty(), "opened drafts start clean")

	assert.False(t, e.Remove(5))
	assert.False(t, e.Dirty())

	e.SetTitles("New title", "sub")
	assert.True(t, e.Dirty())
	assert.Equal(t, "New title", e.Export().Title)
}

func TestEditor_OptionBodies(t *testing.T) {
	e := NewEditor(domain.DraftMeta{}, nil, domain.DefaultOutlinePolicy(), &stubRenderer{})
	s, _ := e.InsertEnd(0)
	require.True(t, e.SetSubOptionCount(s.ID, 0, 1))

	require.True(t, e.SetOptionBody(s.ID, 0, "Use is **commercial**"))
	require.True(t, e.SetSubOptionBody(s.ID, 0, 0, "EU only"))

	got, _ := e.Section(s.ID)
	assert.Equal(t, "Use is **commercial**", got.Options[0].Body)
	assert.Equal(t, "<p>Use is **commercial**</p>", got.Options[0].BodyHTML)
	assert.Equal(t, "<p>EU only</p>", got.Options[0].SubOptions[0].BodyHTML)

	assert.False(t, e.SetOptionBody(s.ID, 4, "x"))
	assert.False(t, e.SetSubOptionBody(s.ID, 0, 9, "x"))
}

func TestEditor_OptionBodiesWithoutRenderer(t *testing.T) {
	for _, renderer := range []*stubRenderer{nil, {err: errors.New("bad markup")}} {
		var e *Editor
		if renderer == nil {
			e = newTestEditor(1)
		} else {
			e = NewEditor(domain.DraftMeta{}, nil, domain.DefaultOutlinePolicy(), renderer)
		}
		s, _ := e.InsertEnd(0)
		require.True(t, e.SetSubOptionCount(s.ID, 0, 1))

		require.True(t, e.SetOptionBody(s.ID, 0, "plain"))
		require.True(t, e.SetSubOptionBody(s.ID, 0, 0, "sub"))

		got, _ := e.Section(s.ID)
		assert.Equal(t, "plain", got.Options[0].Body)
		assert.Equal(t, domain.PlaceholderOptionHTML, got.Options[0].BodyHTML)
		assert.Equal(t, "sub", got.Options[0].SubOptions[0].Body)
		assert.Equal(t, domain.PlaceholderSubOptionHTML, got.Options[0].SubOptions[0].BodyHTML)
	}
}

func TestEditor_ContentCommands(t *testing.T) {
	e := newTestEditor(1)
	s, _ := e.InsertEnd(0)

	icon := domain.IconWarranty
	summary := "Warranty"
	require.True(t, e.SetTitle(s.ID, "Warranty"))
	require.True(t, e.SetFlags(s.ID, domain.SectionFlags{Optional: true}))
	require.True(t, e.SetDescriptionOfChange(s.ID, "added"))
	require.True(t, e.UpdateOption(s.ID, 0, domain.OptionPatch{Icon: &icon, Summary: &summary}))
	require.True(t, e.SetOptionCount(s.ID, 3))

	got, _ := e.Section(s.ID)
	assert.Equal(t, "Warranty", got.Title)
	assert.True(t, got.Optional)
	assert.Equal(t, "added", got.DescriptionOfChange)
	assert.Equal(t, domain.IconWarranty, got.Options[0].Icon)
	assert.Len(t, got.Options, 3)
}

func TestEditor_RenumberAfterLoad(t *testing.T) {
	stale := []domain.Section{
		{ID: 0, Index: "4", Depth: 0},
		{ID: 1, Index: "9", Depth: 1},
	}
	e := NewEditor(domain.DraftMeta{Key: "k"}, stale, domain.DefaultOutlinePolicy(), nil)
	assert.NotEmpty(t, e.Check())

	e.Renumber()

	assert.Empty(t, e.Check())
	assert.Equal(t, "1.1", e.Sections()[1].Index)
	assert.True(t, e.Dirty())
}

func TestEditor_ConcurrentCommandsAndExports(t *testing.T) {
	e := newTestEditor(1)
	const writers, perWriter = 8, 25

	var wg sync.WaitGroup
	var mu sync.Mutex
	var bad []string
	for w := 0; w < writers; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				e.InsertEnd(0)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				cmd := e.Export()
				if v := domain.CheckOutline(cmd.Sections, 1); len(v) > 0 {
					mu.Lock()
					bad = append(bad, v[0].String())
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, bad, strings.Join(bad, "\n"))
	sections := e.Sections()
	assert.Len(t, sections, writers*perWriter)
	assert.Equal(t, "200", sections[len(sections)-1].Index)
}
