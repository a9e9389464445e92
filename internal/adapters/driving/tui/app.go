package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/components/input"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/components/status"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/keymap"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/messages"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driving/tui/styles"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
)

// chromeLines is the number of lines around the outline: heading,
// blank line, problems line and status bar.
const chromeLines = 5

// App is the outline editor following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	editor driving.DraftEditor
	ctx    context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.TitleInput
	bar    *status.Bar

	// cursor is the position of the selected section.
	cursor int

	// offset is the first visible position when the outline scrolls.
	offset int

	// saving is set while a save runs; autosave ticks are skipped meanwhile.
	saving bool

	// autosaveEvery is the autosave interval; autosaveGen identifies the
	// current timer so a reload can replace it.
	autosaveEvery time.Duration
	autosaveGen   int

	// quitPending is set after q was pressed with unsaved changes.
	quitPending bool

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates an editor over editor.
func NewApp(ports *Ports, editor driving.DraftEditor) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if editor == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingEditor)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetDirty(editor.Dirty())

	return &App{
		ports:  ports,
		editor: editor,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		input:  input.NewTitleInput(s),
		bar:    bar,
		width:  80,

		autosaveEvery: ports.AutosaveInterval,
	}, nil
}

// WithContext sets the context used for saves.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("drafter - "+titleOf(a.editor.Meta())),
		a.scheduleAutosave(),
		a.waitForSettings(),
	)
}

func (a *App) scheduleAutosave() tea.Cmd {
	if a.autosaveEvery <= 0 {
		return nil
	}
	gen := a.autosaveGen
	return tea.Tick(a.autosaveEvery, func(t time.Time) tea.Msg {
		return messages.AutosaveTick{At: t, Gen: gen}
	})
}

func (a *App) waitForSettings() tea.Cmd {
	updates := a.ports.Settings
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return messages.SettingsChanged{Settings: s}
	}
}

// applySettings restarts the autosave timer when the interval changed.
func (a *App) applySettings(s *domain.AppSettings) tea.Cmd {
	every := s.Autosave.EditorInterval()
	if every == a.autosaveEvery {
		return nil
	}
	a.autosaveEvery = every
	a.autosaveGen++
	if every > 0 {
		a.bar.Set(status.StateReady, fmt.Sprintf("Autosave every %s", every))
	} else {
		a.bar.Set(status.StateReady, "Autosave off")
	}
	return a.scheduleAutosave()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.SettingsChanged:
		return a, tea.Batch(a.applySettings(msg.Settings), a.waitForSettings())

	case messages.AutosaveTick:
		if msg.Gen != a.autosaveGen {
			return a, nil
		}
		next := a.scheduleAutosave()
		if a.saving || !a.editor.Dirty() {
			return a, next
		}
		return a, tea.Batch(a.save(true), next)

	case messages.SaveRequested:
		if a.saving {
			return a, nil
		}
		return a, a.save(msg.Auto)

	case messages.SaveCompleted:
		a.saving = false
		if msg.Err != nil {
			a.bar.Set(status.StateError, msg.Err.Error())
		} else {
			verb := "Saved"
			if msg.Auto {
				verb = "Autosaved"
			}
			a.bar.Set(status.StateSaved, fmt.Sprintf("%s version %d", verb, msg.Draft.Version))
		}
		a.bar.SetDirty(a.editor.Dirty())
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.input.Focused() {
			return a, a.handleEditKey(msg)
		}
		return a, a.handleKey(msg)
	}
	return a, nil
}

// save runs Drafts.Save in the background.
func (a *App) save(auto bool) tea.Cmd {
	a.saving = true
	a.bar.Set(status.StateSaving, "")
	ctx, drafts, editor := a.ctx, a.ports.Drafts, a.editor
	return func() tea.Msg {
		draft, err := drafts.Save(ctx, editor)
		return messages.SaveCompleted{Draft: draft, Auto: auto, Err: err}
	}
}

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Confirm):
		id, title := a.input.SectionID(), a.input.Value()
		a.input.Stop()
		a.apply("set title", a.editor.SetTitle(id, title))
		return nil
	case key.Matches(msg, a.keymap.Cancel):
		a.input.Stop()
		a.bar.Set(status.StateReady, "")
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

//nolint:gocyclo // one case per binding
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keymap.Quit) {
		if a.editor.Dirty() && !a.quitPending {
			a.quitPending = true
			a.bar.Set(status.StateReady, "Unsaved changes: q again to quit, s to save")
			return nil
		}
		return tea.Quit
	}
	a.quitPending = false

	sections := a.editor.Sections()
	sel, hasSel := a.selected(sections)

	switch {
	case key.Matches(msg, a.keymap.Up):
		a.moveCursor(-1, len(sections))
	case key.Matches(msg, a.keymap.Down):
		a.moveCursor(1, len(sections))

	case key.Matches(msg, a.keymap.Append):
		level := 0
		if hasSel {
			level = a.level(sel)
		}
		_, ok := a.editor.InsertEnd(level)
		if ok {
			a.cursor = len(sections)
		}
		a.apply("append", ok)

	case key.Matches(msg, a.keymap.Insert):
		if !hasSel {
			_, ok := a.editor.InsertEnd(0)
			a.apply("insert", ok)
			break
		}
		_, ok := a.editor.InsertAfter(sel.ID, a.level(sel))
		if ok {
			a.cursor++
		}
		a.apply("insert", ok)

	case !hasSel:
		// Remaining bindings need a selected section.

	case key.Matches(msg, a.keymap.Remove):
		ok := a.editor.Remove(sel.ID)
		if ok && a.cursor >= len(sections)-1 && a.cursor > 0 {
			a.cursor--
		}
		a.apply("remove", ok)

	case key.Matches(msg, a.keymap.Indent):
		a.apply("indent", a.editor.ChangeLevel(sel.ID, a.level(sel)+1))
	case key.Matches(msg, a.keymap.Outdent):
		a.apply("outdent", a.editor.ChangeLevel(sel.ID, a.level(sel)-1))

	case key.Matches(msg, a.keymap.MoveUp):
		ok := a.editor.Move(sel.ID, domain.MoveUp)
		if ok {
			a.cursor--
		}
		a.apply("move up", ok)
	case key.Matches(msg, a.keymap.MoveDown):
		ok := a.editor.Move(sel.ID, domain.MoveDown)
		if ok {
			a.cursor++
		}
		a.apply("move down", ok)

	case key.Matches(msg, a.keymap.EditTitle):
		a.bar.Set(status.StateEditing, "")
		return a.input.Start(sel.ID, sel.Title)

	case key.Matches(msg, a.keymap.MoreOptions):
		a.apply("add option", a.editor.SetOptionCount(sel.ID, len(sel.Options)+1))
	case key.Matches(msg, a.keymap.FewerOptions):
		a.apply("drop option", a.editor.SetOptionCount(sel.ID, len(sel.Options)-1))

	case key.Matches(msg, a.keymap.Renumber):
		a.editor.Renumber()
		a.apply("renumber", true)

	case key.Matches(msg, a.keymap.Save):
		if a.saving {
			return nil
		}
		return a.save(false)
	}
	return nil
}

func (a *App) apply(what string, ok bool) {
	if ok {
		a.bar.Set(status.StateReady, "")
	} else {
		a.bar.Set(status.StateError, what+" not applied")
	}
	a.bar.SetDirty(a.editor.Dirty())
}

func (a *App) selected(sections []domain.Section) (domain.Section, bool) {
	if a.cursor < 0 || a.cursor >= len(sections) {
		return domain.Section{}, false
	}
	return sections[a.cursor], true
}

func (a *App) moveCursor(delta, n int) {
	a.cursor += delta
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) level(s domain.Section) int {
	return a.editor.Policy().Level(s.Depth)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Heading.Render(titleOf(a.editor.Meta())))
	b.WriteByte('\n')

	sections := a.editor.Sections()
	if len(sections) == 0 {
		b.WriteString(a.styles.Muted.Render("No sections. Press a to add one."))
		b.WriteByte('\n')
	}

	from, to := a.window(len(sections))
	for i := from; i < to; i++ {
		b.WriteString(a.renderSection(&sections[i], i == a.cursor))
		b.WriteByte('\n')
	}

	if a.input.Focused() {
		b.WriteString(a.input.View())
		b.WriteByte('\n')
	}

	if n := len(a.editor.Check()); n > 0 {
		b.WriteString(a.styles.Warning.Render(
			fmt.Sprintf("%d numbering problem(s); press r to renumber", n)))
		b.WriteByte('\n')
	}

	a.bar.SetWidth(a.width)
	b.WriteString(a.bar.View())
	return b.String()
}

// window returns the visible range of positions, keeping the cursor in view.
func (a *App) window(n int) (int, int) {
	rows := a.height - chromeLines
	if a.height == 0 || rows >= n {
		return 0, n
	}
	if rows < 1 {
		rows = 1
	}
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
	return a.offset, a.offset + rows
}

func (a *App) renderSection(s *domain.Section, selected bool) string {
	indent := strings.Repeat("  ", a.level(*s))
	detail := fmt.Sprintf("(%d option", len(s.Options))
	if len(s.Options) != 1 {
		detail += "s"
	}
	detail += ")"

	if selected {
		return indent + a.styles.Selected.Render(s.Index+" "+s.Title) + " " + a.styles.Detail.Render(detail)
	}
	return indent + a.styles.Index.Render(s.Index) + " " + a.styles.Normal.Render(s.Title) + " " +
		a.styles.Detail.Render(detail)
}

func titleOf(meta domain.DraftMeta) string {
	title := meta.Title
	if title == "" {
		title = "(untitled)"
	}
	if meta.Subtitle != "" {
		title += " - " + meta.Subtitle
	}
	if meta.Key == "" {
		return title + " (unsaved)"
	}
	return title
}

// SetDimensions sets the terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.input.SetWidth(width)
	a.bar.SetWidth(width)
}

// Cursor returns the position of the selected section.
func (a *App) Cursor() int {
	return a.cursor
}

// Status returns the status bar state and message.
func (a *App) Status() (status.State, string) {
	return a.bar.State(), a.bar.Message()
}

// Editing reports whether the title editor is open.
func (a *App) Editing() bool {
	return a.input.Focused()
}

// Run starts the editor and blocks until it exits.
func Run(ctx context.Context, ports *Ports, editor driving.DraftEditor) error {
	app, err := NewApp(ports, editor)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app.WithContext(ctx), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
