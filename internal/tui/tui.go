// Package tui is the interactive presentation layer. It renders the store's
// filtered view and turns key presses into store operations; it never edits
// items itself.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := d.theme
	width := m.Width() - len(it.CreatedAt) - 8
	if width < 10 {
		width = 10
	}
	text := ui.Truncate(ui.Sanitize(it.Text), width)

	box := th.Muted.Render(th.BoxUnchecked)
	if it.Done {
		box = th.Success.Render(th.BoxChecked)
		text = th.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = th.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, text, th.Muted.Render(it.CreatedAt))
}

// Model is the Bubble Tea model. It holds presentation state only; the
// collection lives in the store.
type Model struct {
	store *store.Store
	theme ui.Theme
	log   logrus.FieldLogger
	keys  keyMap

	list  list.Model
	input textinput.Model
	mode  mode

	editID string // item being edited while mode == modeEdit
	status string

	width, height int
}

// New builds the model over s. log may be nil.
func New(s *store.Store, theme ui.Theme, log logrus.FieldLogger) Model {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("item", "items")
	l.Styles.HelpStyle = theme.Help.Padding(1, 0, 0, 0)
	l.Styles.PaginationStyle = theme.Help
	l.Styles.NoItems = theme.Muted
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.AdditionalFullHelpKeys = keys.FullHelp

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		store:  s,
		theme:  theme,
		log:    log,
		keys:   keys,
		list:   l,
		input:  ti,
		width:  80,
		height: 24,
	}
	m.resize()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *store.Store, theme ui.Theme, log logrus.FieldLogger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(s, theme, log), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	if m.mode != modeBrowse {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.openInput(modeAdd, "", "New item...")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editID = it.ID
		m.openInput(modeEdit, it.Text, "Edit item...")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			m.store.Toggle(it.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			m.store.Remove(it.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearDone):
		m.store.ClearDone()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		m.store.ClearAll()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.MarkAll):
		m.store.MarkAllDone()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(model.FilterAll)
		return m, nil
	case key.Matches(msg, m.keys.FilterOpen):
		m.setFilter(model.FilterOpen)
		return m, nil
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(model.FilterDone)
		return m, nil
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.store.Filter().Next())
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles the inline add/edit box. Cancelling never reaches the store.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if m.mode == modeAdd {
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			m.store.Create(text)
			m.closeInput()
			m.refresh()
			m.list.Select(0)
			return m, nil
		}
		m.store.Edit(m.editID, text)
		m.closeInput()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openInput(md mode, value, placeholder string) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.resize()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m *Model) setFilter(f model.Filter) {
	m.store.SetFilter(f)
	m.log.WithField("filter", f).Debug("filter changed")
	m.refresh()
	m.list.Select(0)
}

// refresh re-derives the rendered rows from the store.
func (m *Model) refresh() {
	view := m.store.View()
	items := make([]list.Item, 0, len(view))
	for _, it := range view {
		items = append(items, listItem{it})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	m.status = ""
	if err := m.store.PersistErr(); err != nil {
		m.status = "save failed: " + err.Error()
	}
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.Item, ok
}

// header, progress, blank, footer, status and the panel border
const chromeHeight = 8

func (m *Model) resize() {
	h := m.height - chromeHeight
	if m.mode != modeBrowse {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	th := m.theme
	open, done := m.store.Stats()

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), open,
		th.Accent.Render("Total"), open+done,
	)

	tabs := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		label := " " + f.Label() + " "
		if f == m.store.Filter() {
			tabs = append(tabs, th.Selected.Render(label))
		} else {
			tabs = append(tabs, th.Muted.Render(label))
		}
	}
	sub := th.Muted.Render(ui.ProgressBar(done, open+done, 28)) + "   " + strings.Join(tabs, " ")

	parts := []string{header, sub, "", m.list.View()}

	if m.mode != modeBrowse {
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item"
		}
		box := lipgloss.NewStyle().
			Border(th.Border).
			BorderForeground(th.BorderColor).
			Padding(0, 1)
		parts = append(parts, box.Render(title+"\n"+m.input.View()))
	}

	parts = append(parts, th.Muted.Render(ui.Summary(th, open, done)))
	if m.status != "" {
		parts = append(parts, th.Error.Render(m.status))
	}
	return ui.PanelString(th, strings.Join(parts, "\n"))
}
