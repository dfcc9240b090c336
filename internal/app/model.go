package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"unidiff/internal/clipboard"
	"unidiff/internal/diffview"
)

// Options describes the diff shown by the pager.
type Options struct {
	Title string
	// Patch is the plain unified text; it is what the copy key puts on the
	// clipboard.
	Patch string
	// Display is the text shown in unified mode, usually Patch with colours.
	Display string
	Rows    []diffview.DiffRow
	Split   bool
}

type clipboardResultMsg struct {
	err error
}

// Model is the Bubble Tea state container for the pager.
type Model struct {
	keys KeyMap

	title   string
	patch   string
	display string
	rows    []diffview.DiffRow
	copy    func(string) error

	width    int
	height   int
	ready    bool
	split    bool
	helpOpen bool
	cursor   int
	status   string

	view    viewport.Model
	oldView viewport.Model
	newView viewport.Model
}

func NewModel(opts Options) Model {
	display := opts.Display
	if display == "" {
		display = opts.Patch
	}
	if display == "" {
		display = "No differences."
	}
	return Model{
		keys:    defaultKeyMap(),
		title:   opts.Title,
		patch:   opts.Patch,
		display: strings.TrimSuffix(display, "\n"),
		rows:    opts.Rows,
		copy:    clipboard.CopyText,
		split:   opts.Split && len(opts.Rows) > 0,
		view:    viewport.New(0, 0),
		oldView: viewport.New(0, 0),
		newView: viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Copied patch to clipboard."
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSplit):
		if len(m.rows) == 0 {
			m.status = "Nothing to split."
			return m, nil
		}
		m.split = !m.split
		m.status = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.patch == "" {
			m.status = "Nothing to copy."
			return m, nil
		}
		return m, m.copyCmd()

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.pageSize())
	case key.Matches(msg, m.keys.Top):
		m.move(-m.lineCount())
	case key.Matches(msg, m.keys.Bottom):
		m.move(m.lineCount())
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	mode := "unified"
	if m.split {
		mode = "split"
	}
	title := fmt.Sprintf("%s [%s]", m.title, mode)
	if m.status != "" {
		title += "  " + m.status
	}
	header := lipgloss.NewStyle().Bold(true).Render(truncateLinesToWidth(title, m.width))

	body := m.view.View()
	if m.split {
		divider := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Render(strings.TrimSuffix(strings.Repeat("│\n", m.oldView.Height), "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.oldView.View(), divider, m.newView.View())
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Render(truncateLinesToWidth(m.helpText(), m.width))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "j/k move | ctrl-f/b page | g/G top/bottom | s split | y copy | ? help | q quit"
	}
	return strings.Join([]string{
		"Navigation: j/k or arrows move, ctrl-f/ctrl-b or space page, g/G top/bottom",
		"View: s toggles unified and side-by-side columns; in split mode the cursor row is marked with >",
		"Other: y copies the plain patch to the clipboard, ? toggles help, q quits",
	}, "\n")
}

func (m *Model) resize() {
	footerHeight := lipgloss.Height(m.helpText())
	h := bodyHeight(m.height, footerHeight)
	w := max(1, m.width)

	m.view.Width = w
	m.view.Height = h
	oldW, newW := splitWidths(w)
	m.oldView.Width = oldW
	m.oldView.Height = h
	m.newView.Width = newW
	m.newView.Height = h
	m.refresh()
}

// refresh re-renders the content of both modes for the current sizes.
func (m *Model) refresh() {
	m.view.SetContent(m.display)
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor, 0), len(m.rows)-1)
	oldLines, newLines := diffview.RenderSplit(m.rows, m.oldView.Width, m.newView.Width, m.cursor)
	m.oldView.SetContent(strings.Join(oldLines, "\n"))
	m.newView.SetContent(strings.Join(newLines, "\n"))
	m.ensureCursorVisible()
}

func (m *Model) move(delta int) {
	if !m.split {
		m.view.SetYOffset(m.view.YOffset + delta)
		return
	}
	m.cursor += delta
	m.refresh()
}

func (m *Model) ensureCursorVisible() {
	top := m.oldView.YOffset
	switch {
	case m.cursor < top:
		top = m.cursor
	case m.cursor >= top+m.oldView.Height:
		top = m.cursor - m.oldView.Height + 1
	}
	m.oldView.SetYOffset(top)
	m.newView.SetYOffset(top)
}

func (m Model) pageSize() int {
	return max(1, m.view.Height-1)
}

func (m Model) lineCount() int {
	if m.split {
		return len(m.rows)
	}
	return m.view.TotalLineCount()
}

func (m Model) copyCmd() tea.Cmd {
	text := m.patch
	copyFn := m.copy
	return func() tea.Msg {
		return clipboardResultMsg{err: copyFn(text)}
	}
}
