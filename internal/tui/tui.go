package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/Zuo-Peng/splits/internal/runs"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tuiMode int

const (
	modeList tuiMode = iota
	modeDetail
)

// inputHeight is the number of text lines shown in the paste box.
const inputHeight = 3

type Options struct {
	HideKills bool
	Render    render.Options
}

type model struct {
	book       *runs.Book
	renderOpts render.Options
	hideKills  bool

	mode       tuiMode
	inputFocus bool
	confirming bool

	input      textarea.Model
	lastInput  string
	runs       []parse.Run
	cursor     int
	listOffset int
	preview    viewport.Model
	status     string

	copy     func(string) error
	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(book *runs.Book, opts Options) model {
	ta := textarea.New()
	ta.Placeholder = "Paste !l -command output here"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(inputHeight)
	ta.Focus()

	m := model{
		book:       book,
		renderOpts: opts.Render,
		hideKills:  opts.HideKills,
		inputFocus: true,
		input:      ta,
		preview:    viewport.New(0, 0),
		copy:       copyToClipboard,
	}
	m.reload()
	return m
}

// Run starts the browser and blocks until it exits.
func Run(book *runs.Book, opts Options) error {
	p := tea.NewProgram(newModel(book, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.SetWidth(m.innerWidth())
		m.resizePreview()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if m.mode == modeDetail {
			return m.updateDetail(msg)
		}
		if m.inputFocus {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	// paste and blink messages belong to the text area
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.checkInput()
	return m, cmd
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirming = false
	if !key.Matches(msg, keys.Confirm) {
		m.status = "Remove cancelled"
		return m, nil
	}
	r, ok := m.current()
	if !ok {
		return m, nil
	}
	if err := m.book.Remove(r.ID); err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}
	m.status = "Removed run " + render.FinishLabel(r)
	m.mode = modeList
	m.reload()
	m.resizePreview()
	return m, nil
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.mode = modeList
		m.resizePreview()
		return m, nil
	case key.Matches(msg, keys.Kills):
		m.toggleKills()
		return m, nil
	case key.Matches(msg, keys.Remove):
		m.confirming = true
		return m, nil
	case key.Matches(msg, keys.Copy):
		m.copyCurrent()
		return m, nil
	case key.Matches(msg, keys.PreviewUp):
		m.preview.LineUp(m.preview.Height / 2)
		return m, nil
	case key.Matches(msg, keys.PreviewDn):
		m.preview.LineDown(m.preview.Height / 2)
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Focus) || msg.Type == tea.KeyEsc {
		m.inputFocus = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.checkInput()
	return m, cmd
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Focus):
		m.inputFocus = true
		return m, m.input.Focus()
	case key.Matches(msg, keys.Back):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustListScroll(m.panelHeight())
			m.refreshPreview()
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.runs)-1 {
			m.cursor++
			m.adjustListScroll(m.panelHeight())
			m.refreshPreview()
		}
	case key.Matches(msg, keys.Enter):
		if _, ok := m.current(); ok {
			m.mode = modeDetail
			m.resizePreview()
			m.preview.GotoTop()
		}
	case key.Matches(msg, keys.Kills):
		m.toggleKills()
	case key.Matches(msg, keys.Remove):
		if _, ok := m.current(); ok {
			m.confirming = true
		}
	case key.Matches(msg, keys.Copy):
		m.copyCurrent()
	case key.Matches(msg, keys.PreviewUp):
		m.preview.LineUp(m.panelHeight() / 2)
	case key.Matches(msg, keys.PreviewDn):
		m.preview.LineDown(m.panelHeight() / 2)
	}
	return m, nil
}

// checkInput hands the current paste buffer to the book whenever it changes.
func (m *model) checkInput() {
	text := m.input.Value()
	if text == m.lastInput {
		return
	}
	m.lastInput = text

	run, accepted, err := m.book.Input(text)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	if !accepted {
		return
	}

	m.input.Reset()
	m.lastInput = ""
	m.reload()
	if i := slices.IndexFunc(m.runs, func(r parse.Run) bool { return r.ID == run.ID }); i >= 0 {
		m.cursor = i
		m.adjustListScroll(m.panelHeight())
		m.refreshPreview()
	}
	if run.Valid() {
		m.status = "Added run " + run.ReadableFinishTime
	} else {
		m.status = "Added run with invalid finish time"
	}
}

func (m *model) reload() {
	m.runs = m.book.Runs()
	if m.cursor >= len(m.runs) {
		m.cursor = max(len(m.runs)-1, 0)
	}
	m.adjustListScroll(m.panelHeight())
	m.refreshPreview()
}

func (m *model) toggleKills() {
	m.hideKills = !m.hideKills
	m.refreshPreview()
	if m.hideKills {
		m.status = "Kills hidden"
	} else {
		m.status = "Kills shown"
	}
}

func (m *model) copyCurrent() {
	r, ok := m.current()
	if !ok || !r.Valid() {
		return
	}
	if err := m.copy(r.ReadableFinishTime); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + r.ReadableFinishTime
}

func (m model) current() (parse.Run, bool) {
	if len(m.runs) == 0 || m.cursor >= len(m.runs) {
		return parse.Run{}, false
	}
	return m.runs[m.cursor], true
}

func (m *model) resizePreview() {
	if m.mode == modeDetail {
		m.preview = viewport.New(m.innerWidth(), m.detailHeight())
	} else {
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
	}
	m.refreshPreview()
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	status := m.statusBar()

	if m.mode == modeDetail {
		modal := styleActiveBorder.
			Width(m.innerWidth()).
			Height(m.detailHeight()).
			Render(m.preview.View())
		return lipgloss.JoinVertical(lipgloss.Left, modal, status)
	}

	inputStyle := stylePanelBorder
	listStyle := styleActiveBorder
	if m.inputFocus {
		inputStyle, listStyle = styleActiveBorder, stylePanelBorder
	}
	inputBox := inputStyle.Width(m.innerWidth()).Render(m.input.View())

	panelH := m.panelHeight()
	listPanel := listStyle.
		Width(m.listWidth()).
		Height(panelH).
		Render(m.renderList(m.listWidth(), panelH))
	previewPanel := stylePanelBorder.
		Width(m.previewWidth()).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, inputBox, panels, status)
}

// helper methods

func (m model) innerWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-2, 20)
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 32
	}
	// 35% for list, minus border padding
	return max(m.width*35/100-2, 20)
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 48
	}
	return max(m.width-m.listWidth()-4, 20)
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input box (inputHeight + 2) + status bar (1) + borders (2)
	return max(m.height-inputHeight-5, 3)
}

func (m model) detailHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-3, 3)
}

func (m model) statusBar() string {
	if m.confirming {
		r, _ := m.current()
		return styleConfirm.Render(fmt.Sprintf("Remove run %s? y to confirm, any other key to cancel", render.FinishLabel(r)))
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d runs", len(m.runs)))
	if m.status != "" {
		parts = append(parts, m.status)
	}
	switch {
	case m.mode == modeDetail:
		parts = append(parts, "h kills", "d remove", "c copy", "Esc close")
	case m.inputFocus:
		parts = append(parts, "paste a run", "C-v clipboard", "Tab/Esc list")
	default:
		parts = append(parts, "up/dn navigate", "Enter open", "h kills", "d remove", "Tab paste", "Esc quit")
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
