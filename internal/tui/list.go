package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// renderList renders the left panel: runs sorted by finish time.
func (m model) renderList(width, height int) string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No runs yet\npaste a log above")
	}

	var lines []string
	for i, r := range m.runs {
		if i < m.listOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, formatRunLine(r, m.runs[0], i, width, i == m.cursor))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatRunLine formats one run as:
//
//	[>] finish  +delta  MM-DD HH:MM
func formatRunLine(r, best parse.Run, idx, width int, selected bool) string {
	var finish string
	if r.Valid() {
		finish = styleFinish.Render(r.ReadableFinishTime)
	} else {
		finish = styleInvalid.Render(render.InvalidTime)
	}

	delta := strings.Repeat(" ", 8)
	if idx > 0 && r.Valid() && best.Valid() {
		d := runewidth.FillRight(render.DeltaLabel(r.FinishTime-best.FinishTime), 8)
		delta = styleDelta.Render(d)
	}

	created := r.CreatedAt().Local().Format("01-02 15:04")
	line := fmt.Sprintf("%s %s %s", finish, delta, lipgloss.NewStyle().Foreground(colorDim).Render(created))
	if !r.Valid() {
		line += " " + styleInvalid.Render("invalid")
	}

	if width > 2 && lipgloss.Width(line) > width-2 {
		line = ansi.Truncate(line, width-2, "")
	}

	if selected {
		return styleListSelected.Render("> ") + line
	}
	return "  " + line
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
