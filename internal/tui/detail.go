package tui

import (
	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/render"
)

// renderDetail renders a run the way the detail modal and preview show it.
func (m model) renderDetail(r parse.Run, width int) string {
	opts := m.renderOpts
	opts.HideKills = m.hideKills
	opts.Width = width

	var delta int64
	hasDelta := false
	if len(m.runs) > 0 && m.runs[0].ID != r.ID && m.runs[0].Valid() && r.Valid() {
		delta = r.FinishTime - m.runs[0].FinishTime
		hasDelta = true
	}
	return render.Run(r, delta, hasDelta, opts)
}

// refreshPreview re-renders the run under the cursor, or the open run in
// detail mode.
func (m *model) refreshPreview() {
	r, ok := m.current()
	if !ok {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(m.renderDetail(r, m.preview.Width))
}
