package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/runs"
	"github.com/Zuo-Peng/splits/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeRun = "00:00.000 | 0 | started\n00:02.000 | 1 | kill rat\n00:05.123 | 2 | pickup\n00:10.456 | 3 | finished"

func testModel(t *testing.T, raws ...parse.RawRun) (model, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(raws...)
	book, err := runs.New(mem)
	require.NoError(t, err)

	m := newModel(book, Options{})
	m.copy = func(string) error { return nil }
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 30}), mem
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func pasteMsg(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rawRun(id, finish string) parse.RawRun {
	return parse.RawRun{ID: id, CreatedOn: 1700000000000, Rows: []string{
		"00:00.000 | 0 | started",
		"00:01.000 | 1 | kill rat",
		finish + " | 2 | finished",
	}}
}

func TestPasteCompleteRun(t *testing.T) {
	m, mem := testModel(t)
	m = send(m, pasteMsg(completeRun))

	require.Len(t, m.runs, 1)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "Added run 00:10.456", m.status)

	stored, err := mem.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Rows, 4)
}

func TestPartialPasteStaysBuffered(t *testing.T) {
	m, mem := testModel(t)
	m = send(m, pasteMsg("00:00.000 | 0 | started\n00:02.000 | 1 | pickup"))

	assert.Empty(t, m.runs)
	assert.Contains(t, m.input.Value(), "pickup")
	assert.Equal(t, 0, mem.Saves())

	m = send(m, pasteMsg("\n00:04.000 | 2 | finished"))
	assert.Len(t, m.runs, 1)
	assert.Equal(t, "", m.input.Value())
}

func TestListSortedWithDelta(t *testing.T) {
	m, _ := testModel(t, rawRun("slow", "01:30.000"), rawRun("fast", "01:00.000"))

	require.Len(t, m.runs, 2)
	assert.Equal(t, "fast", m.runs[0].ID)

	view := m.View()
	assert.Contains(t, view, "01:00.000")
	assert.Contains(t, view, "+30000")
}

func TestRemoveWithConfirm(t *testing.T) {
	m, mem := testModel(t, rawRun("a", "01:00.000"), rawRun("b", "01:30.000"))

	m = send(m, keyMsg("tab"), keyMsg("j"), keyMsg("d"))
	require.True(t, m.confirming)
	assert.Contains(t, m.View(), "Remove run 01:30.000?")

	m = send(m, keyMsg("y"))
	assert.False(t, m.confirming)
	require.Len(t, m.runs, 1)
	assert.Equal(t, "a", m.runs[0].ID)
	assert.Equal(t, 0, m.cursor)

	stored, err := mem.Load()
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRemoveCancelled(t *testing.T) {
	m, _ := testModel(t, rawRun("a", "01:00.000"))
	m = send(m, keyMsg("tab"), keyMsg("d"), keyMsg("n"))
	assert.Len(t, m.runs, 1)
	assert.Equal(t, "Remove cancelled", m.status)
}

func TestDetailKillToggle(t *testing.T) {
	m, _ := testModel(t, rawRun("a", "01:00.000"))

	m = send(m, keyMsg("tab"), keyMsg("enter"))
	require.Equal(t, modeDetail, m.mode)
	assert.Contains(t, m.preview.View(), "kill rat")

	m = send(m, keyMsg("h"))
	assert.True(t, m.hideKills)
	assert.NotContains(t, m.preview.View(), "kill rat")
	assert.Len(t, m.runs[0].Ticks, 3, "hiding kills never drops ticks from the run")

	m = send(m, keyMsg("esc"))
	assert.Equal(t, modeList, m.mode)
}

func TestCopyFinishTime(t *testing.T) {
	m, _ := testModel(t, rawRun("a", "01:00.000"))
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m = send(m, keyMsg("tab"), keyMsg("c"))
	assert.Equal(t, "01:00.000", copied)
	assert.Equal(t, "Copied 01:00.000", m.status)
}

func TestEscFromListQuits(t *testing.T) {
	m, _ := testModel(t)
	m = send(m, keyMsg("esc"))
	assert.False(t, m.inputFocus)

	next, cmd := m.Update(keyMsg("esc"))
	assert.True(t, next.(model).quitting)
	require.NotNil(t, cmd)
}

func TestBrowserFlow(t *testing.T) {
	m, _ := testModel(t, rawRun("a", "01:00.000"))

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("01:00.000"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(pasteMsg(completeRun))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Added run 00:10.456"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	fm := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(model)
	assert.Len(t, fm.runs, 2)
	assert.Equal(t, "00:10.456", fm.runs[0].ReadableFinishTime)
}
