package open

import (
	"os"
	"testing"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRows(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	run := parse.BuildRun(parse.RawRun{ID: "abc", Rows: []string{"00:00.000 started", "00:01.000 finished"}})

	path, err := WriteRows(run)
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "00:00.000 started\n00:01.000 finished\n", string(data))
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+3", "/tmp/f.log"}},
		{"code", []string{"code", "--wait", "--goto", "/tmp/f.log:3"}},
		{"less", []string{"less", "+3", "/tmp/f.log"}},
		{"nano", []string{"nano", "/tmp/f.log"}},
	}
	for _, tt := range tests {
		cmd := EditorCommand(tt.editor, "/tmp/f.log", 3)
		assert.Equal(t, tt.want, cmd.Args, tt.editor)
	}
}

func TestOpenRunUsesEditor(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("EDITOR", "true")
	run := parse.BuildRun(parse.RawRun{ID: "abc", Rows: []string{"00:00.000 started"}})
	assert.NoError(t, OpenRun(run, 99))
}
