package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/splits/internal/parse"
)

// OpenRun writes the rows of run to a temporary file and opens it in
// $EDITOR (less when unset), positioned at line. The file is removed once
// the editor exits.
func OpenRun(run parse.Run, line int) error {
	path, err := WriteRows(run)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	if line < 1 || line > len(run.Rows) {
		line = 1
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	return EditorCommand(editor, path, line).Run()
}

// WriteRows dumps the raw rows of run into a new temp file and returns its path.
func WriteRows(run parse.Run) (string, error) {
	f, err := os.CreateTemp("", "splits-"+run.ID+"-*.log")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(run.Rows, "\n") + "\n"); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write rows: %w", err)
	}
	return f.Name(), nil
}

// EditorCommand builds the command that opens filePath at lineNum.
func EditorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		cmd = exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--wait", "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		cmd = exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		cmd = exec.Command(editor, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
