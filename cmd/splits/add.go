package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var fromClipboard bool

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Add a run from pasted log output",
		Long: `Reads log output from a file, stdin, or the clipboard and stores the lines
between the first line containing "started" and the first containing "finished".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, fromClipboard)
			if err != nil {
				return err
			}

			_, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := book.Add(text)
			if errors.Is(err, parse.ErrNoCompleteRun) {
				return fmt.Errorf("%w: input needs a line containing %q and a later one containing %q",
					err, parse.StartMarker, parse.FinishMarker)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Added run %s  finish %s  (%d checkpoints)\n", run.ID, render.FinishLabel(run), len(run.Ticks))
			if !run.Valid() {
				fmt.Fprintf(os.Stderr, "WARN: %v\n", run.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the log from the clipboard")

	return cmd
}

func readInput(args []string, fromClipboard bool) (string, error) {
	switch {
	case fromClipboard:
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return text, nil
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
