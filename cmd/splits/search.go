package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/splits/internal/search"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string, color bool) string {
	open, closing := "", ""
	if color {
		open, closing = sColorBoldRed, sColorReset
	}
	snippet = strings.ReplaceAll(snippet, ">>>", open)
	snippet = strings.ReplaceAll(snippet, "<<<", closing)
	return snippet
}

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find checkpoints across all runs",
		Long: `Case-insensitive search over checkpoint text. Output is TSV:
  runId, checkpointIndex, time, runFinish, snippet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			results := search.Search(book.Runs(), search.Options{Query: args[0], Limit: limit})
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = colorizeSnippet(snippet, color)
				finish := r.FinishTime
				if color {
					finish = sColorGreen + finish + sColorReset
				}
				readable := r.ReadableTime
				if color {
					readable = sColorDim + readable + sColorReset
				}
				// first two fields stay plain for cut/fzf
				fmt.Printf("%s\t%d\t%s\t%s\t%s\n", r.RunID, r.TickIndex, readable, finish, snippet)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
