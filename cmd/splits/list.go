package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/Zuo-Peng/splits/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func listCmd() *cobra.Command {
	var limit int
	var hideKills bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse runs sorted by finish time",
		Long: `Opens the run browser when stdout is a terminal: paste logs into the input box,
browse runs fastest first, open one for its checkpoints. Output is TSV for pipes:
  id, finishTime, readableFinishTime, delta, createdOn, checkpoints`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			if term.IsTerminal(int(os.Stdout.Fd())) {
				opts := renderOptions(cfg, hideKills)
				return tui.Run(book, tui.Options{HideKills: opts.HideKills, Render: opts})
			}

			for i, r := range book.Runs() {
				if limit > 0 && i >= limit {
					break
				}
				delta := "-"
				if d, ok := book.Delta(r); ok && i > 0 {
					delta = render.DeltaLabel(d)
				}
				finish := "-"
				if r.Valid() {
					finish = fmt.Sprint(r.FinishTime)
				}
				fmt.Printf("%s\t%s\t%s\t%s\t%s\t%d\n",
					r.ID,
					finish,
					render.FinishLabel(r),
					delta,
					r.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
					len(r.Ticks),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max runs (0 = no limit)")
	cmd.Flags().BoolVar(&hideKills, "hide-kills", false, "Start with kill checkpoints hidden")

	return cmd
}
