package main

import (
	"fmt"

	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	var hideKills bool
	var query string
	var width int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the checkpoints of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := book.Lookup(args[0])
			if err != nil {
				return err
			}

			delta, hasDelta := book.Delta(run)
			opts := renderOptions(cfg, hideKills)
			opts.Query = query
			opts.Width = width

			fmt.Print(render.Run(run, delta, hasDelta, opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&hideKills, "hide-kills", false, "Hide checkpoints mentioning kills")
	cmd.Flags().StringVar(&query, "query", "", "Highlight these words in checkpoint text")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap output at this width (0 = no wrap)")

	return cmd
}
