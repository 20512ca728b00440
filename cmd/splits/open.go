package main

import (
	"github.com/Zuo-Peng/splits/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var line int

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open the raw rows of a run in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := book.Lookup(args[0])
			if err != nil {
				return err
			}
			return open.OpenRun(run, line)
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "Row to jump to")

	return cmd
}
