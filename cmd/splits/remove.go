package main

import (
	"fmt"

	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/spf13/cobra"
)

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a run",
		Args:    cobra.ExactArgs(1),
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
			if err := book.Remove(run.ID); err != nil {
				return err
			}

			fmt.Printf("Removed run %s  finish %s\n", run.ID, render.FinishLabel(run))
			return nil
		},
	}
}
