package main

import (
	"fmt"

	"github.com/Zuo-Peng/splits/internal/compare"
	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "compare <idA> <idB>",
		Short: "Compare two runs checkpoint by checkpoint",
		Long:  `Lines up the checkpoints of two runs by position. The last column is B minus A in milliseconds.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := book.Lookup(args[0])
			if err != nil {
				return err
			}
			b, err := book.Lookup(args[1])
			if err != nil {
				return err
			}

			fmt.Print(render.Comparison(a, b, compare.Compare(a, b), width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap output at this width (0 = no wrap)")

	return cmd
}
