package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func exportCmd() *cobra.Command {
	var format string
	var raw bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all runs to stdout as JSON or YAML",
		Long: `Exports runs sorted by finish time with their checkpoints. With --raw only the
stored form {id, createdOn, rows} is written, in insertion order, which
"import --legacy" reads back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			var out any = book.Runs()
			if raw {
				stored := book.Raw()
				if stored == nil {
					stored = []parse.RawRun{}
				}
				out = stored
			}

			switch format {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json/yaml)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Export stored rows only")

	return cmd
}
