package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/splits/internal/runs"
	"github.com/Zuo-Peng/splits/internal/scan"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var legacy bool
	var exts []string

	cmd := &cobra.Command{
		Use:   "import [path...]",
		Short: "Import runs from log files or a browser local-storage export",
		Long: `Imports one run per file. Directories are walked for matching files; with no
arguments the configured import_dir is scanned. With --legacy each path is a
JSON array of {createdOn, rows} as saved by the browser version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, book, s, err := openBook()
			if err != nil {
				return err
			}
			defer s.Close()

			paths := args
			if len(paths) == 0 {
				paths = []string{cfg.ImportDir}
			}

			warn := func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, "  WARN: "+format+"\n", args...)
			}

			if legacy {
				var total runs.Stats
				for _, p := range paths {
					fmt.Fprintf(os.Stderr, "Importing %s\n", p)
					stats, err := book.ImportLegacy(p, warn)
					if err != nil {
						return fmt.Errorf("import: %w", err)
					}
					total = addStats(total, stats)
				}
				fmt.Fprintf(os.Stderr, "Done. %s\n", total)
				return nil
			}

			fmt.Fprintf(os.Stderr, "Scanning...\n")
			for _, p := range paths {
				fmt.Fprintf(os.Stderr, "  %s\n", p)
			}

			files, err := scan.ScanPaths(paths, exts)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			stats := book.ImportFiles(files, warn)
			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "Paths are local-storage JSON exports")
	cmd.Flags().StringSliceVar(&exts, "ext", scan.DefaultExts, "File extensions to pick up in directories")

	return cmd
}

func addStats(a, b runs.Stats) runs.Stats {
	return runs.Stats{
		Scanned:    a.Scanned + b.Scanned,
		Added:      a.Added + b.Added,
		Duplicates: a.Duplicates + b.Duplicates,
		Skipped:    a.Skipped + b.Skipped,
		Errors:     a.Errors + b.Errors,
	}
}
