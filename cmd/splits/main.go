package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/Zuo-Peng/splits/internal/config"
	"github.com/Zuo-Peng/splits/internal/render"
	"github.com/Zuo-Peng/splits/internal/runs"
	"github.com/Zuo-Peng/splits/internal/store"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "splits",
		Short:        "Splits - keep and compare timed run logs",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openBook loads the config and the run book behind it. The caller closes
// the returned store.
func openBook() (*config.Config, *runs.Book, store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	s, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	book, err := runs.New(s, bookOptions(cfg)...)
	if err != nil {
		s.Close()
		return nil, nil, nil, err
	}
	return cfg, book, s, nil
}

func bookOptions(cfg *config.Config) []runs.Option {
	return []runs.Option{runs.WithParser(cfg.Parser())}
}

func renderOptions(cfg *config.Config, hideKills bool) render.Options {
	// validated by config.Load
	hl := regexp.MustCompile(cfg.Highlight)
	return render.Options{
		HideKills: hideKills || cfg.HideKills,
		Highlight: hl,
	}
}
