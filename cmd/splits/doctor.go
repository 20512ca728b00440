package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/splits/internal/config"
	"github.com/Zuo-Peng/splits/internal/runs"
	"github.com/Zuo-Peng/splits/internal/store"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, store, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if p := os.Getenv(config.EnvConfigPath); p != "" {
				fmt.Printf("  File: %s (from %s)\n", p, config.EnvConfigPath)
			}
			fmt.Printf("  Store:     %s\n", cfg.Store)
			fmt.Printf("  Highlight: %s\n", cfg.Highlight)
			fmt.Printf("  HideKills: %v\n", cfg.HideKills)
			checkDir("Import dir", cfg.ImportDir)

			fmt.Println("\n=== Store ===")
			path := cfg.StorePath()
			fmt.Printf("  Path: %s\n", path)
			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (add a run first)")
				return nil
			}

			s, err := cfg.OpenStore()
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			if db, ok := s.(*store.DB); ok {
				ver, err := db.SchemaVersion()
				if err != nil {
					fmt.Printf("  Schema: error: %v\n", err)
				} else {
					fmt.Printf("  Schema: v%s\n", ver)
				}
				if n, err := db.RunCount(); err != nil {
					fmt.Printf("  Rows:   error: %v\n", err)
				} else {
					fmt.Printf("  Rows:   %d\n", n)
				}
			}

			book, err := runs.New(s, bookOptions(cfg)...)
			if err != nil {
				return err
			}

			all := book.Runs()
			invalid := 0
			for _, r := range all {
				if !r.Valid() {
					invalid++
				}
			}
			fmt.Printf("  Runs:    %d\n", len(all))
			fmt.Printf("  Invalid: %d\n", invalid)
			if best, ok := book.Best(); ok {
				fmt.Printf("  Best:    %s (%s)\n", best.ReadableFinishTime, best.ID)
			}

			if info != nil {
				sizeKB := float64(info.Size()) / 1024
				fmt.Printf("\n=== Store Size: %.1f KB ===\n", sizeKB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
