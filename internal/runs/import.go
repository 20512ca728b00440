package runs

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/scan"
	"github.com/Zuo-Peng/splits/internal/store"
)

type Stats struct {
	Scanned    int
	Added      int
	Duplicates int
	Skipped    int
	Errors     int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d added=%d duplicates=%d skipped=%d errors=%d",
		s.Scanned, s.Added, s.Duplicates, s.Skipped, s.Errors)
}

// maxImportSize caps the log files read by ImportFiles.
const maxImportSize = 10 * 1024 * 1024 // 10MB

// Warnf receives per-file problems during an import.
type Warnf func(format string, args ...any)

// ImportFiles adds the run found in each file. Files without a complete run
// are skipped and runs already in the book are not added twice.
func (b *Book) ImportFiles(files []scan.FileInfo, warn Warnf) Stats {
	var stats Stats
	stats.Scanned = len(files)

	for _, fi := range files {
		if fi.Size > maxImportSize {
			stats.Skipped++
			warn("skip %s: %d bytes is over the %d byte limit", fi.Path, fi.Size, maxImportSize)
			continue
		}
		data, err := os.ReadFile(fi.Path)
		if err != nil {
			stats.Errors++
			warn("read %s: %v", fi.Path, err)
			continue
		}

		raw, err := b.parser.NewRawRun(string(data), fi.Mtime*1000)
		if err != nil {
			if errors.Is(err, parse.ErrNoCompleteRun) {
				stats.Skipped++
				continue
			}
			stats.Errors++
			warn("parse %s: %v", fi.Path, err)
			continue
		}

		if b.Contains(raw.Rows) {
			stats.Duplicates++
			continue
		}
		if _, err := b.Append(raw); err != nil {
			stats.Errors++
			warn("store %s: %v", fi.Path, err)
			continue
		}
		stats.Added++
	}
	return stats
}

// ImportLegacy adds runs from a JSON export of the browser local-storage
// slot: an array of {createdOn, rows}. Records whose id is already stored
// keep their rows under a new id.
func (b *Book) ImportLegacy(path string, warn Warnf) (Stats, error) {
	var stats Stats

	data, err := os.ReadFile(path)
	if err != nil {
		return stats, fmt.Errorf("read %s: %w", path, err)
	}
	raws, err := store.DecodeRuns(data)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}

	stats.Scanned = len(raws)
	for _, raw := range raws {
		if len(raw.Rows) == 0 {
			stats.Skipped++
			continue
		}
		if b.Contains(raw.Rows) {
			stats.Duplicates++
			continue
		}
		if _, err := b.Append(raw); err != nil {
			stats.Errors++
			warn("store run %s: %v", raw.ID, err)
			continue
		}
		stats.Added++
	}
	return stats, nil
}
