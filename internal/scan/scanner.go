package scan

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// DefaultExts are the file extensions picked up when scanning a directory.
var DefaultExts = []string{".log", ".txt"}

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// ScanPaths expands paths into the log files to import. Files are taken as
// given; directories are walked for files with one of exts. Results are
// ordered by modification time, oldest first, so imports keep the order the
// runs happened in.
func ScanPaths(paths []string, exts []string) ([]FileInfo, error) {
	if len(exts) == 0 {
		exts = DefaultExts
	}

	var files []FileInfo
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, FileInfo{Path: p, Mtime: info.ModTime().Unix(), Size: info.Size()})
			continue
		}
		found, err := scanDir(p, exts)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		files = append(files, found...)
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Mtime < files[j].Mtime })
	return files, nil
}

func scanDir(root string, exts []string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	return files, err
}
