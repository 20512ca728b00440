package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/google/uuid"
)

// JSONStore keeps the run list in a single JSON file, the same shape as the
// browser local-storage slot: [{"createdOn": ..., "rows": [...]}].
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]parse.RawRun, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs: %w", err)
	}
	runs, assigned, err := decodeRuns(data)
	if err != nil {
		return nil, err
	}
	// persist generated ids so they stay stable across invocations
	if assigned > 0 {
		if err := s.Save(runs); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// DecodeRuns parses a JSON array of raw runs. Records written before runs
// had ids get a fresh one.
func DecodeRuns(data []byte) ([]parse.RawRun, error) {
	runs, _, err := decodeRuns(data)
	return runs, err
}

func decodeRuns(data []byte) ([]parse.RawRun, int, error) {
	var runs []parse.RawRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, 0, fmt.Errorf("parse runs: %w", err)
	}
	assigned := 0
	for i := range runs {
		if runs[i].ID == "" {
			runs[i].ID = uuid.NewString()
			assigned++
		}
	}
	return runs, assigned, nil
}

func (s *JSONStore) Save(runs []parse.RawRun) error {
	if runs == nil {
		runs = []parse.RawRun{}
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal runs: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp runs file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename runs file: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
