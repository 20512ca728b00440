package store

import (
	"slices"

	"github.com/Zuo-Peng/splits/internal/parse"
)

// Memory keeps runs in process. Saves are deep copies so callers cannot
// mutate stored rows.
type Memory struct {
	runs  []parse.RawRun
	saves int
}

func NewMemory(runs ...parse.RawRun) *Memory {
	return &Memory{runs: cloneRuns(runs)}
}

func (m *Memory) Load() ([]parse.RawRun, error) {
	return cloneRuns(m.runs), nil
}

func (m *Memory) Save(runs []parse.RawRun) error {
	m.runs = cloneRuns(runs)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	return m.saves
}

func (m *Memory) Close() error {
	return nil
}

func cloneRuns(runs []parse.RawRun) []parse.RawRun {
	if runs == nil {
		return nil
	}
	out := make([]parse.RawRun, len(runs))
	for i, r := range runs {
		r.Rows = slices.Clone(r.Rows)
		out[i] = r
	}
	return out
}
