// Package store persists the list of raw runs. Every backend reads and
// rewrites the whole list; there is no incremental update protocol.
package store

import (
	"fmt"

	"github.com/Zuo-Peng/splits/internal/parse"
)

// Store is the persistence boundary for raw runs.
type Store interface {
	Load() ([]parse.RawRun, error)
	Save(runs []parse.RawRun) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// Open returns the store for backend. path is ignored for the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenDB(path)
	case BackendJSON:
		return NewJSONStore(path), nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}
