package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/splits/internal/parse"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    position   INTEGER NOT NULL,
    created_on INTEGER NOT NULL DEFAULT 0,
    rows_json  TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT
);
`

// schemaVersion is bumped whenever the runs table layout changes.
const schemaVersion = "1"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if _, err := db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("write schema version: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) SchemaVersion() (string, error) {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	return ver, err
}

func (d *DB) RunCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

func (d *DB) Load() ([]parse.RawRun, error) {
	rows, err := d.db.Query("SELECT id, created_on, rows_json FROM runs ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	defer rows.Close()

	var runs []parse.RawRun
	for rows.Next() {
		var r parse.RawRun
		var rowsJSON string
		if err := rows.Scan(&r.ID, &r.CreatedOn, &rowsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rowsJSON), &r.Rows); err != nil {
			return nil, fmt.Errorf("decode rows of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Save replaces the stored list with runs in a single transaction.
func (d *DB) Save(runs []parse.RawRun) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO runs (id, position, created_on, rows_json)
		 VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range runs {
		rowsJSON, err := json.Marshal(r.Rows)
		if err != nil {
			return fmt.Errorf("encode rows of run %s: %w", r.ID, err)
		}
		if _, err := stmt.Exec(r.ID, i, r.CreatedOn, string(rowsJSON)); err != nil {
			return fmt.Errorf("insert run %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
