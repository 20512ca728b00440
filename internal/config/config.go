package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/store"
)

// EnvConfigPath overrides the location of config.toml.
const EnvConfigPath = "SPLITS_CONFIG"

type Config struct {
	Store     string `toml:"store"` // "sqlite" or "json"
	DBPath    string `toml:"db_path"`
	JSONPath  string `toml:"json_path"`
	ImportDir string `toml:"import_dir"`
	HideKills bool   `toml:"hide_kills"`
	Highlight string `toml:"highlight"` // regexp for checkpoints shown in bold

	// lines that open and close a run in pasted logs
	StartMarker  string `toml:"start_marker"`
	FinishMarker string `toml:"finish_marker"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfgPath := os.Getenv(EnvConfigPath)
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "splits", "config.toml")
	}
	return LoadFrom(cfgPath, home)
}

// LoadFrom reads cfgPath on top of the defaults. A missing file is not an
// error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := Default(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.JSONPath = expandHome(cfg.JSONPath, home)
	cfg.ImportDir = expandHome(cfg.ImportDir, home)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

func Default(home string) *Config {
	return &Config{
		Store:     store.BackendSQLite,
		DBPath:    filepath.Join(home, ".config", "splits", "splits.db"),
		JSONPath:  filepath.Join(home, ".config", "splits", "runs.json"),
		ImportDir: filepath.Join(home, "splits"),
		Highlight: `(?i)(course|zone)`,

		StartMarker:  parse.StartMarker,
		FinishMarker: parse.FinishMarker,
	}
}

// Parser returns a log parser using the configured markers.
func (c *Config) Parser() parse.Parser {
	return parse.Parser{StartMarker: c.StartMarker, FinishMarker: c.FinishMarker}
}

// StorePath returns the file backing the configured store.
func (c *Config) StorePath() string {
	if c.Store == store.BackendJSON {
		return c.JSONPath
	}
	return c.DBPath
}

// OpenStore opens the configured store backend.
func (c *Config) OpenStore() (store.Store, error) {
	return store.Open(c.Store, c.StorePath())
}

func (c *Config) validate() error {
	switch c.Store {
	case store.BackendSQLite, store.BackendJSON:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", store.BackendSQLite, store.BackendJSON, c.Store)
	}
	if c.StorePath() == "" {
		return fmt.Errorf("%s store path is empty", c.Store)
	}
	if _, err := regexp.Compile(c.Highlight); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	if c.StartMarker == "" || c.FinishMarker == "" {
		return fmt.Errorf("start_marker and finish_marker must not be empty")
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
