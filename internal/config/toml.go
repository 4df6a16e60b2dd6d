// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig reports a config value outside its allowed set.
var ErrInvalidConfig = errors.New("invalid config")

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Log defaults.
const (
	DefaultLogLevel     = "warn"
	DefaultLogMaxSizeMB = 5
	DefaultLogMaxFiles  = 3
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Quiz    QuizConfig    `toml:"quiz"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig maps catalog storage settings.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// QuizConfig maps quiz defaults. Flags override these.
type QuizConfig struct {
	Kind       *string `toml:"kind"`
	Count      *int    `toml:"count"`
	Difficulty *int    `toml:"difficulty"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level     *string `toml:"level"`
	File      *string `toml:"file"`
	MaxSizeMB *int    `toml:"max-size-mb"`
	MaxFiles  *int    `toml:"max-files"`
}

// Storage is the resolved storage selection.
type Storage struct {
	Backend string
	Path    string
}

// Log is the resolved logging setup. An empty File logs to stderr.
type Log struct {
	Level     string
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// StorageSettings resolves the storage section against defaults.
func (c FileConfig) StorageSettings() (Storage, error) {
	s := Storage{Backend: BackendSQLite, Path: DefaultDBPath()}
	if c.Storage.Backend != nil {
		s.Backend = strings.ToLower(strings.TrimSpace(*c.Storage.Backend))
	}
	if c.Storage.Path != nil && *c.Storage.Path != "" {
		s.Path = *c.Storage.Path
	}
	switch s.Backend {
	case BackendSQLite, BackendMemory:
	default:
		return Storage{}, fmt.Errorf("%w: storage.backend must be %q or %q, got %q",
			ErrInvalidConfig, BackendSQLite, BackendMemory, s.Backend)
	}
	return s, nil
}

// LogSettings resolves the log section against defaults.
func (c FileConfig) LogSettings() (Log, error) {
	l := Log{Level: DefaultLogLevel, MaxSizeMB: DefaultLogMaxSizeMB, MaxFiles: DefaultLogMaxFiles}
	if c.Log.Level != nil {
		l.Level = strings.ToLower(strings.TrimSpace(*c.Log.Level))
	}
	if c.Log.File != nil {
		l.File = *c.Log.File
	}
	if c.Log.MaxSizeMB != nil {
		l.MaxSizeMB = *c.Log.MaxSizeMB
	}
	if c.Log.MaxFiles != nil {
		l.MaxFiles = *c.Log.MaxFiles
	}
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return Log{}, fmt.Errorf("%w: log.level must be debug, info, warn or error, got %q", ErrInvalidConfig, l.Level)
	}
	if l.MaxSizeMB <= 0 {
		return Log{}, fmt.Errorf("%w: log.max-size-mb must be > 0", ErrInvalidConfig)
	}
	if l.MaxFiles < 0 {
		return Log{}, fmt.Errorf("%w: log.max-files must be >= 0", ErrInvalidConfig)
	}
	return l, nil
}
