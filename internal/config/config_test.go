package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.Quiz.Count != nil || cfg.Storage.Backend != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[storage]
backend = "memory"

[quiz]
kind = "katakana"
count = 15
difficulty = 1

[log]
level = "debug"
file = "/tmp/nihongo.log"
max-size-mb = 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "katakana", *cfg.Quiz.Kind)
	require.Equal(t, 15, *cfg.Quiz.Count)
	require.Equal(t, 1, *cfg.Quiz.Difficulty)

	storage, err := cfg.StorageSettings()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, storage.Backend)
	require.Equal(t, DefaultDBPath(), storage.Path)

	logCfg, err := cfg.LogSettings()
	require.NoError(t, err)
	require.Equal(t, "debug", logCfg.Level)
	require.Equal(t, "/tmp/nihongo.log", logCfg.File)
	require.Equal(t, 2, logCfg.MaxSizeMB)
	require.Equal(t, DefaultLogMaxFiles, logCfg.MaxFiles)
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[quiz\ncount = "), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestStorageSettingsRejectsUnknownBackend(t *testing.T) {
	backend := "postgres"
	cfg := FileConfig{Storage: StorageConfig{Backend: &backend}}
	_, err := cfg.StorageSettings()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogSettingsRejectsUnknownLevel(t *testing.T) {
	level := "loud"
	cfg := FileConfig{Log: LogConfig{Level: &level}}
	_, err := cfg.LogSettings()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	require.Equal(t, filepath.Join("/cfg", "nihongo", "config.toml"), DefaultConfigPath())
	require.Equal(t, filepath.Join("/data", "nihongo", "nihongo.db"), DefaultDBPath())
	require.Equal(t, filepath.Join("/data", "nihongo", "nihongo.log"), DefaultLogPath())
}
