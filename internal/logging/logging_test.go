package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/nihongo/internal/config"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("op", "search"))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "op=search")
}

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nihongo.log")
	logger, closer, err := New(config.Log{Level: "info", File: path, MaxSizeMB: 1, MaxFiles: 1})
	require.NoError(t, err)
	logger.Info("quiz finished", slog.Int("score", 80))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if !strings.Contains(string(data), "score=80") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestNewStderr(t *testing.T) {
	logger, closer, err := New(config.Log{Level: "error"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())
}
