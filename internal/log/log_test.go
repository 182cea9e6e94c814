package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/flicks/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("catalog request", "path", "/search/movie")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog request", entry["msg"])
	assert.Equal(t, "/search/movie", entry["path"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "text", slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("favorites unreadable", "key", "favoriteMovies")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "favorites unreadable")
	assert.Contains(t, out, "favoriteMovies")
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flicks.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestSetupLogger_EmptyPathDiscards(t *testing.T) {
	logger, err := SetupLogger(&config.LoggingConfig{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
