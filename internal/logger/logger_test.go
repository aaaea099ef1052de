package logger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/scenario-player/internal/config"
)

func TestSetupFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.log")
	cfg := &config.Config{Environment: "development", LogLevel: slog.LevelWarn}

	log, closer, err := SetupFile(cfg, path)
	require.NoError(t, err)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	log.Info("dropped")
	WithError(WithBook(log, "prologue"), errors.New("boom")).Warn("Unknown command", "offset", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `msg="Unknown command"`)
	assert.Contains(t, out, "book=prologue")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "offset=3")
}

func TestSetupFile_JSONInProduction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.log")
	cfg := &config.Config{Environment: "production", LogLevel: slog.LevelInfo}

	log, closer, err := SetupFile(cfg, path)
	require.NoError(t, err)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })

	log.Info("Scenario activated", "book", "b")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &rec))
	assert.Equal(t, "Scenario activated", rec["msg"])
	assert.Equal(t, "b", rec["book"])
}

func TestSetupFile_BadPath(t *testing.T) {
	cfg := &config.Config{}
	_, _, err := SetupFile(cfg, filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}
