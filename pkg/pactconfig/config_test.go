package pactconfig

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultServerConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultServerConfig()
	assert.Equal(t, "pacts", cfg.PactDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, SourceDefault, cfg.Sources["logLevel"])
}

func TestLoadFromFileRoundTripsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pactcore.json")

	cfg := DefaultServerConfig()
	cfg.PactFile = "pacts/consumer-provider.json"
	cfg.Addr = "127.0.0.1:8080"
	require.NoError(t, SaveToFile(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pacts/consumer-provider.json", loaded.PactFile)
	assert.Equal(t, "127.0.0.1:8080", loaded.Addr)
	assert.Equal(t, SourceFile, loaded.Sources["pactFile"])
}

func TestLoadFromFileRoundTripsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pactcore.yaml")

	cfg := DefaultServerConfig()
	cfg.LogLevel = "debug"
	cfg.TLS = true
	require.NoError(t, SaveToFile(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.True(t, loaded.TLS)
	assert.Equal(t, SourceFile, loaded.Sources["logLevel"])
}

func TestLoadFromFileMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFromFileEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))

	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadFromFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestApplyEnvOverridesDefaultsAndRecordsProvenance(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAddr, "0.0.0.0:9000")

	cfg := DefaultServerConfig()
	ApplyEnv(cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, SourceEnv, cfg.Sources["logLevel"])
	assert.Equal(t, SourceEnv, cfg.Sources["addr"])
}

func TestApplyEnvLeavesUnsetFieldsAlone(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.PactDir = "custom-pacts"
	ApplyEnv(cfg)
	assert.Equal(t, "custom-pacts", cfg.PactDir)
	assert.Equal(t, SourceDefault, cfg.Sources["pactDir"])
}

func TestLoggerUsesConfiguredLevelAndFormat(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.LogFormat = "json"
	logger := cfg.Logger()
	require.NotNil(t, logger)
	_, isJSON := logger.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
