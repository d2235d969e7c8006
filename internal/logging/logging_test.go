package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rating.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("premium calculated")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"premium calculated"`)
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestGlobalLoggerIsInitialized(t *testing.T) {
	assert.NotNil(t, Logger)
	assert.NotNil(t, Named("rating"))
}

func TestGlobalHelpersWriteToLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = prev })

	Info("server started", zap.String("addr", ":8080"))
	Warn("Keeping default logger", zap.String("output", "/nonexistent/rating.log"))
	Named("rating").Info("premium calculated")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/nonexistent/rating.log", entries[1].ContextMap()["output"])
	assert.Equal(t, "rating", entries[2].LoggerName)
}

func TestInitializeKeepsLoggerOnBadOutput(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	err := Initialize(Config{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "rating.log")})
	assert.Error(t, err)
	assert.Same(t, prev, Logger)
}
