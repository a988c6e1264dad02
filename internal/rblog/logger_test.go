package rblog

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNew_ReturnsUsableLogger(t *testing.T) {
	logger := New(Config{Level: "info", Format: "json", Output: "stdout"})
	assert.NotNil(t, logger)
}

func TestSetupWriter_FileWithoutFilenameFallsBackToStdout(t *testing.T) {
	w := setupWriter(Config{Output: "file"})
	assert.Same(t, os.Stdout, w)
}
