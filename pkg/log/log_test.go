package log

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	l := New("info", dir)
	require.NotEmpty(t, l.LogFile)

	l.Info("hello", slog.Int("n", 1))
	_, err := os.Stat(l.LogFile)
	assert.NoError(t, err)
}

func TestNewDiscardDropsEverything(t *testing.T) {
	l := NewDiscard()
	l.Info("nobody hears this")
	l.Error("or this")
	assert.Empty(t, l.LogFile)
}
