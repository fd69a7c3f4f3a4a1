package logger

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := New("info", true, FileRotate{Enable: true, Filename: file, MaxSizeMB: 1})

	l.Info("user created", zap.String("id", "666b5bfd8e3c464090cb69b8"))
	l.Debug("dropped below level")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "user created")
	assert.Contains(t, string(b), "666b5bfd8e3c464090cb69b8")
	assert.NotContains(t, string(b), "dropped below level")
}

func TestRedirectStdLog(t *testing.T) {
	file := filepath.Join(t.TempDir(), "std.log")
	l, cleanup := New("info", false, FileRotate{Enable: true, Filename: file})
	undo := RedirectStdLog(l, zapcore.InfoLevel)
	log.Print("from std log")
	undo()
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "from std log")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("loud", false, FileRotate{})
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
