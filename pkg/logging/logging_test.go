package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modshell/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv(paths.EnvStateDir, tempDir)

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(filepath.Join(tempDir, paths.LogFileName))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv(paths.EnvStateDir, "/custom/state")
	assert.Equal(t, filepath.Join("/custom/state", "modshell.log"), getLogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, 2)

	logger := GetLogger("routes")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"routes"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, 2)

	done := LogOperationStart(log.Logger, "register")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "duration")
}

func TestRuntimeLogger(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := NewRuntimeLogger(zerolog.New(&buf)).With("source", "local")

	logger.Debug("registering")
	logger.Error("module failed", errors.New("boom"))

	out := buf.String()
	require.Contains(t, out, "registering")
	assert.Contains(t, out, `"source":"local"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"level":"error"`)
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NopLogger().Debug("nothing")
		NopLogger().Error("nothing", errors.New("x"))
	})
}
