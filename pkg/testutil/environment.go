package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modshell/pkg/paths"
)

// Environment is an isolated set of directories for one test
type Environment struct {
	// Root holds everything below
	Root string

	// ConfigDir replaces the user configuration directory
	ConfigDir string

	// StateDir replaces the user state directory, where logs go
	StateDir string

	// WorkDir is a scratch directory for configuration files and manifests
	WorkDir string
}

// Isolate points the modshell configuration and state directories at a
// fresh temporary directory for the duration of the test, so the user's
// own configuration and logs are never touched.
func Isolate(t *testing.T) *Environment {
	t.Helper()

	root := t.TempDir()
	env := &Environment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
		WorkDir:   filepath.Join(root, "work"),
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)

	return env
}

// CreateFile creates a file below WorkDir
func (e *Environment) CreateFile(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, e.WorkDir, name, content)
}
