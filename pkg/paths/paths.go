package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for modshell
	EnvConfigDir = "MODSHELL_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for modshell
	EnvStateDir = "MODSHELL_STATE_DIR"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "modshell"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "modshell.toml"

	// LogFileName is the name of the log file
	LogFileName = "modshell.log"
)

// ConfigDir returns the directory holding the user configuration file.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory for logs and other runtime state.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ConfigFileCandidates returns, in lookup order, the files checked when no
// configuration file is given explicitly: the working directory first, then
// the user config directory. Each location accepts .toml, .yaml and .yml.
func ConfigFileCandidates(workDir string) []string {
	var candidates []string
	for _, dir := range []string{workDir, ConfigDir()} {
		for _, ext := range []string{".toml", ".yaml", ".yml"} {
			candidates = append(candidates, filepath.Join(dir, AppDirName+ext))
		}
	}
	return candidates
}

// FindConfigFile returns the first existing candidate, or "" when there is
// none.
func FindConfigFile(workDir string) string {
	for _, candidate := range ConfigFileCandidates(workDir) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
