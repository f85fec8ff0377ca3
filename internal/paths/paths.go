// Package paths resolves where save4dream keeps its config.yaml and its
// game state. On Linux the XDG base directories apply; elsewhere both live
// under os.UserConfigDir, so a macOS or Windows player has one folder.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration and data directories.
const AppName = "save4dream"

// Directory overrides.
const (
	EnvConfigDir = "SAVE4DREAM_CONFIG_DIR"
	EnvDataDir   = "SAVE4DREAM_DATA_DIR"
)

// platformDir is swapped out by tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir describes one XDG base directory: the variable that sets it and
// its location under $HOME when unset.
type xdgDir struct {
	env      string
	fallback []string
}

var (
	configBase = xdgDir{env: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	dataBase   = xdgDir{env: "XDG_DATA_HOME", fallback: []string{".local", "share"}}
)

func (x xdgDir) appDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if base := os.Getenv(x.env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, x.fallback...), AppName)...), nil
}

// DefaultConfigDir returns where config.yaml lives when nothing overrides it.
func DefaultConfigDir() (string, error) { return configBase.appDir() }

// DefaultDataDir returns where the game state lives when nothing overrides it.
func DefaultDataDir() (string, error) { return dataBase.appDir() }

// ResolveConfigDir picks the first of flag and $SAVE4DREAM_CONFIG_DIR that is
// set, made absolute, and falls back to DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir is ResolveConfigDir for the data directory, with the
// data_dir value from config.yaml ranked between the flag and the
// environment.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

func firstAbs(def func() (string, error), candidates ...string) (string, error) {
	for _, dir := range candidates {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	return def()
}
