// Package paths provides XDG-compliant path resolution for catalogd.
//
// Resolution order:
// 1. CATALOGD_HOME (portable root) → $CATALOGD_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/catalogd
// 3. Platform defaults → ~/.config/catalogd, ~/.local/state/catalogd
package paths

import (
	"os"
	"path/filepath"
)

const appName = "catalogd"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("CATALOGD_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("CATALOGD_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the catalogd configuration directory.
func ConfigDir() string {
	if home := os.Getenv("CATALOGD_HOME"); home != "" {
		return getConfigHome()
	}
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// StateDir returns the catalogd state directory.
// Used for the pid file and logs.
func StateDir() string {
	if home := os.Getenv("CATALOGD_HOME"); home != "" {
		return getStateHome()
	}
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// LogDir returns the directory log files are written to.
func LogDir() string {
	return filepath.Join(StateDir(), "logs")
}

// PidFilePath returns the path to the catalogd PID file.
func PidFilePath() string {
	return filepath.Join(StateDir(), "catalogd.pid")
}

// EnsureDirs creates all catalogd directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), StateDir(), LogDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
