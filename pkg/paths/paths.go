// Package paths provides centralized path handling for macprefs.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for macprefs
	EnvConfigDir = "MACPREFS_CONFIG_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for macprefs-specific files
	AppDirName = "macprefs"

	// ConfigFileName is the name of the tool configuration file
	ConfigFileName = "config.toml"

	// DefaultsDirName is the subdirectory holding preference documents
	DefaultsDirName = "defaults"

	// AppsConfigFileName is the default-apps configuration file
	AppsConfigFileName = "default-apps.toml"

	// FlagsConfigFileName is the file-flags configuration file
	FlagsConfigFileName = "fs-flags.toml"

	// LogFileName is the name of the log file
	LogFileName = "macprefs.log"
)

// Paths provides centralized path management for macprefs
type Paths struct {
	configDir string
	stateDir  string
}

// New creates a Paths instance. The config directory defaults to
// $XDG_CONFIG_HOME/macprefs and can be overridden with MACPREFS_CONFIG_DIR.
func New() *Paths {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	return &Paths{
		configDir: configDir,
		stateDir:  filepath.Join(xdg.StateHome, AppDirName),
	}
}

// ConfigDir returns the macprefs config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the path of the tool configuration file
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// DefaultsDir returns the default location of preference documents
func (p *Paths) DefaultsDir() string {
	return filepath.Join(p.configDir, DefaultsDirName)
}

// AppsConfigFile returns the default location of the default-apps config
func (p *Paths) AppsConfigFile() string {
	return filepath.Join(p.configDir, AppsConfigFileName)
}

// FlagsConfigFile returns the default location of the file-flags config
func (p *Paths) FlagsConfigFile() string {
	return filepath.Join(p.configDir, FlagsConfigFileName)
}

// StateDir returns the macprefs state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// LogFile returns the path of the log file
func (p *Paths) LogFile() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome expands a leading ~ or ~/ in path to the user's home
// directory. Paths without a leading tilde are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
