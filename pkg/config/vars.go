package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "bgap"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/bgap by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/bgap by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/bgap/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/bgap/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// PresetsFilePath returns the full path to the presets.yaml file.
// Returns ~/.config/bgap/presets.yaml by default.
func PresetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "presets.yaml")
}
