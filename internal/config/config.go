package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
	dbFileName      = "projects.db"
)

// DatabaseURL returns the project store location from MAPMYFIRM_DB,
// falling back to projects.db under the XDG data directory.
// A libsql:// URL selects the remote store.
func DatabaseURL() string {
	if env := os.Getenv("MAPMYFIRM_DB"); env != "" {
		return env
	}
	return filepath.Join(dataDir(), "mapmyfirm", dbFileName)
}

// IsRemoteDatabase reports whether a database URL points at a libsql server
func IsRemoteDatabase(url string) bool {
	return strings.HasPrefix(url, "libsql://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}

// HubType returns the custom hub content type from MAPMYFIRM_HUB_TYPE, if set
func HubType() string {
	return strings.TrimSpace(os.Getenv("MAPMYFIRM_HUB_TYPE"))
}

// LogLevel returns MAPMYFIRM_LOG_LEVEL, falling back to DefaultLogLevel
func LogLevel() string {
	if env := os.Getenv("MAPMYFIRM_LOG_LEVEL"); env != "" {
		return env
	}
	return DefaultLogLevel
}

// Addr returns the HTTP listen address from MAPMYFIRM_ADDR, falling back to DefaultAddr
func Addr() string {
	if env := os.Getenv("MAPMYFIRM_ADDR"); env != "" {
		return env
	}
	return DefaultAddr
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}
