package config

import (
	"path/filepath"
	"testing"
)

func TestDatabaseURL(t *testing.T) {
	t.Setenv("MAPMYFIRM_DB", "")
	t.Setenv("XDG_DATA_HOME", "/data")

	if got, want := DatabaseURL(), filepath.Join("/data", "mapmyfirm", "projects.db"); got != want {
		t.Errorf("DatabaseURL() = %q, want %q", got, want)
	}

	t.Setenv("MAPMYFIRM_DB", "libsql://acme.turso.io?authToken=x")
	if got := DatabaseURL(); got != "libsql://acme.turso.io?authToken=x" {
		t.Errorf("expected env override, got %q", got)
	}
}

func TestIsRemoteDatabase(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"libsql://acme.turso.io", true},
		{"https://acme.turso.io", true},
		{"/home/me/.local/share/mapmyfirm/projects.db", false},
		{"projects.db", false},
	}

	for _, tt := range tests {
		if got := IsRemoteDatabase(tt.url); got != tt.want {
			t.Errorf("IsRemoteDatabase(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestAddrAndLogLevel(t *testing.T) {
	t.Setenv("MAPMYFIRM_ADDR", "")
	t.Setenv("MAPMYFIRM_LOG_LEVEL", "")
	if Addr() != DefaultAddr || LogLevel() != DefaultLogLevel {
		t.Errorf("expected defaults, got %q %q", Addr(), LogLevel())
	}

	t.Setenv("MAPMYFIRM_ADDR", "127.0.0.1:9000")
	if Addr() != "127.0.0.1:9000" {
		t.Errorf("expected override, got %q", Addr())
	}
}
