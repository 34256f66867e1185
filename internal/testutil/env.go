// Package testutil provides helpers for running undetected tests in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Env describes the isolated directories created by SetupTestEnv.
type Env struct {
	Root       string // temp root, removed by the testing framework
	Home       string // $HOME (and %USERPROFILE% on windows)
	ConfigHome string // $XDG_CONFIG_HOME
	CacheDir   string // suggested driver cache; not exported to the environment
}

// SetupTestEnv points every location undetected reads from at a fresh temp
// directory, so tests never see the user's real config or driver cache.
// UNDETECTED_CONFIG and UNDETECTED_CACHE_DIR are cleared; tests that need
// them set them after this call.
func SetupTestEnv(t *testing.T) Env {
	t.Helper()

	root := t.TempDir()
	env := Env{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		ConfigHome: filepath.Join(root, "config"),
		CacheDir:   filepath.Join(root, "cache"),
	}

	t.Setenv("HOME", env.Home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", env.Home)
	}
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("UNDETECTED_CONFIG", "")
	t.Setenv("UNDETECTED_CACHE_DIR", "")

	for _, dir := range []string{env.Home, env.ConfigHome, env.CacheDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
