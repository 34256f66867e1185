package testutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/undetected/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	t.Setenv("UNDETECTED_CONFIG", "/real/config.lua")
	t.Setenv("UNDETECTED_CACHE_DIR", "/real/cache")

	env := testutil.SetupTestEnv(t)

	if got := os.Getenv("HOME"); got != env.Home {
		t.Errorf("HOME = %q, want %q", got, env.Home)
	}
	if got := os.Getenv("XDG_CONFIG_HOME"); got != env.ConfigHome {
		t.Errorf("XDG_CONFIG_HOME = %q, want %q", got, env.ConfigHome)
	}
	if got := os.Getenv("UNDETECTED_CONFIG"); got != "" {
		t.Errorf("UNDETECTED_CONFIG = %q, want empty", got)
	}
	if got := os.Getenv("UNDETECTED_CACHE_DIR"); got != "" {
		t.Errorf("UNDETECTED_CACHE_DIR = %q, want empty", got)
	}

	for _, dir := range []string{env.Home, env.ConfigHome, env.CacheDir} {
		if !strings.HasPrefix(dir, env.Root) {
			t.Errorf("%s is outside the temp root %s", dir, env.Root)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s does not exist", dir)
		}
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	env1 := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		env2 := testutil.SetupTestEnv(t)

		if env1.Root == env2.Root {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.lua")
	testutil.WriteFile(t, path, "undetected = {}")

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "undetected = {}" {
		t.Errorf("content = %q", got)
	}
}
