package config

import (
	"context"
	"errors"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestSandboxLuaVM_BlockedGlobalsAreNil(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	for _, name := range blockedGlobals {
		if got := L.GetGlobal(name); got != lua.LNil {
			t.Errorf("global %q = %v, want nil", name, got.Type())
		}
	}
}

func TestSandboxLuaVM_ConfigHelpersAvailable(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	code := `
		local home = "/home/test"
		local parts = { home, ".cache", "undetected" }
		dir = table.concat(parts, "/")
		upper = string.upper("chrome")
		major = math.floor(120.5)
		kind = type(parts)
		n = tonumber("115") + 1
		joined = ""
		for i, v in ipairs({ "a", "b" }) do joined = joined .. v .. tostring(i) end
		ok = pcall(function() error("boom") end)
	`
	if err := L.DoString(code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	checks := map[string]string{
		"dir":    "/home/test/.cache/undetected",
		"upper":  "CHROME",
		"major":  "120",
		"kind":   "table",
		"n":      "116",
		"joined": "a1b2",
		"ok":     "false",
	}
	for name, want := range checks {
		if got := L.GetGlobal(name).String(); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestSandboxLuaVM_EscapeAttempts(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"run a command", `os.execute("chromedriver")`},
		{"read the environment", `x = os.getenv("HOME")`},
		{"open a file", `f = io.open("/etc/passwd")`},
		{"load a module", `require("socket")`},
		{"run a file", `dofile("/tmp/evil.lua")`},
		{"load a file", `loadfile("/tmp/evil.lua")()`},
		{"compile a string", `loadstring("return 1")()`},
		{"compile via load", `load("return 1")()`},
		{"inspect the stack", `debug.traceback()`},
		{"rewrite a metatable", `setmetatable({}, {})`},
		{"raw write", `rawset(_G, "x", 1)`},
		{"swap environments", `setfenv(1, {})`},
		{"force collection", `collectgarbage()`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newSandboxedVM()
			defer L.Close()

			if err := L.DoString(tt.code); err == nil {
				t.Errorf("DoString(%q) succeeded, want error", tt.code)
			}
		})
	}
}

func TestParser_SandboxedConfigCannotReadEnvironment(t *testing.T) {
	code := `
		undetected = {
			cache_dir = os.getenv("HOME") .. "/drivers",
		}
	`

	_, err := NewParser(nil).ParseString(context.Background(), code)
	if err == nil {
		t.Fatal("expected error for os access inside config")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %T, want *ParseError", err)
	}
}

func TestParser_PlatformTableMetatableProtected(t *testing.T) {
	code := `
		undetected = {
			cache_dir = getmetatable(platform),
		}
	`

	config, err := NewParser(linuxProfile()).ParseString(context.Background(), code)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if config.CacheDir != "protected" {
		t.Errorf("getmetatable(platform) = %q, want the protected marker", config.CacheDir)
	}
}
