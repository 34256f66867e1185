package platform

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func runLuaCases(t *testing.T, L *lua.LState, tests []struct {
	name string
	code string
	want lua.LValue
}) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatalf("failed to execute code: %v", err)
			}
			got := L.Get(-1)
			L.Pop(1)

			if got.Type() != tt.want.Type() {
				t.Errorf("type mismatch: got %v, want %v", got.Type(), tt.want.Type())
				return
			}

			if got.String() != tt.want.String() {
				t.Errorf("value mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTable_Linux(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	profile, _ := NewTable("/home/tester").Lookup(KindLinux)
	profile = profile.WithArch("amd64")

	if err := InjectPlatformTable(L, profile); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	runLuaCases(t, L, []struct {
		name string
		code string
		want lua.LValue
	}{
		{"kind", `return platform.kind`, lua.LString("linux")},
		{"arch", `return platform.arch`, lua.LString("amd64")},
		{"archive", `return platform.archive`, lua.LString("chromedriver_linux64.zip")},
		{"driver_name", `return platform.driver_name`, lua.LString("chromedriver")},
		{"is_linux", `return platform.is_linux`, lua.LTrue},
		{"is_macos", `return platform.is_macos`, lua.LFalse},
		{"is_windows", `return platform.is_windows`, lua.LFalse},
		{"is_amd64", `return platform.is_amd64`, lua.LTrue},
		{"is_arm64", `return platform.is_arm64`, lua.LFalse},
		{"version_command[1]", `return platform.version_command[1]`, lua.LString("/opt/google/chrome/chrome")},
		{"version_command length", `return #platform.version_command`, lua.LNumber(2)},
	})
}

func TestInjectPlatformTable_Windows(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	profile, _ := NewTable("/home/tester").Lookup(KindWindows)

	if err := InjectPlatformTable(L, profile.WithArch("amd64")); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	runLuaCases(t, L, []struct {
		name string
		code string
		want lua.LValue
	}{
		{"kind", `return platform.kind`, lua.LString("windows")},
		{"is_windows", `return platform.is_windows`, lua.LTrue},
		{"is_linux", `return platform.is_linux`, lua.LFalse},
		{"driver_name", `return platform.driver_name`, lua.LString("chromedriver.exe")},
	})
}

func TestPlatformTable_ReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	profile, _ := NewTable("/home/tester").Lookup(KindLinux)
	if err := InjectPlatformTable(L, profile); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	tests := []struct {
		name string
		code string
	}{
		{"modify kind", `platform.kind = "windows"`},
		{"add new field", `platform.new_field = "value"`},
		{"modify boolean", `platform.is_linux = false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err == nil {
				t.Error("expected error when modifying read-only table, got nil")
			}
		})
	}
}

func TestPlatformTable_WhenHelper(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	profile, _ := NewTable("/home/tester").Lookup(KindMacOS)
	if err := InjectPlatformTable(L, profile.WithArch("arm64")); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	runLuaCases(t, L, []struct {
		name string
		code string
		want lua.LValue
	}{
		{"when true returns value", `return platform.when(true, "x")`, lua.LString("x")},
		{"when false returns nil", `return platform.when(false, "x")`, lua.LNil},
		{"when with platform boolean", `return platform.when(platform.is_macos, "/Applications/Chromium.app")`, lua.LString("/Applications/Chromium.app")},
		{"when with arch boolean", `return platform.when(platform.is_amd64, "intel")`, lua.LNil},
	})
}
