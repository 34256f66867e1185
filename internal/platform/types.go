// Package platform provides the per-OS profile table used to locate the
// installed browser, name the driver archive and place the driver cache.
//
// A Profile is selected once at startup from a Table built for the current
// user's home directory. Host identification uses gopsutil, with a graceful
// fallback to the Go runtime values when detection fails. Profiles can also
// be injected into Lua configurations as a read-only table.
package platform

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
)

// Kind identifies a supported operating system.
type Kind string

// Supported platform kinds.
const (
	KindLinux   Kind = "linux"
	KindWindows Kind = "windows"
	KindMacOS   Kind = "macos"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// Info contains host detection information.
type Info struct {
	OS      string // host OS identifier, e.g. "linux", "windows", "darwin"
	Arch    string // "amd64", "arm64", "386" (normalized)
	ArchRaw string // original value (e.g., "x86_64", "aarch64")
}

// Detector is the interface for host detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// Profile is the static configuration for one operating system.
// Profiles are values; the With* methods return modified copies.
type Profile struct {
	Kind           Kind
	CacheDir       string   // driver cache directory, tilde-expanded
	VersionCommand []string // argv printing the installed browser version
	Archive        string   // legacy driver archive name, e.g. "chromedriver_linux64.zip"
	Arch           string   // normalized host architecture (empty until resolved)
}

// IsLinux returns true if the profile is for Linux.
func (p Profile) IsLinux() bool {
	return p.Kind == KindLinux
}

// IsMacOS returns true if the profile is for macOS.
func (p Profile) IsMacOS() bool {
	return p.Kind == KindMacOS
}

// IsWindows returns true if the profile is for Windows.
func (p Profile) IsWindows() bool {
	return p.Kind == KindWindows
}

// IsAMD64 returns true if the architecture is amd64.
func (p Profile) IsAMD64() bool {
	return p.Arch == "amd64"
}

// IsARM64 returns true if the architecture is arm64.
func (p Profile) IsARM64() bool {
	return p.Arch == "arm64"
}

// ExecutableSuffix returns ".exe" on Windows and "" elsewhere.
func (p Profile) ExecutableSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// DriverName returns the file name of the unpatched driver inside an archive.
func (p Profile) DriverName() string {
	return "chromedriver" + p.ExecutableSuffix()
}

// Command returns a copy of the version-query argv.
func (p Profile) Command() []string {
	return slices.Clone(p.VersionCommand)
}

// WithCacheDir returns a copy of p using dir (tilde-expanded against home)
// as the cache directory.
func (p Profile) WithCacheDir(dir, home string) Profile {
	p.CacheDir = expandTilde(dir, home)
	return p
}

// WithVersionCommand returns a copy of p using argv as the version query.
func (p Profile) WithVersionCommand(argv []string) Profile {
	p.VersionCommand = slices.Clone(argv)
	return p
}

// WithArch returns a copy of p for the given normalized architecture.
func (p Profile) WithArch(arch string) Profile {
	p.Arch = arch
	return p
}

// Table is the immutable set of supported platform profiles.
type Table struct {
	profiles map[Kind]Profile
}

// NewTable builds the default profile table, expanding "~" in cache paths
// against home.
func NewTable(home string) *Table {
	defaults := []Profile{
		{
			Kind:           KindLinux,
			CacheDir:       "~/.local/share/undetected_chromedriver",
			VersionCommand: []string{"/opt/google/chrome/chrome", "--version"},
			Archive:        "chromedriver_linux64.zip",
		},
		{
			Kind:     KindWindows,
			CacheDir: "~/appdata/roaming/undetected_chromedriver",
			VersionCommand: []string{
				"cmd", "/c",
				`reg query "HKEY_CURRENT_USER\Software\Google\Chrome\BLBeacon" /v version`,
			},
			Archive: "chromedriver_win32.zip",
		},
		{
			Kind:           KindMacOS,
			CacheDir:       "~/Library/Application Support/undetected_chromedriver",
			VersionCommand: []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "--version"},
			Archive:        "chromedriver_mac64.zip",
		},
	}

	t := &Table{profiles: make(map[Kind]Profile, len(defaults))}
	for _, p := range defaults {
		p.CacheDir = expandTilde(p.CacheDir, home)
		t.profiles[p.Kind] = p
	}
	return t
}

// Lookup returns the profile for kind.
func (t *Table) Lookup(kind Kind) (Profile, bool) {
	p, ok := t.profiles[kind]
	if !ok {
		return Profile{}, false
	}
	// Callers must not share the argv backing array with the table.
	p.VersionCommand = slices.Clone(p.VersionCommand)
	return p, true
}

// expandTilde replaces a leading "~" with home.
func expandTilde(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}
