package platform

import (
	"fmt"
	"strings"
)

// normalizeArch converts GOARCH and kernel architecture values to normalized
// architecture names.
func normalizeArch(arch string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	case "386", "i386", "i686", "x86":
		return "386", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %q", arch)
	}
}

// Classify maps a host OS identifier to a platform kind using substring
// matching on the lowercased identifier. "darwin" and "mac" are checked
// before "win" because "darwin" contains "win".
func Classify(id string) (Kind, bool) {
	name := strings.ToLower(strings.TrimSpace(id))
	switch {
	case name == "":
		return "", false
	case strings.Contains(name, "darwin"), strings.Contains(name, "mac"):
		return KindMacOS, true
	case strings.Contains(name, "win"):
		return KindWindows, true
	case strings.Contains(name, "nix"), strings.Contains(name, "nux"), strings.Contains(name, "aix"):
		return KindLinux, true
	default:
		return "", false
	}
}
