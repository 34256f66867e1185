package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ZebulonRouseFrantzich/undetected/internal/platform"
)

// Config represents the user configuration. Zero fields keep the
// corresponding default.
type Config struct {
	// Driver cache directory (supports ~)
	CacheDir string `json:"cache_dir,omitempty"`

	// argv printing the installed browser version
	BrowserCommand []string `json:"browser_command,omitempty"`

	// Pinned browser version; skips detection when set
	BrowserVersion string `json:"browser_version,omitempty"`

	// Explicit driver binary to patch instead of downloading
	Driver string `json:"driver,omitempty"`

	// One of debug, info, warn, error
	LogLevel string `json:"log_level,omitempty"`

	// Download mirror overrides
	TestingBaseURL string `json:"cft_base_url,omitempty"`
	LegacyBaseURL  string `json:"legacy_base_url,omitempty"`
}

// pinnedVersionRegex is the shape of a pinned browser_version. The version
// becomes part of cache file names, so nothing else is accepted.
var pinnedVersionRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// validLogLevels lists the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if len(c.BrowserCommand) > MaxCommandArgs {
		return &ValidationError{
			Field:   luaFieldBrowserCmd,
			Message: fmt.Sprintf("too many arguments (%d), maximum is %d", len(c.BrowserCommand), MaxCommandArgs),
		}
	}
	if len(c.BrowserCommand) > 0 && strings.TrimSpace(c.BrowserCommand[0]) == "" {
		return &ValidationError{Field: luaFieldBrowserCmd + "[1]", Message: "program cannot be empty"}
	}

	if c.BrowserVersion != "" && !pinnedVersionRegex.MatchString(c.BrowserVersion) {
		return &ValidationError{
			Field:   luaFieldBrowserVer,
			Message: fmt.Sprintf("%q is not a dotted numeric version such as 120.0.6099.109", c.BrowserVersion),
		}
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return &ValidationError{
			Field:   luaFieldLogLevel,
			Message: fmt.Sprintf("unknown level %q (expected debug, info, warn or error)", c.LogLevel),
		}
	}

	mirrors := []struct{ field, raw string }{
		{luaFieldTestingURL, c.TestingBaseURL},
		{luaFieldLegacyURL, c.LegacyBaseURL},
	}
	for _, m := range mirrors {
		if m.raw == "" {
			continue
		}
		if err := validateBaseURL(m.raw); err != nil {
			return &ValidationError{Field: m.field, Message: err.Error()}
		}
	}

	return nil
}

// ApplyTo returns a copy of p with the configured overrides applied.
// home is used to expand "~" in cache_dir.
func (c *Config) ApplyTo(p platform.Profile, home string) platform.Profile {
	if c.CacheDir != "" {
		p = p.WithCacheDir(c.CacheDir, home)
	}
	if len(c.BrowserCommand) > 0 {
		p = p.WithVersionCommand(c.BrowserCommand)
	}
	return p
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// validateBaseURL validates a download mirror URL.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use https:// or http:// scheme (got: %q)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", raw)
	}

	return nil
}
