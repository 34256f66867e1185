package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/undetected/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser represents a Lua config parser with an optional platform table.
type Parser struct {
	profile *platform.Profile
}

// NewParser creates a new config parser. When profile is non-nil it is
// exposed to configs as the read-only "platform" table.
func NewParser(profile *platform.Profile) *Parser {
	return &Parser{profile: profile}
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.profile != nil {
		if err := platform.InjectPlatformTable(L, *p.profile); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseFile reads and parses the config at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("config %s exceeds %d bytes", path, MaxConfigSize)
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Path    string // Config file, if parsed from disk
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig extracts the config from a Lua state.
// It expects a global "undetected" table.
func extractConfig(L *lua.LState) (*Config, error) {
	global := L.GetGlobal(luaGlobalUndetected)
	if global.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid '" + luaGlobalUndetected + "' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}
	table := global.(*lua.LTable)

	config := &Config{}
	fields := []struct {
		field string
		dest  *string
	}{
		{luaFieldCacheDir, &config.CacheDir},
		{luaFieldBrowserVer, &config.BrowserVersion},
		{luaFieldDriver, &config.Driver},
		{luaFieldLogLevel, &config.LogLevel},
		{luaFieldTestingURL, &config.TestingBaseURL},
		{luaFieldLegacyURL, &config.LegacyBaseURL},
	}
	for _, f := range fields {
		v, err := stringField(table, f.field)
		if err != nil {
			return nil, err
		}
		*f.dest = v
	}

	cmd, err := stringListField(table, luaFieldBrowserCmd)
	if err != nil {
		return nil, err
	}
	config.BrowserCommand = cmd

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// stringField returns table[field] as a string. nil yields "".
func stringField(table *lua.LTable, field string) (string, error) {
	value := table.RawGetString(field)
	switch value.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return value.String(), nil
	default:
		return "", &ParseError{
			Message: "invalid '" + field + "'",
			Detail:  fmt.Sprintf("expected string, got %s", value.Type()),
		}
	}
}

// stringListField returns the array part of table[field]. nil yields nil.
// Every element must be a string.
func stringListField(table *lua.LTable, field string) ([]string, error) {
	value := table.RawGetString(field)
	if value.Type() == lua.LTNil {
		return nil, nil
	}

	list, ok := value.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "invalid '" + field + "'",
			Detail:  fmt.Sprintf("expected array of strings, got %s", value.Type()),
		}
	}

	n := list.Len()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		elem := list.RawGetInt(i)
		if elem.Type() != lua.LTString {
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid '%s[%d]'", field, i),
				Detail:  fmt.Sprintf("expected string, got %s", elem.Type()),
			}
		}
		out = append(out, elem.String())
	}

	return out, nil
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}

	prefix := parseErr.Message
	if parseErr.Path != "" {
		prefix = parseErr.Path + ": " + prefix
	}

	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", prefix, parseErr.Detail)
	}

	// Drop the Lua stack trace
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", prefix, detail)
}
