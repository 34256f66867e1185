package config

import (
	"bytes"
	"strings"
)

// Generator generates Lua configuration code from a Config.
type Generator struct {
	indent string // Indentation string (default: two spaces)
}

// NewGenerator creates a new Lua config generator.
func NewGenerator() *Generator {
	return &Generator{
		indent: "  ", // Two spaces
	}
}

// placeholders are written, commented out, for unset fields.
var placeholders = map[string]string{
	luaFieldCacheDir:   `"~/.cache/undetected"`,
	luaFieldBrowserCmd: `{ "/usr/bin/google-chrome", "--version" }`,
	luaFieldBrowserVer: `"120.0.6099.109"`,
	luaFieldDriver:     `"/path/to/chromedriver"`,
	luaFieldLogLevel:   `"info"`,
	luaFieldTestingURL: `"https://storage.googleapis.com/chrome-for-testing-public"`,
	luaFieldLegacyURL:  `"https://chromedriver.storage.googleapis.com"`,
}

// Generate generates Lua code from a Config.
// Set fields are written as assignments; unset fields become commented
// examples, so the zero Config renders a starter template.
func (g *Generator) Generate(config *Config) (string, error) {
	var buf bytes.Buffer

	buf.WriteString("-- undetected configuration\n")
	buf.WriteString("-- The read-only `platform` table (kind, arch, is_linux, ...) is available.\n\n")
	buf.WriteString(luaGlobalUndetected)
	buf.WriteString(" = {\n")

	g.writeString(&buf, luaFieldCacheDir, config.CacheDir)
	g.writeList(&buf, luaFieldBrowserCmd, config.BrowserCommand)
	g.writeString(&buf, luaFieldBrowserVer, config.BrowserVersion)
	g.writeString(&buf, luaFieldDriver, config.Driver)
	g.writeString(&buf, luaFieldLogLevel, config.LogLevel)
	g.writeString(&buf, luaFieldTestingURL, config.TestingBaseURL)
	g.writeString(&buf, luaFieldLegacyURL, config.LegacyBaseURL)

	buf.WriteString("}\n")

	return buf.String(), nil
}

// writeString writes `field = "value",` or its commented placeholder.
func (g *Generator) writeString(buf *bytes.Buffer, field, value string) {
	if value == "" {
		g.writePlaceholder(buf, field)
		return
	}

	buf.WriteString(g.indent)
	buf.WriteString(field)
	buf.WriteString(" = ")
	buf.WriteString(g.quoteLuaString(value))
	buf.WriteString(",\n")
}

// writeList writes `field = { "a", "b" },` or its commented placeholder.
func (g *Generator) writeList(buf *bytes.Buffer, field string, values []string) {
	if len(values) == 0 {
		g.writePlaceholder(buf, field)
		return
	}

	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = g.quoteLuaString(v)
	}

	buf.WriteString(g.indent)
	buf.WriteString(field)
	buf.WriteString(" = { ")
	buf.WriteString(strings.Join(quoted, ", "))
	buf.WriteString(" },\n")
}

func (g *Generator) writePlaceholder(buf *bytes.Buffer, field string) {
	buf.WriteString(g.indent)
	buf.WriteString("-- ")
	buf.WriteString(field)
	buf.WriteString(" = ")
	buf.WriteString(placeholders[field])
	buf.WriteString(",\n")
}

// quoteLuaString quotes a string for Lua, handling special characters.
func (g *Generator) quoteLuaString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\") // Escape backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\x00", "\\000")
	return "\"" + s + "\""
}
