// Package config loads the optional Lua configuration file.
//
// # Overview
//
// Users can override the platform defaults (cache directory, browser
// version command) and pin behavior (browser version, explicit driver
// file, download mirrors) in a small Lua file:
//
//	undetected = {
//	    cache_dir = "~/.cache/undetected",
//	    browser_command = platform.is_linux and { "/usr/bin/chromium", "--version" } or nil,
//	    log_level = "debug",
//	}
//
// The file is looked up at $UNDETECTED_CONFIG, then
// $XDG_CONFIG_HOME/undetected/config.lua, then
// ~/.config/undetected/config.lua. A missing default file is not an error;
// the zero Config leaves every platform default in place.
// $UNDETECTED_CACHE_DIR, when set, wins over cache_dir.
//
// # Security Model
//
// Configs run in a gopher-lua VM with the os, io, debug and module-loading
// globals removed, so a config can compute values but cannot touch the
// system. The resolved platform profile is injected as a read-only
// "platform" table. Parsing honors context cancellation, and files larger
// than MaxConfigSize are rejected before they reach the VM.
//
// # Error Handling
//
// Lua errors, missing tables and wrongly typed fields are reported as
// *ParseError; semantic problems such as an unknown log level are
// *ValidationError. FormatError trims Lua stack traces for display.
//
// # Generation
//
// Generator renders a Config back into Lua. With unset fields it produces a
// commented template, which is what "undetected init" writes.
package config
