package config

// Lua schema field names and globals
const (
	luaGlobalUndetected = "undetected"
	luaFieldCacheDir    = "cache_dir"
	luaFieldBrowserCmd  = "browser_command"
	luaFieldBrowserVer  = "browser_version"
	luaFieldDriver      = "driver"
	luaFieldLogLevel    = "log_level"
	luaFieldTestingURL  = "cft_base_url"
	luaFieldLegacyURL   = "legacy_base_url"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "UNDETECTED_CONFIG"
	EnvCacheDir   = "UNDETECTED_CACHE_DIR"
	envXDGConfig  = "XDG_CONFIG_HOME"
)

// Limits
const (
	// MaxConfigSize is the largest config file accepted.
	MaxConfigSize = 1 << 20
	// MaxCommandArgs bounds browser_command.
	MaxCommandArgs = 64
)
