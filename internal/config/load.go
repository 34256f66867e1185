package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath returns the config file location when none is given on the
// command line: $UNDETECTED_CONFIG, else $XDG_CONFIG_HOME/undetected/config.lua,
// else ~/.config/undetected/config.lua.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	if xdg := os.Getenv(envXDGConfig); xdg != "" {
		return filepath.Join(xdg, "undetected", "config.lua"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "undetected", "config.lua"), nil
}

// Load parses the config at path. An empty path selects DefaultPath, and
// then a missing file yields an empty Config; an explicitly named file must
// exist. $UNDETECTED_CACHE_DIR overrides cache_dir in either case. The
// returned string is the path that was consulted.
func (p *Parser) Load(ctx context.Context, path string) (*Config, string, error) {
	explicit := path != "" || os.Getenv(EnvConfigPath) != ""

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, "", err
		}
	}

	cfg, err := p.ParseFile(ctx, path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = &Config{}
	default:
		return nil, path, err
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.CacheDir = dir
	}

	return cfg, path, nil
}
