package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/ZebulonRouseFrantzich/undetected/internal/binary"
	"github.com/ZebulonRouseFrantzich/undetected/internal/chrome"
	"github.com/ZebulonRouseFrantzich/undetected/internal/config"
	"github.com/ZebulonRouseFrantzich/undetected/internal/platform"
	"github.com/ZebulonRouseFrantzich/undetected/internal/release"
	"github.com/ZebulonRouseFrantzich/undetected/internal/version"
)

// deps are the external collaborators of a command. Tests replace them.
type deps struct {
	detector   platform.Detector
	runner     chrome.Runner
	httpClient *http.Client
	stdout     io.Writer
	stderr     io.Writer
}

func defaultDeps() deps {
	return deps{
		detector: platform.NewDetector(),
		runner:   chrome.ExecRunner{},
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// environment is the resolved state shared by patch and detect.
type environment struct {
	cfg     *config.Config
	cfgPath string
	profile platform.Profile
	log     zerolog.Logger
}

// loadEnvironment resolves the platform profile, loads the config with the
// profile exposed to it, and applies the config's overrides.
func loadEnvironment(ctx context.Context, d deps, cfgPath string) (*environment, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	table := platform.NewTable(home)
	profile, err := table.ResolveHost(ctx, d.detector)
	if err != nil {
		return nil, err
	}

	cfg, path, err := config.NewParser(&profile).Load(ctx, cfgPath)
	if err != nil {
		return nil, err
	}

	env := &environment{
		cfg:     cfg,
		cfgPath: path,
		profile: cfg.ApplyTo(profile, home),
		log:     setupLogging(d.stderr, cfg.LogLevel),
	}

	env.log.Debug().
		Str("config", path).
		Str("platform", env.profile.Kind.String()).
		Str("arch", env.profile.Arch).
		Str("cache_dir", env.profile.CacheDir).
		Msg("environment resolved")

	return env, nil
}

// host returns the pinned browser version from the config, or runs the
// profile's version command once.
func (e *environment) host(ctx context.Context, runner chrome.Runner) (binary.Host, error) {
	if e.cfg.BrowserVersion != "" {
		e.log.Debug().Str("version", e.cfg.BrowserVersion).Msg("using pinned browser version")
		return binary.Host{Profile: e.profile, Browser: version.Parse(e.cfg.BrowserVersion)}, nil
	}

	host, err := binary.DetectHost(ctx, e.profile, runner)
	if err != nil {
		return binary.Host{}, err
	}

	e.log.Debug().Str("version", host.Browser.String()).Msg("detected installed browser")
	return host, nil
}

// manager builds the binary manager for host.
func (e *environment) manager(host binary.Host, client *http.Client) (*binary.Manager, error) {
	resolver := release.New(release.Config{
		HTTPClient:     client,
		TestingBaseURL: e.cfg.TestingBaseURL,
		LegacyBaseURL:  e.cfg.LegacyBaseURL,
	})

	return binary.NewManager(binary.Config{
		Host:       host,
		Resolver:   resolver,
		HTTPClient: client,
		Logger:     zerologAdapter{log: e.log},
	})
}
