package binary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
)

// Manager orchestrates driver acquisition, patching and cache cleanup
type Manager struct {
	host       Host
	resolver   URLResolver
	downloader *Downloader
	extractor  *Extractor
	patcher    *Patcher
	logger     Logger
}

// Config holds configuration for the manager
type Config struct {
	// Host is the resolved platform profile and browser version
	Host Host
	// Resolver maps the host to a driver archive URL (auto flow only)
	Resolver URLResolver
	// HTTPClient is used for archive downloads (default: NewHTTPClient())
	HTTPClient *http.Client
	// Logger receives progress and discarded cleanup errors (default: no-op)
	Logger Logger
}

// NewManager creates a new manager
func NewManager(config Config) (*Manager, error) {
	if config.Host.Profile.CacheDir == "" {
		return nil, fmt.Errorf("host profile cache directory is required")
	}

	if config.Host.Browser.IsZero() {
		return nil, fmt.Errorf("host browser version is required")
	}

	// The version names files in the cache directory.
	if v := config.Host.Browser.String(); strings.ContainsAny(v, `/\:`) || strings.Contains(v, "..") {
		return nil, fmt.Errorf("host browser version %q is not a valid file name component", v)
	}

	logger := orNoop(config.Logger)

	return &Manager{
		host:       config.Host,
		resolver:   config.Resolver,
		downloader: NewDownloader(config.HTTPClient, logger),
		extractor:  NewExtractor(logger),
		patcher:    NewPatcher(logger),
		logger:     logger,
	}, nil
}

// Host returns the environment the manager was created for.
func (m *Manager) Host() Host {
	return m.host
}

// BinaryPath returns the filesystem path of the patched driver
func (m *Manager) BinaryPath() string {
	return filepath.Join(m.host.Profile.CacheDir, m.host.PatchedName())
}

// IsInstalled checks if the patched driver for the host version exists
func (m *Manager) IsInstalled() (bool, error) {
	info, err := os.Stat(m.BinaryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat driver: %w", err)
	}

	return info.Mode().IsRegular(), nil
}

// Ensure returns the path of a patched driver for the host version.
// If the driver is already cached it is marked executable and returned
// without any network access or content check. Otherwise the archive is
// resolved, downloaded, extracted and patched, and the cache is cleaned.
func (m *Manager) Ensure(ctx context.Context) (string, error) {
	output := m.BinaryPath()

	installed, err := m.IsInstalled()
	if err != nil {
		return "", types.Patch("check cached driver", err)
	}

	if installed {
		if err := SetExecutable(output); err != nil {
			return "", types.Patch("mark cached driver executable", err)
		}
		m.logger.Info("using cached driver", "path", output)
		return output, nil
	}

	if m.resolver == nil {
		return "", types.Download("resolve driver url", errors.New("no URL resolver configured"))
	}

	url, err := m.resolver.ResolveURL(ctx, m.host.Profile, m.host.Browser)
	if err != nil {
		if types.KindOf(err) != types.KindUnknown {
			return "", err
		}
		return "", types.Download("resolve driver url", err)
	}

	cacheDir := m.host.Profile.CacheDir
	archivePath, err := m.downloader.Download(ctx, cacheDir, url, m.host.Browser.String())
	if err != nil {
		return "", err
	}

	extractDir := strings.TrimSuffix(archivePath, ArchiveExt)
	driverPath, err := m.extractor.ExtractDriver(archivePath, extractDir, m.host.Profile.DriverName())
	if err != nil {
		return "", err
	}

	return m.patch(driverPath, output)
}

// PatchFile patches an already located driver binary into the cache and
// cleans the cache. Nothing is downloaded or extracted.
func (m *Manager) PatchFile(ctx context.Context, driverPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", types.Patch("patch driver", err)
	}

	info, err := os.Stat(driverPath)
	if err != nil {
		return "", types.Patch("open driver", err)
	}
	if !info.Mode().IsRegular() {
		return "", types.Patch("open driver", fmt.Errorf("%s is not a regular file", driverPath))
	}

	return m.patch(driverPath, m.BinaryPath())
}

// patch runs the patcher and the cache cleanup.
func (m *Manager) patch(input, output string) (string, error) {
	result, err := m.patcher.Patch(input, output)
	if err != nil {
		return "", err
	}

	m.logger.Info("driver ready",
		"path", output,
		"version", m.host.Browser.String(),
		"patched", result.Patched,
	)

	m.Cleanup()
	return output, nil
}

// Cleanup removes everything in the cache directory except the patched
// driver for the host version and returns the number of removed entries.
func (m *Manager) Cleanup() int {
	return Cleanup(m.host.Profile.CacheDir, m.host.PatchedName(), m.logger)
}
