// Package release maps a browser version to the download URL of the
// matching driver archive.
//
// Browsers from major 115 onward are served from the Chrome for Testing
// bucket, where the URL is fully determined by version and platform. Older
// browsers go through the legacy bucket, which first has to be asked for
// the newest driver release of the browser's major version.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ZebulonRouseFrantzich/undetected/internal/binary"
	"github.com/ZebulonRouseFrantzich/undetected/internal/platform"
	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
	"github.com/ZebulonRouseFrantzich/undetected/internal/version"
)

const (
	// DefaultTestingBaseURL is the Chrome for Testing download bucket.
	DefaultTestingBaseURL = "https://storage.googleapis.com/chrome-for-testing-public"
	// DefaultLegacyBaseURL is the pre-115 chromedriver bucket.
	DefaultLegacyBaseURL = "https://chromedriver.storage.googleapis.com"

	// testingMinMajor is the first major version published to Chrome for Testing.
	testingMinMajor = 115

	// maxReleaseBody bounds the LATEST_RELEASE response read into memory.
	maxReleaseBody = 1 << 10
)

// Config holds configuration for the resolver
type Config struct {
	// HTTPClient is used for release lookups (default: binary.NewHTTPClient())
	HTTPClient *http.Client
	// TestingBaseURL overrides DefaultTestingBaseURL
	TestingBaseURL string
	// LegacyBaseURL overrides DefaultLegacyBaseURL
	LegacyBaseURL string
}

// Resolver implements binary.URLResolver against the public driver buckets.
type Resolver struct {
	client     *http.Client
	testingURL string
	legacyURL  string
}

var _ binary.URLResolver = (*Resolver)(nil)

// New creates a resolver, filling unset fields with defaults.
func New(config Config) *Resolver {
	if config.HTTPClient == nil {
		config.HTTPClient = binary.NewHTTPClient()
	}
	if config.TestingBaseURL == "" {
		config.TestingBaseURL = DefaultTestingBaseURL
	}
	if config.LegacyBaseURL == "" {
		config.LegacyBaseURL = DefaultLegacyBaseURL
	}

	return &Resolver{
		client:     config.HTTPClient,
		testingURL: strings.TrimRight(config.TestingBaseURL, "/"),
		legacyURL:  strings.TrimRight(config.LegacyBaseURL, "/"),
	}
}

// ResolveURL returns the archive URL for the driver matching v on profile.
func (r *Resolver) ResolveURL(ctx context.Context, profile platform.Profile, v version.Version) (string, error) {
	major := v.Major()
	if major < 0 {
		return "", types.Download("resolve driver url",
			fmt.Errorf("version %q has no major component", v.String()))
	}

	if major >= testingMinMajor {
		return r.testingURLFor(profile, v)
	}

	return r.legacyURLFor(ctx, profile, major)
}

// testingURLFor builds a Chrome for Testing URL
// Pattern: {base}/{version}/{plat}/chromedriver-{plat}.zip
func (r *Resolver) testingURLFor(profile platform.Profile, v version.Version) (string, error) {
	plat, err := TestingPlatform(profile)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s/chromedriver-%s.zip", r.testingURL, v.String(), plat, plat), nil
}

// legacyURLFor asks the legacy bucket for the newest release of major and
// builds the archive URL from it.
// Pattern: {base}/{release}/{profile.Archive}
func (r *Resolver) legacyURLFor(ctx context.Context, profile platform.Profile, major int64) (string, error) {
	if profile.Archive == "" {
		return "", types.UnsupportedPlatform("resolve legacy archive",
			fmt.Errorf("no legacy archive for %s", profile.Kind))
	}

	latest, err := r.latestRelease(ctx, major)
	if err != nil {
		return "", types.Download("query latest release", err)
	}

	return fmt.Sprintf("%s/%s/%s", r.legacyURL, latest, profile.Archive), nil
}

// latestRelease fetches LATEST_RELEASE_<major> from the legacy bucket.
func (r *Resolver) latestRelease(ctx context.Context, major int64) (string, error) {
	url := fmt.Sprintf("%s/LATEST_RELEASE_%d", r.legacyURL, major)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", binary.DefaultUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReleaseBody))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	latest := strings.TrimSpace(string(body))
	if latest == "" || strings.ContainsAny(latest, "/ \t\r\n") {
		return "", fmt.Errorf("malformed release %q", latest)
	}

	return latest, nil
}

// TestingPlatform maps a profile to its Chrome for Testing platform name.
// An empty architecture is treated as amd64.
func TestingPlatform(profile platform.Profile) (string, error) {
	arch := profile.Arch
	if arch == "" {
		arch = "amd64"
	}

	switch profile.Kind {
	case platform.KindLinux:
		if arch == "amd64" {
			return "linux64", nil
		}
	case platform.KindWindows:
		switch arch {
		case "amd64", "arm64":
			return "win64", nil
		case "386":
			return "win32", nil
		}
	case platform.KindMacOS:
		switch arch {
		case "arm64":
			return "mac-arm64", nil
		case "amd64":
			return "mac-x64", nil
		}
	}

	return "", types.UnsupportedPlatform("resolve driver platform",
		fmt.Errorf("no chromedriver build for %s/%s", profile.Kind, arch))
}
