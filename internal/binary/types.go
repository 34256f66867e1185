package binary

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/undetected/internal/chrome"
	"github.com/ZebulonRouseFrantzich/undetected/internal/platform"
	"github.com/ZebulonRouseFrantzich/undetected/internal/version"
)

const (
	// executableTemplate names the patched driver; %s is the browser version.
	executableTemplate = "undetected_%s_chromedriver"
	// ArchiveExt is the extension of downloaded driver archives.
	ArchiveExt = ".zip"
)

// Host is the resolved environment the pipeline runs against. It is
// populated once by the caller and passed to the Manager; nothing in this
// package re-detects the platform or the browser version.
type Host struct {
	Profile platform.Profile
	Browser version.Version
}

// DetectHost runs the profile's version-query command once and returns the
// resulting Host.
func DetectHost(ctx context.Context, profile platform.Profile, runner chrome.Runner) (Host, error) {
	v, err := chrome.DetectInstalled(ctx, runner, profile.Command())
	if err != nil {
		return Host{}, err
	}
	return Host{Profile: profile, Browser: v}, nil
}

// PatchedName returns the canonical file name of the patched driver.
func (h Host) PatchedName() string {
	return fmt.Sprintf(executableTemplate, h.Browser.String()) + h.Profile.ExecutableSuffix()
}

// ArchiveName returns the file name the driver archive is downloaded to.
func (h Host) ArchiveName() string {
	return h.Browser.String() + ArchiveExt
}

// URLResolver maps a platform profile and browser version to the download
// URL of the matching driver archive.
type URLResolver interface {
	ResolveURL(ctx context.Context, profile platform.Profile, v version.Version) (string, error)
}

// URLResolverFunc adapts a function to URLResolver.
type URLResolverFunc func(ctx context.Context, profile platform.Profile, v version.Version) (string, error)

// ResolveURL calls f.
func (f URLResolverFunc) ResolveURL(ctx context.Context, profile platform.Profile, v version.Version) (string, error) {
	return f(ctx, profile, v)
}

// PatchResult describes what the patcher did to a driver.
type PatchResult struct {
	Patched bool  // marker found and replaced
	Offset  int   // byte offset of the replaced marker
	Length  int   // length of the replaced region
	Size    int64 // size of the written driver
}
