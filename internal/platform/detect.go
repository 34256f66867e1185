package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
)

// RealDetector implements Detector using actual host detection.
type RealDetector struct{}

// NewDetector creates a new host detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect identifies the host OS and architecture.
// It asks gopsutil for the OS name and kernel architecture so that an
// emulated process (e.g. amd64 under Rosetta) still reports the machine's
// native architecture, which is what the installed browser is built for.
//
// If gopsutil fails, it falls back to runtime.GOOS and runtime.GOARCH.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	osName, archRaw := runtime.GOOS, runtime.GOARCH

	stat, err := host.InfoWithContext(ctx)
	if err != nil {
		// Check if context was cancelled - this is a hard failure
		if ctx.Err() != nil {
			return nil, fmt.Errorf("host detection cancelled: %w", ctx.Err())
		}
	} else {
		if stat.OS != "" {
			osName = stat.OS
		}
		if stat.KernelArch != "" {
			archRaw = stat.KernelArch
		}
	}

	arch, err := normalizeArch(archRaw)
	if err != nil {
		// An unknown kernel architecture string should not hide a Go
		// architecture we do know.
		arch, err = normalizeArch(runtime.GOARCH)
		if err != nil {
			return nil, types.UnsupportedPlatform("detect architecture", err)
		}
	}

	return &Info{
		OS:      osName,
		Arch:    arch,
		ArchRaw: archRaw,
	}, nil
}

// Resolve selects the profile matching a host OS identifier.
func (t *Table) Resolve(id string) (Profile, error) {
	kind, ok := Classify(id)
	if !ok {
		return Profile{}, types.UnsupportedPlatform("classify host",
			fmt.Errorf("couldn't determine operating system from %q", id))
	}

	p, ok := t.Lookup(kind)
	if !ok {
		return Profile{}, types.UnsupportedPlatform("lookup profile",
			fmt.Errorf("no profile for %s", kind))
	}
	return p, nil
}

// ResolveHost runs detector once and returns the matching profile with the
// host architecture filled in.
func (t *Table) ResolveHost(ctx context.Context, detector Detector) (Profile, error) {
	info, err := detector.Detect(ctx)
	if err != nil {
		return Profile{}, err
	}

	p, err := t.Resolve(info.OS)
	if err != nil {
		return Profile{}, err
	}
	return p.WithArch(info.Arch), nil
}
