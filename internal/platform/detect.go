package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	goos   string
	goarch string
}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{goos: runtime.GOOS, goarch: runtime.GOARCH}
}

// Detect performs platform detection and returns platform information.
// OS and architecture come from the Go runtime; on Linux gopsutil adds the
// distribution. A failed distribution lookup is not an error: the snapshot
// still carries OS and architecture, which is all artifact predicates need.
// An unrecognized architecture is kept verbatim so that formulas can still
// match it literally.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	arch, _ := normalizeArch(d.goarch)
	info := &Info{
		OS:      d.goos,
		Arch:    arch,
		ArchRaw: d.goarch,
	}

	if d.goos != "linux" {
		return info, nil
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	platform = normalizePlatform(platform)
	if platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizePlatform(version)
	}

	return info, nil
}
