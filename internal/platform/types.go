// Package platform provides the runtime platform snapshot that formula
// artifacts are matched against.
//
// It detects OS, architecture, and Linux distribution details. Detection of
// the distribution uses gopsutil and degrades to OS/arch only when it fails.
// Artifact predicates are expressed as a Matcher and evaluated against Info.
package platform

import (
	"context"
	"fmt"
	"strings"
)

// Linux distribution family constants.
// These represent canonical family names for grouping related distributions.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// OSFamily is the coarse operating system grouping used by artifact predicates.
type OSFamily string

const (
	OSLinux  OSFamily = "linux"
	OSDarwin OSFamily = "darwin"
	// OSOther covers every operating system that is neither Linux nor Darwin.
	OSOther OSFamily = "other"
)

// ParseOSFamily converts a user supplied OS name into an OSFamily.
// "macos" and "osx" are accepted as aliases for darwin.
func ParseOSFamily(s string) (OSFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return OSLinux, nil
	case "darwin", "macos", "osx":
		return OSDarwin, nil
	case "other":
		return OSOther, nil
	default:
		return "", fmt.Errorf("unknown OS family: %q (expected linux, darwin or other)", s)
	}
}

// FamilyOf maps a GOOS value to its OSFamily.
func FamilyOf(goos string) OSFamily {
	switch goos {
	case "linux":
		return OSLinux
	case "darwin":
		return OSDarwin
	default:
		return OSOther
	}
}

// Info contains platform detection information.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // "amd64", "arm64" (normalized when recognized)
	ArchRaw  string // original GOARCH
	Platform string // distro ID (Linux only, e.g., "ubuntu", "arch")
	Family   string // canonical family (e.g., "debian", "rhel", "arch")
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Distro contains Linux distribution information.
// This is nil on non-Linux platforms.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != "linux" || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// OSFamily returns the coarse OS family of the snapshot.
func (i *Info) OSFamily() OSFamily {
	return FamilyOf(i.OS)
}

// String renders the snapshot as "os/arch".
func (i *Info) String() string {
	return i.OS + "/" + i.Arch
}

// Matcher is a predicate over a platform snapshot. Empty fields match
// anything, so the zero Matcher is the catch-all default.
type Matcher struct {
	OS   OSFamily `json:"os,omitempty" yaml:"os,omitempty"`
	Arch string   `json:"arch,omitempty" yaml:"arch,omitempty"`
}

// Matches reports whether the snapshot satisfies every constraint of m.
func (m Matcher) Matches(info *Info) bool {
	if info == nil {
		return false
	}
	if m.OS != "" && m.OS != info.OSFamily() {
		return false
	}
	if m.Arch != "" {
		arch := normalizeArchName(m.Arch)
		if arch != info.Arch && arch != normalizeArchName(info.ArchRaw) {
			return false
		}
	}
	return true
}

// IsDefault reports whether m matches every platform.
func (m Matcher) IsDefault() bool {
	return m.OS == "" && m.Arch == ""
}

// String renders the predicate for logs and CLI output.
func (m Matcher) String() string {
	if m.IsDefault() {
		return "default"
	}
	parts := make([]string, 0, 2)
	if m.OS != "" {
		parts = append(parts, "os="+string(m.OS))
	}
	if m.Arch != "" {
		parts = append(parts, "arch="+m.Arch)
	}
	return strings.Join(parts, ",")
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector returns a fixed snapshot. It is used when the platform is
// supplied explicitly (for example `pour resolve --os darwin`).
type StaticDetector struct {
	Info *Info
}

// Detect returns the fixed snapshot.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if s.Info == nil {
		return nil, fmt.Errorf("no platform snapshot configured")
	}
	return s.Info, nil
}
