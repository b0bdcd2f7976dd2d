package platform

import (
	"strings"
)

// familyMap maps distribution names to their canonical family names.
// gopsutil reports families inconsistently across distributions.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// archAliases maps vendor architecture spellings to GOARCH names.
var archAliases = map[string]string{
	"x86_64":  "amd64",
	"x64":     "amd64",
	"aarch64": "arm64",
	"armv7":   "arm",
	"i386":    "386",
	"i686":    "386",
	"x86":     "386",
}

// normalizeArch converts an architecture name to its GOARCH spelling.
// The second result is false when the name is not a known alias or GOARCH.
func normalizeArch(arch string) (string, bool) {
	name := normalizeArchName(arch)
	switch name {
	case "amd64", "arm64", "arm", "386", "ppc64le", "s390x", "riscv64":
		return name, true
	default:
		return name, false
	}
}

// normalizeArchName lowercases arch and resolves vendor aliases.
func normalizeArchName(arch string) string {
	name := strings.ToLower(strings.TrimSpace(arch))
	if alias, ok := archAliases[name]; ok {
		return alias
	}
	return name
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
