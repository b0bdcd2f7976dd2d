package formula

import (
	"fmt"
	"path"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
)

// ChecksumAlgorithm names the digest used to verify an artifact.
type ChecksumAlgorithm string

const (
	// SHA256 is the only supported checksum algorithm.
	SHA256 ChecksumAlgorithm = "sha256"
)

// DigestLength returns the expected hex length of a digest, or 0 if the
// algorithm is unknown.
func (a ChecksumAlgorithm) DigestLength() int {
	switch a {
	case SHA256:
		return 64
	default:
		return 0
	}
}

// ArtifactFormat describes how the binary is packaged inside an artifact.
type ArtifactFormat string

const (
	// FormatAuto infers the format from the URL suffix.
	FormatAuto ArtifactFormat = ""
	// FormatBinary means the artifact is the executable itself.
	FormatBinary ArtifactFormat = "binary"
	// FormatTarGz means the executable is an entry of a gzipped tarball.
	FormatTarGz ArtifactFormat = "tar.gz"
)

// ParseArtifactFormat validates a declared format string.
func ParseArtifactFormat(s string) (ArtifactFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatAuto, nil
	case "binary", "raw":
		return FormatBinary, nil
	case "tar.gz", "tgz":
		return FormatTarGz, nil
	default:
		return "", fmt.Errorf("unknown artifact format: %q (expected binary or tar.gz)", s)
	}
}

// Artifact is one downloadable variant of a formula together with the
// platform predicate that selects it.
type Artifact struct {
	When         platform.Matcher
	URL          string
	Checksum     string
	Algorithm    ChecksumAlgorithm
	Format       ArtifactFormat
	SignatureURL string
}

// ResolvedFormat returns the declared format, or the one implied by the URL.
func (a Artifact) ResolvedFormat() ArtifactFormat {
	if a.Format != FormatAuto {
		return a.Format
	}
	p := strings.ToLower(a.URL)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if strings.HasSuffix(p, ".tar.gz") || strings.HasSuffix(p, ".tgz") {
		return FormatTarGz
	}
	return FormatBinary
}

// Descriptor is a fully materialized formula. It is built once by
// Materialize and never modified afterwards.
type Descriptor struct {
	Name        string
	Description string
	Homepage    string
	Version     string
	Artifacts   []Artifact
	Binary      string
}

// Template is a parsed formula whose strings may still contain ${NAME}
// placeholders.
type Template Descriptor

// ValidationError represents a formula validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "formula validation failed for " + e.Field + ": " + e.Message
	}
	return "formula validation failed: " + e.Message
}

// ParseError represents a formula parsing error with a friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua or YAML error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// FormatError formats a ParseError for user display. Outside verbose mode
// the Lua stack traceback is dropped.
func FormatError(err error, verbose bool) string {
	parseErr, ok := err.(*ParseError)
	if !ok {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
	}
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", parseErr.Message, detail)
}

// isPlainFileName reports whether name can be used as a single path element.
func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return path.Base(name) == name
}
