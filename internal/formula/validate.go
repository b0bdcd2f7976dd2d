package formula

import (
	"encoding/hex"
	"fmt"
)

// Validate checks the structural invariants of a descriptor.
// Checksums that still contain placeholders are not checked for format.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return &ValidationError{Field: fieldName, Message: "name cannot be empty"}
	}

	if d.Binary == "" {
		return &ValidationError{Field: fieldBin, Message: "binary name cannot be empty"}
	}
	if !HasPlaceholders(d.Binary) && !isPlainFileName(d.Binary) {
		return &ValidationError{
			Field:   fieldBin,
			Message: fmt.Sprintf("binary name must be a plain file name, got %q", d.Binary),
		}
	}

	if len(d.Artifacts) == 0 {
		return &ValidationError{Field: fieldArtifacts, Message: "at least one artifact is required"}
	}
	if len(d.Artifacts) > MaxArtifacts {
		return &ValidationError{
			Field:   fieldArtifacts,
			Message: fmt.Sprintf("too many artifacts (%d), maximum is %d", len(d.Artifacts), MaxArtifacts),
		}
	}

	for i, a := range d.Artifacts {
		if err := validateArtifact(a); err != nil {
			err.Field = fmt.Sprintf("artifacts[%d].%s", i+1, err.Field)
			return err
		}
	}

	return nil
}

func validateArtifact(a Artifact) *ValidationError {
	if a.URL == "" {
		return &ValidationError{Field: fieldURL, Message: "url cannot be empty"}
	}

	if a.Checksum == "" {
		return &ValidationError{Field: fieldSHA256, Message: "checksum cannot be empty"}
	}

	want := a.Algorithm.DigestLength()
	if want == 0 {
		return &ValidationError{Field: fieldSHA256, Message: fmt.Sprintf("unsupported checksum algorithm %q", a.Algorithm)}
	}

	if !HasPlaceholders(a.Checksum) && !isHexDigest(a.Checksum, want) {
		return &ValidationError{
			Field:   fieldSHA256,
			Message: fmt.Sprintf("checksum must be %d hex characters, got %q", want, a.Checksum),
		}
	}

	switch a.Format {
	case FormatAuto, FormatBinary, FormatTarGz:
	default:
		return &ValidationError{Field: fieldFormat, Message: fmt.Sprintf("unknown format %q", a.Format)}
	}

	return nil
}

// Unreachable returns the 1-based positions of artifacts declared after a
// catch-all. They can never be selected because the first match wins.
func (d *Descriptor) Unreachable() []int {
	var out []int
	seenDefault := false
	for i, a := range d.Artifacts {
		if seenDefault {
			out = append(out, i+1)
			continue
		}
		if a.When.IsDefault() {
			seenDefault = true
		}
	}
	return out
}

func isHexDigest(value string, expectedLen int) bool {
	if len(value) != expectedLen {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}
