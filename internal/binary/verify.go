package binary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
)

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify checks data against the artifact's declared checksum and returns
// data unchanged on success. The comparison ignores hex case. Only SHA-256
// is supported; any other algorithm fails with ErrChecksumMismatch.
func Verify(data []byte, a formula.Artifact) ([]byte, error) {
	switch a.Algorithm {
	case formula.SHA256, "":
	default:
		return nil, fmt.Errorf("%w: unsupported checksum algorithm %q", ErrChecksumMismatch, a.Algorithm)
	}

	actual := Digest(data)
	if !strings.EqualFold(actual, a.Checksum) {
		return nil, &ChecksumMismatchError{
			URL:      a.URL,
			Expected: strings.ToLower(a.Checksum),
			Actual:   actual,
		}
	}
	return data, nil
}
