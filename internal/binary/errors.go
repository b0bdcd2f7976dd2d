package binary

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per pipeline stage. Match them with errors.Is.
var (
	ErrNoMatchingArtifact = errors.New("no matching artifact")
	ErrDownload           = errors.New("download failed")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrSignature          = errors.New("signature verification failed")
	ErrInstall            = errors.New("install failed")
)

// NoMatchingArtifactError is returned by Resolve when no artifact predicate
// matches the platform.
type NoMatchingArtifactError struct {
	Formula  string
	Platform string
}

func (e *NoMatchingArtifactError) Error() string {
	return fmt.Sprintf("no artifact of %s matches platform %s", e.Formula, e.Platform)
}

func (e *NoMatchingArtifactError) Is(target error) bool {
	return target == ErrNoMatchingArtifact
}

// DownloadError is returned when an artifact or signature cannot be fetched.
type DownloadError struct {
	URL        string
	StatusCode int // zero unless the server answered
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

func (e *DownloadError) Is(target error) bool {
	return target == ErrDownload
}

// ChecksumMismatchError is returned when fetched bytes do not hash to the
// declared digest.
type ChecksumMismatchError struct {
	URL      string
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.URL, e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// SignatureError is returned when a declared detached signature cannot be
// checked or does not verify.
type SignatureError struct {
	URL string
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("verify signature %s: %v", e.URL, e.Err)
}

func (e *SignatureError) Unwrap() error { return e.Err }

func (e *SignatureError) Is(target error) bool {
	return target == ErrSignature
}

// InstallError is returned when the binary cannot be placed at its target.
type InstallError struct {
	Path string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s: %v", e.Path, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

func (e *InstallError) Is(target error) bool {
	return target == ErrInstall
}
