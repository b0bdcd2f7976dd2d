// Package binary resolves, fetches, verifies and installs the single
// executable described by a formula.
//
// # Pipeline
//
// Manager.Install runs four stages strictly in order and never retries:
//
//	resolve  pick the first artifact whose predicate matches the platform
//	fetch    one HTTP GET of the artifact URL
//	verify   SHA-256 over the fetched bytes, plus an optional OpenPGP
//	         detached signature when a keyring is configured
//	install  unpack (tar.gz) if needed, write a temp file next to the
//	         target, chmod 0755, fsync, rename
//
// Each stage fails with its own error type (NoMatchingArtifactError,
// DownloadError, ChecksumMismatchError or SignatureError, InstallError), and
// each type matches a sentinel through errors.Is.
//
// # Security Model
//
// Nothing reaches the binaries directory unless its digest equals the one
// declared in the formula. A URL that still contains a ${NAME} placeholder is
// rejected before any network I/O. The final path is replaced by rename only,
// so it is never observed half-written.
//
// # Usage
//
//	mgr, err := binary.NewManager(binary.Config{
//	    BinDir:  "/home/user/.local/bin",
//	    Fetcher: binary.NewFetcher(binary.FetchOptions{}),
//	})
//	if err != nil {
//	    return err
//	}
//
//	result, err := mgr.Install(ctx, descriptor, platformInfo)
package binary
