package binary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/ZebulonRouseFrantzich/pour/internal/logging"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
)

// Manager orchestrates resolution, download, verification, and installation
type Manager struct {
	binDir       string
	createBinDir bool
	fetcher      *Fetcher
	installer    *Installer
	keyring      *Keyring
	logger       logging.Logger
}

// Config holds configuration for the binary manager
type Config struct {
	// BinDir is the directory binaries are installed into. It must exist
	// unless CreateBinDir is set.
	BinDir string
	// CreateBinDir creates BinDir once an artifact has been verified. A
	// directory created this way is removed again if the install fails.
	CreateBinDir bool
	// Fetcher downloads artifacts and signatures (default: NewFetcher with defaults).
	Fetcher *Fetcher
	// Keyring enables detached signature checks for artifacts that declare one.
	Keyring *Keyring
	// Logger receives pipeline progress (default: no-op).
	Logger logging.Logger
}

// NewManager creates a new binary manager
func NewManager(config Config) (*Manager, error) {
	if config.BinDir == "" {
		return nil, fmt.Errorf("BinDir is required")
	}

	fetcher := config.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(FetchOptions{})
	}

	return &Manager{
		binDir:       config.BinDir,
		createBinDir: config.CreateBinDir,
		fetcher:      fetcher,
		installer:    NewInstaller(),
		keyring:      config.Keyring,
		logger:       logging.OrNoop(config.Logger),
	}, nil
}

// BinDir returns the directory binaries are installed into.
func (m *Manager) BinDir() string {
	return m.binDir
}

// GetBinaryPath returns the filesystem path an installed binary would have.
func (m *Manager) GetBinaryPath(binaryName string) string {
	return filepath.Join(m.binDir, binaryName)
}

// IsInstalled checks if a binary is already installed and executable
func (m *Manager) IsInstalled(binaryName string) (bool, error) {
	info, err := os.Stat(m.GetBinaryPath(binaryName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat binary: %w", err)
	}

	if !info.Mode().IsRegular() {
		return false, nil
	}

	return info.Mode().Perm()&0111 != 0, nil
}

// Install runs resolve, fetch, verify and install for d on the given
// platform. The returned Result is never nil and reports the state the
// attempt stopped in.
func (m *Manager) Install(ctx context.Context, d *formula.Descriptor, info *platform.Info) (*Result, error) {
	attempt := newAttempt()
	result := &Result{AttemptID: attempt.ID, Verified: VerificationNone}
	log := logging.With(m.logger, "attempt", attempt.ID)

	finish := func(to State, err error) (*Result, error) {
		if advErr := attempt.Advance(to); advErr != nil {
			err = errors.Join(err, advErr)
		}
		log.Debug("transition", "to", to.String())
		result.State = attempt.State
		result.Transitions = attempt.Transitions
		result.Duration = attempt.Elapsed()
		if err != nil {
			log.Error("install failed", "state", to.String(), "error", err)
		}
		return result, err
	}
	step := func(to State) error {
		if err := attempt.Advance(to); err != nil {
			return err
		}
		log.Debug("transition", "to", to.String())
		return nil
	}

	if d == nil {
		return finish(StateResolutionFailed, fmt.Errorf("descriptor is nil"))
	}

	// resolve
	artifact, err := Resolve(d, info)
	if err != nil {
		return finish(StateResolutionFailed, err)
	}
	result.Artifact = artifact
	if err := step(StateResolved); err != nil {
		return result, err
	}
	log.Info("resolved artifact", "formula", d.Name, "platform", info.String(), "match", artifact.When.String(), "url", artifact.URL)

	// Leftover placeholders are an authoring error; nothing is fetched.
	if names := unresolvedPlaceholders(d, artifact); len(names) > 0 {
		return finish(StateDownloadFailed, &DownloadError{
			URL: artifact.URL,
			Err: fmt.Errorf("unresolved placeholders %s", strings.Join(names, ", ")),
		})
	}

	// fetch
	data, err := m.fetcher.Fetch(ctx, artifact.URL)
	if err != nil {
		return finish(StateDownloadFailed, err)
	}
	if err := step(StateDownloaded); err != nil {
		return result, err
	}

	// verify
	if _, err := Verify(data, artifact); err != nil {
		return finish(StateVerificationFailed, err)
	}
	result.Digest = Digest(data)
	result.Verified = VerificationSHA256
	if artifact.SignatureURL != "" {
		if err := m.verifySignature(ctx, data, artifact.SignatureURL); err != nil {
			return finish(StateVerificationFailed, err)
		}
		result.Verified = VerificationGPG
	}
	if err := step(StateVerified); err != nil {
		return result, err
	}
	log.Info("verified artifact", "digest", result.Digest, "method", result.Verified.String())

	// install
	payload, err := Unpack(data, artifact.ResolvedFormat(), d.Binary)
	if err != nil {
		return finish(StateInstallFailed, &InstallError{Path: m.GetBinaryPath(d.Binary), Err: err})
	}
	created, err := m.ensureBinDir()
	if err != nil {
		return finish(StateInstallFailed, &InstallError{Path: m.binDir, Err: err})
	}
	path, err := m.installer.Install(payload, d.Binary, m.binDir)
	if err != nil {
		if created != "" {
			_ = os.RemoveAll(created)
		}
		return finish(StateInstallFailed, err)
	}
	result.Path = path

	res, err := finish(StateInstalled, nil)
	if err == nil {
		log.Info("installed binary", "path", path, "duration", res.Duration.String())
	}
	return res, err
}

// unresolvedPlaceholders lists the placeholder names still present in the
// fields the pipeline acts on.
func unresolvedPlaceholders(d *formula.Descriptor, a formula.Artifact) []string {
	seen := map[string]bool{}
	var names []string
	for _, field := range []string{d.Binary, a.URL, a.Checksum, a.SignatureURL} {
		for _, name := range formula.Placeholders(field) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// ensureBinDir creates the bin dir when CreateBinDir is set and returns the
// outermost directory it had to create, or "" if nothing was created.
func (m *Manager) ensureBinDir() (string, error) {
	if !m.createBinDir {
		return "", nil
	}

	created := ""
	for dir := filepath.Clean(m.binDir); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(dir); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat bin dir: %w", err)
		}
		created = dir
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}

	if err := os.MkdirAll(m.binDir, 0755); err != nil {
		return "", fmt.Errorf("create bin dir: %w", err)
	}
	return created, nil
}

// verifySignature fetches the detached signature at url and checks it
// against the configured keyring.
func (m *Manager) verifySignature(ctx context.Context, data []byte, url string) error {
	if m.keyring == nil {
		return &SignatureError{URL: url, Err: fmt.Errorf("artifact declares a signature but no keyring is configured")}
	}

	sig, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		return &SignatureError{URL: url, Err: err}
	}

	if err := m.keyring.VerifyDetached(data, sig); err != nil {
		return &SignatureError{URL: url, Err: err}
	}
	return nil
}
