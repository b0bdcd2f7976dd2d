package binary

import (
	"time"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
)

// State is the position of an install attempt in the pipeline.
type State int

const (
	StateUnresolved State = iota
	StateResolved
	StateDownloaded
	StateVerified
	StateInstalled

	StateResolutionFailed
	StateDownloadFailed
	StateVerificationFailed
	StateInstallFailed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolved:
		return "resolved"
	case StateDownloaded:
		return "downloaded"
	case StateVerified:
		return "verified"
	case StateInstalled:
		return "installed"
	case StateResolutionFailed:
		return "resolution_failed"
	case StateDownloadFailed:
		return "download_failed"
	case StateVerificationFailed:
		return "verification_failed"
	case StateInstallFailed:
		return "install_failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	switch s {
	case StateInstalled, StateResolutionFailed, StateDownloadFailed,
		StateVerificationFailed, StateInstallFailed:
		return true
	default:
		return false
	}
}

// VerificationMethod indicates how an artifact was verified
type VerificationMethod int

const (
	// VerificationNone means the artifact has not been verified.
	VerificationNone VerificationMethod = iota
	// VerificationSHA256 means only the declared digest was checked.
	VerificationSHA256
	// VerificationGPG means the digest and a detached OpenPGP signature were checked.
	VerificationGPG
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationGPG:
		return "SHA256+GPG"
	case VerificationSHA256:
		return "SHA256"
	case VerificationNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Transition records one state change of an attempt.
type Transition struct {
	From State
	To   State
	At   time.Time
}

// Result describes a finished install attempt, successful or not.
type Result struct {
	AttemptID   string
	State       State
	Artifact    formula.Artifact
	Path        string
	Digest      string
	Verified    VerificationMethod
	Transitions []Transition
	Duration    time.Duration
}
