// Command pour resolves, verifies and installs single-binary formulas.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return Version + " (commit: " + Commit + ")"
}
