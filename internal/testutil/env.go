// Package testutil provides utilities for testing pour in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env holds the isolated directories created by SetupTestEnv.
type Env struct {
	Root      string
	ConfigDir string
	BinDir    string
}

// SetupTestEnv points every pour setting at temporary directories so tests
// never read the user's config or write into a real binaries directory.
// POUR_* overrides inherited from the caller's shell are cleared.
//
// The cleanup function is automatically handled by t.TempDir(),
// so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) Env {
	t.Helper()

	tmpDir := t.TempDir()
	env := Env{
		Root:      tmpDir,
		ConfigDir: filepath.Join(tmpDir, "config"),
		BinDir:    filepath.Join(tmpDir, "bin"),
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	for _, key := range []string{
		"POUR_BIN_DIR", "POUR_FETCH_TIMEOUT", "POUR_USER_AGENT", "POUR_MAX_ARTIFACT_BYTES",
		"POUR_KEYRING", "POUR_ENV_PREFIX", "POUR_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	for _, dir := range []string{env.ConfigDir, env.BinDir, filepath.Join(tmpDir, "home")} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}

// WriteFile writes content to a file below the test root and returns its path.
func (e Env) WriteFile(t *testing.T, rel, content string) string {
	t.Helper()

	path := filepath.Join(e.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}
