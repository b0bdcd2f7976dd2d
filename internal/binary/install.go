package binary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Installer places a binary into a directory atomically.
type Installer struct {
	// write copies the payload into the temporary file.
	write func(w io.Writer, data []byte) error
}

// NewInstaller creates a new installer
func NewInstaller() *Installer {
	return &Installer{write: writeAll}
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Install writes data to targetDir/binaryName with mode 0755. The content is
// written to a temporary file in targetDir and renamed into place, so the
// final path is either the previous file or the complete new one.
func (i *Installer) Install(data []byte, binaryName, targetDir string) (string, error) {
	destPath := filepath.Join(targetDir, binaryName)

	if binaryName == "" || binaryName == "." || binaryName == ".." || filepath.Base(binaryName) != binaryName {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("binary name must be a plain file name, got %q", binaryName)}
	}

	info, err := os.Stat(targetDir)
	if err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("stat target dir: %w", err)}
	}
	if !info.IsDir() {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("target %s is not a directory", targetDir)}
	}

	tmpFile, err := os.CreateTemp(targetDir, "."+binaryName+".tmp-*")
	if err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	cleanupNeeded := true
	defer func() {
		if cleanupNeeded {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := i.write(tmpFile, data); err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("write temp file: %w", err)}
	}

	if err := tmpFile.Chmod(0755); err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("set executable: %w", err)}
	}

	if err := tmpFile.Sync(); err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("sync temp file: %w", err)}
	}

	if err := tmpFile.Close(); err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("close temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", &InstallError{Path: destPath, Err: fmt.Errorf("rename temp file: %w", err)}
	}

	cleanupNeeded = false
	return destPath, nil
}
