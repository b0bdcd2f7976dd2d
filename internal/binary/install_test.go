package binary

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestInstallerInstall(t *testing.T) {
	dir := t.TempDir()
	data := []byte("#!/bin/sh\necho into\n")

	path, err := NewInstaller().Install(data, "into", dir)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if path != filepath.Join(dir, "into") {
		t.Errorf("path = %s", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read installed file: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("installed content differs from input")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %o, want 0755", info.Mode().Perm())
	}

	assertOnlyFiles(t, dir, "into")
}

func TestInstallerInstall_Overwrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "into")
	if err := os.WriteFile(target, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewInstaller().Install([]byte("new"), "into", dir); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	got, _ := os.ReadFile(target)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
	info, _ := os.Stat(target)
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %o, want 0755", info.Mode().Perm())
	}
}

func TestInstallerInstall_FailedWriteLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	installer := NewInstaller()
	installer.write = func(w io.Writer, data []byte) error {
		// Half the payload lands before the failure.
		if _, err := w.Write(data[:len(data)/2]); err != nil {
			return err
		}
		return errors.New("disk full")
	}

	_, err := installer.Install([]byte("0123456789"), "into", dir)
	if !errors.Is(err, ErrInstall) {
		t.Fatalf("expected ErrInstall, got %v", err)
	}

	assertOnlyFiles(t, dir)
}

func TestInstallerInstall_FailedWriteKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "into")
	if err := os.WriteFile(target, []byte("previous"), 0755); err != nil {
		t.Fatal(err)
	}

	installer := NewInstaller()
	installer.write = func(w io.Writer, data []byte) error { return errors.New("interrupted") }

	if _, err := installer.Install([]byte("next"), "into", dir); err == nil {
		t.Fatal("expected error")
	}

	got, _ := os.ReadFile(target)
	if string(got) != "previous" {
		t.Errorf("previous binary was modified: %q", got)
	}
	assertOnlyFiles(t, dir, "into")
}

func TestInstallerInstall_InvalidTargets(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		binaryName string
		targetDir  string
	}{
		{name: "missing_dir", binaryName: "into", targetDir: filepath.Join(dir, "missing")},
		{name: "dir_is_file", binaryName: "into", targetDir: file},
		{name: "name_with_separator", binaryName: "../into", targetDir: dir},
		{name: "empty_name", binaryName: "", targetDir: dir},
		{name: "dot_dot", binaryName: "..", targetDir: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInstaller().Install([]byte("x"), tt.binaryName, tt.targetDir)
			if !errors.Is(err, ErrInstall) {
				t.Errorf("expected ErrInstall, got %v", err)
			}
		})
	}
}

// assertOnlyFiles fails unless dir contains exactly the named entries.
func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, e := range entries {
		if !want[e.Name()] {
			t.Errorf("unexpected file left in %s: %s", dir, e.Name())
		}
		delete(want, e.Name())
	}
	for n := range want {
		t.Errorf("expected file %s in %s", n, dir)
	}
}
