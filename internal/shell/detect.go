package shell

import (
	"path/filepath"
	"strings"
)

// DetectShell detects the user's shell from the SHELL environment value.
func DetectShell(getenv func(string) string) ShellType {
	if shell := getenv("SHELL"); shell != "" {
		return parseShellFromPath(shell)
	}
	return ShellUnknown
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - /usr/local/bin/fish -> fish
func parseShellFromPath(shellPath string) ShellType {
	switch strings.ToLower(filepath.Base(shellPath)) {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}
