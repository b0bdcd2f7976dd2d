package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OnPath reports whether dir is one of the entries of a PATH value.
func OnPath(dir, pathEnv string) bool {
	want := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry != "" && filepath.Clean(entry) == want {
			return true
		}
	}
	return false
}

// PathLine returns the line that adds dir to PATH in the given shell.
func PathLine(s ShellType, dir string) string {
	quoted := quote(dir)
	if s == ShellFish {
		return "fish_add_path " + quoted
	}
	return fmt.Sprintf("export PATH=%s:\"$PATH\"", quoted)
}

// PathHint returns a short message telling the user how to put dir on
// PATH, or "" when it already is.
func PathHint(getenv func(string) string, dir string) string {
	if OnPath(dir, getenv("PATH")) {
		return ""
	}
	s := DetectShell(getenv)
	return fmt.Sprintf("%s is not on your PATH. Add this line to ~/%s:\n  %s",
		dir, s.RCFile(), PathLine(s, dir))
}

// quote single-quotes s for POSIX shells and fish.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
