package shell

// ShellType represents a supported shell
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellFish represents the Fish shell
	ShellFish ShellType = "fish"
	// ShellUnknown represents an unknown or unsupported shell
	ShellUnknown ShellType = "unknown"
)

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellFish:
		return true
	default:
		return false
	}
}

// RCFile returns the rc file, relative to the home directory, where a PATH
// line for this shell belongs.
func (s ShellType) RCFile() string {
	switch s {
	case ShellBash:
		return ".bashrc"
	case ShellZsh:
		return ".zshrc"
	case ShellFish:
		return ".config/fish/config.fish"
	default:
		return ".profile"
	}
}
