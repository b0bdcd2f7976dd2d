// Package config loads pour's host settings.
//
// Settings come from, in increasing precedence: built-in defaults, a YAML
// config file, and POUR_* environment variables. The config file is the
// path given with --config, or $XDG_CONFIG_HOME/pour/config.yaml when it
// exists. A missing default file is not an error.
//
//	bin_dir: ~/.local/bin
//	fetch_timeout: 5m
//	max_artifact_bytes: 536870912
//	keyring: ~/.config/pour/trusted.gpg
//	env_prefix: HOMEBREW_
//	log_level: info
//
// Formula files are separate from host settings; see package formula.
package config
