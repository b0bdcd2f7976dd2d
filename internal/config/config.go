package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pour"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// EnvPrefix prefixes environment variables that override settings.
	EnvPrefix = "POUR"
)

// Setting keys.
const (
	KeyBinDir           = "bin_dir"
	KeyFetchTimeout     = "fetch_timeout"
	KeyUserAgent        = "user_agent"
	KeyMaxArtifactBytes = "max_artifact_bytes"
	KeyKeyring          = "keyring"
	KeyEnvPrefix        = "env_prefix"
	KeyLogLevel         = "log_level"
)

// Config holds the host settings used by every command.
type Config struct {
	BinDir           string        `mapstructure:"bin_dir"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	UserAgent        string        `mapstructure:"user_agent"`
	MaxArtifactBytes int64         `mapstructure:"max_artifact_bytes"`
	Keyring          string        `mapstructure:"keyring"`
	EnvPrefix        string        `mapstructure:"env_prefix"`
	LogLevel         string        `mapstructure:"log_level"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFilePath is an explicit config file. It must exist.
	ConfigFilePath string
	// ConfigDirPath overrides the directory searched for config.yaml.
	ConfigDirPath string
	// Version is used to build the default User-Agent.
	Version string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	binDir := filepath.Join("~", ".local", "bin")
	if home, err := os.UserHomeDir(); err == nil {
		binDir = filepath.Join(home, ".local", "bin")
	}

	return &Config{
		BinDir:           binDir,
		FetchTimeout:     5 * time.Minute,
		UserAgent:        AppName + "/dev",
		MaxArtifactBytes: 512 << 20,
		EnvPrefix:        "HOMEBREW_",
		LogLevel:         "info",
	}
}

// ConfigDir returns $XDG_CONFIG_HOME/pour, defaulting to ~/.config/pour.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// Load resolves settings and returns them with the path of the config file
// that was read ("" when only defaults and environment applied).
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	if opts.Version != "" {
		defaults.UserAgent = AppName + "/" + opts.Version
	}
	v.SetDefault(KeyBinDir, defaults.BinDir)
	v.SetDefault(KeyFetchTimeout, defaults.FetchTimeout)
	v.SetDefault(KeyUserAgent, defaults.UserAgent)
	v.SetDefault(KeyMaxArtifactBytes, defaults.MaxArtifactBytes)
	v.SetDefault(KeyKeyring, defaults.Keyring)
	v.SetDefault(KeyEnvPrefix, defaults.EnvPrefix)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir := opts.ConfigDirPath
		if cfgDir == "" {
			dir, err := ConfigDir()
			if err != nil {
				return nil, "", err
			}
			cfgDir = dir
		}
		candidate := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(candidate) {
			resolvedPath = candidate
		}
	}

	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.BinDir = expandHome(cfg.BinDir)
	cfg.Keyring = expandHome(cfg.Keyring)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BinDir) == "" {
		return fmt.Errorf("invalid %s: must not be empty", KeyBinDir)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid %s: must be positive, got %s", KeyFetchTimeout, c.FetchTimeout)
	}
	if c.MaxArtifactBytes <= 0 {
		return fmt.Errorf("invalid %s: must be positive, got %d", KeyMaxArtifactBytes, c.MaxArtifactBytes)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid %s: %q (expected debug, info, warn, error or fatal)", KeyLogLevel, c.LogLevel)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
