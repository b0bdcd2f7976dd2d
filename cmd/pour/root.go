package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/pour/internal/config"
	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/ZebulonRouseFrantzich/pour/internal/logging"
	"github.com/spf13/cobra"
)

// app carries state shared by all subcommands once the root command has
// loaded settings.
type app struct {
	cfgFile string
	verbose bool

	cfg     *config.Config
	cfgPath string
	logger  logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.Noop()}

	rootCmd := &cobra.Command{
		Use:   "pour",
		Short: "Install a single prebuilt binary from a formula",
		Long: `pour reads a formula, picks the artifact that matches this machine,
downloads it, checks its SHA-256 digest and installs the binary.

Formulas are sandboxed Lua or YAML files. Placeholders such as
${HOMEBREW_VERSION} are filled from --set KEY=VALUE flags and from
environment variables starting with the configured prefix.

Examples:
  pour install into-docker.lua --set HOMEBREW_VERSION=1.1.0
  pour resolve into-docker.lua --os darwin --arch arm64
  pour materialize into-docker.lua -o into-docker.resolved.lua --strict
  pour platform`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pour/config.yaml)")

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newMaterializeCmd(a))
	rootCmd.AddCommand(newPlatformCmd(a))

	return rootCmd
}

// load reads host settings and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, path, err := config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: a.cfgFile,
		Version:        Version,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Prefix: "pour"})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.cfgPath = path
	a.logger = logger

	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}
	return nil
}

// formulaError renders parse failures without the Lua traceback unless
// --verbose is set.
func (a *app) formulaError(err error) error {
	var parseErr *formula.ParseError
	if errors.As(err, &parseErr) {
		return errors.New(formula.FormatError(parseErr, a.verbose))
	}
	return err
}

// loadTemplate parses a formula file and materializes it with variables
// from the environment and --set flags. Later sources win.
func (a *app) loadTemplate(cmd *cobra.Command, path string, assignments []string) (*formula.Descriptor, []string, error) {
	tmpl, err := formula.NewParser().WithLogger(a.logger).ParseFile(cmd.Context(), path)
	if err != nil {
		return nil, nil, a.formulaError(err)
	}

	setVars, err := formula.ParseAssignments(assignments)
	if err != nil {
		return nil, nil, err
	}
	vars := formula.VarsFromEnv(os.Environ(), a.cfg.EnvPrefix).Merge(setVars)

	d, unresolved, err := formula.Materialize(tmpl, vars)
	if err != nil {
		return nil, nil, err
	}

	for _, pos := range d.Unreachable() {
		a.logger.Warn("artifact can never be selected because an earlier artifact matches every platform", "formula", d.Name, "position", pos)
	}
	return d, unresolved, nil
}
