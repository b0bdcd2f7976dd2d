package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/binary"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
	"github.com/ZebulonRouseFrantzich/pour/internal/shell"
	"github.com/spf13/cobra"
)

type installOptions struct {
	set    []string
	binDir string
}

func newInstallCmd(a *app) *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:   "install FORMULA",
		Short: "Resolve, download, verify and install a formula's binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "set a placeholder value (KEY=VALUE, repeatable)")
	cmd.Flags().StringVar(&opts.binDir, "bin-dir", "", "install into this directory instead of the configured bin_dir")

	return cmd
}

func runInstall(cmd *cobra.Command, a *app, opts *installOptions, path string) error {
	ctx := cmd.Context()

	d, unresolved, err := a.loadTemplate(cmd, path, opts.set)
	if err != nil {
		return err
	}
	if len(unresolved) > 0 {
		return fmt.Errorf("unresolved placeholders: %s", strings.Join(unresolved, ", "))
	}

	info, err := detectPlatform(ctx)
	if err != nil {
		return err
	}

	binDir := a.cfg.BinDir
	if opts.binDir != "" {
		binDir = opts.binDir
	}
	manager, err := newManager(a, binDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	result, err := manager.Install(ctx, d, info)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installed %s %s to %s\n", d.Name, d.Version, result.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "  sha256:   %s\n", result.Digest)
	fmt.Fprintf(cmd.OutOrStdout(), "  verified: %s\n", result.Verified)

	if hint := shell.PathHint(os.Getenv, binDir); hint != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}
	return nil
}

// newManager builds a binary manager from host settings.
func newManager(a *app, binDir string) (*binary.Manager, error) {
	var keyring *binary.Keyring
	if a.cfg.Keyring != "" {
		k, err := binary.LoadKeyring(a.cfg.Keyring)
		if err != nil {
			return nil, fmt.Errorf("load keyring: %w", err)
		}
		keyring = k
	}

	fetcher := binary.NewFetcher(binary.FetchOptions{
		Timeout:   a.cfg.FetchTimeout,
		UserAgent: a.cfg.UserAgent,
		MaxBytes:  a.cfg.MaxArtifactBytes,
	}).WithLogger(a.logger)

	return binary.NewManager(binary.Config{
		BinDir:       binDir,
		CreateBinDir: true,
		Fetcher:      fetcher,
		Keyring:      keyring,
		Logger:       a.logger,
	})
}

// detectPlatform wraps platform detection with context support
func detectPlatform(ctx context.Context) (*platform.Info, error) {
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	return info, nil
}
