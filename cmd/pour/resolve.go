package main

import (
	"fmt"
	"runtime"

	"github.com/ZebulonRouseFrantzich/pour/internal/binary"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
	"github.com/spf13/cobra"
)

type resolveOptions struct {
	set  []string
	os   string
	arch string
}

func newResolveCmd(a *app) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve FORMULA",
		Short: "Show which artifact would be installed on a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "set a placeholder value (KEY=VALUE, repeatable)")
	cmd.Flags().StringVar(&opts.os, "os", "", "resolve for this OS (linux, darwin, other) instead of the host")
	cmd.Flags().StringVar(&opts.arch, "arch", "", "resolve for this architecture instead of the host")

	return cmd
}

func runResolve(cmd *cobra.Command, a *app, opts *resolveOptions, path string) error {
	d, unresolved, err := a.loadTemplate(cmd, path, opts.set)
	if err != nil {
		return err
	}

	info, err := targetPlatform(cmd, opts.os, opts.arch)
	if err != nil {
		return err
	}

	artifact, err := binary.Resolve(d, info)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Formula:  %s %s\n", d.Name, d.Version)
	fmt.Fprintf(out, "Platform: %s\n", info)
	fmt.Fprintf(out, "Match:    %s\n", artifact.When)
	fmt.Fprintf(out, "URL:      %s\n", artifact.URL)
	fmt.Fprintf(out, "SHA256:   %s\n", artifact.Checksum)
	fmt.Fprintf(out, "Format:   %s\n", artifact.ResolvedFormat())
	if artifact.SignatureURL != "" {
		fmt.Fprintf(out, "Signature: %s\n", artifact.SignatureURL)
	}

	manager, err := binary.NewManager(binary.Config{BinDir: a.cfg.BinDir})
	if err != nil {
		return err
	}
	installed, err := manager.IsInstalled(d.Binary)
	if err != nil {
		return err
	}
	state := "not installed"
	if installed {
		state = "installed"
	}
	fmt.Fprintf(out, "Binary:   %s (%s)\n", manager.GetBinaryPath(d.Binary), state)

	for _, name := range unresolved {
		fmt.Fprintf(out, "Unresolved: ${%s}\n", name)
	}
	return nil
}

// targetPlatform returns the host platform, or a synthetic one when --os
// or --arch is given. A missing flag falls back to the host value.
func targetPlatform(cmd *cobra.Command, osFlag, archFlag string) (*platform.Info, error) {
	if osFlag == "" && archFlag == "" {
		return detectPlatform(cmd.Context())
	}

	info := &platform.Info{OS: runtime.GOOS, Arch: runtime.GOARCH}
	if osFlag != "" {
		family, err := platform.ParseOSFamily(osFlag)
		if err != nil {
			return nil, err
		}
		info.OS = string(family)
	}
	if archFlag != "" {
		info.Arch = archFlag
		info.ArchRaw = archFlag
	}
	return info, nil
}
