package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlatformCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the detected platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := detectPlatform(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "OS:       %s (%s)\n", info.OS, info.OSFamily())
			fmt.Fprintf(out, "Arch:     %s\n", info.Arch)
			if distro := info.GetDistro(); distro != nil {
				fmt.Fprintf(out, "Distro:   %s %s (%s)\n", distro.ID, distro.Version, distro.Family)
			}
			fmt.Fprintf(out, "Bin dir:  %s\n", a.cfg.BinDir)
			if a.cfgPath != "" {
				fmt.Fprintf(out, "Config:   %s\n", a.cfgPath)
			}
			return nil
		},
	}
}
