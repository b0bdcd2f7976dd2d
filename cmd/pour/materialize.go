package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/spf13/cobra"
)

type materializeOptions struct {
	set    []string
	output string
	strict bool
}

func newMaterializeCmd(a *app) *cobra.Command {
	opts := &materializeOptions{}

	cmd := &cobra.Command{
		Use:   "materialize TEMPLATE",
		Short: "Fill in placeholders and write a resolved Lua formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "set a placeholder value (KEY=VALUE, repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any placeholder is left unresolved")

	return cmd
}

func runMaterialize(cmd *cobra.Command, a *app, opts *materializeOptions, path string) error {
	d, unresolved, err := a.loadTemplate(cmd, path, opts.set)
	if err != nil {
		return err
	}

	if len(unresolved) > 0 {
		if opts.strict {
			return fmt.Errorf("unresolved placeholders: %s", strings.Join(unresolved, ", "))
		}
		a.logger.Warn("formula has unresolved placeholders", "names", strings.Join(unresolved, ","))
	}

	src, err := formula.NewGenerator().Generate(d)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), src)
		return err
	}

	return writeFileAtomic(opts.output, []byte(src), 0644)
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
