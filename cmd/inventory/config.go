package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventory/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var (
		path  string
		force bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "Where to write (default: the user config directory)")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := a.path
			if source == "" {
				source = "(defaults)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n%s\n", source, a.cfg.Summary())
			if a.path == "" {
				fmt.Fprintln(out, "Searched:")
				for _, p := range config.SearchPaths() {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}
