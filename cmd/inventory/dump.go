package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inventory/internal/codec"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print hosts by group for every company and office",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := codec.ForFormat(format)
			if err != nil {
				return err
			}

			m, err := a.manager()
			if err != nil {
				return err
			}
			inv, err := m.Inventory(cmd.Context())
			if err != nil {
				return err
			}
			return exporter.Export(inv, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json",
		fmt.Sprintf("Output format: %s", strings.Join(codec.Formats(), ", ")))
	return cmd
}
