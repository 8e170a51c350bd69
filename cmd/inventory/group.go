package main

import (
	"github.com/spf13/cobra"

	"inventory/internal/domain"
)

func newGroupCmd(a *app) *cobra.Command {
	var company, office string

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage the groups of an office",
	}
	cmd.PersistentFlags().StringVarP(&company, "company", "c", "", "Company name")
	cmd.PersistentFlags().StringVarP(&office, "office", "o", "", "Office name")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add a group to an office",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				g, err := m.AddGroup(cmd.Context(), args[0], company, office)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), g)
			},
		},
		&cobra.Command{
			Use:   "del NAME",
			Short: "Delete a group; its hosts are kept",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				return m.DelGroup(cmd.Context(), args[0], company, office)
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show a group",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				g, err := m.GetGroup(cmd.Context(), args[0], company, office)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), g)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List groups, of every office unless --company and --office are set",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				c, o := company, office
				if c == "" {
					c = domain.All
				}
				if o == "" {
					o = domain.All
				}
				groups, err := m.ListGroups(cmd.Context(), c, o)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), groups)
			},
		},
	)
	return cmd
}
