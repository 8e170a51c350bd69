package main

import (
	"github.com/spf13/cobra"
)

func newHostCmd(a *app) *cobra.Command {
	var company, office string

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Manage the hosts of an office",
	}
	cmd.PersistentFlags().StringVarP(&company, "company", "c", "", "Company name")
	cmd.PersistentFlags().StringVarP(&office, "office", "o", "", "Office name")

	var groups []string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a host to an office as a member of existing groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			h, err := m.AddHost(cmd.Context(), args[0], company, office, groups)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), h)
		},
	}
	add.Flags().StringArrayVarP(&groups, "group", "g", nil, "Group to join (repeatable)")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "del NAME",
			Short: "Delete a host",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				return m.DelHost(cmd.Context(), args[0], company, office)
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show a host and its groups",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				h, err := m.GetHost(cmd.Context(), args[0], company, office)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), h)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the hosts of an office",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				hosts, err := m.GetHosts(cmd.Context(), company, office)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), hosts)
			},
		},
	)
	return cmd
}
