package main

import (
	"github.com/spf13/cobra"

	"inventory/internal/domain"
)

func newOfficeCmd(a *app) *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "office",
		Short: "Manage the offices of a company",
	}
	cmd.PersistentFlags().StringVarP(&company, "company", "c", "", "Company name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List offices, of every company unless --company is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			scope := company
			if scope == "" {
				scope = domain.All
			}
			offices, err := m.ListOffices(cmd.Context(), scope)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), offices)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add an office to a company",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				o, err := m.AddOffice(cmd.Context(), args[0], company)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), o)
			},
		},
		&cobra.Command{
			Use:   "del NAME",
			Short: "Delete an office that has no groups or hosts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				return m.DelOffice(cmd.Context(), args[0], company)
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show an office",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				o, err := m.GetOffice(cmd.Context(), args[0], company)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), o)
			},
		},
		list,
	)
	return cmd
}
