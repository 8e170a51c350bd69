package main

import (
	"github.com/spf13/cobra"
)

func newCompanyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add a company",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				c, err := m.AddCompany(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), c)
			},
		},
		&cobra.Command{
			Use:   "del NAME",
			Short: "Delete a company that has no offices",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				return m.DelCompany(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show a company",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				c, err := m.GetCompany(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), c)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all companies",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.manager()
				if err != nil {
					return err
				}
				companies, err := m.ListCompanies(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), companies)
			},
		},
	)
	return cmd
}
