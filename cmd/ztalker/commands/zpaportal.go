package commands

import (
	"github.com/spf13/cobra"
)

// NewZPAPortalCommand creates the zpa-portal command group.
func NewZPAPortalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zpa-portal",
		Short: "Manage the ZPA admin portal",
	}

	cmd.AddCommand(newZPAPortalAdminUsersCommand())
	cmd.AddCommand(newZPAPortalRolesCommand())
	cmd.AddCommand(newZPAPortalAPIKeysCommand())

	return cmd
}

func newZPAPortalAdminUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-users",
		Short: "List portal admin users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPAPortal().ListAdminUsers(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "username", "displayName", "roleName"})
		},
	}
}

func newZPAPortalRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List portal admin roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZPAPortal().ListAdminRoles(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZPAPortalAPIKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "api-keys",
		Short: "List portal API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZPAPortal().ListAPIKeys(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}
