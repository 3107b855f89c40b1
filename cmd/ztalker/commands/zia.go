package commands

import (
	"github.com/spf13/cobra"
)

// NewZIACommand creates the zia command group.
func NewZIACommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zia",
		Short: "Manage the ZIA admin portal",
	}

	cmd.AddCommand(newZIAPACFilesCommand())
	cmd.AddCommand(newZIASubscriptionsCommand())
	cmd.AddCommand(newZIAAdvancedSettingsCommand())
	cmd.AddCommand(newZIAAuthSettingsCommand())
	cmd.AddCommand(newZIAAPIKeysCommand())
	cmd.AddCommand(newZIAFirewallDNSRulesCommand())

	return cmd
}

func newZIAPACFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pac-files",
		Short: "List PAC files",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZIA().ListPACFiles(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZIASubscriptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subscriptions",
		Short: "List tenant subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZIA().ListSubscriptions(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZIAAdvancedSettingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "advanced-settings",
		Short: "Show advanced settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZIA().ListAdvancedSettings(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZIAAuthSettingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth-settings",
		Short: "Show authentication settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZIA().ListAuthSettings(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZIAAPIKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "api-keys",
		Short: "List portal API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZIA().ListAPIKeys(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZIAFirewallDNSRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "firewall-dns-rules",
		Short: "List firewall DNS rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZIA().ListFirewallDNSRules(cmd.Context())
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}
