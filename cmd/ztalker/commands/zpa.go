package commands

import (
	"github.com/spf13/cobra"
)

// NewZPACommand creates the zpa command group.
func NewZPACommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zpa",
		Short: "Manage the ZPA management API",
	}

	cmd.AddCommand(newZPAServersCommand())
	cmd.AddCommand(newZPAApplicationSegmentsCommand())
	cmd.AddCommand(newZPASegmentGroupsCommand())
	cmd.AddCommand(newZPAConnectorsCommand())
	cmd.AddCommand(newZPAConnectorGroupsCommand())
	cmd.AddCommand(newZPAIdPCommand())
	cmd.AddCommand(newZPAPolicyRulesCommand())

	return cmd
}

func newZPAServersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List application servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListServers(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "address", "enabled"})
		},
	}
}

func newZPAApplicationSegmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "application-segments",
		Short: "List application segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListApplicationSegments(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "enabled", "segmentGroupName"})
		},
	}
}

func newZPASegmentGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "segment-groups",
		Short: "List segment groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListSegmentGroups(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "enabled"})
		},
	}
}

func newZPAConnectorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connectors",
		Short: "List app connectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListConnectors(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "enabled", "currentVersion"})
		},
	}
}

func newZPAConnectorGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connector-groups",
		Short: "List app connector groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListConnectorGroups(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "enabled", "location"})
		},
	}
}

func newZPAIdPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "idp",
		Short: "List identity providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListIdP(cmd.Context())
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "idpEntityId", "enabled"})
		},
	}
}

func newZPAPolicyRulesCommand() *cobra.Command {
	var policyType string

	cmd := &cobra.Command{
		Use:   "policy-rules",
		Short: "List policy rules of one policy type",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			records, err := client.ZPA().ListPolicyRules(cmd.Context(), policyType)
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"id", "name", "action", "ruleOrder"})
		},
	}

	cmd.Flags().StringVar(&policyType, "policy-type", "ACCESS_POLICY", "policy type (ACCESS_POLICY, TIMEOUT_POLICY, CLIENT_FORWARDING_POLICY, SIEM_POLICY)")

	return cmd
}
