package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// NewZCCCommand creates the zcc command group.
func NewZCCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zcc",
		Short: "Manage Client Connector devices",
	}

	cmd.AddCommand(newZCCDevicesCommand())
	cmd.AddCommand(newZCCOTPCommand())
	cmd.AddCommand(newZCCServiceStatusCommand())

	return cmd
}

func newZCCDevicesCommand() *cobra.Command {
	var (
		username string
		osType   int
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List enrolled devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opts := &zscaler.DeviceListOptions{
				Username: username,
				OSType:   zscaler.OSType(osType),
			}

			records, err := client.ZCC().ListDevices(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return renderRecords(records, []string{"udid", "user", "osVersion", "registrationState", "type"})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "filter by enrolled user (email format)")
	cmd.Flags().IntVar(&osType, "os-type", 0, "filter by platform (1=iOS, 2=Android, 3=Windows, 4=macOS, 5=Linux)")

	return cmd
}

func newZCCOTPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "otp <udid>",
		Short: "Get the one-time passcode for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.ZCC().GetOTP(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderRaw(result)
		},
	}
}

func newZCCServiceStatusCommand() *cobra.Command {
	var companyID int64

	cmd := &cobra.Command{
		Use:   "service-status",
		Short: "Download the service status report",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			doc, err := client.ZCC().DownloadServiceStatus(cmd.Context(), companyID)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(doc)
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&companyID, "company-id", 0, "company id the report is scoped to")

	return cmd
}
