package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
	"github.com/trace333w/zscaler-api-talkers/pkg/ztclient"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command. It verifies ZIA portal
// credentials and stores them in the config file on success.
func NewLoginCommand() *cobra.Command {
	var (
		cloud    string
		username string
		password string
		apiKey   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the ZIA admin portal",
		Long:  "Authenticate against the ZIA admin portal and store the credentials for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cloud == "" {
				cloud = viper.GetString("cloud")
			}

			if cloud == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Cloud (e.g. zscalertwo.net): ")
				cloud, _ = reader.ReadString('\n')
				cloud = strings.TrimSpace(cloud)
			}

			if cloud == "" {
				return zscaler.ErrCloudRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			config := &zscaler.Config{
				Cloud:       cloud,
				ZIAUsername: username,
				ZIAPassword: password,
				ZIAAPIKey:   apiKey,
			}

			client, err := ztclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			err = client.ZIA().Authenticate(context.Background())
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			viper.Set("cloud", config.Cloud)
			viper.Set("zia_username", username)
			viper.Set("zia_password", password)

			if apiKey != "" {
				viper.Set("zia_api_key", apiKey)
			}

			err = viper.WriteConfig()
			if err != nil {
				err = viper.SafeWriteConfig()
			}

			if err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Printf("Logged in to %s as %s\n", config.Cloud, username)

			return nil
		},
	}

	cmd.Flags().StringVar(&cloud, "cloud", "", "Zscaler cloud name")
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "portal API key (discovered automatically when omitted)")

	return cmd
}
