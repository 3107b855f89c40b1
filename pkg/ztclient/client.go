// Package ztclient provides the main entry point for creating Zscaler API
// clients.
package ztclient

import (
	"fmt"
	"os"
	"strings"

	"github.com/trace333w/zscaler-api-talkers/internal/client"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// New creates a Zscaler client from config. The Cloud name is normalized so
// callers can pass "zscalerbeta.net" or a full "https://..." admin URL
// interchangeably.
func New(config *zscaler.Config) (zscaler.Client, error) {
	if config == nil {
		return nil, zscaler.ErrConfigRequired
	}

	config.Cloud = normalizeCloud(config.Cloud)

	zClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return zClient, nil
}

// NewFromEnv creates a client from ZSCALER_* environment variables, the
// convention the CLI and CI pipelines use. Unset variables leave the
// corresponding surface unconfigured.
func NewFromEnv() (zscaler.Client, error) {
	config := &zscaler.Config{
		Cloud:             os.Getenv("ZSCALER_CLOUD"),
		ZIAUsername:       os.Getenv("ZSCALER_ZIA_USERNAME"),
		ZIAPassword:       os.Getenv("ZSCALER_ZIA_PASSWORD"),
		ZIAAPIKey:         os.Getenv("ZSCALER_ZIA_API_KEY"),
		ZPAClientID:       os.Getenv("ZSCALER_ZPA_CLIENT_ID"),
		ZPAClientSecret:   os.Getenv("ZSCALER_ZPA_CLIENT_SECRET"),
		ZPAPortalUsername: os.Getenv("ZSCALER_ZPA_PORTAL_USERNAME"),
		ZPAPortalPassword: os.Getenv("ZSCALER_ZPA_PORTAL_PASSWORD"),
		ZCCClientID:       os.Getenv("ZSCALER_ZCC_CLIENT_ID"),
		ZCCSecretKey:      os.Getenv("ZSCALER_ZCC_SECRET_KEY"),
	}

	if raw := os.Getenv("ZSCALER_ZPA_CUSTOMER_ID"); raw != "" {
		_, err := fmt.Sscanf(raw, "%d", &config.ZPACustomerID)
		if err != nil {
			return nil, fmt.Errorf("parsing ZSCALER_ZPA_CUSTOMER_ID: %w", err)
		}
	}

	return New(config)
}

// normalizeCloud reduces a cloud spelling to the bare cloud domain:
// "https://admin.zscalertwo.net/" becomes "zscalertwo.net".
func normalizeCloud(cloud string) string {
	cloud = strings.TrimSpace(cloud)
	cloud = strings.TrimPrefix(cloud, "https://")
	cloud = strings.TrimPrefix(cloud, "http://")
	cloud = strings.TrimSuffix(cloud, "/")
	cloud = strings.TrimPrefix(cloud, "admin.")

	return cloud
}
