// Package integration holds tests that run against a real Zscaler tenant.
// They are skipped unless the ZSCALER_* environment variables are set, since
// every run consumes real API quota.
package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
	"github.com/trace333w/zscaler-api-talkers/pkg/ztclient"
)

func newClient(t *testing.T) zscaler.Client {
	t.Helper()

	if os.Getenv("ZSCALER_CLOUD") == "" {
		t.Skip("ZSCALER_CLOUD not set, skipping integration tests")
	}

	client, err := ztclient.NewFromEnv()
	require.NoError(t, err)

	return client
}

func TestZIA_PortalSession(t *testing.T) {
	client := newClient(t)

	if os.Getenv("ZSCALER_ZIA_USERNAME") == "" {
		t.Skip("ZSCALER_ZIA_USERNAME not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, client.ZIA().Authenticate(ctx))

	subscriptions, err := client.ZIA().ListSubscriptions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, subscriptions)
}

func TestZPA_ListApplicationSegments(t *testing.T) {
	client := newClient(t)

	if os.Getenv("ZSCALER_ZPA_CLIENT_ID") == "" {
		t.Skip("ZSCALER_ZPA_CLIENT_ID not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	segments, err := client.ZPA().ListApplicationSegments(ctx)
	require.NoError(t, err)

	// Aggregation never returns a nil sequence on success.
	require.NotNil(t, segments)
}

func TestZCC_ListDevices(t *testing.T) {
	client := newClient(t)

	if os.Getenv("ZSCALER_ZCC_CLIENT_ID") == "" {
		t.Skip("ZSCALER_ZCC_CLIENT_ID not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_, err := client.ZCC().ListDevices(ctx, nil)
	require.NoError(t, err)
}
