package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/trace333w/zscaler-api-talkers/internal/auth"
	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/internal/paginate"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// maxDeviceRemovals is the largest batch the removal endpoints accept.
const maxDeviceRemovals = 30

// ZCCClient implements zscaler.ZCCService.
type ZCCClient struct {
	service

	pageSize  int
	pageDelay time.Duration
}

// NewZCCClient creates a new Client Connector API client. pageSize and
// pageDelay zero mean the pagination defaults.
func NewZCCClient(tr *transport.Client, session auth.Session, pageSize int, pageDelay time.Duration) *ZCCClient {
	return &ZCCClient{
		service:   service{transport: tr, session: session},
		pageSize:  pageSize,
		pageDelay: pageDelay,
	}
}

// Authenticate implements zscaler.ZCCService.Authenticate.
func (c *ZCCClient) Authenticate(ctx context.Context) error {
	return c.session.Authenticate(ctx)
}

// ListDevices implements zscaler.ZCCService.ListDevices. The device endpoint
// has no page count; pages are fetched until the first empty one, with a
// pause between fetches to stay under the API's rate limit.
func (c *ZCCClient) ListDevices(ctx context.Context, opts *zscaler.DeviceListOptions) ([]zscaler.Record, error) {
	base := url.Values{}

	pageSize := c.pageSize
	if pageSize <= 0 {
		pageSize = paginate.DefaultPageSize
	}

	base.Set("pageSize", strconv.Itoa(pageSize))

	if opts != nil {
		if opts.Username != "" {
			base.Set("username", opts.Username)
		}

		if opts.OSType != zscaler.OSTypeAny {
			base.Set("osType", strconv.Itoa(int(opts.OSType)))
		}
	}

	var pagerOpts []paginate.Option
	if c.pageDelay > 0 {
		pagerOpts = append(pagerOpts, paginate.WithDelay(c.pageDelay))
	}

	pager := paginate.New(paginate.DialectSentinel, pagerOpts...)

	records, err := pager.Collect(ctx, c.fetcher("/public/v1/getDevices", base))
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	return records, nil
}

// GetOTP implements zscaler.ZCCService.GetOTP.
func (c *ZCCClient) GetOTP(ctx context.Context, udid string) (json.RawMessage, error) {
	query := url.Values{"udid": []string{udid}}

	result, err := c.getJSON(ctx, "/public/v1/getOtp", query)
	if err != nil {
		return nil, fmt.Errorf("getting OTP: %w", err)
	}

	return result, nil
}

// GetPasswords implements zscaler.ZCCService.GetPasswords.
func (c *ZCCClient) GetPasswords(ctx context.Context, companyID int64, udid string) (json.RawMessage, error) {
	query := url.Values{
		"companyId": []string{strconv.FormatInt(companyID, 10)},
		"udid":      []string{udid},
	}

	result, err := c.getJSON(ctx, "/public/v1/getPasswords", query)
	if err != nil {
		return nil, fmt.Errorf("getting passwords: %w", err)
	}

	return result, nil
}

// RemoveDevices implements zscaler.ZCCService.RemoveDevices.
func (c *ZCCClient) RemoveDevices(ctx context.Context, companyID int64, udids []string, osType zscaler.OSType) (json.RawMessage, error) {
	if len(udids) > maxDeviceRemovals {
		return nil, fmt.Errorf("%w: %d devices, limit %d", zscaler.ErrTooManyDevicesRemoved, len(udids), maxDeviceRemovals)
	}

	payload := map[string]any{
		"companyId": companyID,
		"udids":     udids,
		"osType":    osType,
	}

	result, err := c.postJSON(ctx, "/public/v1/removeDevices", payload)
	if err != nil {
		return nil, fmt.Errorf("removing devices: %w", err)
	}

	return result, nil
}

// ForceRemoveDevices implements zscaler.ZCCService.ForceRemoveDevices. Unlike
// RemoveDevices, removal does not wait for the device to acknowledge.
func (c *ZCCClient) ForceRemoveDevices(ctx context.Context, udids []string, osType zscaler.OSType) (json.RawMessage, error) {
	if len(udids) > maxDeviceRemovals {
		return nil, fmt.Errorf("%w: %d devices, limit %d", zscaler.ErrTooManyDevicesRemoved, len(udids), maxDeviceRemovals)
	}

	payload := map[string]any{
		"udids":  udids,
		"osType": osType,
	}

	result, err := c.postJSON(ctx, "/public/v1/forceRemoveDevices", payload)
	if err != nil {
		return nil, fmt.Errorf("force removing devices: %w", err)
	}

	return result, nil
}

// DownloadServiceStatus implements zscaler.ZCCService.DownloadServiceStatus.
// The response is a CSV document, returned verbatim.
func (c *ZCCClient) DownloadServiceStatus(ctx context.Context, companyID int64) ([]byte, error) {
	req := &transport.Request{
		Method: nethttp.MethodGet,
		Path:   "/public/v1/downloadServiceStatus",
		Query:  url.Values{"companyId": []string{strconv.FormatInt(companyID, 10)}},
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("downloading service status: %w", err)
	}

	return resp.Body, nil
}
