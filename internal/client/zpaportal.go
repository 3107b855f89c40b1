package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/trace333w/zscaler-api-talkers/internal/auth"
	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/internal/paginate"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// ZPAPortalClient implements zscaler.ZPAPortalService. The portal is an
// unsupported surface; paths here track what the portal UI itself calls,
// which means most resources hang off the origin root while admin users and
// admin roles live under customer-scoped service prefixes.
type ZPAPortalClient struct {
	service

	customerID int64
	pagerOpts  []paginate.Option
}

// NewZPAPortalClient creates a new ZPA admin portal client for one customer.
func NewZPAPortalClient(tr *transport.Client, session auth.Session, customerID int64, pagerOpts []paginate.Option) *ZPAPortalClient {
	return &ZPAPortalClient{
		service:    service{transport: tr, session: session},
		customerID: customerID,
		pagerOpts:  pagerOpts,
	}
}

// Authenticate implements zscaler.ZPAPortalService.Authenticate.
func (c *ZPAPortalClient) Authenticate(ctx context.Context) error {
	return c.session.Authenticate(ctx)
}

// ListAdminUsers implements zscaler.ZPAPortalService.ListAdminUsers. The
// portal reports a totalPages count on the first page.
func (c *ZPAPortalClient) ListAdminUsers(ctx context.Context) ([]zscaler.Record, error) {
	pager := paginate.New(paginate.DialectTotalPages, c.pagerOpts...)

	path := fmt.Sprintf("/shift/api/v2/admin/customers/%d/users", c.customerID)

	records, err := pager.Collect(ctx, c.fetcher(path, url.Values{}))
	if err != nil {
		return nil, fmt.Errorf("listing admin users: %w", err)
	}

	return records, nil
}

// AddAdminUser implements zscaler.ZPAPortalService.AddAdminUser.
func (c *ZPAPortalClient) AddAdminUser(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/users", payload)
	if err != nil {
		return nil, fmt.Errorf("creating admin user: %w", err)
	}

	return result, nil
}

// UpdateAdminUser implements zscaler.ZPAPortalService.UpdateAdminUser.
func (c *ZPAPortalClient) UpdateAdminUser(ctx context.Context, userID string, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, "/users/"+url.PathEscape(userID), payload)
	if err != nil {
		return nil, fmt.Errorf("updating admin user: %w", err)
	}

	return result, nil
}

// DeleteAdminUser implements zscaler.ZPAPortalService.DeleteAdminUser.
func (c *ZPAPortalClient) DeleteAdminUser(ctx context.Context, userID string) error {
	err := c.delete(ctx, "/users/"+url.PathEscape(userID))
	if err != nil {
		return fmt.Errorf("deleting admin user: %w", err)
	}

	return nil
}

// ListAdminRoles implements zscaler.ZPAPortalService.ListAdminRoles.
func (c *ZPAPortalClient) ListAdminRoles(ctx context.Context) (json.RawMessage, error) {
	path := fmt.Sprintf("/zpn/api/v1/admin/customers/%d/roles", c.customerID)

	result, err := c.getJSON(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing admin roles: %w", err)
	}

	return result, nil
}

// AddRole implements zscaler.ZPAPortalService.AddRole.
func (c *ZPAPortalClient) AddRole(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/roles", payload)
	if err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	return result, nil
}

// DeleteRole implements zscaler.ZPAPortalService.DeleteRole.
func (c *ZPAPortalClient) DeleteRole(ctx context.Context, roleID string) error {
	err := c.delete(ctx, "/roles/"+url.PathEscape(roleID))
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}

	return nil
}

// ListAPIKeys implements zscaler.ZPAPortalService.ListAPIKeys. API keys are
// called client credentials on the wire.
func (c *ZPAPortalClient) ListAPIKeys(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/clientCredentials", nil)
	if err != nil {
		return nil, fmt.Errorf("listing API keys: %w", err)
	}

	return result, nil
}

// AddAPIKey implements zscaler.ZPAPortalService.AddAPIKey.
func (c *ZPAPortalClient) AddAPIKey(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/clientCredentials", payload)
	if err != nil {
		return nil, fmt.Errorf("creating API key: %w", err)
	}

	return result, nil
}

// UpdateAPIKey implements zscaler.ZPAPortalService.UpdateAPIKey.
func (c *ZPAPortalClient) UpdateAPIKey(ctx context.Context, keyID string, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, "/clientCredentials/"+url.PathEscape(keyID), payload)
	if err != nil {
		return nil, fmt.Errorf("updating API key: %w", err)
	}

	return result, nil
}

// DeleteAPIKey implements zscaler.ZPAPortalService.DeleteAPIKey.
func (c *ZPAPortalClient) DeleteAPIKey(ctx context.Context, keyID string) error {
	err := c.delete(ctx, "/clientCredentials/"+url.PathEscape(keyID))
	if err != nil {
		return fmt.Errorf("deleting API key: %w", err)
	}

	return nil
}

// ListApplications implements zscaler.ZPAPortalService.ListApplications.
func (c *ZPAPortalClient) ListApplications(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/v2/application", nil)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	return result, nil
}

// DeleteApplication implements zscaler.ZPAPortalService.DeleteApplication.
func (c *ZPAPortalClient) DeleteApplication(ctx context.Context, applicationID string) error {
	err := c.delete(ctx, "/v2/application/"+url.PathEscape(applicationID))
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}

	return nil
}

// ListApplicationGroups implements zscaler.ZPAPortalService.ListApplicationGroups.
func (c *ZPAPortalClient) ListApplicationGroups(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/applicationGroup", nil)
	if err != nil {
		return nil, fmt.Errorf("listing application groups: %w", err)
	}

	return result, nil
}

// DeleteApplicationGroup implements zscaler.ZPAPortalService.DeleteApplicationGroup.
func (c *ZPAPortalClient) DeleteApplicationGroup(ctx context.Context, groupID string) error {
	err := c.delete(ctx, "/applicationGroup/"+url.PathEscape(groupID))
	if err != nil {
		return fmt.Errorf("deleting application group: %w", err)
	}

	return nil
}

// ListAssistantGroups implements zscaler.ZPAPortalService.ListAssistantGroups.
func (c *ZPAPortalClient) ListAssistantGroups(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/assistantGroup", nil)
	if err != nil {
		return nil, fmt.Errorf("listing assistant groups: %w", err)
	}

	return result, nil
}

// DeleteAssistantGroup implements zscaler.ZPAPortalService.DeleteAssistantGroup.
func (c *ZPAPortalClient) DeleteAssistantGroup(ctx context.Context, groupID string) error {
	err := c.delete(ctx, "/assistantGroup/"+url.PathEscape(groupID))
	if err != nil {
		return fmt.Errorf("deleting assistant group: %w", err)
	}

	return nil
}

// ListClientlessCertificates implements zscaler.ZPAPortalService.ListClientlessCertificates.
func (c *ZPAPortalClient) ListClientlessCertificates(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/clientlessCertificate", nil)
	if err != nil {
		return nil, fmt.Errorf("listing clientless certificates: %w", err)
	}

	return result, nil
}

// DeleteClientlessCertificate implements zscaler.ZPAPortalService.DeleteClientlessCertificate.
func (c *ZPAPortalClient) DeleteClientlessCertificate(ctx context.Context, certID string) error {
	err := c.delete(ctx, "/clientlessCertificate/"+url.PathEscape(certID))
	if err != nil {
		return fmt.Errorf("deleting clientless certificate: %w", err)
	}

	return nil
}

// AddSearchSuffix implements zscaler.ZPAPortalService.AddSearchSuffix.
func (c *ZPAPortalClient) AddSearchSuffix(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/v2/associationtype/SEARCH_SUFFIX/domains", payload)
	if err != nil {
		return nil, fmt.Errorf("creating search suffix: %w", err)
	}

	return result, nil
}

// DeleteServer implements zscaler.ZPAPortalService.DeleteServer.
func (c *ZPAPortalClient) DeleteServer(ctx context.Context, serverID string) error {
	err := c.delete(ctx, "/server/"+url.PathEscape(serverID))
	if err != nil {
		return fmt.Errorf("deleting server: %w", err)
	}

	return nil
}

// DeleteServerGroup implements zscaler.ZPAPortalService.DeleteServerGroup.
func (c *ZPAPortalClient) DeleteServerGroup(ctx context.Context, groupID string) error {
	err := c.delete(ctx, "/serverGroup/"+url.PathEscape(groupID))
	if err != nil {
		return fmt.Errorf("deleting server group: %w", err)
	}

	return nil
}

// AddSupportAccess implements zscaler.ZPAPortalService.AddSupportAccess.
// Support access is granted through the ancestor policy resource.
func (c *ZPAPortalClient) AddSupportAccess(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/ancestorPolicy", payload)
	if err != nil {
		return nil, fmt.Errorf("creating support access grant: %w", err)
	}

	return result, nil
}

// ListUserPortals implements zscaler.ZPAPortalService.ListUserPortals.
func (c *ZPAPortalClient) ListUserPortals(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/userPortal", nil)
	if err != nil {
		return nil, fmt.Errorf("listing user portals: %w", err)
	}

	return result, nil
}

// DeleteUserPortal implements zscaler.ZPAPortalService.DeleteUserPortal.
func (c *ZPAPortalClient) DeleteUserPortal(ctx context.Context, portalID string) error {
	err := c.delete(ctx, "/userPortal/"+url.PathEscape(portalID))
	if err != nil {
		return fmt.Errorf("deleting user portal: %w", err)
	}

	return nil
}
