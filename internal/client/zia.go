package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trace333w/zscaler-api-talkers/internal/auth"
	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// ZIAClient implements zscaler.ZIAService against the admin portal API.
// These endpoints are the portal's own; Zscaler can change them at will and
// without notice.
type ZIAClient struct {
	service
}

// NewZIAClient creates a new ZIA admin portal client.
func NewZIAClient(tr *transport.Client, session auth.Session) *ZIAClient {
	return &ZIAClient{service: service{transport: tr, session: session}}
}

// Authenticate implements zscaler.ZIAService.Authenticate.
func (c *ZIAClient) Authenticate(ctx context.Context) error {
	return c.session.Authenticate(ctx)
}

// AddDLPEngine implements zscaler.ZIAService.AddDLPEngine.
func (c *ZIAClient) AddDLPEngine(ctx context.Context, req *zscaler.DLPEngineRequest) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/dlpEngines", req)
	if err != nil {
		return nil, fmt.Errorf("creating DLP engine: %w", err)
	}

	return result, nil
}

// UpdateDLPEngine implements zscaler.ZIAService.UpdateDLPEngine.
func (c *ZIAClient) UpdateDLPEngine(ctx context.Context, engineID int64, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, fmt.Sprintf("/dlpEngines/%d", engineID), payload)
	if err != nil {
		return nil, fmt.Errorf("updating DLP engine: %w", err)
	}

	return result, nil
}

// ListPACFiles implements zscaler.ZIAService.ListPACFiles.
func (c *ZIAClient) ListPACFiles(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/pacFiles", nil)
	if err != nil {
		return nil, fmt.Errorf("listing PAC files: %w", err)
	}

	return result, nil
}

// AddPACFile implements zscaler.ZIAService.AddPACFile.
func (c *ZIAClient) AddPACFile(ctx context.Context, req *zscaler.PACFileRequest) (json.RawMessage, error) {
	if req.PACVerifyStatus == "" {
		req.PACVerifyStatus = "VERIFY_NOERR"
	}

	result, err := c.postJSON(ctx, "/pacFiles", req)
	if err != nil {
		return nil, fmt.Errorf("creating PAC file: %w", err)
	}

	return result, nil
}

// ListMalwarePolicy implements zscaler.ZIAService.ListMalwarePolicy.
func (c *ZIAClient) ListMalwarePolicy(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/malwarePolicy", nil)
	if err != nil {
		return nil, fmt.Errorf("listing malware policy: %w", err)
	}

	return result, nil
}

// ListVirusSpywareSettings implements zscaler.ZIAService.ListVirusSpywareSettings.
func (c *ZIAClient) ListVirusSpywareSettings(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/virusSpywareSettings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing virus and spyware settings: %w", err)
	}

	return result, nil
}

// ListAdvancedURLFilterSettings implements zscaler.ZIAService.ListAdvancedURLFilterSettings.
func (c *ZIAClient) ListAdvancedURLFilterSettings(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/advancedUrlFilterAndCloudAppSettings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing advanced URL filter settings: %w", err)
	}

	return result, nil
}

// ListSubscriptions implements zscaler.ZIAService.ListSubscriptions.
func (c *ZIAClient) ListSubscriptions(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/subscriptions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	return result, nil
}

// ListCyberRiskScore implements zscaler.ZIAService.ListCyberRiskScore.
func (c *ZIAClient) ListCyberRiskScore(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/cyberRiskScore", nil)
	if err != nil {
		return nil, fmt.Errorf("listing cyber risk score: %w", err)
	}

	return result, nil
}

// AddUserGroup implements zscaler.ZIAService.AddUserGroup.
func (c *ZIAClient) AddUserGroup(ctx context.Context, name string) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/groups", map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("creating user group: %w", err)
	}

	return result, nil
}

// DeleteGroup implements zscaler.ZIAService.DeleteGroup.
func (c *ZIAClient) DeleteGroup(ctx context.Context, groupID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/groups/%d", groupID))
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}

	return nil
}

// DeleteDepartment implements zscaler.ZIAService.DeleteDepartment.
func (c *ZIAClient) DeleteDepartment(ctx context.Context, departmentID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/departments/%d", departmentID))
	if err != nil {
		return fmt.Errorf("deleting department: %w", err)
	}

	return nil
}

// ListSAMLSettings implements zscaler.ZIAService.ListSAMLSettings.
func (c *ZIAClient) ListSAMLSettings(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/samlSettings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing SAML settings: %w", err)
	}

	return result, nil
}

// ListSAMLAdminSettings implements zscaler.ZIAService.ListSAMLAdminSettings.
func (c *ZIAClient) ListSAMLAdminSettings(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/samlAdminSettings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing SAML admin settings: %w", err)
	}

	return result, nil
}

// ListAdvancedSettings implements zscaler.ZIAService.ListAdvancedSettings.
func (c *ZIAClient) ListAdvancedSettings(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/advancedSettings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing advanced settings: %w", err)
	}

	return result, nil
}

// ListIDPConfig implements zscaler.ZIAService.ListIDPConfig.
func (c *ZIAClient) ListIDPConfig(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/idpConfig", nil)
	if err != nil {
		return nil, fmt.Errorf("listing IdP config: %w", err)
	}

	return result, nil
}

// ListICAPServers implements zscaler.ZIAService.ListICAPServers.
func (c *ZIAClient) ListICAPServers(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/icapServers", nil)
	if err != nil {
		return nil, fmt.Errorf("listing ICAP servers: %w", err)
	}

	return result, nil
}

// ListAuthSettings implements zscaler.ZIAService.ListAuthSettings.
func (c *ZIAClient) ListAuthSettings(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/authSettings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing auth settings: %w", err)
	}

	return result, nil
}

// UpdateAuthSettings implements zscaler.ZIAService.UpdateAuthSettings.
func (c *ZIAClient) UpdateAuthSettings(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, "/authSettings", payload)
	if err != nil {
		return nil, fmt.Errorf("updating auth settings: %w", err)
	}

	return result, nil
}

// ListEUN implements zscaler.ZIAService.ListEUN.
func (c *ZIAClient) ListEUN(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/eun", nil)
	if err != nil {
		return nil, fmt.Errorf("listing end user notifications: %w", err)
	}

	return result, nil
}

// ListPasswordExpiry implements zscaler.ZIAService.ListPasswordExpiry.
func (c *ZIAClient) ListPasswordExpiry(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/passwordExpiry/settings", nil)
	if err != nil {
		return nil, fmt.Errorf("listing password expiry settings: %w", err)
	}

	return result, nil
}

// ListAPIKeys implements zscaler.ZIAService.ListAPIKeys.
func (c *ZIAClient) ListAPIKeys(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/apiKeys", nil)
	if err != nil {
		return nil, fmt.Errorf("listing API keys: %w", err)
	}

	return result, nil
}

// CreateAPIKey implements zscaler.ZIAService.CreateAPIKey.
func (c *ZIAClient) CreateAPIKey(ctx context.Context) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/apiKeys/generate", nil)
	if err != nil {
		return nil, fmt.Errorf("generating API key: %w", err)
	}

	return result, nil
}

// UpdateAPIKey implements zscaler.ZIAService.UpdateAPIKey.
func (c *ZIAClient) UpdateAPIKey(ctx context.Context, keyID int64, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, fmt.Sprintf("/apiKeys/%d", keyID), payload)
	if err != nil {
		return nil, fmt.Errorf("updating API key: %w", err)
	}

	return result, nil
}

// DeleteAPIKey implements zscaler.ZIAService.DeleteAPIKey.
func (c *ZIAClient) DeleteAPIKey(ctx context.Context, keyID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/apiKeys/%d", keyID))
	if err != nil {
		return fmt.Errorf("deleting API key: %w", err)
	}

	return nil
}

// CreateAdminRole implements zscaler.ZIAService.CreateAdminRole.
func (c *ZIAClient) CreateAdminRole(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/adminRoles", payload)
	if err != nil {
		return nil, fmt.Errorf("creating admin role: %w", err)
	}

	return result, nil
}

// DeleteAdminRole implements zscaler.ZIAService.DeleteAdminRole.
// Deletion fails while users are still assigned to the role.
func (c *ZIAClient) DeleteAdminRole(ctx context.Context, roleID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/adminRoles/%d", roleID))
	if err != nil {
		return fmt.Errorf("deleting admin role: %w", err)
	}

	return nil
}

// CreateAdminUser implements zscaler.ZIAService.CreateAdminUser.
func (c *ZIAClient) CreateAdminUser(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/adminUsers", payload)
	if err != nil {
		return nil, fmt.Errorf("creating admin user: %w", err)
	}

	return result, nil
}

// UpdateAdminUser implements zscaler.ZIAService.UpdateAdminUser.
func (c *ZIAClient) UpdateAdminUser(ctx context.Context, userID int64, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, fmt.Sprintf("/adminUsers/%d", userID), payload)
	if err != nil {
		return nil, fmt.Errorf("updating admin user: %w", err)
	}

	return result, nil
}

// DeleteAdminUser implements zscaler.ZIAService.DeleteAdminUser.
func (c *ZIAClient) DeleteAdminUser(ctx context.Context, userID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/adminUsers/%d", userID))
	if err != nil {
		return fmt.Errorf("deleting admin user: %w", err)
	}

	return nil
}

// UpdateAdvancedThreatSettings implements zscaler.ZIAService.UpdateAdvancedThreatSettings.
func (c *ZIAClient) UpdateAdvancedThreatSettings(ctx context.Context, payload any) (json.RawMessage, error) {
	result, err := c.putJSON(ctx, "/advancedThreatSettings", payload)
	if err != nil {
		return nil, fmt.Errorf("updating advanced threat settings: %w", err)
	}

	return result, nil
}

// ListEUSAStatus implements zscaler.ZIAService.ListEUSAStatus.
func (c *ZIAClient) ListEUSAStatus(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/eusaStatus/latest", nil)
	if err != nil {
		return nil, fmt.Errorf("listing EUSA status: %w", err)
	}

	return result, nil
}

// CreateEUSAStatus implements zscaler.ZIAService.CreateEUSAStatus.
func (c *ZIAClient) CreateEUSAStatus(ctx context.Context) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, "/eusaStatus", nil)
	if err != nil {
		return nil, fmt.Errorf("creating EUSA status: %w", err)
	}

	return result, nil
}

// ListFileTypeRules implements zscaler.ZIAService.ListFileTypeRules.
func (c *ZIAClient) ListFileTypeRules(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/fileTypeRules", nil)
	if err != nil {
		return nil, fmt.Errorf("listing file type rules: %w", err)
	}

	return result, nil
}

// DeleteFileTypeRule implements zscaler.ZIAService.DeleteFileTypeRule.
func (c *ZIAClient) DeleteFileTypeRule(ctx context.Context, ruleID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/fileTypeRules/%d", ruleID))
	if err != nil {
		return fmt.Errorf("deleting file type rule: %w", err)
	}

	return nil
}

// ListFirewallDNSRules implements zscaler.ZIAService.ListFirewallDNSRules.
func (c *ZIAClient) ListFirewallDNSRules(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/firewallDnsRules", nil)
	if err != nil {
		return nil, fmt.Errorf("listing firewall DNS rules: %w", err)
	}

	return result, nil
}

// DeleteFirewallDNSRule implements zscaler.ZIAService.DeleteFirewallDNSRule.
func (c *ZIAClient) DeleteFirewallDNSRule(ctx context.Context, ruleID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/firewallDnsRules/%d", ruleID))
	if err != nil {
		return fmt.Errorf("deleting firewall DNS rule: %w", err)
	}

	return nil
}

// ListFirewallIPSRules implements zscaler.ZIAService.ListFirewallIPSRules.
func (c *ZIAClient) ListFirewallIPSRules(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/firewallIpsRules", nil)
	if err != nil {
		return nil, fmt.Errorf("listing firewall IPS rules: %w", err)
	}

	return result, nil
}

// DeleteFirewallIPSRule implements zscaler.ZIAService.DeleteFirewallIPSRule.
func (c *ZIAClient) DeleteFirewallIPSRule(ctx context.Context, ruleID int64) error {
	err := c.delete(ctx, fmt.Sprintf("/firewallIpsRules/%d", ruleID))
	if err != nil {
		return fmt.Errorf("deleting firewall IPS rule: %w", err)
	}

	return nil
}

// ListWebApplicationRules implements zscaler.ZIAService.ListWebApplicationRules.
func (c *ZIAClient) ListWebApplicationRules(ctx context.Context) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, "/webApplicationRules", nil)
	if err != nil {
		return nil, fmt.Errorf("listing web application rules: %w", err)
	}

	return result, nil
}
