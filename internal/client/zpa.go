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

// ZPAClient implements zscaler.ZPAService for one tenant.
type ZPAClient struct {
	service

	customerID int64
	pagerOpts  []paginate.Option
}

// NewZPAClient creates a new ZPA management API client scoped to customerID.
func NewZPAClient(tr *transport.Client, session auth.Session, customerID int64, pagerOpts []paginate.Option) *ZPAClient {
	return &ZPAClient{
		service:    service{transport: tr, session: session},
		customerID: customerID,
		pagerOpts:  pagerOpts,
	}
}

// Authenticate implements zscaler.ZPAService.Authenticate.
func (c *ZPAClient) Authenticate(ctx context.Context) error {
	return c.session.Authenticate(ctx)
}

// path prefixes an API path with the customer scope.
func (c *ZPAClient) path(version, suffix string) string {
	return fmt.Sprintf("/mgmtconfig/%s/admin/customers/%d%s", version, c.customerID, suffix)
}

// list aggregates every page of path into one ordered sequence. The ZPA
// management API reports a total page count and honors a pagesize parameter.
func (c *ZPAClient) list(ctx context.Context, path string, base url.Values) ([]zscaler.Record, error) {
	pager := paginate.New(paginate.DialectSized, c.pagerOpts...)

	return pager.Collect(ctx, c.fetcher(path, base))
}

// GetServer implements zscaler.ZPAService.GetServer.
func (c *ZPAClient) GetServer(ctx context.Context, serverID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/server/%d", serverID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting server: %w", err)
	}

	return result, nil
}

// ListServers implements zscaler.ZPAService.ListServers.
func (c *ZPAClient) ListServers(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/server"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}

	return records, nil
}

// GetApplicationSegment implements zscaler.ZPAService.GetApplicationSegment.
func (c *ZPAClient) GetApplicationSegment(ctx context.Context, applicationID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/application/%d", applicationID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting application segment: %w", err)
	}

	return result, nil
}

// ListApplicationSegments implements zscaler.ZPAService.ListApplicationSegments.
func (c *ZPAClient) ListApplicationSegments(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/application"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing application segments: %w", err)
	}

	return records, nil
}

// AddApplicationSegment implements zscaler.ZPAService.AddApplicationSegment.
func (c *ZPAClient) AddApplicationSegment(ctx context.Context, req *zscaler.ApplicationSegmentRequest) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, c.path("v1", "/application"), req)
	if err != nil {
		return nil, fmt.Errorf("creating application segment: %w", err)
	}

	return result, nil
}

// UpdateApplicationSegment implements zscaler.ZPAService.UpdateApplicationSegment.
// The API answers 204 with an empty body on success.
func (c *ZPAClient) UpdateApplicationSegment(ctx context.Context, applicationID int64, payload any) error {
	_, err := c.putJSON(ctx, c.path("v1", fmt.Sprintf("/application/%d", applicationID)), payload)
	if err != nil {
		return fmt.Errorf("updating application segment: %w", err)
	}

	return nil
}

// DeleteApplicationSegment implements zscaler.ZPAService.DeleteApplicationSegment.
func (c *ZPAClient) DeleteApplicationSegment(ctx context.Context, applicationID int64) error {
	err := c.delete(ctx, c.path("v1", fmt.Sprintf("/application/%d", applicationID)))
	if err != nil {
		return fmt.Errorf("deleting application segment: %w", err)
	}

	return nil
}

// GetSegmentGroup implements zscaler.ZPAService.GetSegmentGroup.
func (c *ZPAClient) GetSegmentGroup(ctx context.Context, segmentGroupID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/segmentGroup/%d", segmentGroupID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting segment group: %w", err)
	}

	return result, nil
}

// ListSegmentGroups implements zscaler.ZPAService.ListSegmentGroups.
func (c *ZPAClient) ListSegmentGroups(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/segmentGroup"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing segment groups: %w", err)
	}

	return records, nil
}

// AddSegmentGroup implements zscaler.ZPAService.AddSegmentGroup.
func (c *ZPAClient) AddSegmentGroup(ctx context.Context, name, description string, enabled bool) (json.RawMessage, error) {
	payload := map[string]any{
		"name":        name,
		"description": description,
		"enabled":     enabled,
	}

	result, err := c.postJSON(ctx, c.path("v1", "/segmentGroup"), payload)
	if err != nil {
		return nil, fmt.Errorf("creating segment group: %w", err)
	}

	return result, nil
}

// GetConnector implements zscaler.ZPAService.GetConnector.
func (c *ZPAClient) GetConnector(ctx context.Context, connectorID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/connector/%d", connectorID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting connector: %w", err)
	}

	return result, nil
}

// ListConnectors implements zscaler.ZPAService.ListConnectors.
func (c *ZPAClient) ListConnectors(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/connector"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing connectors: %w", err)
	}

	return records, nil
}

// BulkDeleteConnectors implements zscaler.ZPAService.BulkDeleteConnectors.
func (c *ZPAClient) BulkDeleteConnectors(ctx context.Context, ids []string) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, c.path("v1", "/connector/bulkDelete"), map[string][]string{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("bulk deleting connectors: %w", err)
	}

	return result, nil
}

// GetConnectorGroup implements zscaler.ZPAService.GetConnectorGroup.
func (c *ZPAClient) GetConnectorGroup(ctx context.Context, groupID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/appConnectorGroup/%d", groupID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting connector group: %w", err)
	}

	return result, nil
}

// ListConnectorGroups implements zscaler.ZPAService.ListConnectorGroups.
func (c *ZPAClient) ListConnectorGroups(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/appConnectorGroup"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing connector groups: %w", err)
	}

	return records, nil
}

// ListBrowserAccessCertificates implements zscaler.ZPAService.ListBrowserAccessCertificates.
func (c *ZPAClient) ListBrowserAccessCertificates(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/clientlessCertificate/issued"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing browser access certificates: %w", err)
	}

	return records, nil
}

// ListEnrollmentCertificates implements zscaler.ZPAService.ListEnrollmentCertificates.
func (c *ZPAClient) ListEnrollmentCertificates(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v2", "/enrollmentCert"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing enrollment certificates: %w", err)
	}

	return records, nil
}

// ListIssuedCertificates implements zscaler.ZPAService.ListIssuedCertificates.
func (c *ZPAClient) ListIssuedCertificates(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/certificate/issued"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing issued certificates: %w", err)
	}

	return records, nil
}

// ListVersionProfiles implements zscaler.ZPAService.ListVersionProfiles.
func (c *ZPAClient) ListVersionProfiles(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/visible/versionProfiles"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing version profiles: %w", err)
	}

	return records, nil
}

// GetCloudConnectorGroup implements zscaler.ZPAService.GetCloudConnectorGroup.
func (c *ZPAClient) GetCloudConnectorGroup(ctx context.Context, groupID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/cloudConnectorGroup/%d", groupID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting cloud connector group: %w", err)
	}

	return result, nil
}

// ListCloudConnectorGroups implements zscaler.ZPAService.ListCloudConnectorGroups.
func (c *ZPAClient) ListCloudConnectorGroups(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/cloudConnectorGroup"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing cloud connector groups: %w", err)
	}

	return records, nil
}

// ListIdP implements zscaler.ZPAService.ListIdP.
func (c *ZPAClient) ListIdP(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v2", "/idp"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing identity providers: %w", err)
	}

	return records, nil
}

// ListProvisioningKeys implements zscaler.ZPAService.ListProvisioningKeys.
// associationType is CONNECTOR_GRP or SERVICE_EDGE_GRP.
func (c *ZPAClient) ListProvisioningKeys(ctx context.Context, associationType string) ([]zscaler.Record, error) {
	path := c.path("v1", fmt.Sprintf("/associationType/%s/provisioningKey", url.PathEscape(associationType)))

	records, err := c.list(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing provisioning keys: %w", err)
	}

	return records, nil
}

// ListSCIMAttributes implements zscaler.ZPAService.ListSCIMAttributes.
func (c *ZPAClient) ListSCIMAttributes(ctx context.Context, idpID int64) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", fmt.Sprintf("/idp/%d/scimattribute", idpID)), nil)
	if err != nil {
		return nil, fmt.Errorf("listing SCIM attributes: %w", err)
	}

	return records, nil
}

// ListSCIMGroups implements zscaler.ZPAService.ListSCIMGroups. SCIM groups
// live under the userconfig API root, outside the mgmtconfig prefix.
func (c *ZPAClient) ListSCIMGroups(ctx context.Context, idpID int64) ([]zscaler.Record, error) {
	path := fmt.Sprintf("/userconfig/v1/customers/%d/scimgroup/idpId/%d", c.customerID, idpID)

	records, err := c.list(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing SCIM groups: %w", err)
	}

	return records, nil
}

// ListSAMLAttributes implements zscaler.ZPAService.ListSAMLAttributes.
func (c *ZPAClient) ListSAMLAttributes(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v2", "/samlAttribute"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing SAML attributes: %w", err)
	}

	return records, nil
}

// ListPolicyRules implements zscaler.ZPAService.ListPolicyRules. policyType
// is one of ACCESS_POLICY, TIMEOUT_POLICY, CLIENT_FORWARDING_POLICY or
// SIEM_POLICY.
func (c *ZPAClient) ListPolicyRules(ctx context.Context, policyType string) ([]zscaler.Record, error) {
	path := c.path("v1", fmt.Sprintf("/policySet/rules/policyType/%s", url.PathEscape(policyType)))

	records, err := c.list(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing policy rules: %w", err)
	}

	return records, nil
}

// GetPolicySet implements zscaler.ZPAService.GetPolicySet.
func (c *ZPAClient) GetPolicySet(ctx context.Context, policyType string) (json.RawMessage, error) {
	path := c.path("v1", fmt.Sprintf("/policySet/policyType/%s", url.PathEscape(policyType)))

	result, err := c.getJSON(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting policy set: %w", err)
	}

	return result, nil
}

// AddPolicySetRule implements zscaler.ZPAService.AddPolicySetRule.
func (c *ZPAClient) AddPolicySetRule(ctx context.Context, policySetID string, req *zscaler.PolicyRuleRequest) (json.RawMessage, error) {
	path := c.path("v1", fmt.Sprintf("/policySet/%s/rule", url.PathEscape(policySetID)))

	result, err := c.postJSON(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("creating policy rule: %w", err)
	}

	return result, nil
}

// GetServerGroup implements zscaler.ZPAService.GetServerGroup.
func (c *ZPAClient) GetServerGroup(ctx context.Context, groupID int64) (json.RawMessage, error) {
	result, err := c.getJSON(ctx, c.path("v1", fmt.Sprintf("/serverGroup/%d", groupID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting server group: %w", err)
	}

	return result, nil
}

// ListServerGroups implements zscaler.ZPAService.ListServerGroups.
func (c *ZPAClient) ListServerGroups(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/serverGroup"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing server groups: %w", err)
	}

	return records, nil
}

// AddServerGroup implements zscaler.ZPAService.AddServerGroup.
func (c *ZPAClient) AddServerGroup(ctx context.Context, req *zscaler.ServerGroupRequest) (json.RawMessage, error) {
	result, err := c.postJSON(ctx, c.path("v1", "/serverGroup"), req)
	if err != nil {
		return nil, fmt.Errorf("creating server group: %w", err)
	}

	return result, nil
}

// ListPostureProfiles implements zscaler.ZPAService.ListPostureProfiles.
func (c *ZPAClient) ListPostureProfiles(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v2", "/posture"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing posture profiles: %w", err)
	}

	return records, nil
}

// ListPrivilegedConsoles implements zscaler.ZPAService.ListPrivilegedConsoles.
func (c *ZPAClient) ListPrivilegedConsoles(ctx context.Context) ([]zscaler.Record, error) {
	records, err := c.list(ctx, c.path("v1", "/praConsole"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing privileged consoles: %w", err)
	}

	return records, nil
}

// ListSRAConsoles implements zscaler.ZPAService.ListSRAConsoles. There is no
// listing endpoint for SRA consoles; they are carried inline on application
// segments, so this flattens the sraApps of every segment.
func (c *ZPAClient) ListSRAConsoles(ctx context.Context) ([]zscaler.Record, error) {
	segments, err := c.ListApplicationSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing SRA consoles: %w", err)
	}

	var consoles []zscaler.Record

	for _, segment := range segments {
		var carrier struct {
			SRAApps []json.RawMessage `json:"sraApps"`
		}

		err := json.Unmarshal(segment, &carrier)
		if err != nil {
			return nil, fmt.Errorf("parsing application segment: %w", err)
		}

		consoles = append(consoles, carrier.SRAApps...)
	}

	return consoles, nil
}
