package zscaler

import (
	"context"
	"encoding/json"
)

// ZIAService exposes the ZIA admin portal API. These endpoints are the
// portal's own, not the supported public API; Zscaler can change them at will
// and without notice.
//
// All methods require an authenticated session: the session is established on
// construction when credentials are configured, or explicitly via
// Authenticate.
type ZIAService interface {
	// Authenticate (re-)establishes the portal session. The portal hands out
	// a JSESSIONID cookie for the credential pair and a ZS_SESSION_CODE
	// cookie for the API key; each missing cookie maps to its own
	// AuthenticationError reason.
	Authenticate(ctx context.Context) error

	AddDLPEngine(ctx context.Context, req *DLPEngineRequest) (json.RawMessage, error)
	UpdateDLPEngine(ctx context.Context, engineID int64, payload any) (json.RawMessage, error)
	ListPACFiles(ctx context.Context) (json.RawMessage, error)
	AddPACFile(ctx context.Context, req *PACFileRequest) (json.RawMessage, error)
	ListMalwarePolicy(ctx context.Context) (json.RawMessage, error)
	ListVirusSpywareSettings(ctx context.Context) (json.RawMessage, error)
	ListAdvancedURLFilterSettings(ctx context.Context) (json.RawMessage, error)
	ListSubscriptions(ctx context.Context) (json.RawMessage, error)
	ListCyberRiskScore(ctx context.Context) (json.RawMessage, error)
	AddUserGroup(ctx context.Context, name string) (json.RawMessage, error)
	DeleteGroup(ctx context.Context, groupID int64) error
	DeleteDepartment(ctx context.Context, departmentID int64) error
	ListSAMLSettings(ctx context.Context) (json.RawMessage, error)
	ListSAMLAdminSettings(ctx context.Context) (json.RawMessage, error)
	ListAdvancedSettings(ctx context.Context) (json.RawMessage, error)
	ListIDPConfig(ctx context.Context) (json.RawMessage, error)
	ListICAPServers(ctx context.Context) (json.RawMessage, error)
	ListAuthSettings(ctx context.Context) (json.RawMessage, error)
	UpdateAuthSettings(ctx context.Context, payload any) (json.RawMessage, error)
	ListEUN(ctx context.Context) (json.RawMessage, error)
	ListPasswordExpiry(ctx context.Context) (json.RawMessage, error)
	ListAPIKeys(ctx context.Context) (json.RawMessage, error)
	CreateAPIKey(ctx context.Context) (json.RawMessage, error)
	UpdateAPIKey(ctx context.Context, keyID int64, payload any) (json.RawMessage, error)
	DeleteAPIKey(ctx context.Context, keyID int64) error
	CreateAdminRole(ctx context.Context, payload any) (json.RawMessage, error)
	DeleteAdminRole(ctx context.Context, roleID int64) error
	CreateAdminUser(ctx context.Context, payload any) (json.RawMessage, error)
	UpdateAdminUser(ctx context.Context, userID int64, payload any) (json.RawMessage, error)
	DeleteAdminUser(ctx context.Context, userID int64) error
	UpdateAdvancedThreatSettings(ctx context.Context, payload any) (json.RawMessage, error)
	ListEUSAStatus(ctx context.Context) (json.RawMessage, error)
	CreateEUSAStatus(ctx context.Context) (json.RawMessage, error)
	ListFileTypeRules(ctx context.Context) (json.RawMessage, error)
	DeleteFileTypeRule(ctx context.Context, ruleID int64) error
	ListFirewallDNSRules(ctx context.Context) (json.RawMessage, error)
	DeleteFirewallDNSRule(ctx context.Context, ruleID int64) error
	ListFirewallIPSRules(ctx context.Context) (json.RawMessage, error)
	DeleteFirewallIPSRule(ctx context.Context, ruleID int64) error
	ListWebApplicationRules(ctx context.Context) (json.RawMessage, error)
}

// ZPAService exposes the ZPA management API for one tenant. Listing methods
// aggregate every page into a single ordered result sequence.
type ZPAService interface {
	// Authenticate (re-)exchanges the client id/secret for a bearer token.
	Authenticate(ctx context.Context) error

	GetServer(ctx context.Context, serverID int64) (json.RawMessage, error)
	ListServers(ctx context.Context) ([]Record, error)
	GetApplicationSegment(ctx context.Context, applicationID int64) (json.RawMessage, error)
	ListApplicationSegments(ctx context.Context) ([]Record, error)
	AddApplicationSegment(ctx context.Context, req *ApplicationSegmentRequest) (json.RawMessage, error)
	UpdateApplicationSegment(ctx context.Context, applicationID int64, payload any) error
	DeleteApplicationSegment(ctx context.Context, applicationID int64) error
	GetSegmentGroup(ctx context.Context, segmentGroupID int64) (json.RawMessage, error)
	ListSegmentGroups(ctx context.Context) ([]Record, error)
	AddSegmentGroup(ctx context.Context, name, description string, enabled bool) (json.RawMessage, error)
	GetConnector(ctx context.Context, connectorID int64) (json.RawMessage, error)
	ListConnectors(ctx context.Context) ([]Record, error)
	BulkDeleteConnectors(ctx context.Context, ids []string) (json.RawMessage, error)
	GetConnectorGroup(ctx context.Context, groupID int64) (json.RawMessage, error)
	ListConnectorGroups(ctx context.Context) ([]Record, error)
	ListBrowserAccessCertificates(ctx context.Context) ([]Record, error)
	ListEnrollmentCertificates(ctx context.Context) ([]Record, error)
	ListIssuedCertificates(ctx context.Context) ([]Record, error)
	ListVersionProfiles(ctx context.Context) ([]Record, error)
	GetCloudConnectorGroup(ctx context.Context, groupID int64) (json.RawMessage, error)
	ListCloudConnectorGroups(ctx context.Context) ([]Record, error)
	ListIdP(ctx context.Context) ([]Record, error)
	ListProvisioningKeys(ctx context.Context, associationType string) ([]Record, error)
	ListSCIMAttributes(ctx context.Context, idpID int64) ([]Record, error)
	ListSCIMGroups(ctx context.Context, idpID int64) ([]Record, error)
	ListSAMLAttributes(ctx context.Context) ([]Record, error)
	ListPolicyRules(ctx context.Context, policyType string) ([]Record, error)
	GetPolicySet(ctx context.Context, policyType string) (json.RawMessage, error)
	AddPolicySetRule(ctx context.Context, policySetID string, req *PolicyRuleRequest) (json.RawMessage, error)
	GetServerGroup(ctx context.Context, groupID int64) (json.RawMessage, error)
	ListServerGroups(ctx context.Context) ([]Record, error)
	AddServerGroup(ctx context.Context, req *ServerGroupRequest) (json.RawMessage, error)
	ListPostureProfiles(ctx context.Context) ([]Record, error)
	ListPrivilegedConsoles(ctx context.Context) ([]Record, error)
	// ListSRAConsoles flattens the sraApps of every application segment.
	ListSRAConsoles(ctx context.Context) ([]Record, error)
}

// ZPAPortalService exposes the ZPA admin portal API. Like the ZIA portal,
// these endpoints are unsupported and can change without notice.
type ZPAPortalService interface {
	// Authenticate (re-)exchanges the username/password for a bearer token.
	Authenticate(ctx context.Context) error

	ListAdminUsers(ctx context.Context) ([]Record, error)
	AddAdminUser(ctx context.Context, payload any) (json.RawMessage, error)
	UpdateAdminUser(ctx context.Context, userID string, payload any) (json.RawMessage, error)
	DeleteAdminUser(ctx context.Context, userID string) error
	ListAdminRoles(ctx context.Context) (json.RawMessage, error)
	AddRole(ctx context.Context, payload any) (json.RawMessage, error)
	DeleteRole(ctx context.Context, roleID string) error
	ListAPIKeys(ctx context.Context) (json.RawMessage, error)
	AddAPIKey(ctx context.Context, payload any) (json.RawMessage, error)
	UpdateAPIKey(ctx context.Context, keyID string, payload any) (json.RawMessage, error)
	DeleteAPIKey(ctx context.Context, keyID string) error
	ListApplications(ctx context.Context) (json.RawMessage, error)
	DeleteApplication(ctx context.Context, applicationID string) error
	ListApplicationGroups(ctx context.Context) (json.RawMessage, error)
	DeleteApplicationGroup(ctx context.Context, groupID string) error
	ListAssistantGroups(ctx context.Context) (json.RawMessage, error)
	DeleteAssistantGroup(ctx context.Context, groupID string) error
	ListClientlessCertificates(ctx context.Context) (json.RawMessage, error)
	DeleteClientlessCertificate(ctx context.Context, certID string) error
	AddSearchSuffix(ctx context.Context, payload any) (json.RawMessage, error)
	DeleteServer(ctx context.Context, serverID string) error
	DeleteServerGroup(ctx context.Context, groupID string) error
	AddSupportAccess(ctx context.Context, payload any) (json.RawMessage, error)
	ListUserPortals(ctx context.Context) (json.RawMessage, error)
	DeleteUserPortal(ctx context.Context, portalID string) error
}

// ZCCService exposes the Client Connector endpoint-agent API.
type ZCCService interface {
	// Authenticate (re-)exchanges the API key pair for a JWT.
	Authenticate(ctx context.Context) error

	// ListDevices aggregates every page of enrolled devices. opts may be nil.
	ListDevices(ctx context.Context, opts *DeviceListOptions) ([]Record, error)
	GetOTP(ctx context.Context, udid string) (json.RawMessage, error)
	GetPasswords(ctx context.Context, companyID int64, udid string) (json.RawMessage, error)
	RemoveDevices(ctx context.Context, companyID int64, udids []string, osType OSType) (json.RawMessage, error)
	ForceRemoveDevices(ctx context.Context, udids []string, osType OSType) (json.RawMessage, error)
	// DownloadServiceStatus returns the raw service-status document.
	DownloadServiceStatus(ctx context.Context, companyID int64) ([]byte, error)
}
