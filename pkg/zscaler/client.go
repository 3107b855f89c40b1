package zscaler

import (
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrDeprecatedClientConstructor = errors.New("use github.com/trace333w/zscaler-api-talkers/pkg/ztclient.New to create a client")
)

// Client is the top-level entry point, grouping one service per product
// surface. Services are lazily authenticated: the first request on a surface
// (or an explicit Authenticate call) establishes its session.
type Client interface {
	ZIA() ZIAService
	ZPA() ZPAService
	ZPAPortal() ZPAPortalService
	ZCC() ZCCService
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a zscaler.Client.
//
// # Endpoints
//
// Cloud is the tenant's Zscaler cloud TLD (for example "zscalertwo.net") and
// is used to derive the default per-surface endpoints:
//
//	ZIA portal:  https://admin.<cloud>/zsapi/v1
//	ZCC:         https://api-mobile.<cloud>/papi
//	ZPA:         https://config.private.zscaler.com
//	ZPA portal:  https://api.private.zscaler.com
//
// Each endpoint can be overridden individually, which is how test servers and
// beta clouds (for example https://config.zpabeta.net) are targeted.
//
// # Credentials
//
// Provide credentials only for the surfaces you intend to use; a service
// whose credentials are absent fails fast with ErrCredentialsRequired on
// first use. The ZIA portal seed (ZIAAPIKey) is optional: when empty it is
// discovered from the portal's sign-in page during authentication.
//
// # Timeouts, retries, and pacing
//
// Per-request timeouts should be controlled via the context passed to service
// methods. Retry behavior of single physical requests can be tuned via
// RetryMax/RetryWaitMin/RetryWaitMax; pagination itself is never retried.
// PageDelay spaces consecutive page fetches on surfaces that rate-limit
// aggressive listing (the ZCC sentinel dialect); it is a rate-shaping pause,
// not a backoff.
type Config struct {
	// Cloud: tenant cloud TLD, e.g. "zscaler.net", "zscloud.net",
	// "zscalerbeta.net". Required unless every used endpoint is overridden.
	Cloud string

	// Endpoint overrides (scheme + host [+ base path]).
	ZIAEndpoint       string
	ZPAEndpoint       string
	ZPAPortalEndpoint string
	ZCCEndpoint       string

	// ZIA admin portal credentials.
	ZIAUsername string
	ZIAPassword string
	// ZIAAPIKey: obfuscation seed. Discovered from the portal when empty.
	ZIAAPIKey string

	// ZPA API credentials. ZPACustomerID is the ZPA tenant identifier,
	// embedded in every ZPA path and in the customer-scoped portal paths.
	ZPAClientID     string
	ZPAClientSecret string
	ZPACustomerID   int64

	// ZPA admin portal credentials. The portal shares ZPACustomerID.
	ZPAPortalUsername string
	ZPAPortalPassword string

	// ZCC (Client Connector) API credentials.
	ZCCClientID  string
	ZCCSecretKey string

	// PageSize: page size requested from listing endpoints that accept one.
	// Defaults to 500, the largest size the backends honor.
	PageSize int
	// PageDelay: pause between consecutive page fetches in the sentinel
	// pagination dialect. Defaults to 500ms.
	PageDelay time.Duration
	// ExclusiveTotalPages: treat a reported totalPages count as an exclusive
	// bound instead of the default inclusive one. The backends are
	// inconsistent here; verify against your tenant before flipping this.
	ExclusiveTotalPages bool

	// HTTPTimeout: optional default HTTP timeout where supported. Most calls
	// should rely on context timeouts; this may be used by helpers.
	HTTPTimeout time.Duration
	// RetryMax: maximum retries for transient failures of one physical
	// request (>=500, 429, connection errors). 0 disables retrying.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
}

// NewClient creates a new Zscaler API client
// Deprecated: Use github.com/trace333w/zscaler-api-talkers/pkg/ztclient.New instead.
func NewClient(config *Config) (Client, error) {
	return nil, ErrDeprecatedClientConstructor
}
