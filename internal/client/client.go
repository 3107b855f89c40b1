// Package client implements the zscaler.Client service surfaces on top of
// the transport, session, and pagination layers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/trace333w/zscaler-api-talkers/internal/auth"
	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/internal/paginate"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// Client implements the zscaler.Client interface.
type Client struct {
	zia       *ZIAClient
	zpa       *ZPAClient
	zpaPortal *ZPAPortalClient
	zcc       *ZCCClient
}

// New creates a client for every surface. Only surfaces whose credentials
// are configured can be used; the others fail fast on first call.
func New(config *zscaler.Config) (*Client, error) {
	if config == nil {
		return nil, zscaler.ErrConfigRequired
	}

	err := validate(config)
	if err != nil {
		return nil, err
	}

	httpOpts := httpOptions(config)

	ziaTransport := transport.NewClient(ziaEndpoint(config), httpOpts...)
	zpaTransport := transport.NewClient(zpaEndpoint(config), httpOpts...)
	zpaPortalTransport := transport.NewClient(zpaPortalEndpoint(config), httpOpts...)
	zccTransport := transport.NewClient(zccEndpoint(config), httpOpts...)

	ziaSession := auth.NewPortalSession(&auth.PortalConfig{
		Transport: ziaTransport,
		PortalURL: ziaPortalURL(config),
		Username:  config.ZIAUsername,
		Password:  config.ZIAPassword,
		APIKey:    config.ZIAAPIKey,
	})

	return &Client{
		zia: NewZIAClient(ziaTransport, ziaSession),
		zpa: NewZPAClient(
			zpaTransport,
			auth.NewClientCredentialsSession(zpaTransport, config.ZPAClientID, config.ZPAClientSecret),
			config.ZPACustomerID,
			pagerOptions(config),
		),
		zpaPortal: NewZPAPortalClient(
			zpaPortalTransport,
			auth.NewPasswordSession(zpaPortalTransport, config.ZPAPortalUsername, config.ZPAPortalPassword),
			config.ZPACustomerID,
			pagerOptions(config),
		),
		zcc: NewZCCClient(
			zccTransport,
			auth.NewAPIKeySession(zccTransport, config.ZCCClientID, config.ZCCSecretKey),
			config.PageSize,
			config.PageDelay,
		),
	}, nil
}

// ZIA implements zscaler.Client.ZIA.
func (c *Client) ZIA() zscaler.ZIAService {
	return c.zia
}

// ZPA implements zscaler.Client.ZPA.
func (c *Client) ZPA() zscaler.ZPAService {
	return c.zpa
}

// ZPAPortal implements zscaler.Client.ZPAPortal.
func (c *Client) ZPAPortal() zscaler.ZPAPortalService {
	return c.zpaPortal
}

// ZCC implements zscaler.Client.ZCC.
func (c *Client) ZCC() zscaler.ZCCService {
	return c.zcc
}

func validate(config *zscaler.Config) error {
	if config.Cloud == "" {
		ziaUsed := config.ZIAUsername != "" && config.ZIAEndpoint == ""
		zccUsed := config.ZCCClientID != "" && config.ZCCEndpoint == ""

		if ziaUsed || zccUsed {
			return zscaler.ErrCloudRequired
		}
	}

	if (config.ZPAClientID != "" || config.ZPAPortalUsername != "") && config.ZPACustomerID == 0 {
		return zscaler.ErrCustomerIDRequired
	}

	return nil
}

func ziaEndpoint(config *zscaler.Config) string {
	if config.ZIAEndpoint != "" {
		return config.ZIAEndpoint
	}

	return "https://admin." + config.Cloud + "/zsapi/v1"
}

// ziaPortalURL picks the origin used for seed discovery. With no cloud name
// the endpoint override must carry it, or "https://admin." would be produced.
func ziaPortalURL(config *zscaler.Config) string {
	if config.Cloud != "" {
		return "https://admin." + config.Cloud
	}

	parsed, err := url.Parse(config.ZIAEndpoint)
	if err != nil {
		return config.ZIAEndpoint
	}

	return parsed.Scheme + "://" + parsed.Host
}

func zpaEndpoint(config *zscaler.Config) string {
	if config.ZPAEndpoint != "" {
		return config.ZPAEndpoint
	}

	return "https://config.private.zscaler.com"
}

func zpaPortalEndpoint(config *zscaler.Config) string {
	if config.ZPAPortalEndpoint != "" {
		return config.ZPAPortalEndpoint
	}

	return "https://api.private.zscaler.com"
}

func zccEndpoint(config *zscaler.Config) string {
	if config.ZCCEndpoint != "" {
		return config.ZCCEndpoint
	}

	return "https://api-mobile." + config.Cloud + "/papi"
}

// httpOptions builds transport options from config.
func httpOptions(config *zscaler.Config) []transport.Option {
	var opts []transport.Option

	if config.Logger != nil {
		opts = append(opts, transport.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, transport.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := 30 * time.Second

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, transport.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return opts
}

func pagerOptions(config *zscaler.Config) []paginate.Option {
	var opts []paginate.Option

	if config.PageSize > 0 {
		opts = append(opts, paginate.WithPageSize(config.PageSize))
	}

	if config.ExclusiveTotalPages {
		opts = append(opts, paginate.WithExclusiveTotal(true))
	}

	return opts
}

// service is the per-surface base: one transport, one session. The session
// is established lazily on the first call needing it.
type service struct {
	transport *transport.Client
	session   auth.Session
}

// do attaches the session to req and performs it, authenticating first if
// the session has never been established.
func (s *service) do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	att, err := s.session.Attachment()
	if err != nil {
		authErr := s.session.Authenticate(ctx)
		if authErr != nil {
			return nil, authErr
		}

		att, err = s.session.Attachment()
		if err != nil {
			return nil, err
		}
	}

	att.Apply(req)

	return s.transport.Do(ctx, req)
}

func (s *service) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	resp, err := s.do(ctx, &transport.Request{Method: nethttp.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

func (s *service) postJSON(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	resp, err := s.do(ctx, &transport.Request{Method: nethttp.MethodPost, Path: path, Body: body})
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

func (s *service) putJSON(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	resp, err := s.do(ctx, &transport.Request{Method: nethttp.MethodPut, Path: path, Body: body})
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

func (s *service) delete(ctx context.Context, path string) error {
	_, err := s.do(ctx, &transport.Request{Method: nethttp.MethodDelete, Path: path})

	return err
}

// fetcher builds a page-fetch closure over path for the pagination core.
// base query parameters (filters) are preserved on every page.
func (s *service) fetcher(path string, base url.Values) paginate.Fetcher {
	return func(ctx context.Context, query url.Values) (*paginate.Envelope, error) {
		merged := url.Values{}
		for key, values := range base {
			merged[key] = values
		}

		for key, values := range query {
			merged[key] = values
		}

		resp, err := s.do(ctx, &transport.Request{Method: nethttp.MethodGet, Path: path, Query: merged})
		if err != nil {
			return nil, err
		}

		var env paginate.Envelope

		err = json.Unmarshal(resp.Body, &env)
		if err != nil {
			return nil, fmt.Errorf("parsing page response: %w", err)
		}

		return &env, nil
	}
}
