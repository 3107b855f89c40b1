// Package http implements the HTTP transport shared by every Zscaler
// surface: one physical request in, one status + body + cookies out.
// Authentication state is attached by the caller (internal/auth), not here.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

const defaultUserAgent = "zscaler-api-talkers/1.0"

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents one outgoing API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Cookies []*nethttp.Cookie
	// Body is JSON-marshalled when non-nil and Form is nil.
	Body interface{}
	// Form, when non-nil, is sent as an x-www-form-urlencoded body instead
	// of JSON.
	Form url.Values
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Cookies    []*nethttp.Cookie
	Body       []byte
}

// Cookie returns the value of the named response cookie.
func (r *Response) Cookie(name string) (string, bool) {
	for _, cookie := range r.Cookies {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}

	return "", false
}

// Client performs HTTP requests against one surface's base URL.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	userAgent  string
	logger     Logger
	debug      bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retrying of transient failures (>=500, 429,
// connection errors) for single physical requests.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets a hard timeout on each physical request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport for baseURL. Retries are disabled unless
// WithRetryConfig is supplied; pagination depends on a fetch either fully
// succeeding or surfacing its error.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	// Hand the last response back once retries are exhausted; the default
	// handler discards it, which would hide the status and error body from
	// decodeAPIError.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// Cookies are managed explicitly per request; a jar would leak session
	// state across tenants sharing a transport.
	retryClient.HTTPClient.Jar = nil

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the surface's base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one request. On a non-2xx status the decoded API error is
// returned together with the response, so callers can still inspect the
// status and body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	for _, cookie := range req.Cookies {
		httpReq.AddCookie(cookie)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Cookies:    httpResp.Cookies(),
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, decodeAPIError(resp)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

func (c *Client) buildURL(req *Request) (string, error) {
	raw := req.Path
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = c.baseURL + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", raw, err)
	}

	if len(req.Query) > 0 {
		merged := parsed.Query()
		for key, values := range req.Query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}

		parsed.RawQuery = merged.Encode()
	}

	return parsed.String(), nil
}

func encodeBody(req *Request) (interface{}, string, error) {
	switch {
	case req.Form != nil:
		return bytes.NewBufferString(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling request body: %w", err)
		}

		return bytes.NewBuffer(data), "application/json", nil
	default:
		return nil, "", nil
	}
}

func decodeAPIError(resp *Response) error {
	apiErr := &zscaler.APIError{StatusCode: resp.StatusCode}
	// Best effort: the error envelope differs per surface and is sometimes
	// plain text.
	_ = json.Unmarshal(resp.Body, apiErr)

	return apiErr
}
