package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

func TestClient_Do_JSONBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "value", payload["key"])

		w.WriteHeader(nethttp.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Post(context.Background(), "/things", map[string]string{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":"1"}`, string(resp.Body))
}

func TestClient_Do_FormBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a", r.PostFormValue("field"))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Do(context.Background(), &Request{
		Method: nethttp.MethodPost,
		Path:   "/signin",
		Form:   url.Values{"field": []string{"a"}},
	})
	require.NoError(t, err)
}

func TestClient_Do_QueryMerge(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "500", r.URL.Query().Get("pagesize"))
		assert.Equal(t, "fixed", r.URL.Query().Get("existing"))

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Do(context.Background(), &Request{
		Method: nethttp.MethodGet,
		Path:   "/things?existing=fixed",
		Query: url.Values{
			"page":     []string{"1"},
			"pagesize": []string{"500"},
		},
	})
	require.NoError(t, err)
}

func TestClient_Do_AbsolutePathBypassesBaseURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/elsewhere", r.URL.Path)

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("https://unreachable.invalid")

	_, err := client.Do(context.Background(), &Request{
		Method: nethttp.MethodGet,
		Path:   server.URL + "/elsewhere",
	})
	require.NoError(t, err)
}

func TestClient_Do_HeadersAndCookies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "token-1", r.Header.Get("auth-token"))

		cookie, err := r.Cookie("JSESSIONID")
		require.NoError(t, err)
		assert.Equal(t, "abc", cookie.Value)

		nethttp.SetCookie(w, &nethttp.Cookie{Name: "ZS_SESSION_CODE", Value: "xyz"})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Do(context.Background(), &Request{
		Method:  nethttp.MethodGet,
		Path:    "/",
		Headers: map[string]string{"auth-token": "token-1"},
		Cookies: []*nethttp.Cookie{{Name: "JSESSIONID", Value: "abc"}},
	})
	require.NoError(t, err)

	value, ok := resp.Cookie("ZS_SESSION_CODE")
	require.True(t, ok)
	assert.Equal(t, "xyz", value)

	_, ok = resp.Cookie("missing")
	assert.False(t, ok)
}

func TestClient_Do_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"RESOURCE_NOT_FOUND","message":"no such rule"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Get(context.Background(), "/rules/9", nil)
	require.Error(t, err)

	// The response stays available alongside the error.
	require.NotNil(t, resp)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	var apiErr *zscaler.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, nethttp.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "RESOURCE_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "no such rule", apiErr.Message)
	assert.True(t, zscaler.IsNotFound(err))
}

func TestClient_Do_APIErrorPlainTextBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Get(context.Background(), "/", nil)
	require.Error(t, err)

	var apiErr *zscaler.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, nethttp.StatusBadGateway, apiErr.StatusCode)
}

func TestClient_Do_RetryableStatusStillDecoded(t *testing.T) {
	t.Parallel()

	// 429 and 5xx are statuses the retry policy considers transient; the
	// decoded error and response must still reach the caller once attempts
	// run out.
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "service unavailable",
			status: nethttp.StatusServiceUnavailable,
			body:   `{"reason":"maintenance"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *zscaler.APIError

				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "maintenance", apiErr.Reason)
			},
		},
		{
			name:   "rate limited",
			status: nethttp.StatusTooManyRequests,
			body:   `{"message":"Rate Limit Exceeded"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				assert.True(t, zscaler.IsRateLimited(err))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)

			resp, err := client.Get(context.Background(), "/", nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)

			var apiErr *zscaler.APIError

			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			tt.check(t, err)
		})
	}
}

func TestClient_RetryExhaustionReturnsLastResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.WriteHeader(nethttp.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"Rate Limit Exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetryConfig(1, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "/", nil)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())

	require.NotNil(t, resp)
	assert.Equal(t, nethttp.StatusTooManyRequests, resp.StatusCode)
	assert.True(t, zscaler.IsRateLimited(err))
}

func TestClient_RetriesDisabledByDefault(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.WriteHeader(nethttp.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Get(context.Background(), "/", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_WithRetryConfig(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(nethttp.StatusInternalServerError)

			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

	_, err := client.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_WithUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "custom-agent/2.0", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithUserAgent("custom-agent/2.0"))

	_, err := client.Get(context.Background(), "/", nil)
	require.NoError(t, err)
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/", nil)
	require.Error(t, err)
}
