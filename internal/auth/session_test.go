package auth

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

func TestAttachment_Apply(t *testing.T) {
	t.Parallel()

	t.Run("adds headers and cookies", func(t *testing.T) {
		t.Parallel()

		att := Attachment{
			Headers: map[string]string{"Authorization": "Bearer token"},
			Cookies: []*nethttp.Cookie{{Name: "JSESSIONID", Value: "abc"}},
		}

		req := &transport.Request{}
		att.Apply(req)

		assert.Equal(t, "Bearer token", req.Headers["Authorization"])
		require.Len(t, req.Cookies, 1)
		assert.Equal(t, "JSESSIONID", req.Cookies[0].Name)
	})

	t.Run("does not override request headers", func(t *testing.T) {
		t.Parallel()

		att := Attachment{Headers: map[string]string{"Accept": "application/json"}}

		req := &transport.Request{Headers: map[string]string{"Accept": "*/*"}}
		att.Apply(req)

		assert.Equal(t, "*/*", req.Headers["Accept"])
	})
}

func TestHolder_BeforeAuthentication(t *testing.T) {
	t.Parallel()

	var h holder

	_, err := h.get()
	require.ErrorIs(t, err, zscaler.ErrNotAuthenticated)
}

func TestPortalSession_Authenticate(t *testing.T) {
	t.Parallel()

	var payload map[string]interface{}

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/authenticatedSession", r.URL.Path)
		require.Equal(t, nethttp.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		nethttp.SetCookie(w, &nethttp.Cookie{Name: "JSESSIONID", Value: "session-1"})
		nethttp.SetCookie(w, &nethttp.Cookie{Name: "ZS_SESSION_CODE", Value: "code-1"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	session := NewPortalSession(&PortalConfig{
		Transport: transport.NewClient(server.URL),
		Username:  "admin@example.com",
		Password:  "hunter2",
		APIKey:    "0123456789abcdef",
	})

	err := session.Authenticate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", payload["username"])
	assert.Equal(t, "hunter2", payload["password"])
	assert.NotEmpty(t, payload["apiKey"])
	assert.NotZero(t, payload["timestamp"])

	att, err := session.Attachment()
	require.NoError(t, err)
	assert.Equal(t, "code-1", att.Headers["ZS_CUSTOM_CODE"])

	names := make(map[string]string)
	for _, cookie := range att.Cookies {
		names[cookie.Name] = cookie.Value
	}

	assert.Equal(t, "session-1", names["JSESSIONID"])
	assert.Equal(t, "code-1", names["ZS_SESSION_CODE"])
}

func TestPortalSession_DistinctFailureReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cookies []*nethttp.Cookie
		reason  error
	}{
		{
			name:    "no cookies means bad credentials",
			cookies: nil,
			reason:  zscaler.ErrInvalidCredentials,
		},
		{
			name:    "session code only means bad credentials",
			cookies: []*nethttp.Cookie{{Name: "ZS_SESSION_CODE", Value: "c"}},
			reason:  zscaler.ErrInvalidCredentials,
		},
		{
			name:    "session id only means bad API key",
			cookies: []*nethttp.Cookie{{Name: "JSESSIONID", Value: "s"}},
			reason:  zscaler.ErrInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				for _, cookie := range tt.cookies {
					nethttp.SetCookie(w, cookie)
				}

				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			session := NewPortalSession(&PortalConfig{
				Transport: transport.NewClient(server.URL),
				Username:  "admin@example.com",
				Password:  "hunter2",
				APIKey:    "0123456789abcdef",
			})

			err := session.Authenticate(context.Background())
			require.Error(t, err)
			require.ErrorIs(t, err, tt.reason)

			var authErr *zscaler.AuthenticationError

			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, "zia portal", authErr.Surface)

			_, err = session.Attachment()
			require.ErrorIs(t, err, zscaler.ErrNotAuthenticated)
		})
	}
}

func TestPortalSession_SeedDiscovery(t *testing.T) {
	t.Parallel()

	mux := nethttp.NewServeMux()
	mux.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(`<script>var obf = {seed: "discoveredseed99"};</script>`))
	})
	mux.HandleFunc("/authenticatedSession", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.SetCookie(w, &nethttp.Cookie{Name: "JSESSIONID", Value: "s"})
		nethttp.SetCookie(w, &nethttp.Cookie{Name: "ZS_SESSION_CODE", Value: "c"})
		_, _ = w.Write([]byte(`{}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	session := NewPortalSession(&PortalConfig{
		Transport: transport.NewClient(server.URL),
		PortalURL: server.URL,
		Username:  "admin@example.com",
		Password:  "hunter2",
	})

	err := session.Authenticate(context.Background())
	require.NoError(t, err)
}

func TestPortalSession_SeedNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(`<html>no seed here</html>`))
	}))
	defer server.Close()

	session := NewPortalSession(&PortalConfig{
		Transport: transport.NewClient(server.URL),
		PortalURL: server.URL,
		Username:  "admin@example.com",
		Password:  "hunter2",
	})

	err := session.Authenticate(context.Background())
	require.ErrorIs(t, err, zscaler.ErrSeedNotFound)
}

func TestPortalSession_MissingCredentials(t *testing.T) {
	t.Parallel()

	session := NewPortalSession(&PortalConfig{})

	err := session.Authenticate(context.Background())
	require.ErrorIs(t, err, zscaler.ErrCredentialsRequired)
}

func TestClientCredentialsSession_Authenticate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/signin", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client-1", r.PostFormValue("client_id"))
		require.Equal(t, "secret-1", r.PostFormValue("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"Bearer","access_token":"tok-1"}`))
	}))
	defer server.Close()

	session := NewClientCredentialsSession(transport.NewClient(server.URL), "client-1", "secret-1")

	err := session.Authenticate(context.Background())
	require.NoError(t, err)

	att, err := session.Attachment()
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", att.Headers["Authorization"])
}

func TestClientCredentialsSession_MissingToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no token type", body: `{"access_token":"tok-1"}`},
		{name: "no access token", body: `{"token_type":"Bearer"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			session := NewClientCredentialsSession(transport.NewClient(server.URL), "client-1", "secret-1")

			err := session.Authenticate(context.Background())
			require.ErrorIs(t, err, zscaler.ErrMissingToken)
		})
	}
}

func TestPasswordSession_Authenticate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/base/api/zpa/signin", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "admin", r.PostFormValue("username"))

		_, _ = w.Write([]byte(`{"Z-AUTH-TOKEN":"portal-tok"}`))
	}))
	defer server.Close()

	session := NewPasswordSession(transport.NewClient(server.URL), "admin", "hunter2")

	err := session.Authenticate(context.Background())
	require.NoError(t, err)

	att, err := session.Attachment()
	require.NoError(t, err)
	assert.Equal(t, "Bearer portal-tok", att.Headers["Authorization"])
}

func TestAPIKeySession_Authenticate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/auth/v1/login", r.URL.Path)
		require.Equal(t, "*/*", r.Header.Get("Accept"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "key-1", payload["apiKey"])
		require.Equal(t, "secret-1", payload["secretKey"])

		_, _ = w.Write([]byte(`{"jwtToken":"jwt-1"}`))
	}))
	defer server.Close()

	session := NewAPIKeySession(transport.NewClient(server.URL), "key-1", "secret-1")

	err := session.Authenticate(context.Background())
	require.NoError(t, err)

	att, err := session.Attachment()
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", att.Headers["auth-token"])
}

func TestReauthenticationReplacesAttachment(t *testing.T) {
	t.Parallel()

	calls := 0

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls++

		if calls == 1 {
			_, _ = w.Write([]byte(`{"jwtToken":"jwt-old"}`))

			return
		}

		_, _ = w.Write([]byte(`{"jwtToken":"jwt-new"}`))
	}))
	defer server.Close()

	session := NewAPIKeySession(transport.NewClient(server.URL), "key-1", "secret-1")

	require.NoError(t, session.Authenticate(context.Background()))

	old, err := session.Attachment()
	require.NoError(t, err)

	require.NoError(t, session.Authenticate(context.Background()))

	fresh, err := session.Attachment()
	require.NoError(t, err)

	assert.Equal(t, "jwt-old", old.Headers["auth-token"])
	assert.Equal(t, "jwt-new", fresh.Headers["auth-token"])
}
