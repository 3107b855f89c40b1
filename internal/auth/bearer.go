package auth

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// ClientCredentialsSession implements the ZPA dialect: a form-encoded client
// id/secret exchange returning a token_type + access_token pair, attached as
// a single Authorization header.
type ClientCredentialsSession struct {
	transport    *transport.Client
	clientID     string
	clientSecret string

	holder
}

// NewClientCredentialsSession creates an unauthenticated ZPA session.
func NewClientCredentialsSession(tr *transport.Client, clientID, clientSecret string) *ClientCredentialsSession {
	return &ClientCredentialsSession{
		transport:    tr,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Authenticate implements Session.
func (s *ClientCredentialsSession) Authenticate(ctx context.Context) error {
	if s.clientID == "" || s.clientSecret == "" {
		return fmt.Errorf("zpa: %w", zscaler.ErrCredentialsRequired)
	}

	resp, err := s.transport.Do(ctx, &transport.Request{
		Method: nethttp.MethodPost,
		Path:   "/signin",
		Form: url.Values{
			"client_id":     []string{s.clientID},
			"client_secret": []string{s.clientSecret},
		},
	})
	if err != nil {
		return &zscaler.AuthenticationError{Surface: "zpa", Reason: err}
	}

	var token struct {
		TokenType   string `json:"token_type"`
		AccessToken string `json:"access_token"`
	}

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		return fmt.Errorf("parsing signin response: %w", err)
	}

	if token.TokenType == "" || token.AccessToken == "" {
		return &zscaler.AuthenticationError{Surface: "zpa", Reason: zscaler.ErrMissingToken}
	}

	s.set(Attachment{
		Headers: map[string]string{
			"Authorization": token.TokenType + " " + token.AccessToken,
		},
	})

	return nil
}

// Attachment implements Session.
func (s *ClientCredentialsSession) Attachment() (Attachment, error) {
	return s.get()
}

// PasswordSession implements the ZPA admin portal dialect: a form-encoded
// username/password exchange returning a Z-AUTH-TOKEN field, attached as a
// Bearer Authorization header.
type PasswordSession struct {
	transport *transport.Client
	username  string
	password  string

	holder
}

// NewPasswordSession creates an unauthenticated ZPA portal session.
func NewPasswordSession(tr *transport.Client, username, password string) *PasswordSession {
	return &PasswordSession{
		transport: tr,
		username:  username,
		password:  password,
	}
}

// Authenticate implements Session.
func (s *PasswordSession) Authenticate(ctx context.Context) error {
	if s.username == "" || s.password == "" {
		return fmt.Errorf("zpa portal: %w", zscaler.ErrCredentialsRequired)
	}

	resp, err := s.transport.Do(ctx, &transport.Request{
		Method: nethttp.MethodPost,
		Path:   "/base/api/zpa/signin",
		Form: url.Values{
			"username": []string{s.username},
			"password": []string{s.password},
		},
	})
	if err != nil {
		return &zscaler.AuthenticationError{Surface: "zpa portal", Reason: err}
	}

	var token struct {
		AuthToken string `json:"Z-AUTH-TOKEN"`
	}

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		return fmt.Errorf("parsing signin response: %w", err)
	}

	if token.AuthToken == "" {
		return &zscaler.AuthenticationError{Surface: "zpa portal", Reason: zscaler.ErrMissingToken}
	}

	s.set(Attachment{
		Headers: map[string]string{
			"Authorization": "Bearer " + token.AuthToken,
		},
	})

	return nil
}

// Attachment implements Session.
func (s *PasswordSession) Attachment() (Attachment, error) {
	return s.get()
}
