package auth

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"

	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// APIKeySession implements the Client Connector dialect: an API key/secret
// pair exchanged for a JWT, attached as an auth-token header.
type APIKeySession struct {
	transport *transport.Client
	clientID  string
	secretKey string

	holder
}

// NewAPIKeySession creates an unauthenticated ZCC session.
func NewAPIKeySession(tr *transport.Client, clientID, secretKey string) *APIKeySession {
	return &APIKeySession{
		transport: tr,
		clientID:  clientID,
		secretKey: secretKey,
	}
}

// Authenticate implements Session.
func (s *APIKeySession) Authenticate(ctx context.Context) error {
	if s.clientID == "" || s.secretKey == "" {
		return fmt.Errorf("zcc: %w", zscaler.ErrCredentialsRequired)
	}

	resp, err := s.transport.Do(ctx, &transport.Request{
		Method:  nethttp.MethodPost,
		Path:    "/auth/v1/login",
		Headers: map[string]string{"Accept": "*/*"},
		Body: map[string]string{
			"apiKey":    s.clientID,
			"secretKey": s.secretKey,
		},
	})
	if err != nil {
		return &zscaler.AuthenticationError{Surface: "zcc", Reason: err}
	}

	var token struct {
		JWTToken string `json:"jwtToken"`
	}

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		return fmt.Errorf("parsing login response: %w", err)
	}

	if token.JWTToken == "" {
		return &zscaler.AuthenticationError{Surface: "zcc", Reason: zscaler.ErrMissingToken}
	}

	s.set(Attachment{
		Headers: map[string]string{"auth-token": token.JWTToken},
	})

	return nil
}

// Attachment implements Session.
func (s *APIKeySession) Attachment() (Attachment, error) {
	return s.get()
}
