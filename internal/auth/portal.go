package auth

import (
	"context"
	"fmt"
	nethttp "net/http"
	"regexp"
	"time"

	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// The portal embeds its obfuscation seed in the sign-in page. The pattern is
// deliberately loose: the surrounding markup changes between portal releases.
var seedPattern = regexp.MustCompile(`seed["']?\s*[:=]\s*["']([A-Za-z0-9]{12,})["']`)

// PortalConfig configures a ZIA admin portal session.
type PortalConfig struct {
	// Transport targets the zsapi base (https://admin.<cloud>/zsapi/v1).
	Transport *transport.Client
	// PortalURL is the bare portal origin (https://admin.<cloud>), used for
	// seed discovery when APIKey is empty.
	PortalURL string
	Username  string
	Password  string
	// APIKey: the obfuscation seed. Discovered from the portal when empty.
	APIKey string
}

// PortalSession implements the ZIA admin portal dialect: username/password
// plus a timestamp-obfuscated API key, exchanged for a JSESSIONID cookie and
// a ZS_SESSION_CODE cookie.
type PortalSession struct {
	transport *transport.Client
	portalURL string
	username  string
	password  string
	apiKey    string

	holder
}

// NewPortalSession creates an unauthenticated portal session.
func NewPortalSession(cfg *PortalConfig) *PortalSession {
	return &PortalSession{
		transport: cfg.Transport,
		portalURL: cfg.PortalURL,
		username:  cfg.Username,
		password:  cfg.Password,
		apiKey:    cfg.APIKey,
	}
}

// Authenticate implements Session. The portal reports a bad credential pair
// by withholding the JSESSIONID cookie and a bad API key by withholding
// ZS_SESSION_CODE; the two failures stay distinguishable.
func (s *PortalSession) Authenticate(ctx context.Context) error {
	if s.username == "" || s.password == "" {
		return fmt.Errorf("zia portal: %w", zscaler.ErrCredentialsRequired)
	}

	seed := s.apiKey
	if seed == "" {
		discovered, err := s.fetchSeed(ctx)
		if err != nil {
			return err
		}

		seed = discovered
	}

	timestamp, key, err := ObfuscateAPIKey(seed, time.Now())
	if err != nil {
		return fmt.Errorf("obfuscating API key: %w", err)
	}

	resp, err := s.transport.Do(ctx, &transport.Request{
		Method: nethttp.MethodPost,
		Path:   "/authenticatedSession",
		Body: map[string]interface{}{
			"apiKey":    key,
			"username":  s.username,
			"password":  s.password,
			"timestamp": timestamp,
		},
	})
	if err != nil {
		return &zscaler.AuthenticationError{Surface: "zia portal", Reason: err}
	}

	sessionID, ok := resp.Cookie("JSESSIONID")
	if !ok {
		return &zscaler.AuthenticationError{Surface: "zia portal", Reason: zscaler.ErrInvalidCredentials}
	}

	sessionCode, ok := resp.Cookie("ZS_SESSION_CODE")
	if !ok {
		return &zscaler.AuthenticationError{Surface: "zia portal", Reason: zscaler.ErrInvalidAPIKey}
	}

	s.set(Attachment{
		Headers: map[string]string{"ZS_CUSTOM_CODE": sessionCode},
		Cookies: []*nethttp.Cookie{
			{Name: "JSESSIONID", Value: sessionID},
			{Name: "ZS_SESSION_CODE", Value: sessionCode},
		},
	})

	return nil
}

// Attachment implements Session.
func (s *PortalSession) Attachment() (Attachment, error) {
	return s.get()
}

func (s *PortalSession) fetchSeed(ctx context.Context) (string, error) {
	resp, err := s.transport.Do(ctx, &transport.Request{
		Method: nethttp.MethodGet,
		Path:   s.portalURL,
	})
	if err != nil {
		return "", fmt.Errorf("fetching portal page: %w", err)
	}

	match := seedPattern.FindSubmatch(resp.Body)
	if match == nil {
		return "", zscaler.ErrSeedNotFound
	}

	return string(match[1]), nil
}
