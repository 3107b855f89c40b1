package zscaler

import (
	"errors"
	"fmt"
	"net/http"
)

// Authentication failure reasons. The ZIA admin portal distinguishes a
// rejected credential pair from a rejected API key; the other surfaces only
// report a missing token field.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrMissingToken       = errors.New("authentication response missing expected token")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Common static errors that can be wrapped with context.
var (
	ErrCloudRequired         = errors.New("cloud name is required")
	ErrEndpointRequired      = errors.New("API endpoint is required")
	ErrCustomerIDRequired    = errors.New("ZPA customer ID is required")
	ErrCredentialsRequired   = errors.New("credentials are required")
	ErrConfigRequired        = errors.New("config is required")
	ErrSeedNotFound          = errors.New("obfuscation seed not found in portal page")
	ErrEmptySeed             = errors.New("obfuscation seed is empty")
	ErrTooManyDevicesRemoved = errors.New("at most 30 devices can be removed per call")
)

// AuthenticationError reports a rejected authentication exchange on one
// surface. Reason is one of ErrInvalidCredentials, ErrInvalidAPIKey, or
// ErrMissingToken and is reachable through errors.Is.
type AuthenticationError struct {
	Surface string
	Reason  error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s authentication failed: %v", e.Surface, e.Reason)
}

// Unwrap exposes the failure reason for errors.Is.
func (e *AuthenticationError) Unwrap() error {
	return e.Reason
}

// APIError represents a non-2xx response from a Zscaler API. The surfaces are
// inconsistent about their error envelope (code/message on ZIA, id/reason on
// ZPA), so both field pairs are decoded.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	ID         string `json:"id,omitempty"`
	Message    string `json:"message,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = e.ID
	}

	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}

	switch {
	case code != "" && msg != "":
		return fmt.Sprintf("API error (status %d): %s: %s", e.StatusCode, code, msg)
	case msg != "":
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
	default:
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
}

// IsAuthenticationError reports whether err carries an AuthenticationError.
func IsAuthenticationError(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsInvalidCredentials reports whether err is the invalid-credentials
// authentication failure.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsInvalidAPIKey reports whether err is the invalid-API-key authentication
// failure.
func IsInvalidAPIKey(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsRateLimited checks if the error is a rate limiting error.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}
