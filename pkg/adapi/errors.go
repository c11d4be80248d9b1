package adapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an application-level error reported by the platform:
// either a non-2xx transport status or an envelope with success false. The
// raw transport response is never attached; only the status code and the
// decoded error detail survive.
type APIError struct {
	StatusCode int         `json:"status_code" yaml:"status_code"`
	Detail     ErrorDetail `json:"detail"      yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("%s (status %d)", e.Detail.Message, e.StatusCode)
}

// AuthError represents a failed authentication attempt. It is distinct from
// APIError so callers can tell a rejected login apart from a rejected
// operation.
type AuthError struct {
	Detail ErrorDetail `json:"detail" yaml:"detail"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Detail.Message == "" {
		return "authentication failed"
	}

	return "authentication failed: " + e.Detail.Message
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrNoMatch             = errors.New("no matching record")
	ErrTooManyPages        = errors.New("page limit exceeded before a short page was returned")
	ErrMissingIdentifier   = errors.New("write response carries no identifier field")
	ErrEmptyUploadBody     = errors.New("upload registration body is empty")
	ErrSkipTLSOnlyInDev    = errors.New("skipTLS is only allowed in development environments")
	ErrInvalidTrustStore   = errors.New("trust store contains no usable certificates")
	ErrSessionExpired      = errors.New("session expired and re-authentication did not restore it")
)

// IsNoMatch reports whether err is a find against an id with no matching
// record.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsUnauthorized reports whether err is a session-expiry (401) failure that
// survived the single re-authentication retry.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsAuthFailure reports whether err is a rejected login.
func IsAuthFailure(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsApplicationError reports whether err carries a server-authored error
// detail (an envelope with success false, under any HTTP status).
func IsApplicationError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}
