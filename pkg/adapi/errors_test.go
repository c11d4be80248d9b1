package adapi_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

func TestAPIError(t *testing.T) {
	t.Parallel()

	t.Run("message with status", func(t *testing.T) {
		t.Parallel()

		err := &adapi.APIError{
			StatusCode: http.StatusUnprocessableEntity,
			Detail:     adapi.ErrorDetail{ID: "SYNTAX", Message: "unknown field state"},
		}

		assert.Equal(t, "unknown field state (status 422)", err.Error())
	})

	t.Run("status only", func(t *testing.T) {
		t.Parallel()

		err := &adapi.APIError{StatusCode: http.StatusBadGateway}

		assert.Equal(t, "api error (status 502)", err.Error())
	})
}

func TestAuthError(t *testing.T) {
	t.Parallel()

	withDetail := &adapi.AuthError{Detail: adapi.ErrorDetail{Message: "invalid credentials"}}
	assert.Equal(t, "authentication failed: invalid credentials", withDetail.Error())

	bare := &adapi.AuthError{}
	assert.Equal(t, "authentication failed", bare.Error())
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	t.Run("IsNoMatch", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("finding campaign: %w", adapi.ErrNoMatch)

		assert.True(t, adapi.IsNoMatch(wrapped))
		assert.False(t, adapi.IsNoMatch(errors.New("finding campaign: gone")))
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		t.Parallel()

		assert.True(t, adapi.IsUnauthorized(fmt.Errorf("GET /a: %w", adapi.ErrSessionExpired)))
		assert.True(t, adapi.IsUnauthorized(&adapi.APIError{StatusCode: http.StatusUnauthorized}))
		assert.False(t, adapi.IsUnauthorized(&adapi.APIError{StatusCode: http.StatusForbidden}))
		assert.False(t, adapi.IsUnauthorized(nil))
	})

	t.Run("IsAuthFailure", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("authentication request: %w", &adapi.AuthError{})

		assert.True(t, adapi.IsAuthFailure(wrapped))
		assert.False(t, adapi.IsAuthFailure(adapi.ErrSessionExpired))
	})

	t.Run("IsApplicationError", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("creating campaign: %w", &adapi.APIError{StatusCode: http.StatusOK})

		assert.True(t, adapi.IsApplicationError(wrapped))
		assert.False(t, adapi.IsApplicationError(adapi.ErrNoMatch))
	})
}
