package adclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mediaforge-io/adapi-client/internal/client"
	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// New creates a new platform API client. The endpoint is normalized (a
// trailing slash is trimmed, https is assumed when no scheme is present)
// and an empty endpoint selects the sandbox host. Trust-store material in
// the config is installed here, once, before any request is issued.
func New(ctx context.Context, config *adapi.Config) (adapi.Client, error) {
	if config == nil {
		return nil, adapi.ErrConfigRequired
	}

	if config.Email == "" || config.Password == "" {
		return nil, adapi.ErrCredentialsRequired
	}

	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if apiEndpoint == "" {
		apiEndpoint = constants.DefaultAPIEndpoint
	}

	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	if config.SkipTLSVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set ADAPI_DEV_MODE=true)", adapi.ErrSkipTLSOnlyInDev)
	}

	apiClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithLogin creates a client for endpoint with the given account. An
// empty endpoint selects the sandbox host.
func NewWithLogin(ctx context.Context, endpoint, email, password string) (adapi.Client, error) {
	return New(ctx, &adapi.Config{
		APIEndpoint: endpoint,
		Email:       email,
		Password:    password,
	})
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv("ADAPI_DEV_MODE")

	return devMode == "true" || devMode == "1"
}
