package adclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
	"github.com/mediaforge-io/adapi-client/pkg/adclient"
)

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := adclient.New(context.Background(), nil)
		assert.ErrorIs(t, err, adapi.ErrConfigRequired)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := adclient.New(context.Background(), &adapi.Config{APIEndpoint: "https://api.example.com"})
		assert.ErrorIs(t, err, adapi.ErrCredentialsRequired)
	})

	t.Run("empty endpoint selects the sandbox host", func(t *testing.T) {
		config := &adapi.Config{Email: "ops@example.com", Password: "secret"}

		_, err := adclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "https://sandbox-api.mediaforge.io/v2", config.APIEndpoint)
	})

	t.Run("endpoint normalization", func(t *testing.T) {
		tests := []struct {
			name     string
			endpoint string
			want     string
		}{
			{name: "trailing slash trimmed", endpoint: "https://api.example.com/v2/", want: "https://api.example.com/v2"},
			{name: "https assumed", endpoint: "api.example.com/v2", want: "https://api.example.com/v2"},
			{name: "http kept", endpoint: "http://localhost:8080", want: "http://localhost:8080"},
		}

		for _, testCase := range tests {
			t.Run(testCase.name, func(t *testing.T) {
				config := &adapi.Config{
					APIEndpoint: testCase.endpoint,
					Email:       "ops@example.com",
					Password:    "secret",
				}

				_, err := adclient.New(context.Background(), config)
				require.NoError(t, err)
				assert.Equal(t, testCase.want, config.APIEndpoint)
			})
		}
	})

	t.Run("skip TLS requires dev mode", func(t *testing.T) {
		config := &adapi.Config{
			APIEndpoint:   "https://api.example.com",
			Email:         "ops@example.com",
			Password:      "secret",
			SkipTLSVerify: true,
		}

		_, err := adclient.New(context.Background(), config)
		assert.ErrorIs(t, err, adapi.ErrSkipTLSOnlyInDev)
	})

	t.Run("skip TLS allowed in dev mode", func(t *testing.T) {
		t.Setenv("ADAPI_DEV_MODE", "true")

		config := &adapi.Config{
			APIEndpoint:   "https://api.example.com",
			Email:         "ops@example.com",
			Password:      "secret",
			SkipTLSVerify: true,
		}

		apiClient, err := adclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, apiClient)
	})
}

func TestNewWithLogin(t *testing.T) {
	apiClient, err := adclient.NewWithLogin(context.Background(), "", "ops@example.com", "secret")
	require.NoError(t, err)
	assert.NotNil(t, apiClient.Segments())
}
