package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge-io/adapi-client/internal/client"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

func validConfig() *adapi.Config {
	return &adapi.Config{
		APIEndpoint: "https://sandbox-api.mediaforge.io/v2",
		Email:       "ops@example.com",
		Password:    "secret",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates a client with every entity bound", func(t *testing.T) {
		t.Parallel()

		apiClient, err := client.New(context.Background(), validConfig())
		require.NoError(t, err)

		assert.NotNil(t, apiClient.Advertisers())
		assert.NotNil(t, apiClient.Campaigns())
		assert.NotNil(t, apiClient.Creatives())
		assert.NotNil(t, apiClient.LineItems())
		assert.NotNil(t, apiClient.InsertionOrders())
		assert.NotNil(t, apiClient.Publishers())
		assert.NotNil(t, apiClient.Segments())
	})

	t.Run("requires an endpoint", func(t *testing.T) {
		t.Parallel()

		config := validConfig()
		config.APIEndpoint = ""

		_, err := client.New(context.Background(), config)
		assert.ErrorIs(t, err, client.ErrAPIEndpointRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		config := validConfig()
		config.Password = ""

		_, err := client.New(context.Background(), config)
		assert.ErrorIs(t, err, client.ErrCredentialsRequired)
	})

	t.Run("rejects malformed trust material", func(t *testing.T) {
		t.Parallel()

		config := validConfig()
		config.TrustStorePEM = []byte("not a certificate")

		_, err := client.New(context.Background(), config)
		assert.ErrorIs(t, err, adapi.ErrInvalidTrustStore)
	})

	t.Run("rejects an unreadable trust store file", func(t *testing.T) {
		t.Parallel()

		config := validConfig()
		config.TrustStoreFile = "/nonexistent/ca.pem"

		_, err := client.New(context.Background(), config)
		assert.Error(t, err)
	})
}
