package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/internal/http"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrCredentialsRequired = errors.New("email and password are required")
)

// entityConfigs is the static entity-name to endpoint table. Mutating calls
// derive the strict path variant from ServicePath.
var entityConfigs = map[string]adapi.EntityConfig{
	"advertiser":      {ServicePath: "advertiser", IDField: "id"},
	"campaign":        {ServicePath: "campaign", IDField: "id"},
	"creative":        {ServicePath: "creative", IDField: "id"},
	"line-item":       {ServicePath: "line-item", IDField: "id"},
	"insertion-order": {ServicePath: "insertion-order", IDField: "id"},
	"publisher":       {ServicePath: "publisher", IDField: "id"},
	"segment":         {ServicePath: "segment", IDField: "id"},
}

// Client implements the adapi.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     adapi.Logger

	advertisers     *EntityClient[adapi.Advertiser]
	campaigns       *EntityClient[adapi.Campaign]
	creatives       *EntityClient[adapi.Creative]
	lineItems       *EntityClient[adapi.LineItem]
	insertionOrders *EntityClient[adapi.InsertionOrder]
	publishers      *EntityClient[adapi.Publisher]
	segments        *SegmentsClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *adapi.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	tlsConfig, err := buildTLSConfig(config)
	if err != nil {
		return nil, err
	}

	if tlsConfig != nil {
		httpOpts = append(httpOpts, http.WithTLSConfig(tlsConfig))
	}

	return httpOpts, nil
}

// buildTLSConfig resolves the caller-provided trust material. There is no
// import-time trust-store side effect: this runs once, at construction.
func buildTLSConfig(config *adapi.Config) (*tls.Config, error) {
	pem := config.TrustStorePEM

	if config.TrustStoreFile != "" {
		data, err := os.ReadFile(config.TrustStoreFile)
		if err != nil {
			return nil, fmt.Errorf("reading trust store: %w", err)
		}

		pem = append(pem, data...)
	}

	if len(pem) == 0 && !config.SkipTLSVerify {
		return nil, nil
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if len(pem) > 0 {
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}

		if !pool.AppendCertsFromPEM(pem) {
			return nil, adapi.ErrInvalidTrustStore
		}

		tlsConfig.RootCAs = pool
	}

	if config.SkipTLSVerify {
		tlsConfig.InsecureSkipVerify = true // #nosec G402 -- gated on ADAPI_DEV_MODE in adclient
	}

	return tlsConfig, nil
}

// New creates a new platform API client.
func New(ctx context.Context, config *adapi.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	if config.Email == "" || config.Password == "" {
		return nil, ErrCredentialsRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	creds := &http.Credentials{Email: config.Email, Password: config.Password}
	httpClient := http.NewClient(config.APIEndpoint, creds, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
	}

	client.initializeEntityClients()

	return client, nil
}

// initializeEntityClients binds the generic operations to every configured
// entity.
func (c *Client) initializeEntityClients() {
	c.advertisers = NewEntityClient[adapi.Advertiser](c.httpClient, entityConfigs["advertiser"])
	c.campaigns = NewEntityClient[adapi.Campaign](c.httpClient, entityConfigs["campaign"])
	c.creatives = NewEntityClient[adapi.Creative](c.httpClient, entityConfigs["creative"])
	c.lineItems = NewEntityClient[adapi.LineItem](c.httpClient, entityConfigs["line-item"])
	c.insertionOrders = NewEntityClient[adapi.InsertionOrder](c.httpClient, entityConfigs["insertion-order"])
	c.publishers = NewEntityClient[adapi.Publisher](c.httpClient, entityConfigs["publisher"])
	c.segments = NewSegmentsClient(c.httpClient, entityConfigs["segment"])
}

// Authenticate implements adapi.Client.Authenticate.
func (c *Client) Authenticate(ctx context.Context) error {
	return c.httpClient.Authenticate(ctx)
}

// Advertisers implements adapi.Client.Advertisers.
func (c *Client) Advertisers() adapi.EntityOperations[adapi.Advertiser] {
	return c.advertisers
}

// Campaigns implements adapi.Client.Campaigns.
func (c *Client) Campaigns() adapi.EntityOperations[adapi.Campaign] {
	return c.campaigns
}

// Creatives implements adapi.Client.Creatives.
func (c *Client) Creatives() adapi.EntityOperations[adapi.Creative] {
	return c.creatives
}

// LineItems implements adapi.Client.LineItems.
func (c *Client) LineItems() adapi.EntityOperations[adapi.LineItem] {
	return c.lineItems
}

// InsertionOrders implements adapi.Client.InsertionOrders.
func (c *Client) InsertionOrders() adapi.EntityOperations[adapi.InsertionOrder] {
	return c.insertionOrders
}

// Publishers implements adapi.Client.Publishers.
func (c *Client) Publishers() adapi.EntityOperations[adapi.Publisher] {
	return c.publishers
}

// Segments implements adapi.Client.Segments.
func (c *Client) Segments() adapi.SegmentsClient {
	return c.segments
}

// loggerAdapter adapts adapi.Logger to http.Logger.
type loggerAdapter struct {
	logger adapi.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
