package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// Logger interface for the transport layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Credentials are the session login inputs.
type Credentials struct {
	Email    string
	Password string
}

// Request represents one logical API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the normalized result of a call. Body is the raw response
// bytes; Payload is the envelope payload once the envelope has been
// inspected.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Payload    json.RawMessage
}

// Client is the single choke point for every API call: it owns the cookie
// jar, drives re-authentication on session expiry, and normalizes the
// success/error envelope. JSON calls ride go-retryablehttp; multipart
// uploads go through the shared underlying client because a partially
// consumed file stream must never be replayed.
type Client struct {
	baseURL   string
	retry     *retryablehttp.Client
	base      *http.Client
	session   *session
	logger    Logger
	debug     bool
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the transport logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables transient-failure retries on the transport. This
// is independent of the single re-authentication retry on 401.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// WithTLSConfig installs the TLS configuration on the shared transport.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		c.base.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}
}

// WithTimeout sets the per-request transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.base.Timeout = timeout
	}
}

// NewClient creates a transport bound to baseURL. A nil creds disables
// authentication (useful under test); otherwise the session cookie jar
// persists for the client's lifetime.
func NewClient(baseURL string, creds *Credentials, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	// Hand the final response back intact when retries are exhausted so
	// the envelope on a 5xx still reaches normalize.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Jar = jar
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL: baseURL,
		retry:   retryClient,
		base:    retryClient.HTTPClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	if creds != nil {
		client.session = newSession(client, *creds)
	}

	return client
}

// Authenticate logs in now, sharing any login already in flight. A client
// built without credentials is a no-op.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.session == nil {
		return nil
	}

	return c.session.authenticate(ctx)
}

// Do sends one logical call. On a session-expired response it
// re-authenticates once and resends; a second consecutive 401 is terminal.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
		err = c.session.authenticate(ctx)
		if err != nil {
			return nil, err
		}

		resp, err = c.send(ctx, req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return resp, fmt.Errorf("%s %s: %w", req.Method, req.Path, adapi.ErrSessionExpired)
		}
	}

	return c.normalize(resp)
}

// Get issues a read. The filter, when non-nil, travels as a JSON body on
// the GET request.
func (c *Client) Get(ctx context.Context, path string, filter interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Body: filter})
}

// Post issues a create call.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues an update call.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a delete call; the identifier filter travels as a JSON
// body.
func (c *Client) Delete(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: body})
}

// Upload authenticates explicitly, then streams the file at filePath as a
// multipart body with one form field. It never rides the 401 retry path: a
// half-consumed stream cannot be resent.
func (c *Client) Upload(ctx context.Context, path, field, filePath string) (*Response, error) {
	err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening upload file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader, contentType := multipartStream(field, filepath.Base(filePath), file)

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}

	hreq.Header.Set("Content-Type", contentType)
	hreq.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		hreq.Header.Set("User-Agent", c.userAgent)
	}

	c.logRequest(http.MethodPost, path)

	hresp, err := c.base.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("uploading to %s: %w", path, err)
	}

	resp, err := readResponse(hresp)
	if err != nil {
		return nil, err
	}

	c.logResponse(path, resp)

	return c.normalize(resp)
}

// multipartStream pipes file bytes through a multipart writer so the body
// is streamed rather than buffered.
func multipartStream(field, filename string, file io.Reader) (io.Reader, string) {
	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)

	go func() {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			_ = pipeWriter.CloseWithError(err)

			return
		}

		_, err = io.Copy(part, file)
		if err != nil {
			_ = pipeWriter.CloseWithError(err)

			return
		}

		_ = pipeWriter.CloseWithError(writer.Close())
	}()

	return pipeReader, writer.FormDataContentType()
}

// send performs one network round trip without envelope inspection or
// re-authentication.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var raw []byte

	if req.Body != nil {
		var err error

		raw, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		// A typed nil map marshals to "null"; treat it as no body.
		if bytes.Equal(raw, []byte("null")) {
			raw = nil
		}
	}

	var hreq *retryablehttp.Request

	var err error

	if raw != nil {
		hreq, err = retryablehttp.NewRequestWithContext(ctx, req.Method, endpoint, raw)
	} else {
		hreq, err = retryablehttp.NewRequestWithContext(ctx, req.Method, endpoint, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	hreq.Header.Set("Accept", "application/json")

	if raw != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		hreq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		hreq.Header.Set(key, value)
	}

	c.logRequest(req.Method, req.Path)

	hresp, err := c.retry.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("sending %s %s: %w", req.Method, req.Path, err)
	}

	resp, err := readResponse(hresp)
	if err != nil {
		return nil, err
	}

	c.logResponse(req.Path, resp)

	return resp, nil
}

func readResponse(hresp *http.Response) (*Response, error) {
	defer func() { _ = hresp.Body.Close() }()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: hresp.StatusCode,
		Headers:    hresp.Header,
		Body:       data,
	}, nil
}

// normalize inspects the response envelope. A success:false body is an
// application error regardless of HTTP status; the raw transport response
// never rides along on the returned error.
func (c *Client) normalize(resp *Response) (*Response, error) {
	var env adapi.Envelope

	envOK := len(resp.Body) > 0 && json.Unmarshal(resp.Body, &env) == nil

	if resp.StatusCode >= http.StatusBadRequest {
		detail := adapi.ErrorDetail{Message: http.StatusText(resp.StatusCode)}
		if envOK && env.Error != nil {
			detail = *env.Error
		}

		return resp, &adapi.APIError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if envOK {
		if !env.Success {
			detail := adapi.ErrorDetail{Message: "request rejected"}
			if env.Error != nil {
				detail = *env.Error
			}

			return resp, &adapi.APIError{StatusCode: resp.StatusCode, Detail: detail}
		}

		resp.Payload = env.Payload

		return resp, nil
	}

	resp.Payload = resp.Body

	return resp, nil
}

// Request bodies are never logged; auth calls would leak credentials.
func (c *Client) logRequest(method, path string) {
	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}
}

func (c *Client) logResponse(path string, resp *Response) {
	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"path":   path,
			"status": resp.StatusCode,
			"bytes":  len(resp.Body),
		})
	}
}
