package adapi

import (
	"context"
	"encoding/json"
	"time"
)

// EntityOperations is the generic CRUD capability bound to one entity kind.
// Every method goes through the same request executor, so the 401
// re-authentication retry and envelope normalization exist in exactly one
// place.
type EntityOperations[T any] interface {
	// Find returns the single record matching id on the entity's identifier
	// field. An empty result set is an ErrNoMatch error.
	Find(ctx context.Context, id int64) (*T, error)

	// Query returns the raw result slice for one request with an arbitrary
	// filter. No pagination is applied.
	Query(ctx context.Context, filter Filter) ([]T, error)

	// QueryAll fetches the full result set in fixed-size pages, preserving
	// server order under sort_by = identifier field.
	QueryAll(ctx context.Context, filter Filter) ([]T, error)

	// Create writes a new record and returns the freshly read,
	// authoritative copy. An empty body is rejected without a network call.
	Create(ctx context.Context, body Body) (*OperationResult[T], error)

	// Edit updates the record with id and returns the freshly read copy.
	// A server failure to load the record becomes a negative
	// OperationResult unless FailOnNotFound is set.
	Edit(ctx context.Context, id int64, body Body, opts ...WriteOption) (*OperationResult[T], error)

	// Delete removes the record with id and returns the server-reported
	// representation of the deleted record, with the same not-found policy
	// as Edit.
	Delete(ctx context.Context, id int64, opts ...WriteOption) (*OperationResult[T], error)

	// Upload streams the file at filePath as a multipart request against
	// the record with id, authenticating explicitly first. The raw response
	// payload is returned unmodified.
	Upload(ctx context.Context, id int64, filePath string) (json.RawMessage, error)
}

// SegmentsClient extends the generic segment operations with the bulk
// membership upload flow.
type SegmentsClient interface {
	EntityOperations[Segment]

	// CreateUpload registers upload intent with metadata only. When body
	// has no name and sourceFile is set, the file's base name is used.
	CreateUpload(ctx context.Context, body Body, sourceFile string) (*SegmentUpload, error)

	// UploadFile streams the file at filePath to the upload resource.
	UploadFile(ctx context.Context, uploadID int64, filePath string) (json.RawMessage, error)

	// Ingest registers intent, pushes the file content, then re-reads the
	// resulting upload resource by its returned identifier.
	Ingest(ctx context.Context, body Body, filePath string) (*OperationResult[SegmentUpload], error)
}

// Client is the full per-entity surface of the platform API.
type Client interface {
	Advertisers() EntityOperations[Advertiser]
	Campaigns() EntityOperations[Campaign]
	Creatives() EntityOperations[Creative]
	LineItems() EntityOperations[LineItem]
	InsertionOrders() EntityOperations[InsertionOrder]
	Publishers() EntityOperations[Publisher]
	Segments() SegmentsClient

	// Authenticate forces a login now, sharing any login already in
	// flight. Ordinary calls authenticate lazily on session expiry.
	Authenticate(ctx context.Context) error
}

// WriteOptions carries optional behavior for edit and delete.
type WriteOptions struct {
	FailOnNotFound bool
}

// WriteOption mutates WriteOptions.
type WriteOption func(*WriteOptions)

// FailOnNotFound propagates the server's load-failure error instead of
// converting it into a negative OperationResult.
func FailOnNotFound() WriteOption {
	return func(o *WriteOptions) {
		o.FailOnNotFound = true
	}
}

// ApplyWriteOptions folds opts into a WriteOptions value.
func ApplyWriteOptions(opts []WriteOption) WriteOptions {
	var options WriteOptions
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an adapi.Client.
//
// # Authentication
//
// Email and Password are required; the client logs in with a
// keep-session-alive flag and stores the resulting session cookie in a jar
// that persists for the client's lifetime. On a 401 the executor
// re-authenticates once and retries the call; concurrent expiries share a
// single login.
//
// # TLS
//
// TrustStoreFile/TrustStorePEM install extra root CAs at construction time;
// there is no import-time trust-store side effect. SkipTLSVerify is only
// honored when ADAPI_DEV_MODE is set to "true" or "1"; do not use it in
// production.
type Config struct {
	// APIEndpoint is the API root. Empty selects the sandbox host.
	APIEndpoint string

	// Email is the account used for session login.
	Email string
	// Password is the account password.
	Password string

	// TrustStoreFile is a path to a PEM bundle of additional root CAs.
	TrustStoreFile string
	// TrustStorePEM is an in-memory PEM bundle of additional root CAs.
	TrustStorePEM []byte
	// SkipTLSVerify disables certificate verification. Gated on
	// ADAPI_DEV_MODE.
	SkipTLSVerify bool

	// HTTPTimeout is the transport-level timeout for a single request.
	HTTPTimeout time.Duration
	// RetryMax enables transient-failure retries (>=500, 429, connection
	// errors) on the transport when > 0. Unrelated to the single
	// re-authentication retry, which is always at most one.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transient retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transient retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is the optional structured logger used by the transport.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
