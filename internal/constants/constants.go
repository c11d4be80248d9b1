package constants

import "time"

// API endpoints and paths.
const (
	// DefaultAPIEndpoint is the sandbox host used when no endpoint is
	// configured.
	DefaultAPIEndpoint = "https://sandbox-api.mediaforge.io/v2"

	// AuthPath is the session login path.
	AuthPath = "/auth"

	// StrictSuffix is appended to an entity's service path for mutating
	// calls.
	StrictSuffix = "-strict"

	// SegmentUploadPath is the bulk membership upload resource path.
	SegmentUploadPath = "segment-upload"

	// UploadFieldName is the multipart form field carrying file bytes.
	UploadFieldName = "file"
)

// Read-side filter keys merged into paginated queries.
const (
	// FilterRows is the page-size parameter.
	FilterRows = "rows"

	// FilterOffset is the zero-based record offset parameter.
	FilterOffset = "offset"

	// FilterSortBy is the server-side sort field parameter.
	FilterSortBy = "sort_by"
)

// Pagination limits.
const (
	// QueryPageSize is the fixed page size for QueryAll.
	QueryPageSize = 50

	// MaxQueryPages caps full pages fetched before QueryAll gives up, so a
	// server that never returns a short page cannot loop the client.
	MaxQueryPages = 400
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for transient transport failures.
const (
	// DefaultRetryWaitMin is the minimum wait between transient retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transient retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Result codes surfaced on negative OperationResults.
const (
	// ResultCodeBadRequest is used for rejected write bodies and converted
	// not-found outcomes.
	ResultCodeBadRequest = 400
)

// Messages surfaced on negative OperationResults.
const (
	// MessageEmptyBody rejects a write with no usable body.
	MessageEmptyBody = "Body must be non-empty object"

	// MessageNotFound converts a server load failure on edit or delete.
	MessageNotFound = "Not found"
)

// Output format constants.
const (
	// FormatTable for tabular output.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// UI and display constants.
const (
	// MaskedSecret hides sensitive information in output.
	MaskedSecret = "***"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)
