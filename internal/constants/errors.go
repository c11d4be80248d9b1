package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured, use 'adapi login' or --api to set one")
	ErrNoEmailConfigured    = errors.New("no account email configured, use 'adapi login' first")
	ErrNoPasswordAvailable  = errors.New("no password available, pass --password or set ADAPI_PASSWORD")
)

// CLI argument errors.
var (
	ErrIdentifierRequired = errors.New("a numeric record id is required")
	ErrBodyRequired       = errors.New("a JSON body is required, pass --data or --data-file")
	ErrInvalidBody        = errors.New("body must be a JSON object")
	ErrInvalidOutput      = errors.New("output must be one of table, json, yaml")
)
