package adapi

import (
	"encoding/json"
)

// Envelope is the wire-level wrapper present on every API response body.
// Success false is an application error even when the HTTP status is 200.
type Envelope struct {
	Success bool            `json:"success"           yaml:"success"`
	Payload json.RawMessage `json:"payload,omitempty" yaml:"payload,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"   yaml:"error,omitempty"`
}

// ErrorDetail is the server-authored error block inside a failed envelope.
type ErrorDetail struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Message     string `json:"message"               yaml:"message"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Body is a write payload: a plain key-value object. Create and edit reject
// nil or empty bodies without issuing a network call.
type Body map[string]interface{}

// Filter is a read-side filter object attached to GET requests as a JSON
// body. QueryAll merges pagination parameters (rows, offset, sort_by) into a
// copy of the caller's filter; the caller's map is never mutated.
type Filter map[string]interface{}

// EntityConfig maps an entity kind to its resource path and identifier
// field. Immutable, one per entity kind. Mutating calls use the strict path
// variant derived from ServicePath.
type EntityConfig struct {
	ServicePath string
	IDField     string
}

// OperationResult is the uniform return shape for write operations. Success
// true carries the freshly read, authoritative record; Success false carries
// a code and message for a recognized negative outcome (empty body,
// not-found). Exceptional conditions are not OperationResults.
type OperationResult[T any] struct {
	Success bool   `json:"success"           yaml:"success"`
	Code    int    `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Record  *T     `json:"record,omitempty"  yaml:"record,omitempty"`
}

// Accepted builds a successful OperationResult around a verified record.
func Accepted[T any](record *T) *OperationResult[T] {
	return &OperationResult[T]{Success: true, Record: record}
}

// Rejected builds a negative OperationResult for a recognized outcome.
func Rejected[T any](code int, message string) *OperationResult[T] {
	return &OperationResult[T]{Success: false, Code: code, Message: message}
}

// Advertiser represents an advertiser account.
type Advertiser struct {
	ID           int64  `json:"id"                      yaml:"id"`
	Name         string `json:"name"                    yaml:"name"`
	State        string `json:"state,omitempty"         yaml:"state,omitempty"`
	BillingName  string `json:"billing_name,omitempty"  yaml:"billing_name,omitempty"`
	BillingEmail string `json:"billing_email,omitempty" yaml:"billing_email,omitempty"`
	TimeZone     string `json:"timezone,omitempty"      yaml:"timezone,omitempty"`
	CreatedOn    string `json:"created_on,omitempty"    yaml:"created_on,omitempty"`
	LastModified string `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// Campaign represents a campaign under an advertiser.
type Campaign struct {
	ID             int64   `json:"id"                        yaml:"id"`
	AdvertiserID   int64   `json:"advertiser_id,omitempty"   yaml:"advertiser_id,omitempty"`
	LineItemID     int64   `json:"line_item_id,omitempty"    yaml:"line_item_id,omitempty"`
	Name           string  `json:"name"                      yaml:"name"`
	State          string  `json:"state,omitempty"           yaml:"state,omitempty"`
	StartDate      string  `json:"start_date,omitempty"      yaml:"start_date,omitempty"`
	EndDate        string  `json:"end_date,omitempty"        yaml:"end_date,omitempty"`
	LifetimeBudget float64 `json:"lifetime_budget,omitempty" yaml:"lifetime_budget,omitempty"`
	DailyBudget    float64 `json:"daily_budget,omitempty"    yaml:"daily_budget,omitempty"`
	CreatedOn      string  `json:"created_on,omitempty"      yaml:"created_on,omitempty"`
	LastModified   string  `json:"last_modified,omitempty"   yaml:"last_modified,omitempty"`
}

// Creative represents an ad creative.
type Creative struct {
	ID           int64  `json:"id"                      yaml:"id"`
	AdvertiserID int64  `json:"advertiser_id,omitempty" yaml:"advertiser_id,omitempty"`
	Name         string `json:"name"                    yaml:"name"`
	State        string `json:"state,omitempty"         yaml:"state,omitempty"`
	Format       string `json:"format,omitempty"        yaml:"format,omitempty"`
	Width        int    `json:"width,omitempty"         yaml:"width,omitempty"`
	Height       int    `json:"height,omitempty"        yaml:"height,omitempty"`
	MediaURL     string `json:"media_url,omitempty"     yaml:"media_url,omitempty"`
	ClickURL     string `json:"click_url,omitempty"     yaml:"click_url,omitempty"`
	CreatedOn    string `json:"created_on,omitempty"    yaml:"created_on,omitempty"`
	LastModified string `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// LineItem represents a line item within an insertion order.
type LineItem struct {
	ID               int64   `json:"id"                           yaml:"id"`
	AdvertiserID     int64   `json:"advertiser_id,omitempty"      yaml:"advertiser_id,omitempty"`
	InsertionOrderID int64   `json:"insertion_order_id,omitempty" yaml:"insertion_order_id,omitempty"`
	Name             string  `json:"name"                         yaml:"name"`
	State            string  `json:"state,omitempty"              yaml:"state,omitempty"`
	StartDate        string  `json:"start_date,omitempty"         yaml:"start_date,omitempty"`
	EndDate          string  `json:"end_date,omitempty"           yaml:"end_date,omitempty"`
	RevenueType      string  `json:"revenue_type,omitempty"       yaml:"revenue_type,omitempty"`
	RevenueValue     float64 `json:"revenue_value,omitempty"      yaml:"revenue_value,omitempty"`
	CreatedOn        string  `json:"created_on,omitempty"         yaml:"created_on,omitempty"`
	LastModified     string  `json:"last_modified,omitempty"      yaml:"last_modified,omitempty"`
}

// InsertionOrder represents a budgeted buying agreement for an advertiser.
type InsertionOrder struct {
	ID           int64   `json:"id"                      yaml:"id"`
	AdvertiserID int64   `json:"advertiser_id,omitempty" yaml:"advertiser_id,omitempty"`
	Name         string  `json:"name"                    yaml:"name"`
	State        string  `json:"state,omitempty"         yaml:"state,omitempty"`
	Budget       float64 `json:"budget,omitempty"        yaml:"budget,omitempty"`
	BillingCode  string  `json:"billing_code,omitempty"  yaml:"billing_code,omitempty"`
	CreatedOn    string  `json:"created_on,omitempty"    yaml:"created_on,omitempty"`
	LastModified string  `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// Publisher represents a publisher account.
type Publisher struct {
	ID           int64  `json:"id"                      yaml:"id"`
	Name         string `json:"name"                    yaml:"name"`
	State        string `json:"state,omitempty"         yaml:"state,omitempty"`
	Domain       string `json:"domain,omitempty"        yaml:"domain,omitempty"`
	CreatedOn    string `json:"created_on,omitempty"    yaml:"created_on,omitempty"`
	LastModified string `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// Segment represents an audience segment.
type Segment struct {
	ID           int64   `json:"id"                      yaml:"id"`
	Code         string  `json:"code,omitempty"          yaml:"code,omitempty"`
	ShortName    string  `json:"short_name,omitempty"    yaml:"short_name,omitempty"`
	State        string  `json:"state,omitempty"         yaml:"state,omitempty"`
	Price        float64 `json:"price,omitempty"         yaml:"price,omitempty"`
	MemberCount  int64   `json:"member_count,omitempty"  yaml:"member_count,omitempty"`
	CreatedOn    string  `json:"created_on,omitempty"    yaml:"created_on,omitempty"`
	LastModified string  `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// SegmentUpload represents a registered bulk segment-membership upload.
type SegmentUpload struct {
	ID         int64  `json:"id"                    yaml:"id"`
	SegmentID  int64  `json:"segment_id,omitempty"  yaml:"segment_id,omitempty"`
	Name       string `json:"name"                  yaml:"name"`
	Status     string `json:"status,omitempty"      yaml:"status,omitempty"`
	NumValid   int64  `json:"num_valid,omitempty"   yaml:"num_valid,omitempty"`
	NumInvalid int64  `json:"num_invalid,omitempty" yaml:"num_invalid,omitempty"`
	CreatedOn  string `json:"created_on,omitempty"  yaml:"created_on,omitempty"`
}
