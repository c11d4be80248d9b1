package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/internal/http"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// EntityClient implements adapi.EntityOperations for one configured entity
// kind. All entity clients share one transport, so the 401 retry and
// envelope handling are never duplicated per verb.
type EntityClient[T any] struct {
	httpClient *http.Client
	config     adapi.EntityConfig
}

// NewEntityClient binds the generic operations to one entity's path and
// identifier field.
func NewEntityClient[T any](httpClient *http.Client, config adapi.EntityConfig) *EntityClient[T] {
	return &EntityClient[T]{
		httpClient: httpClient,
		config:     config,
	}
}

func (c *EntityClient[T]) readPath() string {
	return "/" + c.config.ServicePath
}

func (c *EntityClient[T]) writePath() string {
	return "/" + c.config.ServicePath + constants.StrictSuffix
}

// Find implements adapi.EntityOperations.Find.
func (c *EntityClient[T]) Find(ctx context.Context, id int64) (*T, error) {
	records, err := c.Query(ctx, adapi.Filter{c.config.IDField: id})
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s %s=%d", adapi.ErrNoMatch, c.config.ServicePath, c.config.IDField, id)
	}

	return &records[0], nil
}

// Query implements adapi.EntityOperations.Query.
func (c *EntityClient[T]) Query(ctx context.Context, filter adapi.Filter) ([]T, error) {
	resp, err := c.httpClient.Get(ctx, c.readPath(), filter)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", c.config.ServicePath, err)
	}

	return decodeRecords[T](resp.Payload, c.config.ServicePath)
}

// QueryAll implements adapi.EntityOperations.QueryAll. Pages are fetched at
// the fixed size with the caller's filter merged over rows/offset/sort_by;
// the loop stops at the first short page (an empty page counts) and fails
// after MaxQueryPages full pages rather than trusting the server to
// terminate it.
func (c *EntityClient[T]) QueryAll(ctx context.Context, filter adapi.Filter) ([]T, error) {
	var all []T

	offset := 0

	for page := 0; ; page++ {
		if page >= constants.MaxQueryPages {
			return nil, fmt.Errorf("querying all %s: %w", c.config.ServicePath, adapi.ErrTooManyPages)
		}

		merged := make(adapi.Filter, len(filter)+3)
		for key, value := range filter {
			merged[key] = value
		}

		merged[constants.FilterRows] = constants.QueryPageSize
		merged[constants.FilterOffset] = offset
		merged[constants.FilterSortBy] = c.config.IDField

		records, err := c.Query(ctx, merged)
		if err != nil {
			return nil, err
		}

		all = append(all, records...)

		if len(records) < constants.QueryPageSize {
			return all, nil
		}

		offset += constants.QueryPageSize
	}
}

// Create implements adapi.EntityOperations.Create. The write response may
// be partial, so the returned record is always the result of a follow-up
// find on the new identifier.
func (c *EntityClient[T]) Create(ctx context.Context, body adapi.Body) (*adapi.OperationResult[T], error) {
	if len(body) == 0 {
		return adapi.Rejected[T](constants.ResultCodeBadRequest, constants.MessageEmptyBody), nil
	}

	resp, err := c.httpClient.Post(ctx, c.writePath(), body)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.config.ServicePath, err)
	}

	id, err := payloadIdentifier(resp.Payload, c.config.IDField)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.config.ServicePath, err)
	}

	record, err := c.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verifying created %s: %w", c.config.ServicePath, err)
	}

	return adapi.Accepted(record), nil
}

// Edit implements adapi.EntityOperations.Edit.
func (c *EntityClient[T]) Edit(ctx context.Context, id int64, body adapi.Body, opts ...adapi.WriteOption) (*adapi.OperationResult[T], error) {
	if len(body) == 0 {
		return adapi.Rejected[T](constants.ResultCodeBadRequest, constants.MessageEmptyBody), nil
	}

	options := adapi.ApplyWriteOptions(opts)

	merged := make(adapi.Body, len(body)+1)
	for key, value := range body {
		merged[key] = value
	}

	merged[c.config.IDField] = id

	_, err := c.httpClient.Put(ctx, c.writePath(), merged)
	if err != nil {
		if writeLoadFailure(err, updateLoadFailure) && !options.FailOnNotFound {
			return adapi.Rejected[T](constants.ResultCodeBadRequest, constants.MessageNotFound), nil
		}

		return nil, fmt.Errorf("updating %s %d: %w", c.config.ServicePath, id, err)
	}

	record, err := c.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verifying updated %s %d: %w", c.config.ServicePath, id, err)
	}

	return adapi.Accepted(record), nil
}

// Delete implements adapi.EntityOperations.Delete. The server's own
// representation of the deleted record is returned; there is nothing left
// to re-read.
func (c *EntityClient[T]) Delete(ctx context.Context, id int64, opts ...adapi.WriteOption) (*adapi.OperationResult[T], error) {
	options := adapi.ApplyWriteOptions(opts)

	resp, err := c.httpClient.Delete(ctx, c.writePath(), adapi.Filter{c.config.IDField: id})
	if err != nil {
		if writeLoadFailure(err, deleteLoadFailure) && !options.FailOnNotFound {
			return adapi.Rejected[T](constants.ResultCodeBadRequest, constants.MessageNotFound), nil
		}

		return nil, fmt.Errorf("deleting %s %d: %w", c.config.ServicePath, id, err)
	}

	records, err := decodeRecords[T](resp.Payload, c.config.ServicePath)
	if err != nil {
		return nil, fmt.Errorf("deleting %s %d: %w", c.config.ServicePath, id, err)
	}

	if len(records) == 0 {
		return adapi.Accepted[T](nil), nil
	}

	return adapi.Accepted(&records[0]), nil
}

// Upload implements adapi.EntityOperations.Upload.
func (c *EntityClient[T]) Upload(ctx context.Context, id int64, filePath string) (json.RawMessage, error) {
	path := fmt.Sprintf("/%s/%d/upload", c.config.ServicePath, id)

	resp, err := c.httpClient.Upload(ctx, path, constants.UploadFieldName, filePath)
	if err != nil {
		return nil, fmt.Errorf("uploading %s %d: %w", c.config.ServicePath, id, err)
	}

	return resp.Payload, nil
}

// decodeRecords accepts both list and single-object payloads; several
// endpoints answer a one-record filter with a bare object.
func decodeRecords[T any](payload json.RawMessage, service string) ([]T, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var records []T

	err := json.Unmarshal(payload, &records)
	if err == nil {
		return records, nil
	}

	var single T

	err = json.Unmarshal(payload, &single)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", service, err)
	}

	return []T{single}, nil
}

// payloadIdentifier extracts the identifier field from a write response
// payload, accepting both object and one-element list shapes.
func payloadIdentifier(payload json.RawMessage, idField string) (int64, error) {
	fields, err := decodeRecords[map[string]json.RawMessage](payload, "write")
	if err != nil {
		return 0, err
	}

	if len(fields) == 0 {
		return 0, adapi.ErrMissingIdentifier
	}

	raw, ok := fields[0][idField]
	if !ok {
		return 0, fmt.Errorf("%w: %s", adapi.ErrMissingIdentifier, idField)
	}

	var id int64

	err = json.Unmarshal(raw, &id)
	if err != nil {
		return 0, fmt.Errorf("parsing identifier %s: %w", idField, err)
	}

	return id, nil
}

// The platform reports a missing record on edit/delete only through
// free-text messages. That fragile match lives here and nowhere else.
var (
	updateLoadFailure = regexp.MustCompile(`(?i)could not load .*object.* to update`)
	deleteLoadFailure = regexp.MustCompile(`(?i)could not load .*object.* to delete`)
)

func writeLoadFailure(err error, pattern *regexp.Regexp) bool {
	apiErr := &adapi.APIError{}
	if !errors.As(err, &apiErr) {
		return false
	}

	return pattern.MatchString(apiErr.Detail.Message)
}
