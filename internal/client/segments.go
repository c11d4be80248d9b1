package client

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/internal/http"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// SegmentsClient implements adapi.SegmentsClient: the generic segment CRUD
// plus the bulk membership upload flow. Upload registration and the
// follow-up read ride the same upload resource, bound here as its own
// entity client.
type SegmentsClient struct {
	*EntityClient[adapi.Segment]

	httpClient *http.Client
	uploads    *EntityClient[adapi.SegmentUpload]
}

// NewSegmentsClient creates a segments client over the shared transport.
func NewSegmentsClient(httpClient *http.Client, config adapi.EntityConfig) *SegmentsClient {
	return &SegmentsClient{
		EntityClient: NewEntityClient[adapi.Segment](httpClient, config),
		httpClient:   httpClient,
		uploads: NewEntityClient[adapi.SegmentUpload](httpClient, adapi.EntityConfig{
			ServicePath: constants.SegmentUploadPath,
			IDField:     "id",
		}),
	}
}

// CreateUpload implements adapi.SegmentsClient.CreateUpload. The body is
// metadata only; when it carries no name and a source file is given, the
// file's base name is used.
func (c *SegmentsClient) CreateUpload(ctx context.Context, body adapi.Body, sourceFile string) (*adapi.SegmentUpload, error) {
	merged := make(adapi.Body, len(body)+1)
	for key, value := range body {
		merged[key] = value
	}

	if _, ok := merged["name"]; !ok && sourceFile != "" {
		merged["name"] = filepath.Base(sourceFile)
	}

	if len(merged) == 0 {
		return nil, adapi.ErrEmptyUploadBody
	}

	resp, err := c.httpClient.Post(ctx, "/"+constants.SegmentUploadPath, merged)
	if err != nil {
		return nil, fmt.Errorf("registering segment upload: %w", err)
	}

	records, err := decodeRecords[adapi.SegmentUpload](resp.Payload, constants.SegmentUploadPath)
	if err != nil {
		return nil, fmt.Errorf("registering segment upload: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("registering segment upload: %w", adapi.ErrMissingIdentifier)
	}

	return &records[0], nil
}

// UploadFile implements adapi.SegmentsClient.UploadFile.
func (c *SegmentsClient) UploadFile(ctx context.Context, uploadID int64, filePath string) (json.RawMessage, error) {
	path := fmt.Sprintf("/%s/%d/file", constants.SegmentUploadPath, uploadID)

	resp, err := c.httpClient.Upload(ctx, path, constants.UploadFieldName, filePath)
	if err != nil {
		return nil, fmt.Errorf("uploading segment file: %w", err)
	}

	return resp.Payload, nil
}

// Ingest implements adapi.SegmentsClient.Ingest: register intent, push the
// file content, then re-read the upload resource by its returned
// identifier. The same create-then-verify shape as entity writes, applied
// to a different resource and transport encoding.
func (c *SegmentsClient) Ingest(ctx context.Context, body adapi.Body, filePath string) (*adapi.OperationResult[adapi.SegmentUpload], error) {
	upload, err := c.CreateUpload(ctx, body, filePath)
	if err != nil {
		return nil, err
	}

	_, err = c.UploadFile(ctx, upload.ID, filePath)
	if err != nil {
		return nil, err
	}

	verified, err := c.uploads.Find(ctx, upload.ID)
	if err != nil {
		return nil, fmt.Errorf("verifying segment upload %d: %w", upload.ID, err)
	}

	return adapi.Accepted(verified), nil
}
