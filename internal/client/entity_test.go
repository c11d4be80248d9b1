package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge-io/adapi-client/internal/client"
	"github.com/mediaforge-io/adapi-client/internal/constants"
	adapihttp "github.com/mediaforge-io/adapi-client/internal/http"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

var campaignConfig = adapi.EntityConfig{ServicePath: "campaign", IDField: "id"}

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// entityServer answers envelope-wrapped responses and records every call so
// tests can assert on paths, verbs and submitted bodies.
type entityServer struct {
	t       *testing.T
	calls   []recordedCall
	handler func(call recordedCall) (int, adapi.Envelope)
}

func (s *entityServer) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	call := recordedCall{Method: request.Method, Path: request.URL.Path}

	if request.Body != nil && request.ContentLength != 0 {
		require.NoError(s.t, json.NewDecoder(request.Body).Decode(&call.Body))
	}

	s.calls = append(s.calls, call)

	status, env := s.handler(call)
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	require.NoError(s.t, json.NewEncoder(writer).Encode(env))
}

func newCampaignClient(t *testing.T, handler func(call recordedCall) (int, adapi.Envelope)) (*client.EntityClient[adapi.Campaign], *entityServer) {
	t.Helper()

	fake := &entityServer{t: t, handler: handler}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return client.NewEntityClient[adapi.Campaign](adapihttp.NewClient(server.URL, nil), campaignConfig), fake
}

func okEnvelope(t *testing.T, payload interface{}) adapi.Envelope {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	return adapi.Envelope{Success: true, Payload: data}
}

func TestEntityClient_Find(t *testing.T) {
	t.Parallel()

	t.Run("returns the matching record", func(t *testing.T) {
		t.Parallel()

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, []adapi.Campaign{{ID: 12, Name: "spring-launch"}})
		})

		record, err := entityClient.Find(context.Background(), 12)
		require.NoError(t, err)
		assert.Equal(t, "spring-launch", record.Name)

		require.Len(t, fake.calls, 1)
		assert.Equal(t, "GET", fake.calls[0].Method)
		assert.Equal(t, "/campaign", fake.calls[0].Path)
		assert.InDelta(t, 12, fake.calls[0].Body["id"], 0)
	})

	t.Run("accepts a bare object payload", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, adapi.Campaign{ID: 12, Name: "spring-launch"})
		})

		record, err := entityClient.Find(context.Background(), 12)
		require.NoError(t, err)
		assert.EqualValues(t, 12, record.ID)
	})

	t.Run("no match is a sentinel error", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, []adapi.Campaign{})
		})

		_, err := entityClient.Find(context.Background(), 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, adapi.ErrNoMatch)
		assert.True(t, adapi.IsNoMatch(err))
	})
}

func TestEntityClient_QueryAll(t *testing.T) {
	t.Parallel()

	pageSize := constants.QueryPageSize

	tests := []struct {
		name         string
		total        int
		wantRequests int
	}{
		{name: "empty result", total: 0, wantRequests: 1},
		{name: "single short page", total: pageSize - 1, wantRequests: 1},
		{name: "exactly one full page", total: pageSize, wantRequests: 2},
		{name: "one full page plus one", total: pageSize + 1, wantRequests: 2},
		{name: "several pages", total: 2*pageSize + 20, wantRequests: 3},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
				offset := int(call.Body[constants.FilterOffset].(float64))

				var page []adapi.Campaign

				for id := offset; id < testCase.total && id < offset+pageSize; id++ {
					page = append(page, adapi.Campaign{ID: int64(id + 1), Name: fmt.Sprintf("c-%d", id+1)})
				}

				return http.StatusOK, okEnvelope(t, page)
			})

			records, err := entityClient.QueryAll(context.Background(), adapi.Filter{"state": "active"})
			require.NoError(t, err)
			assert.Len(t, records, testCase.total)
			assert.Len(t, fake.calls, testCase.wantRequests)

			for i, call := range fake.calls {
				assert.Equal(t, "active", call.Body["state"])
				assert.InDelta(t, pageSize, call.Body[constants.FilterRows], 0)
				assert.InDelta(t, i*pageSize, call.Body[constants.FilterOffset], 0)
				assert.Equal(t, "id", call.Body[constants.FilterSortBy])
			}
		})
	}

	t.Run("caller filter is not mutated", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, []adapi.Campaign{})
		})

		filter := adapi.Filter{"state": "active"}

		_, err := entityClient.QueryAll(context.Background(), filter)
		require.NoError(t, err)
		assert.Equal(t, adapi.Filter{"state": "active"}, filter)
	})

	t.Run("endless full pages hit the page cap", func(t *testing.T) {
		t.Parallel()

		full := make([]adapi.Campaign, constants.QueryPageSize)
		for i := range full {
			full[i] = adapi.Campaign{ID: int64(i + 1)}
		}

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, full)
		})

		_, err := entityClient.QueryAll(context.Background(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, adapi.ErrTooManyPages)
		assert.Len(t, fake.calls, constants.MaxQueryPages)
	})
}

func TestEntityClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("empty body is rejected without a network call", func(t *testing.T) {
		t.Parallel()

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, nil)
		})

		for _, body := range []adapi.Body{nil, {}} {
			result, err := entityClient.Create(context.Background(), body)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, constants.ResultCodeBadRequest, result.Code)
			assert.Equal(t, constants.MessageEmptyBody, result.Message)
			assert.Nil(t, result.Record)
		}

		assert.Empty(t, fake.calls)
	})

	t.Run("create then verify by the returned identifier", func(t *testing.T) {
		t.Parallel()

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			if call.Method == "POST" {
				return http.StatusOK, okEnvelope(t, map[string]interface{}{"id": 314})
			}

			return http.StatusOK, okEnvelope(t, []adapi.Campaign{{ID: 314, Name: "spring-launch", State: "inactive"}})
		})

		result, err := entityClient.Create(context.Background(), adapi.Body{"name": "spring-launch", "advertiser_id": 7})
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.Record)
		assert.EqualValues(t, 314, result.Record.ID)
		assert.Equal(t, "inactive", result.Record.State)

		require.Len(t, fake.calls, 2)
		assert.Equal(t, "POST", fake.calls[0].Method)
		assert.Equal(t, "/campaign-strict", fake.calls[0].Path)
		assert.Equal(t, "spring-launch", fake.calls[0].Body["name"])
		assert.Equal(t, "GET", fake.calls[1].Method)
		assert.Equal(t, "/campaign", fake.calls[1].Path)
		assert.InDelta(t, 314, fake.calls[1].Body["id"], 0)
	})

	t.Run("write response missing the identifier is an error", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, map[string]interface{}{"name": "spring-launch"})
		})

		_, err := entityClient.Create(context.Background(), adapi.Body{"name": "spring-launch"})
		require.Error(t, err)
		assert.ErrorIs(t, err, adapi.ErrMissingIdentifier)
	})

	t.Run("validation failure propagates as an API error", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, adapi.Envelope{
				Success: false,
				Error:   &adapi.ErrorDetail{ID: "SYNTAX", Message: "unknown field staet"},
			}
		})

		_, err := entityClient.Create(context.Background(), adapi.Body{"staet": "active"})
		require.Error(t, err)

		apiErr := &adapi.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "unknown field staet", apiErr.Detail.Message)
	})
}

func TestEntityClient_Edit(t *testing.T) {
	t.Parallel()

	t.Run("merges the identifier and verifies the update", func(t *testing.T) {
		t.Parallel()

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			if call.Method == "PUT" {
				return http.StatusOK, okEnvelope(t, map[string]interface{}{"id": 42})
			}

			return http.StatusOK, okEnvelope(t, []adapi.Campaign{{ID: 42, Name: "renamed"}})
		})

		result, err := entityClient.Edit(context.Background(), 42, adapi.Body{"name": "renamed"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "renamed", result.Record.Name)

		require.Len(t, fake.calls, 2)
		assert.Equal(t, "PUT", fake.calls[0].Method)
		assert.Equal(t, "/campaign-strict", fake.calls[0].Path)
		assert.InDelta(t, 42, fake.calls[0].Body["id"], 0)
		assert.Equal(t, "renamed", fake.calls[0].Body["name"])
	})

	t.Run("empty body is rejected without a network call", func(t *testing.T) {
		t.Parallel()

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, nil)
		})

		result, err := entityClient.Edit(context.Background(), 42, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, constants.MessageEmptyBody, result.Message)
		assert.Empty(t, fake.calls)
	})

	t.Run("missing record becomes a negative result", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusBadRequest, adapi.Envelope{
				Success: false,
				Error:   &adapi.ErrorDetail{Message: "Could not load Campaign object 99 to update"},
			}
		})

		result, err := entityClient.Edit(context.Background(), 99, adapi.Body{"name": "renamed"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, constants.ResultCodeBadRequest, result.Code)
		assert.Equal(t, constants.MessageNotFound, result.Message)
	})

	t.Run("missing record fails hard with FailOnNotFound", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusBadRequest, adapi.Envelope{
				Success: false,
				Error:   &adapi.ErrorDetail{Message: "Could not load Campaign object 99 to update"},
			}
		})

		_, err := entityClient.Edit(context.Background(), 99, adapi.Body{"name": "renamed"}, adapi.FailOnNotFound())
		require.Error(t, err)

		apiErr := &adapi.APIError{}
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("other server rejections are not treated as not-found", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusBadRequest, adapi.Envelope{
				Success: false,
				Error:   &adapi.ErrorDetail{Message: "budget must be positive"},
			}
		})

		_, err := entityClient.Edit(context.Background(), 42, adapi.Body{"lifetime_budget": -5})
		require.Error(t, err)
	})
}

func TestEntityClient_Delete(t *testing.T) {
	t.Parallel()

	t.Run("returns the deleted record from the response", func(t *testing.T) {
		t.Parallel()

		entityClient, fake := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, okEnvelope(t, []adapi.Campaign{{ID: 7, Name: "retired"}})
		})

		result, err := entityClient.Delete(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.Record)
		assert.Equal(t, "retired", result.Record.Name)

		require.Len(t, fake.calls, 1)
		assert.Equal(t, "DELETE", fake.calls[0].Method)
		assert.Equal(t, "/campaign-strict", fake.calls[0].Path)
		assert.InDelta(t, 7, fake.calls[0].Body["id"], 0)
	})

	t.Run("empty payload still succeeds", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusOK, adapi.Envelope{Success: true}
		})

		result, err := entityClient.Delete(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Nil(t, result.Record)
	})

	t.Run("missing record becomes a negative result", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusBadRequest, adapi.Envelope{
				Success: false,
				Error:   &adapi.ErrorDetail{Message: "Could not load Campaign object 99 to delete"},
			}
		})

		result, err := entityClient.Delete(context.Background(), 99)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, constants.MessageNotFound, result.Message)
	})

	t.Run("missing record fails hard with FailOnNotFound", func(t *testing.T) {
		t.Parallel()

		entityClient, _ := newCampaignClient(t, func(call recordedCall) (int, adapi.Envelope) {
			return http.StatusBadRequest, adapi.Envelope{
				Success: false,
				Error:   &adapi.ErrorDetail{Message: "Could not load Campaign object 99 to delete"},
			}
		})

		_, err := entityClient.Delete(context.Background(), 99, adapi.FailOnNotFound())
		require.Error(t, err)
	})
}

func TestEntityClient_Upload(t *testing.T) {
	t.Parallel()

	var uploads int32

	mux := http.NewServeMux()
	mux.HandleFunc("/creative/5/upload", func(writer http.ResponseWriter, request *http.Request) {
		atomic.AddInt32(&uploads, 1)

		_, header, err := request.FormFile(constants.UploadFieldName)
		require.NoError(t, err)
		assert.Equal(t, "banner.png", header.Filename)

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":true,"payload":{"id":5,"media_url":"https://cdn.example.com/banner.png"}}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	entityClient := client.NewEntityClient[adapi.Creative](adapihttp.NewClient(server.URL, nil),
		adapi.EntityConfig{ServicePath: "creative", IDField: "id"})

	filePath := writeTempFile(t, "banner.png", []byte("png-bytes"))

	payload, err := entityClient.Upload(context.Background(), 5, filePath)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&uploads))

	var uploaded map[string]interface{}

	require.NoError(t, json.Unmarshal(payload, &uploaded))
	assert.Equal(t, "https://cdn.example.com/banner.png", uploaded["media_url"])
}
