package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge-io/adapi-client/cmd/adapi/commands"
	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := commands.ParseID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = commands.ParseID("forty-two")
	assert.ErrorIs(t, err, constants.ErrIdentifierRequired)
}

func TestParseBody(t *testing.T) {
	t.Parallel()

	t.Run("inline data", func(t *testing.T) {
		t.Parallel()

		body, err := commands.ParseBody(`{"name":"spring-launch","advertiser_id":7}`, "")
		require.NoError(t, err)
		assert.Equal(t, "spring-launch", body["name"])
	})

	t.Run("data file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "body.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"from-file"}`), 0o600))

		body, err := commands.ParseBody("", path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", body["name"])
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()

		_, err := commands.ParseBody("", "")
		assert.ErrorIs(t, err, constants.ErrBodyRequired)
	})

	t.Run("not an object", func(t *testing.T) {
		t.Parallel()

		_, err := commands.ParseBody(`[1,2,3]`, "")
		assert.ErrorIs(t, err, constants.ErrInvalidBody)
	})
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	filter, err := commands.ParseFilter(`{"state":"active"}`)
	require.NoError(t, err)
	assert.Equal(t, adapi.Filter{"state": "active"}, filter)

	empty, err := commands.ParseFilter("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = commands.ParseFilter(`{"state":`)
	assert.ErrorIs(t, err, constants.ErrInvalidBody)
}
