package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
	"github.com/mediaforge-io/adapi-client/pkg/adclient"
)

// CreateClient builds a platform client from the effective configuration:
// flags first, then environment, then the config file. The password is never
// read from the config file; it comes from --password on login or the
// ADAPI_PASSWORD environment variable.
func CreateClient(ctx context.Context) (adapi.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, constants.ErrNoEndpointConfigured
	}

	email := viper.GetString("email")
	if email == "" {
		return nil, constants.ErrNoEmailConfigured
	}

	password := viper.GetString("password")
	if password == "" {
		return nil, constants.ErrNoPasswordAvailable
	}

	config := &adapi.Config{
		APIEndpoint:   endpoint,
		Email:         email,
		Password:      password,
		SkipTLSVerify: viper.GetBool("skip_ssl_validation"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	client, err := adclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// ParseID parses the positional record identifier argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", constants.ErrIdentifierRequired, arg)
	}

	return id, nil
}

// ParseBody reads a write body from --data or --data-file.
func ParseBody(data, dataFile string) (adapi.Body, error) {
	raw := []byte(data)

	if dataFile != "" {
		content, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}

		raw = content
	}

	if len(raw) == 0 {
		return nil, constants.ErrBodyRequired
	}

	var body adapi.Body

	err := json.Unmarshal(raw, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidBody, err)
	}

	return body, nil
}

// ParseFilter reads an optional query filter from --filter.
func ParseFilter(data string) (adapi.Filter, error) {
	if data == "" {
		return nil, nil
	}

	var filter adapi.Filter

	err := json.Unmarshal([]byte(data), &filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidBody, err)
	}

	return filter, nil
}

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// stderrLogger implements adapi.Logger for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }
