package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// entityCommand describes one entity command group. Every entity shares the
// same verbs; only the table shape and the accessor differ.
type entityCommand[T any] struct {
	use        string
	aliases    []string
	short      string
	long       string
	uploadable bool
	ops        func(adapi.Client) adapi.EntityOperations[T]
	header     []string
	row        func(record T) []string
}

func newEntityCommand[T any](entity entityCommand[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     entity.use,
		Aliases: entity.aliases,
		Short:   entity.short,
		Long:    entity.long,
	}

	cmd.AddCommand(newEntityListCommand(entity))
	cmd.AddCommand(newEntityGetCommand(entity))
	cmd.AddCommand(newEntityCreateCommand(entity))
	cmd.AddCommand(newEntityUpdateCommand(entity))
	cmd.AddCommand(newEntityDeleteCommand(entity))

	if entity.uploadable {
		cmd.AddCommand(newEntityUploadCommand(entity))
	}

	return cmd
}

func newEntityListCommand[T any](entity entityCommand[T]) *cobra.Command {
	var (
		filterJSON string
		allPages   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + entity.use,
		Long:  "List " + entity.use + ", optionally filtered by a JSON object",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			filter, err := ParseFilter(filterJSON)
			if err != nil {
				return err
			}

			records, err := listEntityRecords(cmd.Context(), entity.ops(client), filter, allPages)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", entity.use, err)
			}

			return renderRecords(entity, records)
		},
	}

	cmd.Flags().StringVar(&filterJSON, "filter", "", "filter as a JSON object")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func listEntityRecords[T any](ctx context.Context, ops adapi.EntityOperations[T], filter adapi.Filter, allPages bool) ([]T, error) {
	if allPages {
		return ops.QueryAll(ctx, filter)
	}

	return ops.Query(ctx, filter)
}

func newEntityGetCommand[T any](entity entityCommand[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get one record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			record, err := entity.ops(client).Find(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get %s %d: %w", entity.use, id, err)
			}

			return renderRecords(entity, []T{*record})
		},
	}
}

func newEntityCreateCommand[T any](entity entityCommand[T]) *cobra.Command {
	var (
		data     string
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
		Long:  "Create a record from a JSON body and print the verified result",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ParseBody(data, dataFile)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			result, err := entity.ops(client).Create(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", entity.use, err)
			}

			return renderResult(entity, result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "file containing the JSON body")

	return cmd
}

func newEntityUpdateCommand[T any](entity entityCommand[T]) *cobra.Command {
	var (
		data           string
		dataFile       string
		failOnNotFound bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a record",
		Long:  "Update a record from a JSON body and print the verified result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}

			body, err := ParseBody(data, dataFile)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			result, err := entity.ops(client).Edit(cmd.Context(), id, body, writeOptions(failOnNotFound)...)
			if err != nil {
				return fmt.Errorf("failed to update %s %d: %w", entity.use, id, err)
			}

			return renderResult(entity, result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "file containing the JSON body")
	cmd.Flags().BoolVar(&failOnNotFound, "fail-on-not-found", false, "treat a missing record as a hard error")

	return cmd
}

func newEntityDeleteCommand[T any](entity entityCommand[T]) *cobra.Command {
	var failOnNotFound bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			result, err := entity.ops(client).Delete(cmd.Context(), id, writeOptions(failOnNotFound)...)
			if err != nil {
				return fmt.Errorf("failed to delete %s %d: %w", entity.use, id, err)
			}

			return renderResult(entity, result)
		},
	}

	cmd.Flags().BoolVar(&failOnNotFound, "fail-on-not-found", false, "treat a missing record as a hard error")

	return cmd
}

func newEntityUploadCommand[T any](entity entityCommand[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <id> <file>",
		Short: "Upload an asset file for a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			payload, err := entity.ops(client).Upload(cmd.Context(), id, args[1])
			if err != nil {
				return fmt.Errorf("failed to upload for %s %d: %w", entity.use, id, err)
			}

			var decoded interface{}
			if err := json.Unmarshal(payload, &decoded); err != nil {
				decoded = string(payload)
			}

			return StandardJSONRenderer(decoded)
		},
	}
}

func writeOptions(failOnNotFound bool) []adapi.WriteOption {
	if failOnNotFound {
		return []adapi.WriteOption{adapi.FailOnNotFound()}
	}

	return nil
}

func renderRecords[T any](entity entityCommand[T], records []T) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(records)
	case constants.FormatYAML:
		return StandardYAMLRenderer(records)
	case constants.FormatTable, "":
		return renderEntityTable(entity, records)
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, output)
	}
}

func renderResult[T any](entity entityCommand[T], result *adapi.OperationResult[T]) error {
	output := viper.GetString("output")
	if output == constants.FormatJSON || output == constants.FormatYAML {
		if output == constants.FormatJSON {
			return StandardJSONRenderer(result)
		}

		return StandardYAMLRenderer(result)
	}

	if !result.Success {
		fmt.Printf("Rejected (%d): %s\n", result.Code, result.Message)

		return nil
	}

	if result.Record == nil {
		fmt.Println("OK")

		return nil
	}

	return renderEntityTable(entity, []T{*result.Record})
}

func renderEntityTable[T any](entity entityCommand[T], records []T) error {
	if len(records) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAnySlice(entity.header)...)

	for _, record := range records {
		_ = table.Append(toAnySlice(entity.row(record))...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAnySlice(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, cell := range cells {
		out[i] = cell
	}

	return out
}
