package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewSegmentsCommand creates the segments command group: the shared CRUD
// verbs plus the bulk membership ingest flow.
func NewSegmentsCommand() *cobra.Command {
	cmd := newEntityCommand(entityCommand[adapi.Segment]{
		use:     "segments",
		aliases: []string{"segment"},
		short:   "Manage audience segments",
		long:    "List, create, update, delete segments and ingest membership files",
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.Segment] {
			return client.Segments()
		},
		header: []string{"ID", "Code", "Short Name", "State", "Members", "Price"},
		row: func(record adapi.Segment) []string {
			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Code,
				record.ShortName,
				record.State,
				strconv.FormatInt(record.MemberCount, 10),
				strconv.FormatFloat(record.Price, 'f', 2, 64),
			}
		},
	})

	cmd.AddCommand(newSegmentsIngestCommand())

	return cmd
}

func newSegmentsIngestCommand() *cobra.Command {
	var (
		data     string
		dataFile string
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a segment membership file",
		Long: `Register a bulk membership upload, push the file content, and print
the verified upload record. The body must at least carry the target
segment_id; the upload name defaults to the file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ParseBody(data, dataFile)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			result, err := client.Segments().Ingest(cmd.Context(), body, args[0])
			if err != nil {
				return fmt.Errorf("failed to ingest segment file: %w", err)
			}

			return renderResult(entityCommand[adapi.SegmentUpload]{
				use:    "segment-uploads",
				header: []string{"ID", "Segment", "Name", "Status", "Valid", "Invalid"},
				row: func(record adapi.SegmentUpload) []string {
					return []string{
						strconv.FormatInt(record.ID, 10),
						strconv.FormatInt(record.SegmentID, 10),
						record.Name,
						record.Status,
						strconv.FormatInt(record.NumValid, 10),
						strconv.FormatInt(record.NumInvalid, 10),
					}
				},
			}, result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body with at least segment_id")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "file containing the JSON body")

	return cmd
}
