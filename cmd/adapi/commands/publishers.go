package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewPublishersCommand creates the publishers command group.
func NewPublishersCommand() *cobra.Command {
	return newEntityCommand(entityCommand[adapi.Publisher]{
		use:     "publishers",
		aliases: []string{"publisher"},
		short:   "Manage publishers",
		long:    "List, create, update, and delete publisher accounts",
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.Publisher] {
			return client.Publishers()
		},
		header: []string{"ID", "Name", "State", "Domain", "Last Modified"},
		row: func(record adapi.Publisher) []string {
			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Name,
				record.State,
				record.Domain,
				record.LastModified,
			}
		},
	})
}
