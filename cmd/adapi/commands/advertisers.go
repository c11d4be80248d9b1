package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewAdvertisersCommand creates the advertisers command group.
func NewAdvertisersCommand() *cobra.Command {
	return newEntityCommand(entityCommand[adapi.Advertiser]{
		use:     "advertisers",
		aliases: []string{"advertiser"},
		short:   "Manage advertisers",
		long:    "List, create, update, and delete advertiser accounts",
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.Advertiser] {
			return client.Advertisers()
		},
		header: []string{"ID", "Name", "State", "Timezone", "Last Modified"},
		row: func(record adapi.Advertiser) []string {
			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Name,
				record.State,
				record.TimeZone,
				record.LastModified,
			}
		},
	})
}
