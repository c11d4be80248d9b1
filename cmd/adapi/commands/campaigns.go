package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewCampaignsCommand creates the campaigns command group.
func NewCampaignsCommand() *cobra.Command {
	return newEntityCommand(entityCommand[adapi.Campaign]{
		use:     "campaigns",
		aliases: []string{"campaign"},
		short:   "Manage campaigns",
		long:    "List, create, update, and delete campaigns",
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.Campaign] {
			return client.Campaigns()
		},
		header: []string{"ID", "Name", "State", "Advertiser", "Start", "End", "Lifetime Budget"},
		row: func(record adapi.Campaign) []string {
			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Name,
				record.State,
				strconv.FormatInt(record.AdvertiserID, 10),
				record.StartDate,
				record.EndDate,
				strconv.FormatFloat(record.LifetimeBudget, 'f', 2, 64),
			}
		},
	})
}
