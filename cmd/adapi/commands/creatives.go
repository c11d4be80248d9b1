package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewCreativesCommand creates the creatives command group. Creatives carry
// an asset upload verb in addition to the shared CRUD verbs.
func NewCreativesCommand() *cobra.Command {
	return newEntityCommand(entityCommand[adapi.Creative]{
		use:        "creatives",
		aliases:    []string{"creative"},
		short:      "Manage creatives",
		long:       "List, create, update, delete creatives and upload their asset files",
		uploadable: true,
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.Creative] {
			return client.Creatives()
		},
		header: []string{"ID", "Name", "State", "Format", "Size", "Advertiser"},
		row: func(record adapi.Creative) []string {
			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Name,
				record.State,
				record.Format,
				fmt.Sprintf("%dx%d", record.Width, record.Height),
				strconv.FormatInt(record.AdvertiserID, 10),
			}
		},
	})
}
