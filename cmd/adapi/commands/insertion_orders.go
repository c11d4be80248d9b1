package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewInsertionOrdersCommand creates the insertion-orders command group.
func NewInsertionOrdersCommand() *cobra.Command {
	return newEntityCommand(entityCommand[adapi.InsertionOrder]{
		use:     "insertion-orders",
		aliases: []string{"insertion-order", "ios"},
		short:   "Manage insertion orders",
		long:    "List, create, update, and delete insertion orders",
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.InsertionOrder] {
			return client.InsertionOrders()
		},
		header: []string{"ID", "Name", "State", "Advertiser", "Budget", "Billing Code"},
		row: func(record adapi.InsertionOrder) []string {
			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Name,
				record.State,
				strconv.FormatInt(record.AdvertiserID, 10),
				strconv.FormatFloat(record.Budget, 'f', 2, 64),
				record.BillingCode,
			}
		},
	})
}
