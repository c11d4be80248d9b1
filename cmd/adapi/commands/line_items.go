package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// NewLineItemsCommand creates the line-items command group.
func NewLineItemsCommand() *cobra.Command {
	return newEntityCommand(entityCommand[adapi.LineItem]{
		use:     "line-items",
		aliases: []string{"line-item", "lineitems"},
		short:   "Manage line items",
		long:    "List, create, update, and delete line items",
		ops: func(client adapi.Client) adapi.EntityOperations[adapi.LineItem] {
			return client.LineItems()
		},
		header: []string{"ID", "Name", "State", "Insertion Order", "Revenue", "Start", "End"},
		row: func(record adapi.LineItem) []string {
			revenue := record.RevenueType
			if record.RevenueValue != 0 {
				revenue += " " + strconv.FormatFloat(record.RevenueValue, 'f', 2, 64)
			}

			return []string{
				strconv.FormatInt(record.ID, 10),
				record.Name,
				record.State,
				strconv.FormatInt(record.InsertionOrderID, 10),
				revenue,
				record.StartDate,
				record.EndDate,
			}
		},
	})
}
