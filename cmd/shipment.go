package cmd

import (
	"github.com/spf13/cobra"
)

// shipmentCmd prints one shipment, fetching it remotely when the mirror lacks it.
var shipmentCmd = &cobra.Command{
	Use:   "shipment <id>",
	Short: "Show a shipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		s, err := a.gateway.GetShipment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), s)
	},
}

func init() {
	RootCmd.AddCommand(shipmentCmd)
}
