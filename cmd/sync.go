package cmd

import (
	"shipment-gateway/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	syncDryRun   bool
	syncPageSize int
)

// syncCmd runs one reconciliation pass and prints its report.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the mirror with ShipEngine",
	Long: `Runs a single reconciliation pass against ShipEngine and prints the report.
With --dry-run the plan is computed and reported but nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.gateway.Sync(cmd.Context(), reconcile.Options{
			PageSize: syncPageSize,
			DryRun:   syncDryRun,
		})
		if err != nil {
			return err
		}
		a.logger.Info("Sync finished", report.Fields()...)
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "compute the plan without applying it")
	syncCmd.Flags().IntVar(&syncPageSize, "page-size", 0, "remote page size (defaults to SYNC_PAGE_SIZE)")
	RootCmd.AddCommand(syncCmd)
}
