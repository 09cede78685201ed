package cmd

import (
	"fmt"

	"shipment-gateway/feature/health"

	"github.com/spf13/cobra"
)

// checkCmd runs the readiness checks once and fails when the mirror is down.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run readiness checks",
	Long:  `Checks the mirror database and schema, snapshot storage and the ShipEngine breaker, then prints the report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		report := health.NewService(a.healthDependencies()).Ready(cmd.Context())
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if report.Status == health.StatusDown {
			return fmt.Errorf("readiness check failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
