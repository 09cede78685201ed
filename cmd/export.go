package cmd

import (
	"github.com/spf13/cobra"
)

var (
	exportPrefix string
	exportList   bool
)

// exportCmd uploads a snapshot of the mirror to object storage.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a mirror snapshot to object storage",
	Long: `Writes every mirrored shipment to a JSON snapshot in the configured bucket
and prunes old snapshots. With --list the existing snapshots are printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if exportPrefix != "" {
			a.cfg.Storage.Prefix = exportPrefix
		}
		exp, err := a.exporter()
		if err != nil {
			return err
		}

		if exportList {
			snapshots, err := exp.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snapshots)
		}

		snap, err := exp.Export(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), snap)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPrefix, "prefix", "", "object name prefix (defaults to STORAGE_PREFIX)")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list existing snapshots")
	RootCmd.AddCommand(exportCmd)
}
