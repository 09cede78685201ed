package cmd

import (
	"fmt"
	"os"

	"shipment-gateway/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shipment-gateway",
	Short: "ShipEngine Shipment Gateway",
	Long: `Shipment Gateway mirrors ShipEngine shipments into a local store and serves
them through a read-through cache, reconciling the mirror when it goes stale.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps reads better on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
