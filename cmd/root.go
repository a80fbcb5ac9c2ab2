package cmd

import (
	"fmt"
	"os"

	"intake-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "intake-reconciler",
	Short: "Intake to appointment reconciliation",
	Long: `Intake Reconciler links intake submissions to booked appointments.
Records are matched by intake reference, email, phone and finally by name
within a date window. Results are written as JSON and CSV reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level gives ISO8601 timestamps on the console.
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
