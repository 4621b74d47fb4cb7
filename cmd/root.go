package cmd

import (
	"fmt"
	"os"

	"api-mirror/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "api-mirror",
	Short: "Mirror API service configuration between accounts",
	Long: `API Mirror copies the configuration of an API service from a source account
to a destination account: service settings, proxy, metrics and methods,
application plans with their limits, and mapping rules.
Runs are idempotent; running twice creates nothing the second time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable timestamps on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
