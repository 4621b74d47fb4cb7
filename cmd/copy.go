package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"api-mirror/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	copyFlags        endpointFlags
	targetSystemName string
)

// copyCmd is the parent command for creating new destination objects.
var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Create destination objects from a source",
}

// copyServiceCmd creates a new destination service and mirrors the source into it.
var copyServiceCmd = &cobra.Command{
	Use:   "service <source_service_id>",
	Short: "Create a new destination service from a source service",
	Long: `Create a service on the destination with the settings of the source service,
then copy its proxy, metrics and methods, application plans, limits and mapping rules.

Examples:
  copy service -s https://TOKEN@acme-admin.example.com -d https://TOKEN@acme-staging-admin.example.com 2555417777820
  copy service --target-system-name echo_staging 2555417777820`,
	Args: cobra.ExactArgs(1),
	RunE: runCopyService,
}

func init() {
	f := copyServiceCmd.Flags()
	f.StringVarP(&copyFlags.source, "source", "s", "", "Source admin URL with access token (overrides SOURCE_URL)")
	f.StringVarP(&copyFlags.destination, "destination", "d", "", "Destination admin URL with access token (overrides DESTINATION_URL)")
	f.StringVarP(&targetSystemName, "target-system-name", "t", "", "System name of the new service (defaults to the source system name)")

	copyCmd.AddCommand(copyServiceCmd)
	RootCmd.AddCommand(copyCmd)
}

func runCopyService(cmd *cobra.Command, args []string) error {
	sourceID, err := parseServiceID("source", args[0])
	if err != nil {
		return err
	}

	rt, err := setup(copyFlags)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	created, err := reconcile.CreateServiceCopy(ctx, rt.source, rt.target, sourceID, targetSystemName)
	if err != nil {
		return err
	}
	rt.logger.Info("Destination service created",
		zap.Int64("service_id", created.ID),
		zap.String("system_name", created.SystemName),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%d\n", created.ID)

	return runEngine(ctx, rt, sourceID, created.ID, reconcile.Options{})
}
