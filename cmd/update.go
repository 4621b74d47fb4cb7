package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"api-mirror/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	updateFlags endpointFlags
	forceRules  bool
	rulesOnly   bool
)

// updateCmd is the parent command for in-place updates.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update existing destination objects from a source",
}

// updateServiceCmd mirrors one source service onto an existing destination service.
var updateServiceCmd = &cobra.Command{
	Use:   "service <source_service_id> <destination_service_id>",
	Short: "Mirror a service onto an existing destination service",
	Long: `Copy service settings, proxy, metrics and methods, application plans with
their limits, and mapping rules from a source service into a destination service.
Only what is missing is created. Custom application plans are never copied.

Examples:
  # Full mirror
  update service -s https://TOKEN@acme-admin.example.com -d https://TOKEN@acme-staging-admin.example.com 2555417777820 2555417780000

  # Plan only, no writes
  update service --dry-run 2555417777820 2555417780000

  # Replace every destination mapping rule (with interactive confirmation)
  update service --force --rules-only 2555417777820 2555417780000`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdateService,
}

func init() {
	f := updateServiceCmd.Flags()
	f.StringVarP(&updateFlags.source, "source", "s", "", "Source admin URL with access token (overrides SOURCE_URL)")
	f.StringVarP(&updateFlags.destination, "destination", "d", "", "Destination admin URL with access token (overrides DESTINATION_URL)")
	f.BoolVarP(&forceRules, "force", "f", false, "Delete every destination mapping rule before copying")
	f.BoolVarP(&rulesOnly, "rules-only", "r", false, "Copy mapping rules only")
	f.BoolVar(&updateFlags.dryRun, "dry-run", false, "Plan only (no mutations)")
	f.BoolVar(&updateFlags.yes, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	updateCmd.AddCommand(updateServiceCmd)
	RootCmd.AddCommand(updateCmd)
}

func runUpdateService(cmd *cobra.Command, args []string) error {
	sourceID, err := parseServiceID("source", args[0])
	if err != nil {
		return err
	}
	targetID, err := parseServiceID("destination", args[1])
	if err != nil {
		return err
	}

	rt, err := setup(updateFlags)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	opts := reconcile.Options{Force: forceRules, RulesOnly: rulesOnly, DryRun: updateFlags.dryRun}
	if opts.Force && !opts.DryRun && !confirmDestructiveAction(os.Stdin, cmd.OutOrStdout(), updateFlags.yes) {
		rt.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runEngine(ctx, rt, sourceID, targetID, opts)
}
