package cmd

import (
	"context"
	"errors"
	"fmt"

	"api-mirror/core/config"
	"api-mirror/core/logger"
	"api-mirror/core/reconcile"
	"api-mirror/core/storage"

	"github.com/spf13/cobra"
)

// reportCmd is the parent command for archived run reports.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect archived run reports",
}

// reportShowCmd prints an archived run report.
var reportShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print an archived run report",
	Long: `Fetch a run report from the report bucket and print its summary.
The key is logged at the end of every run, e.g. mirror-runs/2026-03-04/<run_id>.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportShow,
}

func init() {
	reportCmd.AddCommand(reportShowCmd)
	RootCmd.AddCommand(reportCmd)
}

func runReportShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Report.Enabled() {
		return errors.New("report archive is not configured: set REPORT_ENDPOINT and REPORT_BUCKET")
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	client, err := storage.NewClient(cfg.Report)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	var report reconcile.Report
	if err := storage.NewArchive(client, cfg.Report).Get(context.Background(), args[0], &report); err != nil {
		return err
	}
	printReconcileReport(logger.WithRun(l, report.RunID), &report)
	return nil
}
