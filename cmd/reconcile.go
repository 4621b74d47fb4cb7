package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"api-mirror/core/config"
	"api-mirror/core/logger"
	"api-mirror/core/reconcile"
	"api-mirror/core/remote"
	"api-mirror/core/storage"

	"go.uber.org/zap"
)

var errMissingURL = errors.New("missing endpoint URL")

// endpointFlags are the connection flags shared by the service commands.
type endpointFlags struct {
	source      string
	destination string
	dryRun      bool
	yes         bool
}

// runtime bundles what a service command needs once configuration is loaded.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	source remote.Store
	target remote.Store
}

// applyFlags lets command-line values override the loaded configuration.
func applyFlags(cfg *config.Config, f endpointFlags) error {
	if f.source != "" {
		cfg.Source.URL = f.source
	}
	if f.destination != "" {
		cfg.Destination.URL = f.destination
	}
	if cfg.Source.URL == "" {
		return fmt.Errorf("%w: set --source or SOURCE_URL", errMissingURL)
	}
	if cfg.Destination.URL == "" {
		return fmt.Errorf("%w: set --destination or DESTINATION_URL", errMissingURL)
	}
	return nil
}

func setup(f endpointFlags) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cfg, f); err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	source, err := remote.NewClient(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := remote.NewClient(cfg.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	l.Debug("Endpoints configured",
		zap.String("source", source.BaseURL()),
		zap.String("destination", target.BaseURL()),
	)

	return &runtime{cfg: cfg, logger: l, source: source, target: target}, nil
}

// parseServiceID parses a positional service identifier.
func parseServiceID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s service id %q", name, raw)
	}
	return id, nil
}

// runEngine executes one reconciliation run, prints its report and archives it.
func runEngine(ctx context.Context, rt *runtime, sourceID, targetID int64, opts reconcile.Options) error {
	engine := reconcile.New(rt.source, rt.target, sourceID, targetID, rt.logger, opts)
	l := logger.WithRun(rt.logger, engine.RunID())

	report, err := engine.Run(ctx)
	printReconcileReport(l, report)
	archiveReport(ctx, l, rt.cfg.Report, report)

	if err != nil {
		return fmt.Errorf("reconciliation of service %d into %d failed: %w", sourceID, targetID, err)
	}
	if opts.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// archiveReport uploads the report when an archive is configured. Failures are logged only.
func archiveReport(ctx context.Context, l *zap.Logger, cfg storage.Config, report *reconcile.Report) {
	if !cfg.Enabled() {
		return
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		l.Warn("Report not archived", zap.Error(err))
		return
	}
	key, err := storage.NewArchive(client, cfg).Put(ctx, report.RunID, report.StartedAt, report)
	if err != nil {
		l.Warn("Report not archived", zap.Error(err))
		return
	}
	l.Info("Report archived", zap.String("bucket", cfg.Bucket), zap.String("key", key))
}

// printReconcileReport prints a formatted run report using logger.
func printReconcileReport(l *zap.Logger, report *reconcile.Report) {
	s := report.Summary

	l.Info("Reconciliation report",
		zap.Int64("source_service", report.SourceServiceID),
		zap.Int64("target_service", report.TargetServiceID),
		zap.Bool("dry_run", report.DryRun),
		zap.Bool("service_updated", s.ServiceUpdated),
		zap.Bool("proxy_updated", s.ProxyUpdated),
		zap.Int("missing_methods", s.MissingMethods),
		zap.Int("missing_metrics", s.MissingMetrics),
		zap.Int("missing_plans", s.MissingPlans),
		zap.Int("skipped_plans", s.SkippedPlans),
		zap.Int("missing_limits", s.MissingLimits),
		zap.Int("missing_mapping_rules", s.MissingMappingRules),
		zap.Int("deleted_mapping_rules", s.DeletedMappingRules),
		zap.Int("writes", s.Writes()),
	)

	// Show sample of actions (max 5 for logger)
	maxShow := min(5, len(report.Actions))
	for _, action := range report.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.Bool("applied", action.Applied),
			zap.String("reason", action.Reason),
		)
	}
	if len(report.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(report.Actions)-maxShow))
	}
	if report.Error != "" {
		l.Warn("Run stopped early", zap.String("error", report.Error))
	}
}

// confirmDestructiveAction prompts the user for confirmation unless yes is set.
func confirmDestructiveAction(in io.Reader, out io.Writer, yes bool) bool {
	if yes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Every mapping rule on the destination will be deleted. Type 'yes' to confirm: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
