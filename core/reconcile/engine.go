package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"api-mirror/core/entity"
	"api-mirror/core/logger"
	"api-mirror/core/remote"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingHitsMetric is returned when a service has no "hits" metric.
var ErrMissingHitsMetric = errors.New(`service has no "hits" metric`)

// Natural keys per entity kind.
var (
	metricKeys = []string{entity.FieldSystemName}
	planKeys   = []string{entity.FieldSystemName}
	limitKeys  = []string{entity.FieldPeriod}
	ruleKeys   = []string{entity.FieldPattern, entity.FieldHTTPMethod, entity.FieldDelta}
)

// Engine mirrors one source service onto one destination service.
// An Engine performs a single run; create a new one for every run.
type Engine struct {
	source, target     remote.Store
	sourceID, targetID int64
	opts               Options
	logger             *zap.Logger
	cache              *runCache
	report             *Report
}

// New creates an engine for one run. A nil logger discards output.
func New(source, target remote.Store, sourceServiceID, targetServiceID int64, l *zap.Logger, opts Options) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	runID := uuid.NewString()
	return &Engine{
		source:   source,
		target:   target,
		sourceID: sourceServiceID,
		targetID: targetServiceID,
		opts:     opts,
		logger: logger.WithRun(l, runID).With(
			zap.Int64("source_service", sourceServiceID),
			zap.Int64("target_service", targetServiceID),
		),
		cache: newRunCache(source, target, sourceServiceID, targetServiceID),
		report: &Report{
			RunID:           runID,
			SourceServiceID: sourceServiceID,
			TargetServiceID: targetServiceID,
			DryRun:          opts.DryRun,
			Force:           opts.Force,
			RulesOnly:       opts.RulesOnly,
			Actions:         []Action{},
		},
	}
}

// RunID returns the identifier of this run.
func (e *Engine) RunID() string {
	return e.report.RunID
}

// Report returns the report accumulated so far.
func (e *Engine) Report() *Report {
	return e.report
}

// Run executes the categories in dependency order: service settings, proxy,
// metrics and methods, application plans with their limits, mapping rules.
// In rules-only mode only mapping rules are copied. The first error ends the run;
// the returned report is never nil.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	e.report.StartedAt = time.Now().UTC()
	e.logger.Info("Reconciliation started",
		zap.Bool("dry_run", e.opts.DryRun),
		zap.Bool("force", e.opts.Force),
		zap.Bool("rules_only", e.opts.RulesOnly),
	)

	err := e.run(ctx)
	e.report.FinishedAt = time.Now().UTC()
	if err != nil {
		e.report.Error = err.Error()
		e.logger.Error("Reconciliation failed", zap.Error(err), zap.Int("writes", e.report.Summary.Writes()))
		return e.report, err
	}

	e.logger.Info("Reconciliation finished",
		zap.Int("writes", e.report.Summary.Writes()),
		zap.Duration("duration", e.report.FinishedAt.Sub(e.report.StartedAt)),
	)
	return e.report, nil
}

func (e *Engine) run(ctx context.Context) error {
	if e.opts.RulesOnly {
		return e.CopyMappingRules(ctx, e.opts.Force)
	}

	// Both hits metrics are required before anything is written.
	if _, _, err := e.hits(ctx); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"service settings", e.CopyServiceSettings},
		{"proxy settings", e.CopyProxySettings},
		{"metrics and methods", e.CopyMetricsAndMethods},
		{"application plans", e.CopyApplicationPlans},
		{"mapping rules", func(ctx context.Context) error { return e.CopyMappingRules(ctx, e.opts.Force) }},
	}
	for _, step := range steps {
		e.logger.Debug("Copying", zap.String("step", step.name))
		if err := step.fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// hits resolves the hits metric on both sides.
func (e *Engine) hits(ctx context.Context) (source, target entity.Metric, err error) {
	sourceMetrics, err := e.cache.SourceMetrics(ctx)
	if err != nil {
		return source, target, err
	}
	if source, err = findHits(sourceMetrics, "source", e.sourceID); err != nil {
		return source, target, err
	}
	targetMetrics, err := e.cache.TargetMetrics(ctx)
	if err != nil {
		return source, target, err
	}
	if target, err = findHits(targetMetrics, "target", e.targetID); err != nil {
		return source, target, err
	}
	return source, target, nil
}

func findHits(metrics []entity.Metric, side string, serviceID int64) (entity.Metric, error) {
	for _, m := range metrics {
		if m.IsHits() {
			return m, nil
		}
	}
	return entity.Metric{}, fmt.Errorf("%w: %s service %d", ErrMissingHitsMetric, side, serviceID)
}

// record appends an action. Everything recorded during a dry run is unapplied.
func (e *Engine) record(t ActionType, key, reason string) {
	applied := !e.opts.DryRun && reason == ""
	e.report.Actions = append(e.report.Actions, Action{Type: t, Key: key, Reason: reason, Applied: applied})
	e.logger.Debug("Action",
		zap.String("type", string(t)),
		zap.String("key", key),
		zap.Bool("applied", applied),
		zap.String("reason", reason),
	)
}
