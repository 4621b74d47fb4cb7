package reconcile

import (
	"context"
	"fmt"

	"api-mirror/core/entity"

	"go.uber.org/zap"
)

// CopyMetricsAndMethods creates the source methods and metrics the destination lacks.
// Methods go first, under the destination hits metric. The destination metrics are then
// listed again, so methods created a moment ago are not recreated as plain metrics.
func (e *Engine) CopyMetricsAndMethods(ctx context.Context) error {
	sourceHits, targetHits, err := e.hits(ctx)
	if err != nil {
		return err
	}

	sourceMethods, err := e.source.ListMethods(ctx, e.sourceID, sourceHits.ID)
	if err != nil {
		return fmt.Errorf("list source methods: %w", err)
	}
	targetMethods, err := e.target.ListMethods(ctx, e.targetID, targetHits.ID)
	if err != nil {
		return fmt.Errorf("list target methods: %w", err)
	}

	missingMethods := Missing(sourceMethods, targetMethods, metricKeys)
	e.report.Summary.MissingMethods += len(missingMethods)
	planned := make(map[string]struct{}, len(missingMethods))
	for _, m := range missingMethods {
		if e.opts.DryRun {
			planned[m.SystemName] = struct{}{}
			e.record(ActionCreateMethod, m.SystemName, "")
			continue
		}
		payload := m.Fields().Only(entity.FieldFriendlyName, entity.FieldSystemName)
		if _, err := e.target.CreateMethod(ctx, e.targetID, targetHits.ID, payload); err != nil {
			return fmt.Errorf("create method %q: %w", m.SystemName, err)
		}
		e.cache.InvalidateTargetMetrics()
		e.report.Summary.CreatedMethods++
		e.record(ActionCreateMethod, m.SystemName, "")
	}
	e.logger.Info("Methods copied",
		zap.Int("missing", len(missingMethods)),
		zap.Int("created", e.report.Summary.CreatedMethods),
	)

	sourceMetrics, err := e.cache.SourceMetrics(ctx)
	if err != nil {
		return err
	}
	targetMetrics, err := e.cache.TargetMetrics(ctx)
	if err != nil {
		return err
	}

	missingMetrics := Missing(sourceMetrics, targetMetrics, metricKeys)
	for _, m := range missingMetrics {
		if _, ok := planned[m.SystemName]; ok {
			// A real run finds the method on the re-listing and creates nothing here.
			e.record(ActionCreateMetric, m.SystemName, "planned as a method in this run")
			continue
		}
		e.report.Summary.MissingMetrics++
		if e.opts.DryRun {
			e.record(ActionCreateMetric, m.SystemName, "")
			continue
		}
		payload := m.Fields().Without(entity.FieldLinks, entity.FieldID)
		if _, err := e.target.CreateMetric(ctx, e.targetID, payload); err != nil {
			return fmt.Errorf("create metric %q: %w", m.SystemName, err)
		}
		e.cache.InvalidateTargetMetrics()
		e.report.Summary.CreatedMetrics++
		e.record(ActionCreateMetric, m.SystemName, "")
	}
	e.logger.Info("Metrics copied",
		zap.Int("missing", e.report.Summary.MissingMetrics),
		zap.Int("created", e.report.Summary.CreatedMetrics),
	)
	return nil
}
