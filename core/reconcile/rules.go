package reconcile

import (
	"context"
	"errors"
	"fmt"

	"api-mirror/core/entity"

	"go.uber.org/zap"
)

// CopyMappingRules creates the source mapping rules the destination lacks. Rules are
// compared with consumption, so duplicated source rules need as many destination copies.
// With force every destination rule is deleted first and all source rules are created.
func (e *Engine) CopyMappingRules(ctx context.Context, force bool) error {
	sourceRules, err := e.source.ListMappingRules(ctx, e.sourceID)
	if err != nil {
		return fmt.Errorf("list source mapping rules: %w", err)
	}
	targetRules, err := e.target.ListMappingRules(ctx, e.targetID)
	if err != nil {
		return fmt.Errorf("list target mapping rules: %w", err)
	}
	metrics, err := e.cache.MetricMapping(ctx)
	if err != nil {
		return err
	}

	var missing []entity.MappingRule
	if force {
		for _, r := range targetRules {
			key := ruleKey(r)
			if e.opts.DryRun {
				e.record(ActionDeleteMappingRule, key, "")
				continue
			}
			if err := e.target.DeleteMappingRule(ctx, e.targetID, r.ID); err != nil {
				return fmt.Errorf("delete mapping rule %d (%s): %w", r.ID, key, err)
			}
			e.report.Summary.DeletedMappingRules++
			e.record(ActionDeleteMappingRule, key, "")
		}
		missing = sourceRules
	} else {
		sameMetric := func(s, t entity.MappingRule) bool { return metrics.Maps(s.MetricID, t.MetricID) }
		missing = MissingConsuming(sourceRules, targetRules, ruleKeys, sameMetric)
	}
	e.report.Summary.MissingMappingRules += len(missing)

	for _, r := range missing {
		key := ruleKey(r)
		metricID, err := metrics.Lookup(r.MetricID)
		if err != nil {
			if e.opts.DryRun && errors.Is(err, ErrUnmappedReference) {
				e.record(ActionCreateMappingRule, key, err.Error())
				continue
			}
			return fmt.Errorf("mapping rule %s: %w", key, err)
		}
		if e.opts.DryRun {
			e.record(ActionCreateMappingRule, key, "")
			continue
		}
		payload := r.Fields().Without(entity.FieldLinks, entity.FieldID)
		payload[entity.FieldMetricID] = metricID
		if _, err := e.target.CreateMappingRule(ctx, e.targetID, payload); err != nil {
			return fmt.Errorf("create mapping rule %s: %w", key, err)
		}
		e.report.Summary.CreatedMappingRules++
		e.record(ActionCreateMappingRule, key, "")
	}

	e.logger.Info("Mapping rules copied",
		zap.Bool("force", force),
		zap.Int("deleted", e.report.Summary.DeletedMappingRules),
		zap.Int("missing", len(missing)),
		zap.Int("created", e.report.Summary.CreatedMappingRules),
	)
	return nil
}

func ruleKey(r entity.MappingRule) string {
	return fmt.Sprintf("%s %s +%d", r.HTTPMethod, r.Pattern, r.Delta)
}
