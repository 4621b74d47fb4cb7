package reconcile

import (
	"context"
	"errors"
	"fmt"

	"api-mirror/core/entity"

	"go.uber.org/zap"
)

// CopyApplicationPlans creates the missing non-custom plans, then copies the missing
// limits of every plan present on both sides.
func (e *Engine) CopyApplicationPlans(ctx context.Context) error {
	sourcePlans, err := e.source.ListServiceApplicationPlans(ctx, e.sourceID)
	if err != nil {
		return fmt.Errorf("list source application plans: %w", err)
	}
	targetPlans, err := e.target.ListServiceApplicationPlans(ctx, e.targetID)
	if err != nil {
		return fmt.Errorf("list target application plans: %w", err)
	}

	missing := Missing(sourcePlans, targetPlans, planKeys)
	var planned []entity.ApplicationPlan
	for _, p := range missing {
		if p.Custom {
			e.report.Summary.SkippedPlans++
			e.record(ActionSkipPlan, p.SystemName, "custom plan")
			e.logger.Warn("Skipping custom application plan", zap.String("plan", p.SystemName), zap.Int64("plan_id", p.ID))
			continue
		}
		e.report.Summary.MissingPlans++
		if e.opts.DryRun {
			planned = append(planned, p)
			e.record(ActionCreatePlan, p.SystemName, "")
			continue
		}
		payload := p.Fields().Without(entity.FieldLinks, entity.FieldID, entity.FieldDefault, entity.FieldCustom)
		if _, err := e.target.CreateApplicationPlan(ctx, e.targetID, payload); err != nil {
			return fmt.Errorf("create application plan %q: %w", p.SystemName, err)
		}
		e.report.Summary.CreatedPlans++
		e.record(ActionCreatePlan, p.SystemName, "")
	}
	e.logger.Info("Application plans copied",
		zap.Int("missing", e.report.Summary.MissingPlans),
		zap.Int("created", e.report.Summary.CreatedPlans),
		zap.Int("skipped", e.report.Summary.SkippedPlans),
	)

	plans, err := e.cache.RebuildPlanMapping(ctx)
	if err != nil {
		return err
	}
	metrics, err := e.cache.MetricMapping(ctx)
	if err != nil {
		return err
	}

	err = plans.Each(func(sourcePlanID, targetPlanID int64) error {
		return e.copyLimits(ctx, metrics, sourcePlanID, targetPlanID)
	})
	if err != nil {
		return err
	}
	for _, p := range planned {
		if err := e.planLimits(ctx, p); err != nil {
			return err
		}
	}

	e.logger.Info("Limits copied",
		zap.Int("plans", plans.Len()),
		zap.Int("missing", e.report.Summary.MissingLimits),
		zap.Int("created", e.report.Summary.CreatedLimits),
	)
	return nil
}

func (e *Engine) copyLimits(ctx context.Context, metrics *Mapping, sourcePlanID, targetPlanID int64) error {
	sourceLimits, err := e.source.ListApplicationPlanLimits(ctx, sourcePlanID)
	if err != nil {
		return fmt.Errorf("list limits of source plan %d: %w", sourcePlanID, err)
	}
	targetLimits, err := e.target.ListApplicationPlanLimits(ctx, targetPlanID)
	if err != nil {
		return fmt.Errorf("list limits of target plan %d: %w", targetPlanID, err)
	}

	sameMetric := func(s, t entity.Limit) bool { return metrics.Maps(s.MetricID, t.MetricID) }
	missing := Missing(sourceLimits, targetLimits, limitKeys, sameMetric)
	e.report.Summary.MissingLimits += len(missing)

	for _, l := range missing {
		key := limitKey(targetPlanID, l)
		metricID, err := metrics.Lookup(l.MetricID)
		if err != nil {
			if e.opts.DryRun && errors.Is(err, ErrUnmappedReference) {
				e.record(ActionCreateLimit, key, err.Error())
				continue
			}
			return fmt.Errorf("limit %s of plan %d: %w", l.Period, sourcePlanID, err)
		}
		if e.opts.DryRun {
			e.record(ActionCreateLimit, key, "")
			continue
		}
		payload := l.Fields().Without(entity.FieldLinks, entity.FieldID, entity.FieldPlanID)
		payload[entity.FieldMetricID] = metricID
		if _, err := e.target.CreateApplicationPlanLimit(ctx, targetPlanID, metricID, payload); err != nil {
			return fmt.Errorf("create limit %s on plan %d: %w", l.Period, targetPlanID, err)
		}
		e.report.Summary.CreatedLimits++
		e.record(ActionCreateLimit, key, "")
	}
	e.logger.Debug("Plan limits compared",
		zap.Int64("source_plan", sourcePlanID),
		zap.Int64("target_plan", targetPlanID),
		zap.Int("missing", len(missing)),
	)
	return nil
}

// planLimits records the limits a dry run would copy onto a plan it has not created.
func (e *Engine) planLimits(ctx context.Context, p entity.ApplicationPlan) error {
	limits, err := e.source.ListApplicationPlanLimits(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("list limits of source plan %d: %w", p.ID, err)
	}
	e.report.Summary.MissingLimits += len(limits)
	for _, l := range limits {
		e.record(ActionCreateLimit, fmt.Sprintf("plan=%s metric=%d period=%s", p.SystemName, l.MetricID, l.Period), "plan not created yet")
	}
	return nil
}

func limitKey(targetPlanID int64, l entity.Limit) string {
	return fmt.Sprintf("plan=%d metric=%d period=%s", targetPlanID, l.MetricID, l.Period)
}
