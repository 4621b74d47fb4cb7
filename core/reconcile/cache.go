package reconcile

import (
	"context"
	"fmt"

	"api-mirror/core/entity"
	"api-mirror/core/remote"
)

// runCache holds the listings one run reads more than once. It lives and dies
// with its Engine, so nothing leaks between runs.
type runCache struct {
	source, target     remote.Store
	sourceID, targetID int64

	sourceMetrics []entity.Metric
	targetMetrics []entity.Metric
	metricMapping *Mapping
	planMapping   *Mapping
}

func newRunCache(source, target remote.Store, sourceID, targetID int64) *runCache {
	return &runCache{source: source, target: target, sourceID: sourceID, targetID: targetID}
}

// SourceMetrics lists the source metrics once per run. The source is never written to.
func (c *runCache) SourceMetrics(ctx context.Context) ([]entity.Metric, error) {
	if c.sourceMetrics != nil {
		return c.sourceMetrics, nil
	}
	metrics, err := c.source.ListMetrics(ctx, c.sourceID)
	if err != nil {
		return nil, fmt.Errorf("list source metrics: %w", err)
	}
	c.sourceMetrics = nonNil(metrics)
	return c.sourceMetrics, nil
}

// TargetMetrics lists the destination metrics, reusing the last listing until invalidated.
func (c *runCache) TargetMetrics(ctx context.Context) ([]entity.Metric, error) {
	if c.targetMetrics != nil {
		return c.targetMetrics, nil
	}
	metrics, err := c.target.ListMetrics(ctx, c.targetID)
	if err != nil {
		return nil, fmt.Errorf("list target metrics: %w", err)
	}
	c.targetMetrics = nonNil(metrics)
	return c.targetMetrics, nil
}

// InvalidateTargetMetrics drops the destination listing and the mapping derived from it.
func (c *runCache) InvalidateTargetMetrics() {
	c.targetMetrics = nil
	c.metricMapping = nil
}

// MetricMapping pairs source and destination metrics by system name.
func (c *runCache) MetricMapping(ctx context.Context) (*Mapping, error) {
	if c.metricMapping != nil {
		return c.metricMapping, nil
	}
	source, err := c.SourceMetrics(ctx)
	if err != nil {
		return nil, err
	}
	target, err := c.TargetMetrics(ctx)
	if err != nil {
		return nil, err
	}
	c.metricMapping = BuildMapping("metric", source, target, metricKeys, metricID)
	return c.metricMapping, nil
}

// RebuildPlanMapping pairs plans from fresh listings of both sides.
func (c *runCache) RebuildPlanMapping(ctx context.Context) (*Mapping, error) {
	source, err := c.source.ListServiceApplicationPlans(ctx, c.sourceID)
	if err != nil {
		return nil, fmt.Errorf("list source application plans: %w", err)
	}
	target, err := c.target.ListServiceApplicationPlans(ctx, c.targetID)
	if err != nil {
		return nil, fmt.Errorf("list target application plans: %w", err)
	}
	c.planMapping = BuildMapping("application plan", source, target, planKeys, planID)
	return c.planMapping, nil
}

func metricID(m entity.Metric) int64 { return m.ID }
func planID(p entity.ApplicationPlan) int64 { return p.ID }

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
