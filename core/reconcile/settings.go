package reconcile

import (
	"context"
	"fmt"
	"strconv"

	"api-mirror/core/entity"
	"api-mirror/core/remote"

	"go.uber.org/zap"
)

// CopyServiceSettings overwrites the destination service with the whitelisted
// settings of the source service.
func (e *Engine) CopyServiceSettings(ctx context.Context) error {
	svc, err := e.source.ShowService(ctx, e.sourceID)
	if err != nil {
		return fmt.Errorf("show source service %d: %w", e.sourceID, err)
	}
	settings := svc.Settings()
	key := strconv.FormatInt(e.targetID, 10)

	if e.opts.DryRun {
		e.record(ActionUpdateService, key, "")
		return nil
	}
	if _, err := e.target.UpdateService(ctx, e.targetID, settings); err != nil {
		return fmt.Errorf("update target service %d: %w", e.targetID, err)
	}
	e.report.Summary.ServiceUpdated = true
	e.record(ActionUpdateService, key, "")
	e.logger.Info("Service settings copied", zap.Int("fields", len(settings)))
	return nil
}

// CopyProxySettings overwrites the destination proxy with the source proxy as a whole,
// minus the owner reference and links.
func (e *Engine) CopyProxySettings(ctx context.Context) error {
	proxy, err := e.source.ShowProxy(ctx, e.sourceID)
	if err != nil {
		return fmt.Errorf("show source proxy %d: %w", e.sourceID, err)
	}
	key := strconv.FormatInt(e.targetID, 10)

	if e.opts.DryRun {
		e.record(ActionUpdateProxy, key, "")
		return nil
	}
	payload := proxy.Fields().Without(entity.FieldServiceID, entity.FieldLinks)
	if _, err := e.target.UpdateProxy(ctx, e.targetID, payload); err != nil {
		return fmt.Errorf("update target proxy %d: %w", e.targetID, err)
	}
	e.report.Summary.ProxyUpdated = true
	e.record(ActionUpdateProxy, key, "")
	e.logger.Info("Proxy settings copied")
	return nil
}

// CreateServiceCopy creates a new destination service carrying the whitelisted settings
// of the source service. systemName overrides the source system name when set.
func CreateServiceCopy(ctx context.Context, source, target remote.Store, sourceServiceID int64, systemName string) (*entity.Service, error) {
	svc, err := source.ShowService(ctx, sourceServiceID)
	if err != nil {
		return nil, fmt.Errorf("show source service %d: %w", sourceServiceID, err)
	}
	fields := svc.Settings()
	if systemName == "" {
		systemName = svc.SystemName
	}
	if systemName != "" {
		fields[entity.FieldSystemName] = systemName
	}
	created, err := target.CreateService(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create target service %q: %w", systemName, err)
	}
	return created, nil
}
