package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"api-mirror/core/entity"
)

// Store defines the read and write operations the reconciler issues against one service endpoint.
type Store interface {
	// ShowService returns the service with the given id.
	ShowService(ctx context.Context, id int64) (*entity.Service, error)
	// UpdateService applies a partial update to a service.
	UpdateService(ctx context.Context, id int64, fields entity.Fields) (*entity.Service, error)
	// CreateService creates a new service.
	CreateService(ctx context.Context, fields entity.Fields) (*entity.Service, error)

	// ShowProxy returns the proxy configuration of a service.
	ShowProxy(ctx context.Context, serviceID int64) (*entity.Proxy, error)
	// UpdateProxy overwrites the proxy configuration of a service.
	UpdateProxy(ctx context.Context, serviceID int64, proxy entity.Fields) (*entity.Proxy, error)

	// ListMetrics lists the metrics of a service. Methods are listed too, carrying a parent_id.
	ListMetrics(ctx context.Context, serviceID int64) ([]entity.Metric, error)
	// CreateMetric creates a top-level metric.
	CreateMetric(ctx context.Context, serviceID int64, metric entity.Fields) (*entity.Metric, error)

	// ListMethods lists the methods under a parent metric.
	ListMethods(ctx context.Context, serviceID, metricID int64) ([]entity.Method, error)
	// CreateMethod creates a method under a parent metric.
	CreateMethod(ctx context.Context, serviceID, metricID int64, method entity.Fields) (*entity.Method, error)

	// ListServiceApplicationPlans lists the application plans of a service.
	ListServiceApplicationPlans(ctx context.Context, serviceID int64) ([]entity.ApplicationPlan, error)
	// CreateApplicationPlan creates an application plan.
	CreateApplicationPlan(ctx context.Context, serviceID int64, plan entity.Fields) (*entity.ApplicationPlan, error)

	// ListApplicationPlanLimits lists the limits of a plan.
	ListApplicationPlanLimits(ctx context.Context, planID int64) ([]entity.Limit, error)
	// CreateApplicationPlanLimit creates a limit on a plan for the given metric.
	CreateApplicationPlanLimit(ctx context.Context, planID, metricID int64, limit entity.Fields) (*entity.Limit, error)

	// ListMappingRules lists the proxy mapping rules of a service.
	ListMappingRules(ctx context.Context, serviceID int64) ([]entity.MappingRule, error)
	// CreateMappingRule creates a proxy mapping rule.
	CreateMappingRule(ctx context.Context, serviceID int64, rule entity.Fields) (*entity.MappingRule, error)
	// DeleteMappingRule deletes a proxy mapping rule.
	DeleteMappingRule(ctx context.Context, serviceID, ruleID int64) error
}

var (
	// ErrNotFound is matched by an APIError carrying a 404.
	ErrNotFound = errors.New("not found")
	// ErrRejected is matched by an APIError the store returned for an invalid write.
	ErrRejected = errors.New("rejected by store")
)

// APIError is a non-success response from the remote store.
type APIError struct {
	StatusCode int
	Status     string
	Method     string
	Path       string
	// Errors holds the decoded "errors" payload, if the store sent one.
	Errors any
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Method, e.Path, e.Status)
	if e.Errors != nil {
		fmt.Fprintf(&b, ": %v", e.Errors)
	}
	return b.String()
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRejected:
		return e.StatusCode == http.StatusUnprocessableEntity || e.StatusCode == http.StatusBadRequest
	}
	return false
}
