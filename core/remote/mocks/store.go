package mocks

import (
	"context"

	"api-mirror/core/entity"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of remote.Store
type Store struct {
	mock.Mock
}

func (m *Store) ShowService(ctx context.Context, id int64) (*entity.Service, error) {
	args := m.Called(ctx, id)
	svc, _ := args.Get(0).(*entity.Service)
	return svc, args.Error(1)
}

func (m *Store) UpdateService(ctx context.Context, id int64, fields entity.Fields) (*entity.Service, error) {
	args := m.Called(ctx, id, fields)
	svc, _ := args.Get(0).(*entity.Service)
	return svc, args.Error(1)
}

func (m *Store) CreateService(ctx context.Context, fields entity.Fields) (*entity.Service, error) {
	args := m.Called(ctx, fields)
	svc, _ := args.Get(0).(*entity.Service)
	return svc, args.Error(1)
}

func (m *Store) ShowProxy(ctx context.Context, serviceID int64) (*entity.Proxy, error) {
	args := m.Called(ctx, serviceID)
	proxy, _ := args.Get(0).(*entity.Proxy)
	return proxy, args.Error(1)
}

func (m *Store) UpdateProxy(ctx context.Context, serviceID int64, proxy entity.Fields) (*entity.Proxy, error) {
	args := m.Called(ctx, serviceID, proxy)
	out, _ := args.Get(0).(*entity.Proxy)
	return out, args.Error(1)
}

func (m *Store) ListMetrics(ctx context.Context, serviceID int64) ([]entity.Metric, error) {
	args := m.Called(ctx, serviceID)
	list, _ := args.Get(0).([]entity.Metric)
	return list, args.Error(1)
}

func (m *Store) CreateMetric(ctx context.Context, serviceID int64, metric entity.Fields) (*entity.Metric, error) {
	args := m.Called(ctx, serviceID, metric)
	out, _ := args.Get(0).(*entity.Metric)
	return out, args.Error(1)
}

func (m *Store) ListMethods(ctx context.Context, serviceID, metricID int64) ([]entity.Method, error) {
	args := m.Called(ctx, serviceID, metricID)
	list, _ := args.Get(0).([]entity.Method)
	return list, args.Error(1)
}

func (m *Store) CreateMethod(ctx context.Context, serviceID, metricID int64, method entity.Fields) (*entity.Method, error) {
	args := m.Called(ctx, serviceID, metricID, method)
	out, _ := args.Get(0).(*entity.Method)
	return out, args.Error(1)
}

func (m *Store) ListServiceApplicationPlans(ctx context.Context, serviceID int64) ([]entity.ApplicationPlan, error) {
	args := m.Called(ctx, serviceID)
	list, _ := args.Get(0).([]entity.ApplicationPlan)
	return list, args.Error(1)
}

func (m *Store) CreateApplicationPlan(ctx context.Context, serviceID int64, plan entity.Fields) (*entity.ApplicationPlan, error) {
	args := m.Called(ctx, serviceID, plan)
	out, _ := args.Get(0).(*entity.ApplicationPlan)
	return out, args.Error(1)
}

func (m *Store) ListApplicationPlanLimits(ctx context.Context, planID int64) ([]entity.Limit, error) {
	args := m.Called(ctx, planID)
	list, _ := args.Get(0).([]entity.Limit)
	return list, args.Error(1)
}

func (m *Store) CreateApplicationPlanLimit(ctx context.Context, planID, metricID int64, limit entity.Fields) (*entity.Limit, error) {
	args := m.Called(ctx, planID, metricID, limit)
	out, _ := args.Get(0).(*entity.Limit)
	return out, args.Error(1)
}

func (m *Store) ListMappingRules(ctx context.Context, serviceID int64) ([]entity.MappingRule, error) {
	args := m.Called(ctx, serviceID)
	list, _ := args.Get(0).([]entity.MappingRule)
	return list, args.Error(1)
}

func (m *Store) CreateMappingRule(ctx context.Context, serviceID int64, rule entity.Fields) (*entity.MappingRule, error) {
	args := m.Called(ctx, serviceID, rule)
	out, _ := args.Get(0).(*entity.MappingRule)
	return out, args.Error(1)
}

func (m *Store) DeleteMappingRule(ctx context.Context, serviceID, ruleID int64) error {
	args := m.Called(ctx, serviceID, ruleID)
	return args.Error(0)
}
