// Package memory provides an in-memory remote.Store.
//
// It mimics the behaviour of the hosted service closely enough to drive reconciliation
// end to end: ids are assigned on create, every new service owns a "hits" metric, methods
// are listed alongside metrics, system names are unique per service, and limits or
// mapping rules that reference an unknown metric are rejected.
package memory

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"api-mirror/core/entity"
	"api-mirror/core/remote"
)

// Call records one write issued against the store.
type Call struct {
	Op     string
	Fields entity.Fields
}

type service struct {
	record entity.Fields
	proxy  entity.Fields
	// metrics holds metrics and methods; methods carry a parent_id.
	metrics []entity.Fields
	plans   []entity.Fields
	rules   []entity.Fields
}

// Store is a goroutine-safe in-memory remote.Store.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	services map[int64]*service
	limits   map[int64][]entity.Fields
	planSvc  map[int64]int64
	calls    []Call
}

var _ remote.Store = (*Store)(nil)

// New creates an empty store whose ids start at firstID. Giving the source and the
// destination different ranges keeps their opaque ids from colliding by accident.
func New(firstID int64) *Store {
	return &Store{
		nextID:   firstID,
		services: make(map[int64]*service),
		limits:   make(map[int64][]entity.Fields),
		planSvc:  make(map[int64]int64),
	}
}

// Calls returns the writes issued so far, in order.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// ResetCalls forgets the recorded writes.
func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Proxy returns the stored proxy of a service.
func (s *Store) Proxy(serviceID int64) entity.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc, ok := s.services[serviceID]; ok {
		return svc.proxy.Clone()
	}
	return nil
}

func (s *Store) ShowService(_ context.Context, id int64) (*entity.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(id)
	if err != nil {
		return nil, err
	}
	out := entity.ServiceFromFields(svc.record.Clone())
	return &out, nil
}

func (s *Store) UpdateService(_ context.Context, id int64, fields entity.Fields) (*entity.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(id)
	if err != nil {
		return nil, err
	}
	if name, ok := fields[entity.FieldName]; ok && name == "" {
		return nil, rejected("PUT", "service", map[string]any{"name": []string{"can't be blank"}})
	}
	s.record("update_service", fields)
	for k, v := range fields {
		svc.record[k] = v
	}
	out := entity.ServiceFromFields(svc.record.Clone())
	return &out, nil
}

func (s *Store) CreateService(_ context.Context, fields entity.Fields) (*entity.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	systemName := fields.String(entity.FieldSystemName)
	for _, svc := range s.services {
		if systemName != "" && svc.record.String(entity.FieldSystemName) == systemName {
			return nil, rejected("POST", "services", map[string]any{"system_name": []string{"has already been taken"}})
		}
	}
	s.record("create_service", fields)
	id := s.addService(fields)
	out := entity.ServiceFromFields(s.services[id].record.Clone())
	return &out, nil
}

// AddService seeds a service together with its hits metric and returns the service id.
func (s *Store) AddService(fields entity.Fields) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addService(fields)
}

func (s *Store) addService(fields entity.Fields) int64 {
	id := s.id()
	record := fields.Clone()
	record[entity.FieldID] = id
	svc := &service{
		record: record,
		proxy:  entity.Fields{entity.FieldServiceID: id},
	}
	svc.metrics = append(svc.metrics, entity.Fields{
		entity.FieldID:           s.id(),
		entity.FieldSystemName:   entity.HitsSystemName,
		entity.FieldFriendlyName: "Hits",
		entity.FieldUnit:         "hit",
	})
	s.services[id] = svc
	return id
}

// RemoveMetric drops a metric or method. Used to simulate broken services.
func (s *Store) RemoveMetric(serviceID, metricID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[serviceID]
	if !ok {
		return
	}
	kept := svc.metrics[:0]
	for _, m := range svc.metrics {
		if m.Int64(entity.FieldID) != metricID {
			kept = append(kept, m)
		}
	}
	svc.metrics = kept
}

func (s *Store) ShowProxy(_ context.Context, serviceID int64) (*entity.Proxy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	out := entity.ProxyFromFields(svc.proxy.Clone())
	return &out, nil
}

func (s *Store) UpdateProxy(_ context.Context, serviceID int64, proxy entity.Fields) (*entity.Proxy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	s.record("update_proxy", proxy)
	for k, v := range proxy {
		if k == entity.FieldServiceID {
			continue
		}
		svc.proxy[k] = v
	}
	out := entity.ProxyFromFields(svc.proxy.Clone())
	return &out, nil
}

func (s *Store) ListMetrics(_ context.Context, serviceID int64) ([]entity.Metric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Metric, 0, len(svc.metrics))
	for _, m := range svc.metrics {
		out = append(out, entity.MetricFromFields(m.Clone()))
	}
	return out, nil
}

func (s *Store) CreateMetric(_ context.Context, serviceID int64, metric entity.Fields) (*entity.Metric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created, err := s.createMetric(serviceID, 0, metric, "create_metric")
	if err != nil {
		return nil, err
	}
	out := entity.MetricFromFields(created)
	return &out, nil
}

func (s *Store) ListMethods(_ context.Context, serviceID, metricID int64) ([]entity.Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	if !s.hasMetric(svc, metricID) {
		return nil, notFound("GET", fmt.Sprintf("metric %d", metricID))
	}
	var out []entity.Method
	for _, m := range svc.metrics {
		if m.Int64(entity.FieldParentID) == metricID {
			out = append(out, entity.MethodFromFields(m.Clone()))
		}
	}
	return out, nil
}

func (s *Store) CreateMethod(_ context.Context, serviceID, metricID int64, method entity.Fields) (*entity.Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	if !s.hasMetric(svc, metricID) {
		return nil, notFound("POST", fmt.Sprintf("metric %d", metricID))
	}
	created, err := s.createMetric(serviceID, metricID, method, "create_method")
	if err != nil {
		return nil, err
	}
	out := entity.MethodFromFields(created)
	return &out, nil
}

func (s *Store) createMetric(serviceID, parentID int64, fields entity.Fields, op string) (entity.Fields, error) {
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	systemName := fields.String(entity.FieldSystemName)
	if systemName == "" {
		return nil, rejected("POST", "metric", map[string]any{"system_name": []string{"can't be blank"}})
	}
	for _, m := range svc.metrics {
		if m.String(entity.FieldSystemName) == systemName {
			return nil, rejected("POST", "metric", map[string]any{"system_name": []string{"has already been taken"}})
		}
	}
	s.record(op, fields)
	record := fields.Clone()
	record[entity.FieldID] = s.id()
	if parentID != 0 {
		record[entity.FieldParentID] = parentID
	}
	svc.metrics = append(svc.metrics, record)
	return record.Clone(), nil
}

func (s *Store) ListServiceApplicationPlans(_ context.Context, serviceID int64) ([]entity.ApplicationPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.ApplicationPlan, 0, len(svc.plans))
	for _, p := range svc.plans {
		out = append(out, entity.ApplicationPlanFromFields(p.Clone()))
	}
	return out, nil
}

func (s *Store) CreateApplicationPlan(_ context.Context, serviceID int64, plan entity.Fields) (*entity.ApplicationPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	systemName := plan.String(entity.FieldSystemName)
	for _, p := range svc.plans {
		if systemName != "" && p.String(entity.FieldSystemName) == systemName {
			return nil, rejected("POST", "application_plan", map[string]any{"system_name": []string{"has already been taken"}})
		}
	}
	s.record("create_application_plan", plan)
	record := plan.Clone()
	id := s.id()
	record[entity.FieldID] = id
	svc.plans = append(svc.plans, record)
	s.planSvc[id] = serviceID
	out := entity.ApplicationPlanFromFields(record.Clone())
	return &out, nil
}

func (s *Store) ListApplicationPlanLimits(_ context.Context, planID int64) ([]entity.Limit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.planSvc[planID]; !ok {
		return nil, notFound("GET", fmt.Sprintf("application plan %d", planID))
	}
	out := make([]entity.Limit, 0, len(s.limits[planID]))
	for _, l := range s.limits[planID] {
		out = append(out, entity.LimitFromFields(l.Clone()))
	}
	return out, nil
}

func (s *Store) CreateApplicationPlanLimit(_ context.Context, planID, metricID int64, limit entity.Fields) (*entity.Limit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	serviceID, ok := s.planSvc[planID]
	if !ok {
		return nil, notFound("POST", fmt.Sprintf("application plan %d", planID))
	}
	if !s.hasMetric(s.services[serviceID], metricID) {
		return nil, notFound("POST", fmt.Sprintf("metric %d", metricID))
	}
	s.record("create_limit", limit)
	record := limit.Clone()
	record[entity.FieldID] = s.id()
	record[entity.FieldMetricID] = metricID
	record[entity.FieldPlanID] = planID
	s.limits[planID] = append(s.limits[planID], record)
	out := entity.LimitFromFields(record.Clone())
	return &out, nil
}

func (s *Store) ListMappingRules(_ context.Context, serviceID int64) ([]entity.MappingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.MappingRule, 0, len(svc.rules))
	for _, r := range svc.rules {
		out = append(out, entity.MappingRuleFromFields(r.Clone()))
	}
	return out, nil
}

func (s *Store) CreateMappingRule(_ context.Context, serviceID int64, rule entity.Fields) (*entity.MappingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return nil, err
	}
	if !s.hasMetric(svc, rule.Int64(entity.FieldMetricID)) {
		return nil, rejected("POST", "mapping_rule", map[string]any{"metric_id": []string{"is invalid"}})
	}
	s.record("create_mapping_rule", rule)
	record := rule.Clone()
	record[entity.FieldID] = s.id()
	svc.rules = append(svc.rules, record)
	out := entity.MappingRuleFromFields(record.Clone())
	return &out, nil
}

func (s *Store) DeleteMappingRule(_ context.Context, serviceID, ruleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, err := s.service(serviceID)
	if err != nil {
		return err
	}
	for i, r := range svc.rules {
		if r.Int64(entity.FieldID) == ruleID {
			s.record("delete_mapping_rule", entity.Fields{entity.FieldID: ruleID})
			svc.rules = append(svc.rules[:i], svc.rules[i+1:]...)
			return nil
		}
	}
	return notFound("DELETE", fmt.Sprintf("mapping rule %d", ruleID))
}

func (s *Store) service(id int64) (*service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, notFound("GET", fmt.Sprintf("service %d", id))
	}
	return svc, nil
}

func (s *Store) hasMetric(svc *service, metricID int64) bool {
	if svc == nil {
		return false
	}
	for _, m := range svc.metrics {
		if m.Int64(entity.FieldID) == metricID {
			return true
		}
	}
	return false
}

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) record(op string, fields entity.Fields) {
	s.calls = append(s.calls, Call{Op: op, Fields: fields.Clone()})
}

func notFound(method, what string) error {
	return &remote.APIError{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Method:     method,
		Path:       what,
	}
}

func rejected(method, what string, errs map[string]any) error {
	return &remote.APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Status:     "422 Unprocessable Entity",
		Method:     method,
		Path:       what,
		Errors:     errs,
	}
}
