package remote

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"api-mirror/core/entity"
)

const apiPrefix = "/admin/api"

// Client implements Store against the Account Management REST API.
type Client struct {
	endpoint   Endpoint
	httpClient *http.Client
}

var _ Store = (*Client)(nil)

// NewClient creates a REST client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	ep, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}, //nolint:gosec // opt-in for self-signed installs
	}

	return NewClientWithHTTP(ep, &http.Client{Transport: transport}), nil
}

// NewClientWithHTTP creates a client around a ready http.Client.
func NewClientWithHTTP(ep Endpoint, hc *http.Client) *Client {
	return &Client{endpoint: ep, httpClient: hc}
}

// BaseURL returns the endpoint the client talks to, without credentials.
func (c *Client) BaseURL() string {
	return c.endpoint.BaseURL
}

func (c *Client) ShowService(ctx context.Context, id int64) (*entity.Service, error) {
	return fetchOne[entity.Service](ctx, c, http.MethodGet, fmt.Sprintf("/services/%d.json", id), nil, "service")
}

func (c *Client) UpdateService(ctx context.Context, id int64, fields entity.Fields) (*entity.Service, error) {
	return fetchOne[entity.Service](ctx, c, http.MethodPut, fmt.Sprintf("/services/%d.json", id), fields, "service")
}

func (c *Client) CreateService(ctx context.Context, fields entity.Fields) (*entity.Service, error) {
	return fetchOne[entity.Service](ctx, c, http.MethodPost, "/services.json", fields, "service")
}

func (c *Client) ShowProxy(ctx context.Context, serviceID int64) (*entity.Proxy, error) {
	return fetchOne[entity.Proxy](ctx, c, http.MethodGet, fmt.Sprintf("/services/%d/proxy.json", serviceID), nil, "proxy")
}

func (c *Client) UpdateProxy(ctx context.Context, serviceID int64, proxy entity.Fields) (*entity.Proxy, error) {
	return fetchOne[entity.Proxy](ctx, c, http.MethodPatch, fmt.Sprintf("/services/%d/proxy.json", serviceID), proxy, "proxy")
}

func (c *Client) ListMetrics(ctx context.Context, serviceID int64) ([]entity.Metric, error) {
	return fetchList[entity.Metric](ctx, c, fmt.Sprintf("/services/%d/metrics.json", serviceID), "metrics", "metric")
}

func (c *Client) CreateMetric(ctx context.Context, serviceID int64, metric entity.Fields) (*entity.Metric, error) {
	return fetchOne[entity.Metric](ctx, c, http.MethodPost, fmt.Sprintf("/services/%d/metrics.json", serviceID), metric, "metric")
}

func (c *Client) ListMethods(ctx context.Context, serviceID, metricID int64) ([]entity.Method, error) {
	return fetchList[entity.Method](ctx, c, fmt.Sprintf("/services/%d/metrics/%d/methods.json", serviceID, metricID), "methods", "method")
}

func (c *Client) CreateMethod(ctx context.Context, serviceID, metricID int64, method entity.Fields) (*entity.Method, error) {
	return fetchOne[entity.Method](ctx, c, http.MethodPost, fmt.Sprintf("/services/%d/metrics/%d/methods.json", serviceID, metricID), method, "method")
}

func (c *Client) ListServiceApplicationPlans(ctx context.Context, serviceID int64) ([]entity.ApplicationPlan, error) {
	return fetchList[entity.ApplicationPlan](ctx, c, fmt.Sprintf("/services/%d/application_plans.json", serviceID), "plans", "application_plan")
}

func (c *Client) CreateApplicationPlan(ctx context.Context, serviceID int64, plan entity.Fields) (*entity.ApplicationPlan, error) {
	return fetchOne[entity.ApplicationPlan](ctx, c, http.MethodPost, fmt.Sprintf("/services/%d/application_plans.json", serviceID), plan, "application_plan")
}

func (c *Client) ListApplicationPlanLimits(ctx context.Context, planID int64) ([]entity.Limit, error) {
	return fetchList[entity.Limit](ctx, c, fmt.Sprintf("/application_plans/%d/limits.json", planID), "limits", "limit")
}

func (c *Client) CreateApplicationPlanLimit(ctx context.Context, planID, metricID int64, limit entity.Fields) (*entity.Limit, error) {
	return fetchOne[entity.Limit](ctx, c, http.MethodPost, fmt.Sprintf("/application_plans/%d/metrics/%d/limits.json", planID, metricID), limit, "limit")
}

func (c *Client) ListMappingRules(ctx context.Context, serviceID int64) ([]entity.MappingRule, error) {
	return fetchList[entity.MappingRule](ctx, c, fmt.Sprintf("/services/%d/proxy/mapping_rules.json", serviceID), "mapping_rules", "mapping_rule")
}

func (c *Client) CreateMappingRule(ctx context.Context, serviceID int64, rule entity.Fields) (*entity.MappingRule, error) {
	return fetchOne[entity.MappingRule](ctx, c, http.MethodPost, fmt.Sprintf("/services/%d/proxy/mapping_rules.json", serviceID), rule, "mapping_rule")
}

func (c *Client) DeleteMappingRule(ctx context.Context, serviceID, ruleID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/services/%d/proxy/mapping_rules/%d.json", serviceID, ruleID), nil)
	return err
}

// do sends one request and returns the raw response body of a successful call.
func (c *Client) do(ctx context.Context, method, path string, body entity.Fields) ([]byte, error) {
	q := url.Values{}
	q.Set("access_token", c.endpoint.AccessToken)
	target := c.endpoint.BaseURL + apiPrefix + path + "?" + q.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     method,
			Path:       path,
		}
		var payload struct {
			Errors any `json:"errors"`
			Error  any `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Errors = payload.Errors
			if apiErr.Errors == nil {
				apiErr.Errors = payload.Error
			}
		}
		return nil, apiErr
	}

	return data, nil
}

func fetchOne[T any](ctx context.Context, c *Client, method, path string, body entity.Fields, kind string) (*T, error) {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var out T
	if err := decodeOne(data, kind, &out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return &out, nil
}

func fetchList[T any](ctx context.Context, c *Client, path, plural, kind string) ([]T, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	out, err := decodeList[T](data, plural, kind)
	if err != nil {
		return nil, fmt.Errorf("decode GET %s: %w", path, err)
	}
	return out, nil
}

// decodeOne accepts both {"<kind>": {...}} and a bare record.
func decodeOne[T any](data []byte, kind string, out *T) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err == nil {
		if inner, ok := env[kind]; ok {
			data = inner
		}
	}
	return json.Unmarshal(data, out)
}

// decodeList accepts {"<plural>": [...]} or a bare array, with enveloped or bare items.
func decodeList[T any](data []byte, plural, kind string) ([]T, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err == nil {
		inner, ok := env[plural]
		if !ok {
			return nil, fmt.Errorf("response has no %q list", plural)
		}
		data = inner
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := decodeOne(item, kind, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
