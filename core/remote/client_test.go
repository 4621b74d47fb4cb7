package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"api-mirror/core/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClientWithHTTP(Endpoint{BaseURL: ts.URL, AccessToken: "tok"}, ts.Client())
}

func TestNewClient_RejectsURLWithoutToken(t *testing.T) {
	_, err := NewClient(Config{URL: "https://acme-admin.example.com"})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestClient_ShowService(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/admin/api/services/12.json", r.URL.Path)
		require.Equal(t, "tok", r.URL.Query().Get("access_token"))
		_, _ = io.WriteString(w, `{"service":{"id":12,"name":"Echo","system_name":"echo","backend_version":"1"}}`)
	})

	svc, err := c.ShowService(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), svc.ID)
	assert.Equal(t, "Echo", svc.Name)
	assert.Equal(t, "1", svc.BackendVersion)
}

func TestClient_ListMetricsUnwrapsEnvelopes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/api/services/3/metrics.json", r.URL.Path)
		_, _ = io.WriteString(w, `{"metrics":[{"metric":{"id":1,"system_name":"hits"}},{"metric":{"id":2,"system_name":"search","parent_id":1}}]}`)
	})

	metrics, err := c.ListMetrics(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.True(t, metrics[0].IsHits())
	assert.Equal(t, int64(1), metrics[1].ParentID)
}

func TestClient_ListApplicationPlansUsesPlansKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"plans":[{"application_plan":{"id":5,"system_name":"basic","custom":false,"default":true}}]}`)
	})

	plans, err := c.ListServiceApplicationPlans(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "basic", plans[0].SystemName)
	assert.True(t, plans[0].Default)
}

func TestClient_ListAcceptsBareItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"mapping_rules":[{"id":9,"pattern":"/","http_method":"GET","delta":1,"metric_id":1}]}`)
	})

	rules, err := c.ListMappingRules(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "/", rules[0].Pattern)
	assert.Equal(t, int64(1), rules[0].Delta)
}

func TestClient_ListMissingKeyIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	_, err := c.ListMetrics(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "metrics" list`)
}

func TestClient_CreateLimitPostsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/api/application_plans/7/metrics/70/limits.json", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "day", body["period"])
		assert.Equal(t, float64(100), body["value"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"limit":{"id":300,"metric_id":70,"period":"day","value":100}}`)
	})

	limit, err := c.CreateApplicationPlanLimit(context.Background(), 7, 70, entity.Fields{"period": "day", "value": 100})
	require.NoError(t, err)
	assert.Equal(t, int64(300), limit.ID)
	assert.Equal(t, int64(70), limit.MetricID)
}

func TestClient_UpdateServiceRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"errors":{"name":["can't be blank"]}}`)
	})

	_, err := c.UpdateService(context.Background(), 1, entity.Fields{"name": ""})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "can't be blank")
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"status":"Not found"}`)
	})

	_, err := c.ShowProxy(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestClient_DeleteMappingRule(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/api/services/3/proxy/mapping_rules/9.json", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.DeleteMappingRule(context.Background(), 3, 9))
	assert.True(t, called)
}

func TestClient_UpdateProxyUsesPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/admin/api/services/4/proxy.json", r.URL.Path)
		_, _ = io.WriteString(w, `{"proxy":{"service_id":4,"endpoint":"https://api.example.com"}}`)
	})

	proxy, err := c.UpdateProxy(context.Background(), 4, entity.Fields{"endpoint": "https://api.example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), proxy.ServiceID)
	assert.Equal(t, "https://api.example.com", proxy.Extra["endpoint"])
}
