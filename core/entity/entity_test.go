package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetric_DecodeCoercesLooseScalars(t *testing.T) {
	data := []byte(`{"id":"42","system_name":"hits","friendly_name":"Hits","unit":"hit","links":[{"rel":"self"}],"created_at":"2024-01-01"}`)

	var m Metric
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, int64(42), m.ID)
	assert.True(t, m.IsHits())
	assert.Equal(t, "hit", m.Unit)
	assert.Contains(t, m.Extra, FieldLinks)
	assert.Contains(t, m.Extra, "created_at")
	assert.NotContains(t, m.Extra, FieldID, "typed fields must not leak into the passthrough bag")
}

func TestMetric_FieldsRoundTrip(t *testing.T) {
	m := Metric{ID: 7, SystemName: "requests", Extra: Fields{"description": "all requests"}}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var back Metric
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m.ID, back.ID)
	assert.Equal(t, m.SystemName, back.SystemName)
	assert.Equal(t, "all requests", back.Extra["description"])
}

func TestApplicationPlan_FlagsAcceptStringsAndNumbers(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		custom bool
		def    bool
	}{
		{name: "booleans", data: `{"custom":true,"default":false}`, custom: true},
		{name: "strings", data: `{"custom":"false","default":"true"}`, def: true},
		{name: "numbers", data: `{"custom":1,"default":0}`, custom: true},
		{name: "absent", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p ApplicationPlan
			require.NoError(t, json.Unmarshal([]byte(tt.data), &p))
			assert.Equal(t, tt.custom, p.Custom)
			assert.Equal(t, tt.def, p.Default)
		})
	}
}

func TestService_SettingsWhitelist(t *testing.T) {
	var s Service
	data := []byte(`{"id":1,"name":"Echo","system_name":"echo","backend_version":"2","deployment_option":"hosted","end_user_registration_required":false,"state":"incomplete","account_id":9}`)
	require.NoError(t, json.Unmarshal(data, &s))

	settings := s.Settings()
	assert.Equal(t, Fields{
		FieldName:                        "Echo",
		FieldBackendVersion:              "2",
		FieldDeploymentOption:            "hosted",
		FieldEndUserRegistrationRequired: false,
	}, settings)
}

func TestService_SettingsOmitsAbsentFlag(t *testing.T) {
	s := ServiceFromFields(Fields{FieldName: "Echo"})
	assert.Nil(t, s.EndUserRegistrationRequired)
	assert.NotContains(t, s.Settings(), FieldEndUserRegistrationRequired)
}

func TestFields_WithoutDoesNotMutate(t *testing.T) {
	f := Fields{FieldID: 1, FieldLinks: []any{}, FieldPattern: "/"}
	out := f.Without(FieldID, FieldLinks)

	assert.Equal(t, Fields{FieldPattern: "/"}, out)
	assert.Len(t, f, 3)
}

func TestMappingRule_FieldReadsTypedValues(t *testing.T) {
	r := MappingRuleFromFields(Fields{"pattern": "/v1", "http_method": "GET", "delta": float64(2), "metric_id": "5"})

	v, ok := r.Field(FieldDelta)
	require.True(t, ok)
	assert.Equal(t, int64(2), v)

	v, ok = r.Field(FieldMetricID)
	require.True(t, ok)
	assert.Equal(t, int64(5), v)

	_, ok = r.Field("missing")
	assert.False(t, ok)
}

func TestProxy_WholesaleCopyKeepsUnknownFields(t *testing.T) {
	var p Proxy
	require.NoError(t, json.Unmarshal([]byte(`{"service_id":3,"endpoint":"https://api.example.com","policies_config":[{"name":"apicast"}]}`), &p))

	f := p.Fields()
	assert.Equal(t, int64(3), f[FieldServiceID])
	assert.Equal(t, "https://api.example.com", f["endpoint"])
	assert.NotNil(t, f["policies_config"])
}
