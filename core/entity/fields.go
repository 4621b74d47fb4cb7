package entity

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// Field names the reconciler reads or strips.
const (
	FieldID                          = "id"
	FieldLinks                       = "links"
	FieldName                        = "name"
	FieldSystemName                  = "system_name"
	FieldFriendlyName                = "friendly_name"
	FieldUnit                        = "unit"
	FieldParentID                    = "parent_id"
	FieldServiceID                   = "service_id"
	FieldBackendVersion              = "backend_version"
	FieldDeploymentOption            = "deployment_option"
	FieldEndUserRegistrationRequired = "end_user_registration_required"
	FieldDefault                     = "default"
	FieldCustom                      = "custom"
	FieldMetricID                    = "metric_id"
	FieldPlanID                      = "plan_id"
	FieldPeriod                      = "period"
	FieldValue                       = "value"
	FieldPattern                     = "pattern"
	FieldHTTPMethod                  = "http_method"
	FieldDelta                       = "delta"
)

// HitsSystemName is the system name of the root usage metric every service owns.
const HitsSystemName = "hits"

// Fields is a flat record of field names to scalar or nested values.
type Fields map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Without returns a copy of f with the given keys removed.
func (f Fields) Without(keys ...string) Fields {
	out := f.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Only returns a copy of f holding just the given keys that are present.
func (f Fields) Only(keys ...string) Fields {
	out := make(Fields, len(keys))
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Int64 reads key as an int64, coercing numbers and numeric strings.
func (f Fields) Int64(key string) int64 {
	return cast.ToInt64(f[key])
}

// String reads key as a string. Missing keys yield "".
func (f Fields) String(key string) string {
	if v, ok := f[key]; ok && v != nil {
		return cast.ToString(v)
	}
	return ""
}

// Bool reads key as a bool, accepting true/"true"/1.
func (f Fields) Bool(key string) bool {
	return cast.ToBool(f[key])
}

func decodeFields(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func putID(f Fields, key string, id int64) {
	if id != 0 {
		f[key] = id
	}
}

func putString(f Fields, key, v string) {
	if v != "" {
		f[key] = v
	}
}
