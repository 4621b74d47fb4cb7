package entity

import "encoding/json"

// MappingRule increments a metric when a request matches its pattern and HTTP method.
type MappingRule struct {
	ID         int64
	Pattern    string
	HTTPMethod string
	Delta      int64
	MetricID   int64
	Extra      Fields
}

// MappingRuleFromFields builds a MappingRule from a raw record.
func MappingRuleFromFields(f Fields) MappingRule {
	return MappingRule{
		ID:         f.Int64(FieldID),
		Pattern:    f.String(FieldPattern),
		HTTPMethod: f.String(FieldHTTPMethod),
		Delta:      f.Int64(FieldDelta),
		MetricID:   f.Int64(FieldMetricID),
		Extra:      f.Without(FieldID, FieldPattern, FieldHTTPMethod, FieldDelta, FieldMetricID),
	}
}

// Fields returns the complete record.
func (r MappingRule) Fields() Fields {
	f := r.Extra.Clone()
	putID(f, FieldID, r.ID)
	putString(f, FieldPattern, r.Pattern)
	putString(f, FieldHTTPMethod, r.HTTPMethod)
	f[FieldDelta] = r.Delta
	putID(f, FieldMetricID, r.MetricID)
	return f
}

// Field reads a single field by name.
func (r MappingRule) Field(name string) (any, bool) {
	v, ok := r.Fields()[name]
	return v, ok
}

func (r MappingRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

func (r *MappingRule) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*r = MappingRuleFromFields(f)
	return nil
}
