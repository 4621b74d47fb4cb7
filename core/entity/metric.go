package entity

import "encoding/json"

// Metric is a countable dimension of API usage.
type Metric struct {
	ID           int64
	SystemName   string
	FriendlyName string
	Unit         string
	// ParentID is set when the remote store lists a method alongside metrics.
	ParentID int64
	Extra    Fields
}

// MetricFromFields builds a Metric from a raw record.
func MetricFromFields(f Fields) Metric {
	return Metric{
		ID:           f.Int64(FieldID),
		SystemName:   f.String(FieldSystemName),
		FriendlyName: f.String(FieldFriendlyName),
		Unit:         f.String(FieldUnit),
		ParentID:     f.Int64(FieldParentID),
		Extra:        f.Without(FieldID, FieldSystemName, FieldFriendlyName, FieldUnit, FieldParentID),
	}
}

// Fields returns the complete record.
func (m Metric) Fields() Fields {
	f := m.Extra.Clone()
	putID(f, FieldID, m.ID)
	putString(f, FieldSystemName, m.SystemName)
	putString(f, FieldFriendlyName, m.FriendlyName)
	putString(f, FieldUnit, m.Unit)
	putID(f, FieldParentID, m.ParentID)
	return f
}

// Field reads a single field by name.
func (m Metric) Field(name string) (any, bool) {
	v, ok := m.Fields()[name]
	return v, ok
}

// IsHits reports whether m is the root usage metric.
func (m Metric) IsHits() bool {
	return m.SystemName == HitsSystemName
}

func (m Metric) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Fields())
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*m = MetricFromFields(f)
	return nil
}

// Method is a sub-metric of the hits metric representing one API operation.
type Method struct {
	ID           int64
	SystemName   string
	FriendlyName string
	ParentID     int64
	Extra        Fields
}

// MethodFromFields builds a Method from a raw record.
func MethodFromFields(f Fields) Method {
	return Method{
		ID:           f.Int64(FieldID),
		SystemName:   f.String(FieldSystemName),
		FriendlyName: f.String(FieldFriendlyName),
		ParentID:     f.Int64(FieldParentID),
		Extra:        f.Without(FieldID, FieldSystemName, FieldFriendlyName, FieldParentID),
	}
}

// Fields returns the complete record.
func (m Method) Fields() Fields {
	f := m.Extra.Clone()
	putID(f, FieldID, m.ID)
	putString(f, FieldSystemName, m.SystemName)
	putString(f, FieldFriendlyName, m.FriendlyName)
	putID(f, FieldParentID, m.ParentID)
	return f
}

// Field reads a single field by name.
func (m Method) Field(name string) (any, bool) {
	v, ok := m.Fields()[name]
	return v, ok
}

func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Fields())
}

func (m *Method) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*m = MethodFromFields(f)
	return nil
}
