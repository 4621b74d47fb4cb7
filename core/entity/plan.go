package entity

import "encoding/json"

// ApplicationPlan is a named tier of access with usage limits.
type ApplicationPlan struct {
	ID         int64
	SystemName string
	Name       string
	Default    bool
	Custom     bool
	Extra      Fields
}

// ApplicationPlanFromFields builds an ApplicationPlan from a raw record.
func ApplicationPlanFromFields(f Fields) ApplicationPlan {
	return ApplicationPlan{
		ID:         f.Int64(FieldID),
		SystemName: f.String(FieldSystemName),
		Name:       f.String(FieldName),
		Default:    f.Bool(FieldDefault),
		Custom:     f.Bool(FieldCustom),
		Extra:      f.Without(FieldID, FieldSystemName, FieldName, FieldDefault, FieldCustom),
	}
}

// Fields returns the complete record.
func (p ApplicationPlan) Fields() Fields {
	f := p.Extra.Clone()
	putID(f, FieldID, p.ID)
	putString(f, FieldSystemName, p.SystemName)
	putString(f, FieldName, p.Name)
	f[FieldDefault] = p.Default
	f[FieldCustom] = p.Custom
	return f
}

// Field reads a single field by name.
func (p ApplicationPlan) Field(name string) (any, bool) {
	v, ok := p.Fields()[name]
	return v, ok
}

func (p ApplicationPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

func (p *ApplicationPlan) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*p = ApplicationPlanFromFields(f)
	return nil
}

// Limit caps the usage of one metric within a plan over a period.
type Limit struct {
	ID       int64
	MetricID int64
	PlanID   int64
	Period   string
	Value    int64
	Extra    Fields
}

// LimitFromFields builds a Limit from a raw record.
func LimitFromFields(f Fields) Limit {
	return Limit{
		ID:       f.Int64(FieldID),
		MetricID: f.Int64(FieldMetricID),
		PlanID:   f.Int64(FieldPlanID),
		Period:   f.String(FieldPeriod),
		Value:    f.Int64(FieldValue),
		Extra:    f.Without(FieldID, FieldMetricID, FieldPlanID, FieldPeriod, FieldValue),
	}
}

// Fields returns the complete record.
func (l Limit) Fields() Fields {
	f := l.Extra.Clone()
	putID(f, FieldID, l.ID)
	putID(f, FieldMetricID, l.MetricID)
	putID(f, FieldPlanID, l.PlanID)
	putString(f, FieldPeriod, l.Period)
	f[FieldValue] = l.Value
	return f
}

// Field reads a single field by name.
func (l Limit) Field(name string) (any, bool) {
	v, ok := l.Fields()[name]
	return v, ok
}

func (l Limit) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Fields())
}

func (l *Limit) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*l = LimitFromFields(f)
	return nil
}
