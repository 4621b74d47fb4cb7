package entity

import "encoding/json"

// Service is the top-level API product being mirrored.
type Service struct {
	ID                          int64
	Name                        string
	SystemName                  string
	BackendVersion              string
	DeploymentOption            string
	EndUserRegistrationRequired *bool
	Extra                       Fields
}

// ServiceFromFields builds a Service from a raw record.
func ServiceFromFields(f Fields) Service {
	s := Service{
		ID:               f.Int64(FieldID),
		Name:             f.String(FieldName),
		SystemName:       f.String(FieldSystemName),
		BackendVersion:   f.String(FieldBackendVersion),
		DeploymentOption: f.String(FieldDeploymentOption),
		Extra: f.Without(FieldID, FieldName, FieldSystemName, FieldBackendVersion,
			FieldDeploymentOption, FieldEndUserRegistrationRequired),
	}
	if v, ok := f[FieldEndUserRegistrationRequired]; ok && v != nil {
		b := f.Bool(FieldEndUserRegistrationRequired)
		s.EndUserRegistrationRequired = &b
	}
	return s
}

// Fields returns the complete record.
func (s Service) Fields() Fields {
	f := s.Extra.Clone()
	putID(f, FieldID, s.ID)
	putString(f, FieldName, s.Name)
	putString(f, FieldSystemName, s.SystemName)
	for k, v := range s.Settings() {
		f[k] = v
	}
	return f
}

// Settings projects the service onto the fields a destination copy receives.
// Everything else on a service is managed by the remote store.
func (s Service) Settings() Fields {
	f := Fields{}
	putString(f, FieldName, s.Name)
	putString(f, FieldBackendVersion, s.BackendVersion)
	putString(f, FieldDeploymentOption, s.DeploymentOption)
	if s.EndUserRegistrationRequired != nil {
		f[FieldEndUserRegistrationRequired] = *s.EndUserRegistrationRequired
	}
	return f
}

func (s Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Fields())
}

func (s *Service) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*s = ServiceFromFields(f)
	return nil
}

// Proxy is the routing configuration attached to a service. It is copied as a whole.
type Proxy struct {
	ServiceID int64
	Extra     Fields
}

// ProxyFromFields builds a Proxy from a raw record.
func ProxyFromFields(f Fields) Proxy {
	return Proxy{
		ServiceID: f.Int64(FieldServiceID),
		Extra:     f.Without(FieldServiceID),
	}
}

// Fields returns the complete record.
func (p Proxy) Fields() Fields {
	f := p.Extra.Clone()
	putID(f, FieldServiceID, p.ServiceID)
	return f
}

func (p Proxy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

func (p *Proxy) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*p = ProxyFromFields(f)
	return nil
}
