package domain

// Office is a location beneath a Company. Every host exists in an office.
type Office struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	CompanyID   int64  `json:"company_id" yaml:"company_id"`
	CompanyName string `json:"company" yaml:"company"`
}

// NewOffice creates an unsaved office under company
func NewOffice(name string, company *Company) *Office {
	return &Office{
		Name:        name,
		CompanyID:   company.ID,
		CompanyName: company.Name,
	}
}

// EntityType implements Entity
func (o *Office) EntityType() EntityType { return EntityOffice }

// Key implements Entity
func (o *Office) Key() string { return o.CompanyName + "/" + o.Name }
