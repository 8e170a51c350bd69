package domain

// Company is the top-level owner of the inventory hierarchy
type Company struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// NewCompany creates an unsaved company
func NewCompany(name string) *Company {
	return &Company{Name: name}
}

// EntityType implements Entity
func (c *Company) EntityType() EntityType { return EntityCompany }

// Key implements Entity
func (c *Company) Key() string { return c.Name }
