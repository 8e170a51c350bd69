package domain

import "fmt"

// Group classifies hosts within one Company+Office.
//
// These are inventory groups, not the Ansible groups produced by the dump;
// the dump derives one Ansible group per Group as "{company}_{office}_{group}".
type Group struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	CompanyID   int64  `json:"company_id" yaml:"company_id"`
	CompanyName string `json:"company" yaml:"company"`
	OfficeID    int64  `json:"office_id" yaml:"office_id"`
	OfficeName  string `json:"office" yaml:"office"`
}

// NewGroup creates an unsaved group under office. The company is taken
// from the office so the two can not disagree.
func NewGroup(name string, office *Office) *Group {
	return &Group{
		Name:        name,
		CompanyID:   office.CompanyID,
		CompanyName: office.CompanyName,
		OfficeID:    office.ID,
		OfficeName:  office.Name,
	}
}

// EntityType implements Entity
func (g *Group) EntityType() EntityType { return EntityGroup }

// Key implements Entity
func (g *Group) Key() string { return g.CompanyName + "/" + g.OfficeName + "/" + g.Name }

// InventoryName returns the name the group is exported under
func (g *Group) InventoryName() string {
	return InventoryGroupName(g.CompanyName, g.OfficeName, g.Name)
}

// InventoryGroupName builds the "{company}_{office}_{group}" dump key
func InventoryGroupName(company, office, group string) string {
	return fmt.Sprintf("%s_%s_%s", company, office, group)
}
