package domain

// Host is a managed machine in one Company+Office
type Host struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	CompanyID   int64  `json:"company_id" yaml:"company_id"`
	CompanyName string `json:"company" yaml:"company"`
	OfficeID    int64  `json:"office_id" yaml:"office_id"`
	OfficeName  string `json:"office" yaml:"office"`

	// Groups is the membership set, ordered by group ID
	Groups []*Group `json:"groups" yaml:"groups"`
}

// NewHost creates an unsaved host in office with the given membership
func NewHost(name string, office *Office, groups []*Group) *Host {
	return &Host{
		Name:        name,
		CompanyID:   office.CompanyID,
		CompanyName: office.CompanyName,
		OfficeID:    office.ID,
		OfficeName:  office.Name,
		Groups:      groups,
	}
}

// EntityType implements Entity
func (h *Host) EntityType() EntityType { return EntityHost }

// Key implements Entity
func (h *Host) Key() string { return h.CompanyName + "/" + h.OfficeName + "/" + h.Name }

// GroupNames returns the names of the groups the host belongs to
func (h *Host) GroupNames() []string {
	names := make([]string, 0, len(h.Groups))
	for _, g := range h.Groups {
		names = append(names, g.Name)
	}
	return names
}

// InGroup reports whether the host is a member of the named group
func (h *Host) InGroup(name string) bool {
	for _, g := range h.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
