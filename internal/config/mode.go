package config

// GroupScope is how widely a group name must be unique
type GroupScope string

const (
	// GroupScopeCompany rejects a group name already used anywhere in the company
	GroupScopeCompany GroupScope = "company"
	// GroupScopeOffice rejects a group name only within the same office
	GroupScopeOffice GroupScope = "office"
)

// ParseGroupScope converts a string to GroupScope, defaulting to GroupScopeCompany
func ParseGroupScope(s string) GroupScope {
	switch s {
	case "office":
		return GroupScopeOffice
	default:
		return GroupScopeCompany
	}
}

// PerOffice reports whether group names may repeat across offices
func (g GroupScope) PerOffice() bool {
	return g == GroupScopeOffice
}
