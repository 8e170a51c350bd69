package domain

// EntityType names one level of the hierarchy
type EntityType string

const (
	EntityCompany EntityType = "company"
	EntityOffice  EntityType = "office"
	EntityGroup   EntityType = "group"
	EntityHost    EntityType = "host"
)

// All is the scoping value that selects every parent in list operations
const All = "all"

// Entity is anything a session can stage for add or delete
type Entity interface {
	EntityType() EntityType
	// Key is the human-readable identity, e.g. "Acme/Austin/IT"
	Key() string
}

// IsAll reports whether a scoping argument means "no scope"
func IsAll(scope string) bool {
	return scope == "" || scope == All
}
