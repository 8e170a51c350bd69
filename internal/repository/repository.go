package repository

import (
	"context"

	"inventory/internal/domain"
)

// Session is a unit of work over the inventory store.
//
// Lookups read committed state. Add and Delete only stage changes; nothing
// reaches the store until Commit, which applies everything staged since the
// last Commit or Rollback in one transaction.
type Session interface {
	// Read operations. A zero-valued filter field matches everything.
	Companies(ctx context.Context, f CompanyFilter) ([]*domain.Company, error)
	Offices(ctx context.Context, f OfficeFilter) ([]*domain.Office, error)
	Groups(ctx context.Context, f GroupFilter) ([]*domain.Group, error)
	Hosts(ctx context.Context, f HostFilter) ([]*domain.Host, error)

	// Staging
	Add(e domain.Entity)
	Delete(e domain.Entity)

	// Commit persists staged changes. On failure every staged change is
	// discarded and a constraint failure is reported as
	// domain.ErrConstraintViolation.
	Commit(ctx context.Context) error

	// Rollback discards staged changes. It never fails.
	Rollback()

	// Close releases the underlying connection
	Close() error
}

// CompanyFilter selects companies
type CompanyFilter struct {
	ID   int64
	Name string
}

// OfficeFilter selects offices
type OfficeFilter struct {
	ID        int64
	CompanyID int64
	Name      string
}

// GroupFilter selects groups
type GroupFilter struct {
	ID        int64
	CompanyID int64
	OfficeID  int64
	Name      string
	// HostID selects the groups a host is a member of
	HostID int64
}

// HostFilter selects hosts
type HostFilter struct {
	ID        int64
	CompanyID int64
	OfficeID  int64
	Name      string
	// GroupID selects the members of a group
	GroupID int64
}

// First returns the first element of a lookup result, or nil
func First[T any](items []*T, err error) (*T, error) {
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}
