package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/repository"
)

func (m *Manager) groupLogger(name, companyName, officeName string) *zap.Logger {
	return m.log.With(
		zap.String("entity", "group"),
		zap.String("name", name),
		zap.String("company", companyName),
		zap.String("office", officeName),
	)
}

func groupArgs(name, companyName, officeName string) []argument {
	return []argument{{"company", companyName}, {"office", officeName}, {"name", name}}
}

// AddGroup creates a group in an office. The duplicate check covers the
// whole company unless the manager was configured for per-office scope.
func (m *Manager) AddGroup(ctx context.Context, name, companyName, officeName string) (*domain.Group, error) {
	log := m.groupLogger(name, companyName, officeName)

	if err := checkArgs(domain.EntityGroup, groupArgs(name, companyName, officeName)...); err != nil {
		return nil, fail(log, "add group failed", err)
	}
	office, err := m.requireOffice(ctx, companyName, officeName)
	if err != nil {
		return nil, fail(log, "add group failed", err)
	}

	filter := repository.GroupFilter{CompanyID: office.CompanyID, Name: name}
	if m.scope.PerOffice() {
		filter.OfficeID = office.ID
	}
	existing, err := repository.First(m.session.Groups(ctx, filter))
	if err != nil {
		return nil, fail(log, "add group failed", err)
	}
	if existing != nil {
		return nil, fail(log, "group already exists", domain.AlreadyExists(domain.EntityGroup, existing.Key()))
	}

	group := domain.NewGroup(name, office)
	if err := m.save(ctx, group); err != nil {
		return nil, fail(log, "add group failed", err)
	}

	log.Info("group added", zap.Int64("id", group.ID))
	m.publish(EventGroupCreated, group)
	return group, nil
}

// requireGroup resolves the office and then the group under it
func (m *Manager) requireGroup(ctx context.Context, name, companyName, officeName string) (*domain.Group, error) {
	if err := checkArgs(domain.EntityGroup, groupArgs(name, companyName, officeName)...); err != nil {
		return nil, err
	}
	office, err := m.requireOffice(ctx, companyName, officeName)
	if err != nil {
		return nil, err
	}
	group, err := m.findGroup(ctx, office, name)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.NotFound(domain.EntityGroup, office.Key()+"/"+name)
	}
	return group, nil
}

// DelGroup deletes a group. Its member hosts stay; only the membership
// edges go.
func (m *Manager) DelGroup(ctx context.Context, name, companyName, officeName string) error {
	log := m.groupLogger(name, companyName, officeName)

	group, err := m.requireGroup(ctx, name, companyName, officeName)
	if err != nil {
		return fail(log, "delete group failed", err)
	}

	if err := m.remove(ctx, group); err != nil {
		return fail(log, "delete group failed", err)
	}

	log.Info("group deleted", zap.Int64("id", group.ID))
	m.publish(EventGroupDeleted, group)
	return nil
}

// GetGroup returns the named group of an office
func (m *Manager) GetGroup(ctx context.Context, name, companyName, officeName string) (*domain.Group, error) {
	group, err := m.requireGroup(ctx, name, companyName, officeName)
	if err != nil {
		return nil, fail(m.groupLogger(name, companyName, officeName), "no such group", err)
	}
	return group, nil
}

// GetGroups returns the groups of one office ordered by ID
func (m *Manager) GetGroups(ctx context.Context, companyName, officeName string) ([]*domain.Group, error) {
	log := m.groupLogger("", companyName, officeName)

	office, err := m.requireOffice(ctx, companyName, officeName)
	if err != nil {
		return nil, fail(log, "get groups failed", err)
	}

	groups, err := m.session.Groups(ctx, repository.GroupFilter{CompanyID: office.CompanyID, OfficeID: office.ID})
	if err != nil {
		return nil, fail(log, "get groups failed", err)
	}
	return groups, nil
}

// ListGroups returns every group when both company and office are
// domain.All (or empty), otherwise the groups of that one office. Scoping by
// company alone is not supported.
func (m *Manager) ListGroups(ctx context.Context, companyName, officeName string) ([]*domain.Group, error) {
	allCompanies, allOffices := domain.IsAll(companyName), domain.IsAll(officeName)

	switch {
	case allCompanies && allOffices:
		groups, err := m.session.Groups(ctx, repository.GroupFilter{})
		if err != nil {
			return nil, fail(m.groupLogger("", companyName, officeName), "list groups failed", err)
		}
		return groups, nil
	case allCompanies:
		return nil, fail(m.groupLogger("", companyName, officeName), "list groups failed",
			domain.MissingArgument(domain.EntityGroup, "company"))
	case allOffices:
		return nil, fail(m.groupLogger("", companyName, officeName), "list groups failed",
			domain.MissingArgument(domain.EntityGroup, "office"))
	default:
		return m.GetGroups(ctx, companyName, officeName)
	}
}
