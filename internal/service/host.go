package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/repository"
)

func (m *Manager) hostLogger(name, companyName, officeName string) *zap.Logger {
	return m.log.With(
		zap.String("entity", "host"),
		zap.String("name", name),
		zap.String("company", companyName),
		zap.String("office", officeName),
	)
}

// AddHost creates a host in an office as a member of groupNames. Every
// requested group must exist in that office. Repeated names are collapsed.
func (m *Manager) AddHost(ctx context.Context, name, companyName, officeName string, groupNames []string) (*domain.Host, error) {
	log := m.hostLogger(name, companyName, officeName).With(zap.Strings("groups", groupNames))

	if err := checkArgs(domain.EntityHost, argument{"company", companyName}, argument{"office", officeName}); err != nil {
		return nil, fail(log, "add host failed", err)
	}
	if len(groupNames) == 0 {
		return nil, fail(log, "add host failed", domain.MissingArgument(domain.EntityHost, "groups"))
	}
	if name == "" {
		return nil, fail(log, "add host failed", domain.MissingArgument(domain.EntityHost, "name"))
	}

	office, err := m.requireOffice(ctx, companyName, officeName)
	if err != nil {
		return nil, fail(log, "add host failed", err)
	}

	existing, err := m.findHost(ctx, office, name)
	if err != nil {
		return nil, fail(log, "add host failed", err)
	}
	if existing != nil {
		return nil, fail(log, "host already exists", domain.AlreadyExists(domain.EntityHost, existing.Key()))
	}

	groups, err := m.resolveGroups(ctx, office, groupNames)
	if err != nil {
		return nil, fail(log, "add host failed", err)
	}

	host := domain.NewHost(name, office, groups)
	if err := m.save(ctx, host); err != nil {
		return nil, fail(log, "add host failed", err)
	}

	log.Info("host added", zap.Int64("id", host.ID))
	m.publish(EventHostCreated, host)
	return host, nil
}

// resolveGroups maps names onto the office's groups, in group ID order
func (m *Manager) resolveGroups(ctx context.Context, office *domain.Office, names []string) ([]*domain.Group, error) {
	available, err := m.session.Groups(ctx, repository.GroupFilter{CompanyID: office.CompanyID, OfficeID: office.ID})
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*domain.Group, len(available))
	for _, g := range available {
		byName[g.Name] = g
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if byName[n] == nil {
			return nil, domain.NotFound(domain.EntityGroup, office.Key()+"/"+n)
		}
		wanted[n] = true
	}

	groups := make([]*domain.Group, 0, len(wanted))
	for _, g := range available {
		if wanted[g.Name] {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// requireHost resolves the office and then the host under it
func (m *Manager) requireHost(ctx context.Context, name, companyName, officeName string) (*domain.Host, error) {
	args := []argument{{"company", companyName}, {"office", officeName}, {"name", name}}
	if err := checkArgs(domain.EntityHost, args...); err != nil {
		return nil, err
	}
	office, err := m.requireOffice(ctx, companyName, officeName)
	if err != nil {
		return nil, err
	}
	host, err := m.findHost(ctx, office, name)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, domain.NotFound(domain.EntityHost, office.Key()+"/"+name)
	}
	return host, nil
}

// DelHost deletes a host and its group membership
func (m *Manager) DelHost(ctx context.Context, name, companyName, officeName string) error {
	log := m.hostLogger(name, companyName, officeName)

	host, err := m.requireHost(ctx, name, companyName, officeName)
	if err != nil {
		return fail(log, "delete host failed", err)
	}

	if err := m.remove(ctx, host); err != nil {
		return fail(log, "delete host failed", err)
	}

	log.Info("host deleted", zap.Int64("id", host.ID))
	m.publish(EventHostDeleted, host)
	return nil
}

// GetHost returns the named host of an office with its groups loaded
func (m *Manager) GetHost(ctx context.Context, name, companyName, officeName string) (*domain.Host, error) {
	host, err := m.requireHost(ctx, name, companyName, officeName)
	if err != nil {
		return nil, fail(m.hostLogger(name, companyName, officeName), "no such host", err)
	}
	return host, nil
}

// GetHosts returns the hosts of one office ordered by ID
func (m *Manager) GetHosts(ctx context.Context, companyName, officeName string) ([]*domain.Host, error) {
	log := m.hostLogger("", companyName, officeName)

	office, err := m.requireOffice(ctx, companyName, officeName)
	if err != nil {
		return nil, fail(log, "get hosts failed", err)
	}

	hosts, err := m.session.Hosts(ctx, repository.HostFilter{CompanyID: office.CompanyID, OfficeID: office.ID})
	if err != nil {
		return nil, fail(log, "get hosts failed", err)
	}
	return hosts, nil
}
