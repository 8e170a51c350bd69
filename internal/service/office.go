package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/repository"
)

// AddOffice creates an office under an existing company
func (m *Manager) AddOffice(ctx context.Context, name, companyName string) (*domain.Office, error) {
	log := m.log.With(zap.String("entity", "office"), zap.String("name", name), zap.String("company", companyName))

	if name == "" {
		return nil, fail(log, "add office failed", domain.MissingArgument(domain.EntityOffice, "name"))
	}
	company, err := m.requireCompany(ctx, companyName)
	if err != nil {
		return nil, fail(log, "add office failed", err)
	}

	existing, err := m.findOffice(ctx, company, name)
	if err != nil {
		return nil, fail(log, "add office failed", err)
	}
	if existing != nil {
		return nil, fail(log, "office already exists", domain.AlreadyExists(domain.EntityOffice, existing.Key()))
	}

	office := domain.NewOffice(name, company)
	if err := m.save(ctx, office); err != nil {
		return nil, fail(log, "add office failed", err)
	}

	log.Info("office added", zap.Int64("id", office.ID))
	m.publish(EventOfficeCreated, office)
	return office, nil
}

// DelOffice deletes an office of a company
func (m *Manager) DelOffice(ctx context.Context, name, companyName string) error {
	log := m.log.With(zap.String("entity", "office"), zap.String("name", name), zap.String("company", companyName))

	office, err := m.requireOffice(ctx, companyName, name)
	if err != nil {
		return fail(log, "delete office failed", err)
	}

	if err := m.remove(ctx, office); err != nil {
		return fail(log, "delete office failed", err)
	}

	log.Info("office deleted", zap.Int64("id", office.ID))
	m.publish(EventOfficeDeleted, office)
	return nil
}

// GetOffice returns the named office of a company
func (m *Manager) GetOffice(ctx context.Context, name, companyName string) (*domain.Office, error) {
	office, err := m.requireOffice(ctx, companyName, name)
	if err != nil {
		log := m.log.With(zap.String("entity", "office"), zap.String("name", name), zap.String("company", companyName))
		return nil, fail(log, "no such office", err)
	}
	return office, nil
}

// GetOffices returns the offices of one company ordered by ID
func (m *Manager) GetOffices(ctx context.Context, companyName string) ([]*domain.Office, error) {
	log := m.log.With(zap.String("entity", "office"), zap.String("company", companyName))

	company, err := m.requireCompany(ctx, companyName)
	if err != nil {
		return nil, fail(log, "get offices failed", err)
	}

	offices, err := m.session.Offices(ctx, repository.OfficeFilter{CompanyID: company.ID})
	if err != nil {
		return nil, fail(log, "get offices failed", err)
	}
	return offices, nil
}

// ListOffices returns every office when companyName is domain.All or empty,
// otherwise the offices of that company
func (m *Manager) ListOffices(ctx context.Context, companyName string) ([]*domain.Office, error) {
	if !domain.IsAll(companyName) {
		return m.GetOffices(ctx, companyName)
	}

	offices, err := m.session.Offices(ctx, repository.OfficeFilter{})
	if err != nil {
		return nil, fail(m.log.With(zap.String("entity", "office")), "list offices failed", err)
	}
	return offices, nil
}
