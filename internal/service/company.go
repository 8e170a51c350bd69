package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/repository"
)

// AddCompany creates a company. An empty name is left for the store to
// reject, which surfaces as a constraint violation.
func (m *Manager) AddCompany(ctx context.Context, name string) (*domain.Company, error) {
	log := m.log.With(zap.String("entity", "company"), zap.String("name", name))

	if name != "" {
		existing, err := m.findCompany(ctx, name)
		if err != nil {
			return nil, fail(log, "add company failed", err)
		}
		if existing != nil {
			return nil, fail(log, "company already exists", domain.AlreadyExists(domain.EntityCompany, name))
		}
	}

	company := domain.NewCompany(name)
	if err := m.save(ctx, company); err != nil {
		return nil, fail(log, "add company failed", err)
	}

	log.Info("company added", zap.Int64("id", company.ID))
	m.publish(EventCompanyCreated, company)
	return company, nil
}

// DelCompany deletes a company. Companies that still own offices are
// refused by the store.
func (m *Manager) DelCompany(ctx context.Context, name string) error {
	log := m.log.With(zap.String("entity", "company"), zap.String("name", name))

	company, err := m.requireCompany(ctx, name)
	if err != nil {
		return fail(log, "delete company failed", err)
	}

	if err := m.remove(ctx, company); err != nil {
		return fail(log, "delete company failed", err)
	}

	log.Info("company deleted", zap.Int64("id", company.ID))
	m.publish(EventCompanyDeleted, company)
	return nil
}

// GetCompany returns the company with the given name
func (m *Manager) GetCompany(ctx context.Context, name string) (*domain.Company, error) {
	company, err := m.requireCompany(ctx, name)
	if err != nil {
		return nil, fail(m.log.With(zap.String("entity", "company"), zap.String("name", name)), "no such company", err)
	}
	return company, nil
}

// ListCompanies returns every company ordered by ID
func (m *Manager) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	companies, err := m.session.Companies(ctx, repository.CompanyFilter{})
	if err != nil {
		return nil, fail(m.log.With(zap.String("entity", "company")), "list companies failed", err)
	}
	if len(companies) == 0 {
		m.log.Info("no companies found")
	}
	return companies, nil
}
