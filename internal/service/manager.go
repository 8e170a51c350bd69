package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory/internal/config"
	"inventory/internal/domain"
	"inventory/internal/repository"
	"inventory/internal/repository/sqlite"
)

// Manager is the inventory facade. It is not safe for concurrent use: the
// underlying session stages changes in memory between commits.
type Manager struct {
	session repository.Session
	log     *zap.Logger
	events  *EventBus
	scope   config.GroupScope
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger for operation results and failures
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithEventBus publishes committed mutations on bus
func WithEventBus(bus *EventBus) Option {
	return func(m *Manager) {
		m.events = bus
	}
}

// WithGroupScope sets how far AddGroup looks for an existing group name
func WithGroupScope(scope config.GroupScope) Option {
	return func(m *Manager) {
		m.scope = scope
	}
}

// New creates a Manager around an open session. The Manager takes ownership
// of the session and closes it in Close.
func New(session repository.Session, opts ...Option) *Manager {
	m := &Manager{
		session: session,
		log:     zap.NewNop(),
		scope:   config.GroupScopeCompany,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open opens the SQLite store named by cfg and returns a Manager over it
func Open(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := sqlite.New(cfg.Database.Path, sqlite.WithLogger(logger.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory database %s: %w", cfg.Database.Path, err)
	}

	base := []Option{WithLogger(logger), WithGroupScope(cfg.Inventory.GroupUniqueness)}
	return New(store, append(base, opts...)...), nil
}

// GroupScope reports how widely AddGroup enforces group name uniqueness
func (m *Manager) GroupScope() config.GroupScope {
	return m.scope
}

// Close releases the session. It is safe to call more than once.
func (m *Manager) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Close()
	m.session = nil
	return err
}

// save stages e for insertion and commits it
func (m *Manager) save(ctx context.Context, e domain.Entity) error {
	m.session.Add(e)
	return m.commit(ctx)
}

// remove stages e for deletion and commits it
func (m *Manager) remove(ctx context.Context, e domain.Entity) error {
	m.session.Delete(e)
	return m.commit(ctx)
}

func (m *Manager) commit(ctx context.Context) error {
	if err := m.session.Commit(ctx); err != nil {
		m.session.Rollback()
		return err
	}
	return nil
}

func (m *Manager) publish(t EventType, e domain.Entity) {
	m.events.Publish(Event{Type: t, Key: e.Key(), Payload: e})
}

// fail logs err with the operation context and returns it unchanged.
// Misses are expected outcomes of lookups and are logged at info.
func fail(log *zap.Logger, msg string, err error) error {
	if domain.KindOf(err) == domain.KindNotFound {
		log.Info(msg, zap.Error(err))
	} else {
		log.Error(msg, zap.Error(err))
	}
	return err
}

// ============================================================================
// Lookups
// ============================================================================
//
// The find helpers return (nil, nil) on a miss so callers can choose between
// NotFound and AlreadyExists. The require helpers turn a miss into NotFound.

func (m *Manager) findCompany(ctx context.Context, name string) (*domain.Company, error) {
	return repository.First(m.session.Companies(ctx, repository.CompanyFilter{Name: name}))
}

func (m *Manager) requireCompany(ctx context.Context, name string) (*domain.Company, error) {
	if name == "" {
		return nil, domain.MissingArgument(domain.EntityCompany, "company")
	}
	company, err := m.findCompany(ctx, name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound(domain.EntityCompany, name)
	}
	return company, nil
}

func (m *Manager) findOffice(ctx context.Context, company *domain.Company, name string) (*domain.Office, error) {
	return repository.First(m.session.Offices(ctx, repository.OfficeFilter{CompanyID: company.ID, Name: name}))
}

// argument pairs a required argument's name with its value
type argument struct {
	name, value string
}

// checkArgs returns MissingArgument for the first empty argument. Callers
// run it before any lookup.
func checkArgs(entity domain.EntityType, args ...argument) error {
	for _, a := range args {
		if a.value == "" {
			return domain.MissingArgument(entity, a.name)
		}
	}
	return nil
}

// requireOffice resolves the company and then the office under it
func (m *Manager) requireOffice(ctx context.Context, companyName, officeName string) (*domain.Office, error) {
	if err := checkArgs(domain.EntityOffice, argument{"company", companyName}, argument{"office", officeName}); err != nil {
		return nil, err
	}
	company, err := m.requireCompany(ctx, companyName)
	if err != nil {
		return nil, err
	}
	office, err := m.findOffice(ctx, company, officeName)
	if err != nil {
		return nil, err
	}
	if office == nil {
		return nil, domain.NotFound(domain.EntityOffice, companyName+"/"+officeName)
	}
	return office, nil
}

func (m *Manager) findGroup(ctx context.Context, office *domain.Office, name string) (*domain.Group, error) {
	return repository.First(m.session.Groups(ctx, repository.GroupFilter{
		CompanyID: office.CompanyID,
		OfficeID:  office.ID,
		Name:      name,
	}))
}

func (m *Manager) findHost(ctx context.Context, office *domain.Office, name string) (*domain.Host, error) {
	return repository.First(m.session.Hosts(ctx, repository.HostFilter{
		CompanyID: office.CompanyID,
		OfficeID:  office.ID,
		Name:      name,
	}))
}
